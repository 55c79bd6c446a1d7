package repository

import (
	"Lyra_Vid/internal/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)

	// FindByAccountName 落在某个主页上的全部评论（包括该账号视频下的评论，
	// 因为视频评论写入时已经把account_name解析成了视频作者）
	FindByAccountName(accountName string) ([]model.Comment, error)
	// FindByPostID 某个视频下的全部评论
	FindByPostID(postID uint64) ([]model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return errors.Wrap(err, "创建评论失败")
	}
	return nil
}

func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	// 把评论作者的账号信息和点赞集合也Preload出来
	err := r.db.Preload("AuthorUser").Preload("Likes").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// 每条评论join出它作者的账号记录，呈现层要用作者的展示名和头像
func (r *commentRepository) FindByAccountName(accountName string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Preload("AuthorUser").
		Preload("Likes").
		Where("account_name = ?", accountName).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) FindByPostID(postID uint64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Preload("AuthorUser").
		Preload("Likes").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

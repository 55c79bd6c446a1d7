package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"Lyra_Vid/internal/repository"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// 评论服务接口：主页评论和视频评论的创建。评论创建后除了点赞集合不可变更
type CommentService interface {
	PostProfileComment(accountName, author, body string) (*model.Comment, error)
	PostVideoComment(videoID uint64, author, body string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		userRepo:    userRepo,
	}
}

// 主页评论：1、正文trim后非空 2、目标账号要存在 3、account_name就是主页主人，post_id留空
func (s *commentService) PostProfileComment(accountName, author, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("先写点什么吧")
	}
	if _, err := s.userRepo.FindByUsername(accountName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("账号不存在")
		}
		return nil, err
	}

	newComment := &model.Comment{
		Author:      author,
		AccountName: accountName,
		Data:        body,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	// 创建成功后带着作者信息再查一遍返回
	return s.commentRepo.FindByID(newComment.ID)
}

// 视频评论：1、正文trim后非空 2、找到视频 3、写入时就把account_name解析成视频作者，
// 这样主页聚合和视频聚合共用一个join形状，读侧不用再join一次视频表
func (s *commentService) PostVideoComment(videoID uint64, author, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperr.Validation("先写点什么吧")
	}
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, err
	}

	newComment := &model.Comment{
		Author:      author,
		AccountName: video.Author,
		PostID:      &video.ID,
		Data:        body,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(newComment.ID)
}

package repository

import (
	"Lyra_Vid/internal/model"
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const keyVideoLikersSet = "video:likers"

// EngagementRepository 管所有“成员集合”的增删：视频点赞、评论点赞、订阅。
// 所有写操作都是数据库侧求值的set-add/set-remove：
// 加成员走INSERT + 唯一索引冲突忽略，删成员走DELETE，重复调用都是无害的no-op。
// 并发的不同actor不会互相丢更新，因为没有任何读改写
type EngagementRepository interface {
	AddVideoLike(videoID uint64, username string) error
	RemoveVideoLike(videoID uint64, username string) error

	AddCommentLike(commentID uint64, username string) error
	RemoveCommentLike(commentID uint64, username string) error

	AddSubscriber(target, subscriber string) error
	RemoveSubscriber(target, subscriber string) error

	VideoLikers(videoID uint64) ([]string, error)
	Subscribers(target string) ([]string, error)
	IsSubscribed(target, subscriber string) (bool, error)
	IsUserLikeVideo(videoID uint64, username string) (bool, error)
}

type engagementRepository struct {
	db  *gorm.DB
	rdb *redis.Client // 点赞成员的快速判重镜像，可以为nil
}

func NewEngagementRepository(db *gorm.DB, rdb *redis.Client) EngagementRepository {
	return &engagementRepository{db: db, rdb: rdb}
}

// 冲突忽略写法：成员已在集合里时INSERT什么都不做，不报错也不产生第二行
func (r *engagementRepository) AddVideoLike(videoID uint64, username string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "username"}},
		DoNothing: true,
	}).Create(&model.VideoLike{VideoID: videoID, Username: username}).Error
	if err != nil {
		return errors.Wrap(err, "添加视频点赞失败")
	}
	if r.rdb != nil {
		videoIDStr := strconv.FormatUint(videoID, 10)
		_ = r.rdb.SAdd(context.Background(), keyVideoLikersSet+":"+videoIDStr, username).Err()
	}
	return nil
}

// 原生DELETE绕开软删除，成员不在集合里时影响行数为0，同样是成功
func (r *engagementRepository) RemoveVideoLike(videoID uint64, username string) error {
	result := r.db.Exec("DELETE FROM video_likes WHERE video_id = ? AND username = ?", videoID, username)
	if result.Error != nil {
		return errors.Wrap(result.Error, "移除视频点赞失败")
	}
	if r.rdb != nil {
		videoIDStr := strconv.FormatUint(videoID, 10)
		_ = r.rdb.SRem(context.Background(), keyVideoLikersSet+":"+videoIDStr, username).Err()
	}
	return nil
}

func (r *engagementRepository) AddCommentLike(commentID uint64, username string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "username"}},
		DoNothing: true,
	}).Create(&model.CommentLike{CommentID: commentID, Username: username}).Error
	if err != nil {
		return errors.Wrap(err, "添加评论点赞失败")
	}
	return nil
}

func (r *engagementRepository) RemoveCommentLike(commentID uint64, username string) error {
	result := r.db.Exec("DELETE FROM comment_likes WHERE comment_id = ? AND username = ?", commentID, username)
	if result.Error != nil {
		return errors.Wrap(result.Error, "移除评论点赞失败")
	}
	return nil
}

func (r *engagementRepository) AddSubscriber(target, subscriber string) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "target"}, {Name: "subscriber"}},
		DoNothing: true,
	}).Create(&model.Subscription{Target: target, Subscriber: subscriber}).Error
	if err != nil {
		return errors.Wrap(err, "添加订阅失败")
	}
	return nil
}

func (r *engagementRepository) RemoveSubscriber(target, subscriber string) error {
	result := r.db.Exec("DELETE FROM subscriptions WHERE target = ? AND subscriber = ?", target, subscriber)
	if result.Error != nil {
		return errors.Wrap(result.Error, "移除订阅失败")
	}
	return nil
}

func (r *engagementRepository) VideoLikers(videoID uint64) ([]string, error) {
	list := make([]string, 0)
	err := r.db.Model(&model.VideoLike{}).Where("video_id = ?", videoID).Select("username").Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *engagementRepository) Subscribers(target string) ([]string, error) {
	list := make([]string, 0)
	err := r.db.Model(&model.Subscription{}).Where("target = ?", target).Select("subscriber").Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *engagementRepository) IsSubscribed(target, subscriber string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("target = ? AND subscriber = ?", target, subscriber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// 判重优先走Redis镜像，镜像不可用再回源数据库
func (r *engagementRepository) IsUserLikeVideo(videoID uint64, username string) (bool, error) {
	if r.rdb != nil {
		videoIDStr := strconv.FormatUint(videoID, 10)
		liked, err := r.rdb.SIsMember(context.Background(), keyVideoLikersSet+":"+videoIDStr, username).Result()
		if err == nil {
			return liked, nil
		}
		// Redis出错不致命，落回数据库查
	}
	var count int64
	err := r.db.Model(&model.VideoLike{}).
		Where("video_id = ? AND username = ?", videoID, username).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "查询点赞成员失败")
	}
	return count > 0, nil
}

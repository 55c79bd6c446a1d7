package repository

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	FindByTitle(title string) (*model.Video, error)
	// FindByAuthor 某个账号名下的全部视频（主页投影用）
	FindByAuthor(author string) ([]model.Video, error)
	// FindRandom 随机抽样，每次调用的结果集和顺序都可能不同，这是首页的刻意设计
	FindRandom(limit int) ([]model.Video, error)
	// IncrementViews 播放数原子自增，表达式在数据库侧求值，不走读改写
	IncrementViews(videoID uint64) error

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
}

// rdb可以为nil（消费者、测试里用不到缓存），所有缓存方法都要能安全跳过
type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

func (r *videoRepository) Create(video *model.Video) error {
	if err := r.db.Create(video).Error; err != nil {
		if isDuplicateErr(err) {
			return apperr.Duplicate("已经有同名的视频了")
		}
		return errors.Wrap(err, "创建视频失败")
	}
	return nil
}

// 利用videoID找视频：1、先查Redis缓存 2、未命中再查数据库并Preload作者和点赞集合 3、写回缓存
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	video, err := r.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	var dbVideo model.Video
	err = r.db.Preload("AuthorUser").Preload("Likes").First(&dbVideo, videoID).Error
	if err != nil {
		return nil, err
	}

	_ = r.SetVideoCache(&dbVideo)
	return &dbVideo, nil
}

func (r *videoRepository) FindByTitle(title string) (*model.Video, error) {
	var result model.Video
	err := r.db.Where("title = ?", title).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *videoRepository) FindByAuthor(author string) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Likes").Where("author = ?", author).Order("created_at desc").Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// ORDER BY RAND()就是SQL版的随机抽样，顺便Preload每条视频的作者
func (r *videoRepository) FindRandom(limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("AuthorUser").Order("RAND()").Limit(limit).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) IncrementViews(videoID uint64) error {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?
	err := r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	if err != nil {
		return errors.Wrapf(err, "播放数自增失败, videoID: %d", videoID)
	}
	return nil
}

func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(context.Background(), r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，但Redis正常工作
	} else if err != nil {
		return nil, err
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// 过期时间加随机抖动，防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

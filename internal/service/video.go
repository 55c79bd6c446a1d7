package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"Lyra_Vid/internal/repository"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// UploadParams 上传入参。Filename是存储边界给回的文件引用，核心只负责记录
type UploadParams struct {
	Author      string
	Title       string
	Description string
	Tags        []string
	Adult       bool
	Filename    string
}

type VideoService interface {
	Upload(params UploadParams) (*model.Video, error)
	GetVideoByID(videoID uint64) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
}

func NewVideoService(videoRepo repository.VideoRepository) VideoService {
	return &videoService{
		videoRepo: videoRepo,
	}
}

// 上传：1、文件引用和标题必填 2、标题查重 3、落库，唯一性由存储层的唯一索引在写入时兜底
func (s *videoService) Upload(params UploadParams) (*model.Video, error) {
	if params.Filename == "" {
		return nil, apperr.Validation("请选择一个视频文件")
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, apperr.Validation("标题不能为空")
	}
	if _, err := s.videoRepo.FindByTitle(params.Title); err == nil {
		return nil, apperr.Duplicate("已经有同名的视频了")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newVideo := &model.Video{
		Author:      params.Author,
		Filename:    params.Filename,
		Title:       params.Title,
		Description: params.Description,
		Tags:        params.Tags,
		Adult:       params.Adult,
	}
	if err := s.videoRepo.Create(newVideo); err != nil {
		return nil, err
	}
	return newVideo, nil
}

// 根据videoID查找视频：缓存未命中时用SingleFlight合并同一时刻的回源查询
func (s *videoService) GetVideoByID(videoID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(videoID)
	if err == nil && video != nil {
		return video, nil
	}

	key := fmt.Sprintf("get_video_%d", videoID)
	result, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.videoRepo.FindByID(videoID)
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Video), nil
}

package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"Lyra_Vid/internal/repository"
	"Lyra_Vid/pkg/logger"
	"errors"
	"time"

	"gorm.io/gorm"
)

const homeSampleSize = 100

// ProfileProjection 主页投影：账号记录join它名下的所有视频、
// 所有落在这个主页上的评论（每条评论再join它作者的账号记录）、订阅者集合。
// Age是读取时根据调用方当前日期推出来的
type ProfileProjection struct {
	User        *model.User
	Age         int
	Videos      []model.Video
	Comments    []model.Comment
	Subscribers []string
}

// WatchProjection 播放页投影：视频join作者账号记录和视频下的全部评论
type WatchProjection struct {
	Video       *model.Video
	Author      *model.User
	Comments    []model.Comment
	Likers      []string // 点赞集合的成员handle
	Subscribers []string // 作者的订阅者集合，呈现层用来画订阅按钮和人数
}

// ProjectionService 读侧的三个反规范化投影。
// 读不隔离写：查询进行中加进来的点赞或评论可能被看到也可能看不到，这个域里最终一致就够了
type ProjectionService interface {
	Profile(username string, now time.Time) (*ProfileProjection, error)
	Watch(videoID uint64) (*WatchProjection, error)
	// Home 随机抽样至多100条视频，每条join作者账号。两次调用结果可以不同，刻意为之
	Home() ([]model.Video, error)
}

type projectionService struct {
	userRepo       repository.UserRepository
	videoRepo      repository.VideoRepository
	commentRepo    repository.CommentRepository
	engagementRepo repository.EngagementRepository
	videoService   VideoService
	viewEvents     ViewEventPublisher
}

func NewProjectionService(
	userRepo repository.UserRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	engagementRepo repository.EngagementRepository,
	videoService VideoService,
	viewEvents ViewEventPublisher,
) ProjectionService {
	return &projectionService{
		userRepo:       userRepo,
		videoRepo:      videoRepo,
		commentRepo:    commentRepo,
		engagementRepo: engagementRepo,
		videoService:   videoService,
		viewEvents:     viewEvents,
	}
}

// 主页投影：1、找账号 2、join名下视频 3、join落在这个主页上的评论（含作者账号）4、订阅者集合 5、推年龄
func (s *projectionService) Profile(username string, now time.Time) (*ProfileProjection, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("账号不存在")
		}
		return nil, err
	}
	videos, err := s.videoRepo.FindByAuthor(username)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.FindByAccountName(username)
	if err != nil {
		return nil, err
	}
	subscribers, err := s.engagementRepo.Subscribers(username)
	if err != nil {
		return nil, err
	}

	return &ProfileProjection{
		User:        user,
		Age:         ageAt(user.Birthday, now),
		Videos:      videos,
		Comments:    comments,
		Subscribers: subscribers,
	}, nil
}

// 播放页投影：1、走视频服务的共享读路径取视频（缓存+回源合并）2、join作者账号
// 3、join视频下评论 4、点赞和订阅者集合 5、发播放事件
func (s *projectionService) Watch(videoID uint64) (*WatchProjection, error) {
	video, err := s.videoService.GetVideoByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, err
	}
	author, err := s.userRepo.FindByUsername(video.Author)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	comments, err := s.commentRepo.FindByPostID(videoID)
	if err != nil {
		return nil, err
	}
	likers, err := s.engagementRepo.VideoLikers(videoID)
	if err != nil {
		return nil, err
	}
	subscribers, err := s.engagementRepo.Subscribers(video.Author)
	if err != nil {
		return nil, err
	}

	// 播放数异步自增，发不出去不影响这次读
	if s.viewEvents != nil {
		if err := s.viewEvents.PublishView(videoID); err != nil {
			logger.Log.WithError(err).WithField("video_id", videoID).Warn("播放事件投递失败")
		}
	}

	return &WatchProjection{
		Video:       video,
		Author:      author,
		Comments:    comments,
		Likers:      likers,
		Subscribers: subscribers,
	}, nil
}

func (s *projectionService) Home() ([]model.Video, error) {
	return s.videoRepo.FindRandom(homeSampleSize)
}

// ageAt 日历年龄：先用年份差，再看(月,日)有没有到生日，没到就减一
func ageAt(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/repository"
	"errors"

	"gorm.io/gorm"
)

// EngagementService 管点赞和订阅。语义是集合成员，不是计数：
// 同一个actor重复点赞是no-op，不点赞的人取消点赞也是no-op，都算成功。
// actor一律来自认证后的身份，handler不允许请求体里自报handle
type EngagementService interface {
	LikeVideo(videoID uint64, actor string) error
	UnlikeVideo(videoID uint64, actor string) error

	LikeComment(commentID uint64, actor string) error
	UnlikeComment(commentID uint64, actor string) error

	Subscribe(target, actor string) error
	Unsubscribe(target, actor string) error
}

type engagementService struct {
	engagementRepo repository.EngagementRepository
	videoRepo      repository.VideoRepository
	commentRepo    repository.CommentRepository
	userRepo       repository.UserRepository
}

func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		videoRepo:      videoRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
	}
}

// 点赞视频：1、确认视频存在 2、快速判重，已在集合里就直接返回成功
// 3、集合加成员（存储层冲突忽略，天然幂等，判重只是省一次写）
func (s *engagementService) LikeVideo(videoID uint64, actor string) error {
	if err := s.videoExists(videoID); err != nil {
		return err
	}
	if liked, err := s.engagementRepo.IsUserLikeVideo(videoID, actor); err == nil && liked {
		return nil
	}
	return s.engagementRepo.AddVideoLike(videoID, actor)
}

func (s *engagementService) UnlikeVideo(videoID uint64, actor string) error {
	if err := s.videoExists(videoID); err != nil {
		return err
	}
	return s.engagementRepo.RemoveVideoLike(videoID, actor)
}

func (s *engagementService) LikeComment(commentID uint64, actor string) error {
	if err := s.commentExists(commentID); err != nil {
		return err
	}
	return s.engagementRepo.AddCommentLike(commentID, actor)
}

func (s *engagementService) UnlikeComment(commentID uint64, actor string) error {
	if err := s.commentExists(commentID); err != nil {
		return err
	}
	return s.engagementRepo.RemoveCommentLike(commentID, actor)
}

// 订阅：1、拒绝自己订阅自己 2、确认目标账号存在 3、订阅者集合加成员
func (s *engagementService) Subscribe(target, actor string) error {
	if target == actor {
		return apperr.Validation("不能订阅自己")
	}
	if err := s.userExists(target); err != nil {
		return err
	}
	return s.engagementRepo.AddSubscriber(target, actor)
}

func (s *engagementService) Unsubscribe(target, actor string) error {
	if target == actor {
		return apperr.Validation("不能订阅自己")
	}
	if err := s.userExists(target); err != nil {
		return err
	}
	return s.engagementRepo.RemoveSubscriber(target, actor)
}

func (s *engagementService) videoExists(videoID uint64) error {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("视频不存在")
		}
		return err
	}
	return nil
}

func (s *engagementService) commentExists(commentID uint64) error {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("评论不存在")
		}
		return err
	}
	return nil
}

func (s *engagementService) userExists(username string) error {
	if _, err := s.userRepo.FindByUsername(username); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("账号不存在")
		}
		return err
	}
	return nil
}

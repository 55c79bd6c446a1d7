package service

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type engagementFixture struct {
	svc            EngagementService
	engagementRepo *fakeEngagementRepo
	videoRepo      *fakeVideoRepo
	commentRepo    *fakeCommentRepo
	userRepo       *fakeUserRepo
}

func newEngagementFixture(t *testing.T) *engagementFixture {
	t.Helper()
	f := &engagementFixture{
		engagementRepo: newFakeEngagementRepo(),
		videoRepo:      newFakeVideoRepo(),
		commentRepo:    newFakeCommentRepo(),
		userRepo:       newFakeUserRepo(),
	}
	f.svc = NewEngagementService(f.engagementRepo, f.videoRepo, f.commentRepo, f.userRepo)
	return f
}

func TestLikeVideoMissingVideo(t *testing.T) {
	f := newEngagementFixture(t)

	err := f.svc.LikeVideo(42, "alice")
	require.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestLikeVideoIsIdempotent(t *testing.T) {
	f := newEngagementFixture(t)
	video := &model.Video{Author: "bob", Filename: "a.mp4", Title: "日落"}
	require.NoError(t, f.videoRepo.Create(video))

	require.NoError(t, f.svc.LikeVideo(video.ID, "alice"))
	require.NoError(t, f.svc.LikeVideo(video.ID, "alice"))

	likers, err := f.engagementRepo.VideoLikers(video.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, likers)
}

func TestRepeatedLikeSkipsInsert(t *testing.T) {
	f := newEngagementFixture(t)
	video := &model.Video{Author: "bob", Filename: "a.mp4", Title: "日落"}
	require.NoError(t, f.videoRepo.Create(video))

	require.NoError(t, f.svc.LikeVideo(video.ID, "alice"))
	require.NoError(t, f.svc.LikeVideo(video.ID, "alice"))

	// 第二次点赞在判重处短路，不再写存储
	require.Equal(t, 1, f.engagementRepo.videoLikeInserts)
}

func TestUnlikeVideoByNonLiker(t *testing.T) {
	f := newEngagementFixture(t)
	video := &model.Video{Author: "bob", Filename: "a.mp4", Title: "日落"}
	require.NoError(t, f.videoRepo.Create(video))
	require.NoError(t, f.svc.LikeVideo(video.ID, "alice"))

	// 没点过赞的人取消点赞是no-op，集合不变
	require.NoError(t, f.svc.UnlikeVideo(video.ID, "carol"))

	likers, err := f.engagementRepo.VideoLikers(video.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, likers)
}

func TestLikeCommentMissingComment(t *testing.T) {
	f := newEngagementFixture(t)

	err := f.svc.LikeComment(7, "alice")
	require.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestLikeUnlikeCommentRoundTrip(t *testing.T) {
	f := newEngagementFixture(t)
	comment := &model.Comment{Author: "alice", AccountName: "bob", Data: "说得好"}
	require.NoError(t, f.commentRepo.Create(comment))

	require.NoError(t, f.svc.LikeComment(comment.ID, "carol"))
	require.NoError(t, f.svc.UnlikeComment(comment.ID, "carol"))

	require.Empty(t, f.engagementRepo.commentLikes[comment.ID])
}

func TestSubscribeSelfRejected(t *testing.T) {
	f := newEngagementFixture(t)
	f.userRepo.users["alice"] = &model.User{Username: "alice"}

	err := f.svc.Subscribe("alice", "alice")
	require.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)

	subs, _ := f.engagementRepo.Subscribers("alice")
	require.Empty(t, subs)
}

func TestSubscribeMissingTarget(t *testing.T) {
	f := newEngagementFixture(t)

	err := f.svc.Subscribe("nobody", "alice")
	require.True(t, errors.Is(err, apperr.ErrNotFound), "got %v", err)
}

func TestSubscribeUnsubscribeRoundTrip(t *testing.T) {
	f := newEngagementFixture(t)
	f.userRepo.users["bob"] = &model.User{Username: "bob"}

	require.NoError(t, f.svc.Subscribe("bob", "alice"))
	require.NoError(t, f.svc.Subscribe("bob", "alice"))
	subs, err := f.engagementRepo.Subscribers("bob")
	require.NoError(t, err)
	require.Equal(t, []string{"alice"}, subs)

	require.NoError(t, f.svc.Unsubscribe("bob", "alice"))
	subs, err = f.engagementRepo.Subscribers("bob")
	require.NoError(t, err)
	require.Empty(t, subs)
}

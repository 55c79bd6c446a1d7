package repository

import (
	"Lyra_Vid/internal/apperr"
	"Lyra_Vid/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// 标题全局唯一：同名视频写不进去，库里也不会多出半条记录
func TestCreateVideoDuplicateTitle(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	repo := NewVideoRepository(db, nil)

	require.NoError(t, repo.Create(&model.Video{
		Author:   "alice",
		Filename: "a.mp4",
		Title:    "撞车的标题",
	}))

	err := repo.Create(&model.Video{
		Author:   "bob",
		Filename: "b.mp4",
		Title:    "撞车的标题",
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, apperr.ErrDuplicateKey))

	var count int64
	require.NoError(t, db.Model(&model.Video{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

// 播放数在数据库侧自增，只增不减
func TestIncrementViews(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice")
	video := seedVideo(t, db, "alice", "播放数视频")
	repo := NewVideoRepository(db, nil)

	require.NoError(t, repo.IncrementViews(video.ID))
	require.NoError(t, repo.IncrementViews(video.ID))

	got, err := repo.FindByID(video.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Views)
}

// FindByID把作者账号join出来，handle是join键
func TestFindByIDPreloadsAuthor(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice")
	video := seedVideo(t, db, "alice", "带作者的视频")
	repo := NewVideoRepository(db, nil)

	got, err := repo.FindByID(video.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.AuthorUser.Username)
	require.Equal(t, "三", got.AuthorUser.Firstname)
}

func TestFindByAuthor(t *testing.T) {
	db := setupTestDB(t)
	seedUser(t, db, "alice")
	seedUser(t, db, "bob")
	seedVideo(t, db, "alice", "视频一")
	seedVideo(t, db, "alice", "视频二")
	seedVideo(t, db, "bob", "别人的视频")
	repo := NewVideoRepository(db, nil)

	videos, err := repo.FindByAuthor("alice")
	require.NoError(t, err)
	require.Len(t, videos, 2)
	for _, v := range videos {
		require.Equal(t, "alice", v.Author)
	}
}

package repository

import (
	"Lyra_Vid/internal/model"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试用独立的内存sqlite，建好全部表。
// 集合语义（冲突忽略、唯一索引、DELETE）在sqlite和MySQL上行为一致
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.VideoLike{},
		&model.CommentLike{},
		&model.Subscription{},
	)
	require.NoError(t, err)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hashed",
		Firstname: "三",
		Lastname:  "张",
		Gender:    "other",
		Country:   "CN",
		Birthday:  time.Date(2000, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedVideo(t *testing.T, db *gorm.DB, author, title string) *model.Video {
	t.Helper()
	video := &model.Video{
		Author:   author,
		Filename: "1700000000000.mp4",
		Title:    title,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}

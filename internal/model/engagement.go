package model

// 点赞和订阅都是“成员集合”，不是计数器。每张表一行就是集合里的一个成员，
// 联合唯一索引利用的是数据库的“自动查重”能力，保证同一个人最多出现一次

type VideoLike struct {
	BaseModel
	VideoID  uint64 `gorm:"not null;uniqueIndex:idx_video_liker"`
	Username string `gorm:"size:32;not null;uniqueIndex:idx_video_liker"`
}

func (VideoLike) TableName() string {
	return "video_likes"
}

type CommentLike struct {
	BaseModel
	CommentID uint64 `gorm:"not null;uniqueIndex:idx_comment_liker"`
	Username  string `gorm:"size:32;not null;uniqueIndex:idx_comment_liker"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// Subscription 有方向：Subscriber订阅了Target
type Subscription struct {
	BaseModel
	Target     string `gorm:"size:32;not null;uniqueIndex:idx_target_subscriber"`
	Subscriber string `gorm:"size:32;not null;uniqueIndex:idx_target_subscriber"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

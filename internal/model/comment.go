package model

// Comment 评论实体，既可以挂在视频下，也可以挂在个人主页下。
// AccountName一律是“评论最终落在谁的主页上”：主页评论就是主页主人，
// 视频评论在写入时解析成视频作者。这样两种聚合共用一个join形状。
// PostID是目标判别器：nil表示主页评论，非nil表示视频评论
type Comment struct {
	BaseModel
	Author      string  `gorm:"size:32;not null;index"`
	AccountName string  `gorm:"size:32;not null;index"`
	PostID      *uint64 `gorm:"index"`
	Data        string  `gorm:"type:text;not null"`

	AuthorUser User          `gorm:"foreignKey:Author;references:Username"`
	Likes      []CommentLike `gorm:"foreignKey:CommentID"`
}

func (Comment) TableName() string {
	return "comments"
}

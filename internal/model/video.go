package model

// Video 视频实体。Author存的是作者的Username（handle），不是数字ID，
// 这样评论、主页聚合都能用同一个join键（username）
type Video struct {
	BaseModel
	Author      string `gorm:"size:32;not null;index"`
	Filename    string `gorm:"not null"` // 存储层返回的文件引用
	Title       string `gorm:"uniqueIndex;size:255;not null"`
	Description string `gorm:"type:text"`
	Tags        []string `gorm:"serializer:json"`
	Views       uint64   `gorm:"default:0"` // 只增不减
	Adult       bool     `gorm:"default:false"`

	// 外键是Author列，引用users表的username列
	AuthorUser User        `gorm:"foreignKey:Author;references:Username"`
	Likes      []VideoLike `gorm:"foreignKey:VideoID"`
}

func (Video) TableName() string {
	return "videos"
}

package model

import "time"

// User 账号实体。Username就是全站通用的handle，视频、评论、订阅都用它做关联键
type User struct {
	BaseModel
	Username  string `gorm:"uniqueIndex;size:32;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Password  string `gorm:"not null" json:"-"` // bcrypt哈希，不在JSON中序列化
	Firstname string `gorm:"not null"`
	Lastname  string `gorm:"not null"`
	Gender    string
	Country   string
	City      string
	State     string
	Birthday  time.Time
	Bio       string `gorm:"type:text"`
	Avatar    string // 头像文件名，由存储层生成
}

func (User) TableName() string {
	return "users"
}

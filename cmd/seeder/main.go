package main

import (
	"Lyra_Vid/internal/model"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("开始填充测试数据...")

	_ = godotenv.Load()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/lyra_vid?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("无法连接到数据库: %v", err)
	}
	fmt.Println("数据库连接成功!")

	// 每次填充都从干净的表开始。注意：这会删除所有数据！
	fmt.Println("正在清理旧数据...")
	db.Migrator().DropTable(
		&model.Subscription{},
		&model.CommentLike{},
		&model.VideoLike{},
		&model.Comment{},
		&model.Video{},
		&model.User{},
	)
	db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.VideoLike{},
		&model.CommentLike{},
		&model.Subscription{},
	)
	fmt.Println("数据库迁移成功!")

	// 所有测试账号用同一个默认密码 "password1"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	fmt.Println("正在创建账号...")
	userCount := 100
	usernames := make([]string, 0, userCount)
	for i := 0; i < userCount; i++ {
		// faker的用户名可能撞车，拼上序号保证唯一
		username := fmt.Sprintf("%s_%d", faker.Username(), i)
		user := model.User{
			Username:  username,
			Email:     fmt.Sprintf("%d_%s", i, faker.Email()),
			Password:  string(hashedPassword),
			Firstname: faker.FirstName(),
			Lastname:  faker.LastName(),
			Gender:    "other",
			Country:   "CN",
			Birthday:  time.Date(1980+rand.Intn(25), time.Month(1+rand.Intn(12)), 1+rand.Intn(28), 0, 0, 0, 0, time.UTC),
			Bio:       faker.Sentence(),
		}
		db.Create(&user)
		usernames = append(usernames, username)
	}
	fmt.Printf("成功创建 %d 个账号!\n", userCount)

	fmt.Println("正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			Author:      usernames[rand.Intn(userCount)],
			Filename:    fmt.Sprintf("%d.mp4", time.Now().UnixMilli()+int64(i)),
			Title:       fmt.Sprintf("%s #%d", faker.Sentence(), i), // 标题全局唯一
			Description: faker.Paragraph(),
			Tags:        []string{faker.Word(), faker.Word()},
		}
		db.Create(&video)
	}
	fmt.Printf("成功创建 %d 个视频!\n", videoCount)

	fmt.Println("正在创建随机点赞...")
	likeCount := 1000
	for i := 0; i < likeCount; i++ {
		like := model.VideoLike{
			VideoID:  uint64(rand.Intn(videoCount) + 1),
			Username: usernames[rand.Intn(userCount)],
		}
		// 冲突忽略：同一个人重复点同一条视频不会报错，也不会产生第二行
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "video_id"}, {Name: "username"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	fmt.Println("正在创建随机订阅...")
	subCount := 500
	for i := 0; i < subCount; i++ {
		target := usernames[rand.Intn(userCount)]
		subscriber := usernames[rand.Intn(userCount)]
		if target == subscriber {
			continue // 不允许自己订阅自己
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "target"}, {Name: "subscriber"}},
			DoNothing: true,
		}).Create(&model.Subscription{Target: target, Subscriber: subscriber})
	}
	fmt.Printf("成功创建(或尝试创建) %d 个随机订阅!\n", subCount)

	fmt.Println("所有测试数据填充完毕!")
}

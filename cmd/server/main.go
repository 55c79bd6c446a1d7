package main

import (
	"Lyra_Vid/internal/handler"
	"Lyra_Vid/internal/model"
	"Lyra_Vid/internal/repository"
	"Lyra_Vid/internal/router"
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"Lyra_Vid/pkg/rabbitmq"
	"Lyra_Vid/pkg/redis"
	"Lyra_Vid/pkg/storage"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	logger.InitLogger()

	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()
	logger.Log.Info("RabbitMQ连接成功")

	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(127.0.0.1:3306)/lyra_vid?charset=utf8mb4&parseTime=True&loc=Local"
	}
	// TranslateError让唯一键冲突在各方言下都翻译成gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")

	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.VideoLike{},
		&model.CommentLike{},
		&model.Subscription{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	store, err := storage.NewDiskStore(os.Getenv("UPLOADS_DIR"))
	if err != nil {
		logger.Log.Fatalf("存储初始化失败: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	engagementRepo := repository.NewEngagementRepository(db, redisClient)

	viewEvents := service.NewViewEventPublisher(rabbitMQConn)

	userService := service.NewUserService(userRepo, store)
	videoService := service.NewVideoService(videoRepo)
	engagementService := service.NewEngagementService(engagementRepo, videoRepo, commentRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)
	projectionService := service.NewProjectionService(userRepo, videoRepo, commentRepo, engagementRepo, videoService, viewEvents)

	userHandler := handler.NewUserHandler(userService, store)
	videoHandler := handler.NewVideoHandler(videoService, projectionService, store)
	engagementHandler := handler.NewEngagementHandler(engagementService)
	commentHandler := handler.NewCommentHandler(commentService)
	profileHandler := handler.NewProfileHandler(projectionService)

	r := router.SetupRouter(userHandler, videoHandler, engagementHandler, commentHandler, profileHandler)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Log.Printf("服务器将在: %s端口启动", port)
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}

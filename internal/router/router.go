package router

import (
	"Lyra_Vid/internal/handler"
	"Lyra_Vid/internal/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	userHandler handler.UserHandler,
	videoHandler handler.VideoHandler,
	engagementHandler handler.EngagementHandler,
	commentHandler handler.CommentHandler,
	profileHandler handler.ProfileHandler,
) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	apiV1 := r.Group("/api/v1")
	{
		// 读侧投影，登录与否都能看
		apiV1.GET("/home", videoHandler.Home)
		apiV1.GET("/videos/:video_id", videoHandler.Watch)
		apiV1.GET("/profiles/:username", profileHandler.Profile)

		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
		}

		authorized := apiV1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			authorized.POST("/videos", videoHandler.Upload)

			authorized.POST("/videos/:video_id/like", engagementHandler.LikeVideo)
			authorized.DELETE("/videos/:video_id/like", engagementHandler.UnlikeVideo)
			authorized.POST("/comments/:comment_id/like", engagementHandler.LikeComment)
			authorized.DELETE("/comments/:comment_id/like", engagementHandler.UnlikeComment)

			authorized.POST("/profiles/:username/subscribe", engagementHandler.Subscribe)
			authorized.DELETE("/profiles/:username/subscribe", engagementHandler.Unsubscribe)

			authorized.POST("/videos/:video_id/comments", commentHandler.PostVideoComment)
			authorized.POST("/profiles/:username/comments", commentHandler.PostProfileComment)

			authorized.PUT("/profile/name", userHandler.UpdateName)
			authorized.PUT("/profile/location", userHandler.UpdateLocation)
			authorized.PUT("/profile/bio", userHandler.UpdateBio)
			authorized.PUT("/profile/avatar", userHandler.UpdateAvatar)
		}
	}

	return r
}

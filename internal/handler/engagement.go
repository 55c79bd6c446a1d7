package handler

import (
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler interface {
	LikeVideo(c *gin.Context)
	UnlikeVideo(c *gin.Context)
	LikeComment(c *gin.Context)
	UnlikeComment(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
}

type engagementHandler struct {
	EngagementService service.EngagementService
}

func NewEngagementHandler(engagementService service.EngagementService) EngagementHandler {
	return &engagementHandler{EngagementService: engagementService}
}

// 点赞视频：1、从URL取video_id 2、actor取认证后的handle 3、集合加成员
func (h *engagementHandler) LikeVideo(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	actor := c.GetString("username")

	logCtx := logger.Log.WithField("username", actor).WithField("video_id", videoID)
	if err := h.EngagementService.LikeVideo(videoID, actor); err != nil {
		logCtx.WithError(err).Error("点赞失败")
		sendServiceError(c, err)
		return
	}
	logCtx.Info("点赞成功")
	c.JSON(http.StatusOK, gin.H{"message": "点赞成功"})
}

func (h *engagementHandler) UnlikeVideo(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	actor := c.GetString("username")

	logCtx := logger.Log.WithField("username", actor).WithField("video_id", videoID)
	if err := h.EngagementService.UnlikeVideo(videoID, actor); err != nil {
		logCtx.WithError(err).Error("取消点赞失败")
		sendServiceError(c, err)
		return
	}
	logCtx.Info("取消点赞成功")
	c.JSON(http.StatusOK, gin.H{"message": "取消点赞成功"})
}

func (h *engagementHandler) LikeComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}
	actor := c.GetString("username")

	if err := h.EngagementService.LikeComment(commentID, actor); err != nil {
		logger.Log.WithError(err).WithField("comment_id", commentID).Error("评论点赞失败")
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "点赞成功"})
}

func (h *engagementHandler) UnlikeComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的评论ID")
		return
	}
	actor := c.GetString("username")

	if err := h.EngagementService.UnlikeComment(commentID, actor); err != nil {
		logger.Log.WithError(err).WithField("comment_id", commentID).Error("取消评论点赞失败")
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "取消点赞成功"})
}

// 订阅：1、从URL取目标handle 2、actor取认证后的handle 3、订阅者集合加成员（自己订阅自己会被拒）
func (h *engagementHandler) Subscribe(c *gin.Context) {
	target := c.Param("username")
	actor := c.GetString("username")

	logCtx := logger.Log.WithField("subscriber", actor).WithField("target", target)
	if err := h.EngagementService.Subscribe(target, actor); err != nil {
		logCtx.WithError(err).Error("订阅失败")
		sendServiceError(c, err)
		return
	}
	logCtx.Info("订阅成功")
	c.JSON(http.StatusOK, gin.H{"message": "订阅成功"})
}

func (h *engagementHandler) Unsubscribe(c *gin.Context) {
	target := c.Param("username")
	actor := c.GetString("username")

	logCtx := logger.Log.WithField("subscriber", actor).WithField("target", target)
	if err := h.EngagementService.Unsubscribe(target, actor); err != nil {
		logCtx.WithError(err).Error("取消订阅失败")
		sendServiceError(c, err)
		return
	}
	logCtx.Info("取消订阅成功")
	c.JSON(http.StatusOK, gin.H{"message": "取消订阅成功"})
}

package handler

import (
	"Lyra_Vid/internal/dto"
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	PostProfileComment(c *gin.Context)
	PostVideoComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type PostCommentRequest struct {
	Data string `json:"data" binding:"required"`
}

// 主页评论：1、从URL取目标handle 2、作者取认证后的handle 3、service层创建
func (h *commentHandler) PostProfileComment(c *gin.Context) {
	accountName := c.Param("username")
	author := c.GetString("username")

	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "先写点什么吧")
		return
	}

	logCtx := logger.Log.WithField("author", author).WithField("account_name", accountName)
	comment, err := h.CommentService.PostProfileComment(accountName, author, req.Data)
	if err != nil {
		logCtx.WithError(err).Error("主页评论失败")
		sendServiceError(c, err)
		return
	}
	logCtx.WithField("comment_id", comment.ID).Info("主页评论成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "评论成功",
		"data":    dto.ToCommentResponse(comment),
	})
}

// 视频评论：1、从URL取video_id 2、作者取认证后的handle 3、service层创建（内部解析account_name）
func (h *commentHandler) PostVideoComment(c *gin.Context) {
	videoID, err := strconv.ParseUint(c.Param("video_id"), 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}
	author := c.GetString("username")

	var req PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "先写点什么吧")
		return
	}

	logCtx := logger.Log.WithField("author", author).WithField("video_id", videoID)
	comment, err := h.CommentService.PostVideoComment(videoID, author, req.Data)
	if err != nil {
		logCtx.WithError(err).Error("视频评论失败")
		sendServiceError(c, err)
		return
	}
	logCtx.WithField("comment_id", comment.ID).Info("视频评论成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "评论成功",
		"data":    dto.ToCommentResponse(comment),
	})
}

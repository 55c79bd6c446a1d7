package handler

import (
	"Lyra_Vid/internal/dto"
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"Lyra_Vid/pkg/storage"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	Upload(c *gin.Context)
	Watch(c *gin.Context)
	Home(c *gin.Context)
}

type videoHandler struct {
	VideoService      service.VideoService
	ProjectionService service.ProjectionService
	Store             storage.Store
}

func NewVideoHandler(videoService service.VideoService, projectionService service.ProjectionService, store storage.Store) VideoHandler {
	return &videoHandler{
		VideoService:      videoService,
		ProjectionService: projectionService,
		Store:             store,
	}
}

// 上传：1、收multipart视频文件 2、存储边界落盘拿文件引用 3、service层落库（标题唯一）
func (h *videoHandler) Upload(c *gin.Context) {
	author := c.GetString("username")

	fileHeader, err := c.FormFile("video")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "请选择一个视频文件")
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无法读取上传文件")
		return
	}
	defer src.Close()

	filename, err := h.Store.SaveUpload(author, fileHeader.Filename, src)
	if err != nil {
		logger.Log.WithError(err).WithField("username", author).Error("视频文件保存失败")
		sendErrorResponse(c, http.StatusInternalServerError, "系统错误，请稍后再试")
		return
	}

	// 标签用逗号分隔传在表单里
	var tags []string
	if raw := c.PostForm("tags"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	logCtx := logger.Log.WithField("username", author).WithField("title", c.PostForm("title"))

	video, err := h.VideoService.Upload(service.UploadParams{
		Author:      author,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Tags:        tags,
		Adult:       c.PostForm("adult") == "true",
		Filename:    filename,
	})
	if err != nil {
		logCtx.WithError(err).Error("视频上传失败")
		sendServiceError(c, err)
		return
	}

	logCtx.WithField("video_id", video.ID).Info("视频上传成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "视频上传成功",
		"data":    dto.ToVideoResponse(video),
	})
}

// 播放页：1、从URL取video_id 2、读播放页投影（投影内部会发播放事件）
func (h *videoHandler) Watch(c *gin.Context) {
	videoIDstr := c.Param("video_id")
	videoID, err := strconv.ParseUint(videoIDstr, 10, 64)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的视频ID")
		return
	}

	projection, err := h.ProjectionService.Watch(videoID)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("播放页投影失败")
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToWatchResponse(projection)})
}

// 首页：随机抽样至多100条视频，两次请求结果可以不同
func (h *videoHandler) Home(c *gin.Context) {
	videos, err := h.ProjectionService.Home()
	if err != nil {
		logger.Log.WithError(err).Error("首页投影失败")
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToVideoResponses(videos)})
}

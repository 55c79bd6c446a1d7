package handler

import (
	"Lyra_Vid/internal/dto"
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type ProfileHandler interface {
	Profile(c *gin.Context)
}

type profileHandler struct {
	ProjectionService service.ProjectionService
}

func NewProfileHandler(projectionService service.ProjectionService) ProfileHandler {
	return &profileHandler{ProjectionService: projectionService}
}

// 主页：1、从URL取handle 2、读主页投影，年龄按当前日期推算
func (h *profileHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	projection, err := h.ProjectionService.Profile(username, time.Now())
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("主页投影失败")
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.ToProfileResponse(projection)})
}

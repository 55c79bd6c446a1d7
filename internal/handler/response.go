package handler

import (
	"Lyra_Vid/internal/apperr"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// sendServiceError 按错误分类映射HTTP状态码。
// 校验/撞车/不存在的提示语可以直接给用户看；其它一律当存储故障，对外只给笼统提示
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		sendErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrDuplicateKey):
		sendErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		sendErrorResponse(c, http.StatusNotFound, err.Error())
	default:
		sendErrorResponse(c, http.StatusInternalServerError, "系统错误，请稍后再试")
	}
}

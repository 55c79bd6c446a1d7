package handler

import (
	"Lyra_Vid/internal/service"
	"Lyra_Vid/pkg/logger"
	"Lyra_Vid/pkg/storage"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	UpdateName(c *gin.Context)
	UpdateLocation(c *gin.Context)
	UpdateBio(c *gin.Context)
	UpdateAvatar(c *gin.Context)
}

type userHandler struct {
	UserService service.UserService
	Store       storage.Store
}

func NewUserHandler(userService service.UserService, store storage.Store) UserHandler {
	return &userHandler{UserService: userService, Store: store}
}

// RegisterRequest 注册请求，字段约束在绑定时先挡一道
type RegisterRequest struct {
	Firstname       string `json:"firstname" binding:"required"`
	Lastname        string `json:"lastname" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	Gender          string `json:"gender" binding:"required"`
	Country         string `json:"country" binding:"required"`
	Birthday        string `json:"birthday" binding:"required"` // YYYY-MM-DD
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// 注册：1、解析并校验请求 2、service层注册（建号+开辟存储目录）3、返回新账号
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("注册请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "生日格式应为YYYY-MM-DD")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理注册请求")

	user, err := h.UserService.Register(service.RegisterParams{
		Firstname:       req.Firstname,
		Lastname:        req.Lastname,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Gender:          req.Gender,
		Country:         req.Country,
		Birthday:        birthday,
	})
	if err != nil {
		logCtx.WithError(err).Error("注册失败")
		sendServiceError(c, err)
		return
	}

	logCtx.WithField("user_id", user.ID).Info("注册成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "注册成功",
		"data": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// 登录：1、解析请求 2、凭据校验 3、返回token
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("登录请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)

	token, err := h.UserService.Login(req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Error("登录失败")
		// 模糊的错误提示，更安全
		sendErrorResponse(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	logCtx.Info("登录成功")
	c.JSON(http.StatusOK, gin.H{
		"message": "登录成功",
		"data":    gin.H{"token": token},
	})
}

type UpdateNameRequest struct {
	Firstname string `json:"firstname" binding:"required"`
	Lastname  string `json:"lastname" binding:"required"`
}

func (h *userHandler) UpdateName(c *gin.Context) {
	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	username := c.GetString("username")
	if err := h.UserService.UpdateName(username, req.Firstname, req.Lastname); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "姓名更新成功"})
}

type UpdateLocationRequest struct {
	Country string `json:"country" binding:"required"`
	City    string `json:"city"`
	State   string `json:"state"`
}

func (h *userHandler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	username := c.GetString("username")
	if err := h.UserService.UpdateLocation(username, req.Country, req.City, req.State); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "所在地更新成功"})
}

type UpdateBioRequest struct {
	Bio string `json:"bio" binding:"required"`
}

func (h *userHandler) UpdateBio(c *gin.Context) {
	var req UpdateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	username := c.GetString("username")
	if err := h.UserService.UpdateBio(username, req.Bio); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "个人简介更新成功"})
}

// 换头像：1、收multipart文件 2、交给存储边界落盘拿文件名 3、按handle打补丁
func (h *userHandler) UpdateAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "请选择一张图片")
		return
	}
	username := c.GetString("username")

	src, err := fileHeader.Open()
	if err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无法读取上传文件")
		return
	}
	defer src.Close()

	filename, err := h.Store.SaveUpload(username, fileHeader.Filename, src)
	if err != nil {
		logger.Log.WithError(err).WithField("username", username).Error("头像保存失败")
		sendErrorResponse(c, http.StatusInternalServerError, "系统错误，请稍后再试")
		return
	}

	if err := h.UserService.UpdateAvatar(username, filename); err != nil {
		sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "头像更新成功"})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"Vista_Video/internal/middleware"
	"Vista_Video/internal/service"
	"Vista_Video/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	GetProfile(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService service.UserService
	tokenTTL    time.Duration
}

func NewUserHandler(userService service.UserService, tokenTTL time.Duration) UserHandler {
	return &userHandler{UserService: userService, tokenTTL: tokenTTL}
}

// 用处：接收http发来的全部注册信息，用户名+密码，JSON和表单都可以
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=150"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// 注册：1、请求解析为注册请求结构体 2、service层利用Username和Password进行注册 3、返回注册成功后的User
func (h *userHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Log.WithError(err).Error("请求参数解析失败")
		sendValidationError(c, toValidationError(err))
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户注册请求")

	user, err := h.UserService.Register(req.Username, req.Password)
	if err != nil {
		logCtx.WithError(err).Error("用户注册业务逻辑处理失败")
		if errors.Is(err, service.ErrUserExists) {
			sendErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "注册失败")
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "注册成功",
		"data": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// 登录：1、请求解析为登录结构体 2、Username和Password传给service层 3、成功则返回token，同时写入cookie给网页端用
func (h *userHandler) Login(c *gin.Context) {
	var login LoginRequest
	if err := c.ShouldBind(&login); err != nil {
		logger.Log.WithError(err).Error("登录请求参数解析失败")
		sendValidationError(c, toValidationError(err))
		return
	}

	logCtx := logger.Log.WithField("username", login.Username)
	logCtx.Info("开始处理用户登录请求")

	token, err := h.UserService.Login(login.Username, login.Password)
	if err != nil {
		logCtx.WithError(err).Error("用户登录业务逻辑处理失败")
		if errors.Is(err, service.ErrBadLogin) {
			// 模糊的错误提示，更安全
			sendErrorResponse(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		sendErrorResponse(c, http.StatusInternalServerError, "登录失败")
		return
	}

	logCtx.Info("用户登录成功")

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "登录成功",
		"data": gin.H{
			"token": token,
		},
	})
}

// 获取用户个人信息：从认证后的context获取userID和username
func (h *userHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "成功获取用户信息",
		"data": gin.H{
			"user_id":  userID,
			"username": middleware.CurrentUsername(c),
		},
	})
}

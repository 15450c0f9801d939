package router

import (
	"html/template"
	"net/http"
	"time"

	"Vista_Video/internal/handler"
	"Vista_Video/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	JWTSecret  string
	SessionTTL time.Duration
	// 为nil时只提供JSON
	Templates *template.Template
}

func SetupRouter(opts Options, userHandler handler.UserHandler, videoHandler handler.VideoHandler, voteHandler handler.VoteHandler) *gin.Engine {
	r := gin.Default()
	if opts.Templates != nil {
		r.SetHTMLTemplate(opts.Templates)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	userGroup := r.Group("/users")
	{
		userGroup.POST("/register", userHandler.Register)
		userGroup.POST("/login", userHandler.Login)
		userGroup.GET("/profile", middleware.AuthMiddleware(opts.JWTSecret), userHandler.GetProfile)
	}

	// 页面都挂会话中间件，播放量按会话去重
	site := r.Group("/")
	site.Use(middleware.SessionMiddleware(opts.SessionTTL))
	{
		site.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/videos/")
		})

		public := site.Group("/")
		public.Use(middleware.OptionalAuth(opts.JWTSecret))
		{
			public.GET("/videos/", videoHandler.ListVideos)
			public.GET("/videos/:video_id/", videoHandler.GetVideoByID)
			public.GET("/channel/:username/", videoHandler.ChannelVideos)
		}

		authorized := site.Group("/")
		authorized.Use(middleware.AuthMiddleware(opts.JWTSecret))
		{
			authorized.GET("/videos/upload/", videoHandler.UploadPage)
			authorized.POST("/videos/upload/", videoHandler.UploadVideo)
			authorized.POST("/videos/:video_id/delete/", videoHandler.DeleteVideo)
			authorized.POST("/videos/:video_id/vote/", voteHandler.Vote)
		}
	}

	return r
}

package main

import (
	"fmt"
	"log"

	"Vista_Video/internal/cdn"
	"Vista_Video/internal/config"
	"Vista_Video/internal/data"
	"Vista_Video/internal/handler"
	"Vista_Video/internal/repository"
	"Vista_Video/internal/router"
	"Vista_Video/internal/service"
	"Vista_Video/pkg/logger"
	"Vista_Video/pkg/rabbitmq"
	"Vista_Video/pkg/redis"
	"Vista_Video/web"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 加载配置(.env + VISTA_*环境变量)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	// 初始化logger
	logger.InitLogger(cfg.Log.Level, cfg.Log.File)

	// 初始化Redis
	redisClient, err := redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 这个mysql包是gorm的驱动，TranslateError让唯一键冲突统一翻译成gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	if err := data.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	cdnClient := cdn.NewClient(cdn.Config{
		PrivateKey:  cfg.CDN.PrivateKey,
		PublicKey:   cfg.CDN.PublicKey,
		URLEndpoint: cfg.CDN.URLEndpoint,
		UploadURL:   cfg.CDN.UploadURL,
		APIURL:      cfg.CDN.APIURL,
		Timeout:     cfg.CDN.Timeout,
		RateLimit:   cfg.CDN.RateLimit,
	})
	if cfg.CDN.PrivateKey == "" {
		logger.Log.Warn("未配置VISTA_CDN_PRIVATEKEY，上传和删除CDN文件都会失败")
	}

	// CDN清理：同步删除，或者投递到RabbitMQ交给consumer
	var cleaner service.FileCleaner
	if cfg.Server.AsyncCleanup {
		rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
		}
		defer rabbitMQConn.Close() // 确保程序退出时关闭连接
		if err := rabbitmq.DeclareQueues(rabbitMQConn); err != nil {
			logger.Log.Fatalf("声明队列失败: %v", err)
		}
		logger.Log.Info("RabbitMQ连接成功，CDN清理走消息队列")
		cleaner = service.NewQueuedCleaner(rabbitmq.NewPublisher(rabbitMQConn))
	} else {
		cleaner = service.NewCDNCleaner(cdnClient)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	voteRepo := repository.NewVoteRepository(db)
	viewRepo := repository.NewViewRepository(redisClient, cfg.Redis.SessionTTL)

	uow := data.NewUnitOfWork(db, videoRepo, voteRepo)

	userService := service.NewUserService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)
	videoService := service.NewVideoService(videoRepo, viewRepo, cdnClient, cleaner)
	voteService := service.NewVoteService(voteRepo, videoRepo, uow)

	userHandler := handler.NewUserHandler(userService, cfg.JWT.TTL)
	videoHandler := handler.NewVideoHandler(videoService, voteService, cfg.Upload.MaxBytes)
	voteHandler := handler.NewVoteHandler(voteService)

	templates, err := web.Templates()
	if err != nil {
		logger.Log.Fatalf("模板解析失败: %v", err)
	}

	r := router.SetupRouter(router.Options{
		JWTSecret:  cfg.JWT.Secret,
		SessionTTL: cfg.Redis.SessionTTL,
		Templates:  templates,
	}, userHandler, videoHandler, voteHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Log.Infof("服务器将在%s启动", addr)
	if err := r.Run(addr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"

	"news-backend/app/server/crons"
	"news-backend/app/server/database"
	"news-backend/app/server/handlers"
	"news-backend/app/server/inits"
	"news-backend/app/server/jwt"
	"news-backend/app/server/mailer"
	"news-backend/app/server/middlewares"
	"news-backend/app/server/storage"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化数据库连接
	db, err := inits.DB(cfg.System.DBConnectionString)
	if err != nil {
		l.Fatal("error initializing DB connection", zap.Error(err))
	}

	// 初始化 redis 连接
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Fatal("error initializing Redis connection", zap.Error(err))
	}

	// 初始化 JWT
	j, err := jwt.New(cfg.Security.SignatureSecretKey)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化对象存储
	s3, err := inits.Storage(cfg)
	if err != nil {
		l.Fatal("error initializing storage client", zap.Error(err))
	}

	// 准备依赖
	store := database.NewStore(db)
	mail := mailer.New(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUser,
		cfg.Mail.SMTPPass, cfg.Mail.FromEmail, cfg.Mail.PublicURL, l)
	files := storage.NewClient(s3, cfg.Storage.Bucket)

	// 启动过期 token 清理
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go crons.ClearTokens(sweepCtx, store, cfg.Security.TokenSweepInterval, l)

	// 准备 handler app
	handlerApp := handlers.NewApp(l, db, rdb, j, store, store, mail, files, cfg)

	// 准备 echo 服务
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定路由
	handlerApp.RegisterRoutes(e, middlewares.Auth(j, store, rdb, l))

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}

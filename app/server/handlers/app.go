package handlers

import (
	"context"
	"io"
	"time"

	"news-backend/app/server/config"
	"news-backend/app/server/jwt"
	"news-backend/app/server/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserStore 凭据存取：认证流程只通过这组方法接触用户表
type UserStore interface {
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByName(ctx context.Context, name string) (*models.User, error)
	UserByID(ctx context.Context, id uint) (*models.User, error)
	// Register 原子地创建用户 + 默认角色 + register-confirm token ，返回原始 token
	Register(ctx context.Context, name, email, passwordHash string, tokenExpire time.Time) (*models.User, string, error)
	SetPassword(ctx context.Context, userID uint, passwordHash string) error
	UpdateProfile(ctx context.Context, userID uint, name, image, biography string) error
	DeleteUser(ctx context.Context, userID uint) error
}

// TokenStore 一次性 token 的签发与消费
type TokenStore interface {
	IssueToken(ctx context.Context, userID uint, kind string, expire time.Time) (string, error)
	ConsumeToken(ctx context.Context, raw, kind string) (uint, error)
	// TokenForUser 不过滤过期：过期未清理的 token 仍然反映流程状态
	TokenForUser(ctx context.Context, userID uint) (*models.Token, error)
	DeleteTokenForUser(ctx context.Context, userID uint) error
}

// Mailer 邮件投递，失败时由调用方补偿回滚
type Mailer interface {
	Send(kind string, user *models.User, rawToken string) error
}

// FileStore 对象存储
type FileStore interface {
	Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}

type App struct {
	l      *zap.Logger    // 日志
	db     *gorm.DB       // 数据库，内容类接口直接查询
	rdb    *redis.Client  // Redis ，缓存已解析的调用方身份
	jwt    *jwt.JWT       // JWT ，用于无状态会话
	users  UserStore      // 凭据存取
	tokens TokenStore     // 一次性 token
	mail   Mailer         // 邮件投递
	files  FileStore      // 对象存储
	cfg    *config.Config // 配置
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, users UserStore, tokens TokenStore, mail Mailer, files FileStore, cfg *config.Config) *App {
	return &App{
		l:      l,
		db:     db,
		rdb:    rdb,
		jwt:    j,
		users:  users,
		tokens: tokens,
		mail:   mail,
		files:  files,
		cfg:    cfg,
	}
}

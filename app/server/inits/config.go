package inits

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"news-backend/app/server/config"
)

func Config() (*config.Config, error) {
	cfg := &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了， viper 好像处理这种基于环境变量的配置也不是很方便
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	// 密码策略属于安全配置，不设默认值，必须显式给出
	if minLen, exist := os.LookupEnv("PASSWORD_MIN_LENGTH"); !exist {
		return nil, fmt.Errorf("PASSWORD_MIN_LENGTH environment variable not set")
	} else if parsed, err := strconv.Atoi(minLen); err != nil || parsed < 1 {
		return nil, fmt.Errorf("invalid PASSWORD_MIN_LENGTH: %s", minLen)
	} else {
		cfg.Security.PasswordMinLength = parsed
	}

	if days, err := envInt("SESSION_EXPIRE_DAYS", 30); err != nil {
		return nil, err
	} else {
		cfg.Security.SessionExpireDays = days
	}

	if minutes, err := envInt("TOKEN_EXPIRE_MINUTES", 60); err != nil {
		return nil, err
	} else {
		cfg.Security.TokenExpire = time.Duration(minutes) * time.Minute
	}

	if minutes, err := envInt("TOKEN_SWEEP_MINUTES", 60); err != nil {
		return nil, err
	} else {
		cfg.Security.TokenSweepInterval = time.Duration(minutes) * time.Minute
	}

	// 邮件：注册确认和重设密码都依赖邮件投递，缺失视为配置错误
	for env, target := range map[string]*string{
		"SMTP_HOST":  &cfg.Mail.SMTPHost,
		"SMTP_USER":  &cfg.Mail.SMTPUser,
		"SMTP_PASS":  &cfg.Mail.SMTPPass,
		"FROM_EMAIL": &cfg.Mail.FromEmail,
		"PUBLIC_URL": &cfg.Mail.PublicURL,
	} {
		if v, exist := os.LookupEnv(env); !exist {
			return nil, fmt.Errorf("%s environment variable not set", env)
		} else {
			*target = v
		}
	}
	if port, err := envInt("SMTP_PORT", 587); err != nil {
		return nil, err
	} else {
		cfg.Mail.SMTPPort = port
	}

	// 对象存储
	for env, target := range map[string]*string{
		"S3_ENDPOINT":    &cfg.Storage.Endpoint,
		"S3_ACCESS_KEY":  &cfg.Storage.AccessKey,
		"S3_SECRET_KEY":  &cfg.Storage.SecretKey,
		"S3_BUCKET":      &cfg.Storage.Bucket,
		"S3_PUBLIC_BASE": &cfg.Storage.PublicBase,
	} {
		if v, exist := os.LookupEnv(env); !exist {
			return nil, fmt.Errorf("%s environment variable not set", env)
		} else {
			*target = v
		}
	}
	{
		ssl, exist := os.LookupEnv("S3_USE_SSL")
		cfg.Storage.UseSSL = exist && strings.HasPrefix(strings.ToLower(ssl), "t")
	}
	if folder, exist := os.LookupEnv("S3_UPLOAD_FOLDER"); !exist {
		cfg.Storage.UploadFolder = "uploads"
	} else {
		cfg.Storage.UploadFolder = folder
	}

	return cfg, nil
}

func envInt(name string, def int) (int, error) {
	v, exist := os.LookupEnv(name)
	if !exist {
		return def, nil
	}

	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 1 {
		return 0, fmt.Errorf("invalid %s: %s", name, v)
	}

	return parsed, nil
}

package config

import "time"

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Security struct {
		SignatureSecretKey string        // 签名密钥，用于签发会话 JWT ，更新会导致旧有会话失效
		PasswordMinLength  int           // 密码最小长度，安全相关，必须显式提供
		SessionExpireDays  int           // 会话有效天数
		TokenExpire        time.Duration // 一次性 token （确认注册 / 重设密码）的有效窗口
		TokenSweepInterval time.Duration // 过期 token 清理周期
	}
	Mail struct {
		SMTPHost  string
		SMTPPort  int
		SMTPUser  string
		SMTPPass  string
		FromEmail string
		PublicURL string // 对外站点地址，用于拼接确认 / 重设链接
	}
	Storage struct {
		Endpoint     string // S3 兼容对象存储（MinIO）端点
		AccessKey    string
		SecretKey    string
		Bucket       string
		UseSSL       bool
		PublicBase   string // 上传成功后返回的公开访问前缀
		UploadFolder string // 上传对象的公共目录前缀
	}
}

package models

import "time"

// Token 类型
const (
	TokenTypeRegisterConfirm = "register-confirm"
	TokenTypePasswordReset   = "password-reset"
)

// Token 是一次性流程凭据：只保存随机值的摘要，原始值仅在签发时返回一次
type Token struct {
	ID uint `gorm:"primarykey"`

	Token  string    `gorm:"column:token;uniqueIndex"` // 随机值的 sha256 摘要
	Expire time.Time `gorm:"column:expire"`            // 过期时间
	Type   string    `gorm:"column:type;size:32"`      // register-confirm / password-reset

	// 所属用户：一个用户同时最多持有一个在途 token
	UserID uint `gorm:"column:user_id;uniqueIndex"`
}

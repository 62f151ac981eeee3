package models

import "time"

type User struct {
	ID uint `gorm:"primarykey" json:"id"`

	// 基础信息
	Email            string    `gorm:"column:email;uniqueIndex" json:"email"`          // 邮箱，全局唯一
	Name             string    `gorm:"column:name;uniqueIndex" json:"name"`            // 用户名，全局唯一，作为展示名
	RegistrationDate time.Time `gorm:"column:registration_date" json:"registration_date"` // 注册时间，创建后不再更新

	// 登录认证相关
	Password string `gorm:"column:password" json:"-"` // 密码，使用 argon2id 储存，绝不保存明文

	// 个人资料
	Image     string `gorm:"column:image;size:500" json:"image"` // 头像地址
	Biography string `gorm:"column:biography;type:text" json:"biography"`

	// 角色（多对多）
	Roles []Role `gorm:"many2many:users_roles;" json:"roles,omitempty"`
}

package models

type Role struct {
	ID uint `gorm:"primarykey" json:"id"`

	Label string `gorm:"column:label;uniqueIndex" json:"label"` // 角色标识（admin / regular / moderator / editor）
	Name  string `gorm:"column:name;uniqueIndex" json:"name"`   // 展示名称
}

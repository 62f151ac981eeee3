package models

type Forum struct {
	ID uint `gorm:"primarykey" json:"id"`

	Label string `gorm:"column:label;uniqueIndex" json:"label"` // URL 标识
	Name  string `gorm:"column:name;uniqueIndex" json:"name"`   // 展示名称
}

package models

type Category struct {
	ID uint `gorm:"primarykey" json:"id"`

	Name     string `gorm:"column:name;uniqueIndex" json:"name"`   // 展示名称
	Label    string `gorm:"column:label;uniqueIndex" json:"label"` // URL 标识
	Position int    `gorm:"column:position" json:"position"`       // 导航排序
}

package models

import "time"

type Article struct {
	ID uint `gorm:"primarykey" json:"id"`

	Title   string `gorm:"column:title;uniqueIndex" json:"title"`
	Image   string `gorm:"column:image;size:500" json:"image"`
	Content string `gorm:"column:content;type:text" json:"content"`

	Date        time.Time  `gorm:"column:date" json:"date"`                 // 发布时间
	UpdatedDate *time.Time `gorm:"column:updated_date" json:"updated_date"` // 最后编辑时间，未编辑过为空

	Published bool `gorm:"column:published;default:false" json:"published"` // 未发布的文章不对外可见
	Views     int  `gorm:"column:views;default:0" json:"views"`

	CategoryID uint     `gorm:"column:category_id" json:"category_id"`
	Category   Category `json:"-"`
	UserID     uint     `gorm:"column:user_id" json:"-"` // 作者
	User       User     `json:"-"`
}

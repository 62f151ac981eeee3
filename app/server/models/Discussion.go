package models

import "time"

type Discussion struct {
	ID uint `gorm:"primarykey" json:"id"`

	Name         string    `gorm:"column:name" json:"name"`
	CreationDate time.Time `gorm:"column:creation_date" json:"creation_date"`

	ForumID uint  `gorm:"column:forum_id" json:"forum_id"`
	Forum   Forum `json:"-"`
	UserID  uint  `gorm:"column:user_id" json:"-"` // 发起人
	User    User  `json:"-"`
}

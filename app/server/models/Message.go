package models

import "time"

type Message struct {
	ID uint `gorm:"primarykey" json:"id"`

	Content     string     `gorm:"column:content;type:text" json:"content"`
	Date        time.Time  `gorm:"column:date" json:"date"`
	UpdatedDate *time.Time `gorm:"column:updated_date" json:"updated_date"`

	DiscussionID uint       `gorm:"column:discussion_id" json:"discussion_id"`
	Discussion   Discussion `json:"-"`
	UserID       uint       `gorm:"column:user_id" json:"-"`
	User         User       `json:"-"`
}

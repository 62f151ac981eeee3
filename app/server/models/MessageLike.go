package models

// 投票方向
const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

// MessageLike 记录用户对留言的投票，一人一票
type MessageLike struct {
	UserID    uint   `gorm:"column:user_id;primaryKey" json:"user_id"`
	MessageID uint   `gorm:"column:message_id;primaryKey" json:"message_id"`
	Like      string `gorm:"column:like;size:16" json:"like"` // like / dislike
}

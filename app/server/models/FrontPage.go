package models

// FrontPage 描述首页的文章编排
type FrontPage struct {
	ID uint `gorm:"primarykey" json:"id"`

	ArticleID uint    `gorm:"column:article_id" json:"article_id"`
	Article   Article `json:"-"`
	Position  int     `gorm:"column:position;default:0" json:"position"` // 首页排序
}

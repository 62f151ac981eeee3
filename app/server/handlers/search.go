package handlers

import (
	"net/http"

	"news-backend/app/server/constants"
	"news-backend/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type searchArticleItem struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

func (a *App) SearchArticles(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "There is no query parameter")
	}

	pattern := "%" + query + "%"

	var articles []searchArticleItem
	if err := a.db.WithContext(c.Request().Context()).Model(&models.Article{}).
		Select("articles.id", "articles.title", "articles.image", "categories.label AS category").
		Joins("JOIN categories ON categories.id = articles.category_id").
		Where("(articles.title ILIKE ? OR articles.content ILIKE ?) AND articles.published = ?",
			pattern, pattern, true).
		Offset(a.parsePage(c)).Limit(constants.PageLimit).
		Scan(&articles).Error; err != nil {
		a.l.Error("failed to search articles", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, articles)
}

func (a *App) SearchArticlesMeta(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "There is no query parameter")
	}

	pattern := "%" + query + "%"

	var totalArticles int64
	if err := a.db.WithContext(c.Request().Context()).Model(&models.Article{}).
		Where("(title ILIKE ? OR content ILIKE ?) AND published = ?", pattern, pattern, true).
		Count(&totalArticles).Error; err != nil {
		a.l.Error("failed to count search results", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"totalArticles": totalArticles,
		"nbPages":       a.calcNbPages(totalArticles),
	})
}

package handlers

import (
	"net/http"

	"news-backend/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HomeContent 首页内容：按编排顺序返回已发布的头条文章
func (a *App) HomeContent(c echo.Context) error {
	var entries []models.FrontPage
	if err := a.db.WithContext(c.Request().Context()).
		Preload("Article").Order("position ASC").Find(&entries).Error; err != nil {
		a.l.Error("failed to get front page", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	articles := []articleListItem{}
	for _, entry := range entries {
		if !entry.Article.Published {
			continue
		}
		articles = append(articles, articleListItem{
			ID:    entry.Article.ID,
			Title: entry.Article.Title,
			Image: entry.Article.Image,
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"articles": articles})
}

package handlers

import (
	"net/http"

	"news-backend/app/server/models"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) CategoryAll(c echo.Context) error {
	var categories []models.Category
	if err := a.db.WithContext(c.Request().Context()).
		Order("position ASC").Find(&categories).Error; err != nil {
		a.l.Error("failed to list categories", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, categories)
}

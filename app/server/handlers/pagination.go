package handlers

import (
	"strconv"

	"news-backend/app/server/constants"

	"github.com/labstack/echo/v4"
)

// parsePage 解析一基的 page 查询参数，返回 OFFSET 值
func (a *App) parsePage(c echo.Context) int {
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || page < 1 {
		page = 1
	}

	return (page - 1) * constants.PageLimit
}

func (a *App) calcNbPages(count int64) int64 {
	nbPages := count / constants.PageLimit
	if count%constants.PageLimit != 0 {
		nbPages++
	}

	return nbPages
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/middlewares"
	"news-backend/app/server/models"
	"news-backend/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type articleAuthor struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type articleResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Image       string        `json:"image"`
	Content     string        `json:"content"`
	Date        time.Time     `json:"date"`
	UpdatedDate *time.Time    `json:"updated_date"`
	Author      articleAuthor `json:"author"`
}

type articleListItem struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

func (a *App) ArticleGet(c echo.Context) error {
	rctx := c.Request().Context()

	// 只有已发布的文章对外可见
	var article models.Article
	if err := a.db.WithContext(rctx).Preload("User").
		First(&article, "id = ? AND published = ?", c.Param("id"), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to get article", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, &articleResponse{
		ID:          article.ID,
		Title:       article.Title,
		Image:       article.Image,
		Content:     article.Content,
		Date:        article.Date,
		UpdatedDate: article.UpdatedDate,
		Author: articleAuthor{
			ID:    article.User.ID,
			Name:  article.User.Name,
			Image: article.User.Image,
		},
	})
}

func (a *App) ArticlesByCategory(c echo.Context) error {
	rctx := c.Request().Context()

	category, err := a.categoryByLabel(c)
	if err != nil {
		return err
	}

	var articles []articleListItem
	if err := a.db.WithContext(rctx).Model(&models.Article{}).
		Select("id", "title", "image").
		Where("category_id = ? AND published = ?", category.ID, true).
		Order("date DESC").
		Offset(a.parsePage(c)).Limit(constants.PageLimit).
		Find(&articles).Error; err != nil {
		a.l.Error("failed to list articles", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, articles)
}

func (a *App) ArticlesByCategoryMeta(c echo.Context) error {
	rctx := c.Request().Context()

	category, err := a.categoryByLabel(c)
	if err != nil {
		return err
	}

	var totalArticles int64
	if err := a.db.WithContext(rctx).Model(&models.Article{}).
		Where("category_id = ? AND published = ?", category.ID, true).
		Count(&totalArticles).Error; err != nil {
		a.l.Error("failed to count articles", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"categoryName":  category.Name,
		"totalArticles": totalArticles,
		"nbPages":       a.calcNbPages(totalArticles),
	})
}

func (a *App) ArticleViewed(c echo.Context) error {
	rctx := c.Request().Context()

	res := a.db.WithContext(rctx).Model(&models.Article{}).
		Where("id = ?", c.Param("id")).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		a.l.Error("failed to increment views", zap.Error(res.Error))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}
	if res.RowsAffected == 0 {
		return a.er(c, http.StatusNotFound, ErrTypeNotFound)
	}

	return c.JSON(http.StatusOK, map[string]any{})
}

type articlePostRequest struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	Published bool   `json:"published"`
}

// ArticlePost 发表或更新文章，限 editor / admin
func (a *App) ArticlePost(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req articlePostRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.Title == "" || req.Content == "" || req.Category == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "Title, content and category are required")
	}

	var category models.Category
	if err := a.db.WithContext(rctx).First(&category, "label = ?", req.Category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find category", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 有 id 为更新，否则新建
	if req.ID != 0 {
		var article models.Article
		if err := a.db.WithContext(rctx).First(&article, "id = ?", req.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return a.er(c, http.StatusNotFound, ErrTypeNotFound)
			}
			a.l.Error("failed to find article", zap.Uint("id", req.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}

		article.Title = req.Title
		article.Image = req.Image
		article.Content = req.Content
		article.CategoryID = category.ID
		article.Published = req.Published
		article.UpdatedDate = utils.P(time.Now())

		if err := a.db.WithContext(rctx).Save(&article).Error; err != nil {
			a.l.Error("failed to update article", zap.Uint("id", article.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}

		return c.JSON(http.StatusOK, &article)
	}

	article := models.Article{
		Title:      req.Title,
		Image:      req.Image,
		Content:    req.Content,
		Date:       time.Now(),
		Published:  req.Published,
		CategoryID: category.ID,
		UserID:     middlewares.UserFrom(c).ID,
	}
	if err := a.db.WithContext(rctx).Create(&article).Error; err != nil {
		a.l.Error("failed to create article", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusCreated, &article)
}

// categoryByLabel 解析 category 查询参数，错误时已写出响应
func (a *App) categoryByLabel(c echo.Context) (*models.Category, error) {
	label := c.QueryParam("category")
	if label == "" {
		return nil, a.erMsg(c, http.StatusBadRequest, ErrTypeValidation, "There is no category parameter")
	}

	var category models.Category
	if err := a.db.WithContext(c.Request().Context()).First(&category, "label = ?", label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, a.er(c, http.StatusNotFound, ErrTypeNotFound)
		}
		a.l.Error("failed to find category", zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return &category, nil
}

package handlers

import (
	"news-backend/app/server/constants"
	"news-backend/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes 绑定全部路由， protect 为会话解析中间件
func (a *App) RegisterRoutes(e *echo.Echo, protect echo.MiddlewareFunc) {
	v1 := e.Group("/v1/api")

	v1.GET("/status", a.Status)

	// 认证，全部公开：身份由流程本身的凭据证明
	auth := v1.Group("/auth")
	auth.POST("/register", a.AuthRegister)
	auth.PUT("/register/confirm/:token", a.AuthRegisterConfirm)
	auth.POST("/login", a.AuthLogin)
	auth.GET("/logout", a.AuthLogout)
	auth.POST("/password/forgot", a.AuthPasswordForgot)
	auth.PUT("/password/reset/:token", a.AuthPasswordReset)
	auth.GET("/authorized", a.AuthAuthorized, protect)

	// 内容浏览公开，发表需要对应角色
	v1.GET("/article/:id", a.ArticleGet)
	v1.GET("/article/by-category", a.ArticlesByCategory)
	v1.GET("/article/by-category/meta", a.ArticlesByCategoryMeta)
	v1.PUT("/article/:id/viewed", a.ArticleViewed)
	v1.POST("/article", a.ArticlePost, protect,
		middlewares.Role(constants.RoleEditor, constants.RoleAdmin))

	v1.GET("/category/all", a.CategoryAll)
	v1.GET("/home/content", a.HomeContent)

	v1.GET("/search/articles", a.SearchArticles)
	v1.GET("/search/articles/meta", a.SearchArticlesMeta)

	forum := v1.Group("/forum")
	forum.GET("/list", a.ForumList)
	forum.GET("/:label/discussions", a.ForumDiscussions)
	forum.POST("/discussion", a.DiscussionCreate, protect)
	forum.GET("/discussion/:id/messages", a.DiscussionMessages)
	forum.POST("/discussion/:id/message", a.MessagePost, protect)
	forum.PUT("/message/:id/vote", a.MessageVote, protect)

	user := v1.Group("/user", protect)
	user.GET("", a.UserGet)
	user.PUT("", a.UserUpdate)
	user.PUT("/password", a.UserPasswordUpdate)
	user.DELETE("", a.UserDelete)

	v1.POST("/upload", a.Upload, protect)
	v1.DELETE("/file", a.FileDelete, protect,
		middlewares.Role(constants.RoleEditor, constants.RoleAdmin))
}

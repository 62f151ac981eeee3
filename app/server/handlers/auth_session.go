package handlers

import (
	"fmt"
	"net/http"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/jwt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// issueSession 签出会话 JWT 并写入 cookie
// cookie 面向跨源前端，SameSite=None 要求同时带 Secure
func (a *App) issueSession(c echo.Context, userID uint) (string, error) {
	expires := time.Now().Add(time.Duration(a.cfg.Security.SessionExpireDays) * 24 * time.Hour)

	token, err := a.jwt.SignToken(&jwt.User{
		ID:      userID,
		Expires: expires.Unix(),
	})
	if err != nil {
		return "", err
	}

	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})

	return token, nil
}

// clearSessionCookie 注销：用短命占位值覆盖 cookie ，服务端无会话需要清理
func (a *App) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    constants.SessionCookieClearValue,
		Path:     "/",
		Expires:  time.Now().Add(constants.SessionCookieClearExpire),
		SameSite: http.SameSiteNoneMode,
		Secure:   true,
	})
}

// invalidateUserCache 用户资料或角色变更后清理身份缓存
func (a *App) invalidateUserCache(c echo.Context, userID uint) {
	cacheKey := fmt.Sprintf(constants.CacheKeyUserInfo, userID)
	if err := a.rdb.Del(c.Request().Context(), cacheKey).Err(); err != nil {
		a.l.Error("failed to invalidate user cache", zap.Uint("id", userID), zap.Error(err))
	}
}

package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/jwt"
	"news-backend/app/server/models"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// AuthUser 是通过会话凭据解析出的调用方身份，挂在请求上下文中
type AuthUser struct {
	ID               uint      `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	Image            string    `json:"image"`
	RegistrationDate time.Time `json:"registration_date"`
	Roles            []string  `json:"roles"`
}

// UserStore 按 id 取用户（含角色）
type UserStore interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

const contextKeyUser = "user"

// UserFrom 从请求上下文取出已解析的调用方，未经过 Auth 中间件时为 nil
func UserFrom(c echo.Context) *AuthUser {
	user, _ := c.Get(contextKeyUser).(*AuthUser)
	return user
}

// HasRole 判断调用方是否持有给定角色之一
func (u *AuthUser) HasRole(labels ...string) bool {
	for _, label := range labels {
		for _, role := range u.Roles {
			if role == label {
				return true
			}
		}
	}

	return false
}

// Auth 解析会话 cookie 并将调用方身份写入上下文，失败一律 401
// 身份与授权错误对外保持同一说法，不暴露具体失败原因
func Auth(j *jwt.JWT, users UserStore, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// 提取 cookie
			cookie, err := c.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return unauthorized(c)
			}

			// 验证签名与有效期
			jwtUser, err := j.ParseUser(cookie.Value)
			if err != nil {
				return unauthorized(c)
			}

			rctx := c.Request().Context()

			var authUser AuthUser

			// 查询缓存
			cacheKey := fmt.Sprintf(constants.CacheKeyUserInfo, jwtUser.ID)
			if cacheBytes, err := rdb.Get(rctx, cacheKey).Bytes(); err != nil {
				if !errors.Is(err, redis.Nil) {
					l.Error("failed to query cache for user info", zap.Uint("id", jwtUser.ID), zap.Error(err))
				}
			} else if err = json.Unmarshal(cacheBytes, &authUser); err != nil {
				l.Error("failed to unmarshal user info", zap.Uint("id", jwtUser.ID), zap.Error(err))
				// 可能是无效的缓存，清理掉
				rdb.Del(rctx, cacheKey)
			} else {
				// 成功拉取到并格式化
				c.Set(contextKeyUser, &authUser)
				return next(c)
			}

			// 查询数据库：token 有效但用户已不存在同样视为未认证
			user, err := users.UserByID(rctx, jwtUser.ID)
			if err != nil {
				return unauthorized(c)
			}

			authUser = AuthUser{
				ID:               user.ID,
				Email:            user.Email,
				Name:             user.Name,
				Image:            user.Image,
				RegistrationDate: user.RegistrationDate,
				Roles:            roleLabels(user.Roles),
			}

			// 加入缓存，方便下一次查询
			if cacheBytes, err := json.Marshal(&authUser); err != nil {
				l.Error("failed to marshal user info", zap.Uint("id", user.ID), zap.Error(err))
			} else {
				rdb.Set(rctx, cacheKey, cacheBytes, constants.CacheExpireUserInfo)
			}

			c.Set(contextKeyUser, &authUser)
			return next(c)
		}
	}
}

// Role 要求调用方至少持有给定角色之一，需先经过 Auth
func Role(labels ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := UserFrom(c)
			if user == nil {
				return unauthorized(c)
			}

			if !user.HasRole(labels...) {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": http.StatusText(http.StatusForbidden),
					"type":  "FORBIDDEN",
				})
			}

			return next(c)
		}
	}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error": http.StatusText(http.StatusUnauthorized),
		"type":  "UNAUTHORIZED",
	})
}

func roleLabels(roles []models.Role) []string {
	labels := make([]string, 0, len(roles))
	for _, role := range roles {
		labels = append(labels, role.Label)
	}

	return labels
}

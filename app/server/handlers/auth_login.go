package handlers

import (
	"errors"
	"net/http"
	"net/mail"

	"news-backend/app/server/database"
	"news-backend/app/server/middlewares"
	"news-backend/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type authLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req authLoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeInvalidEmail, "Please add a valid email")
	}
	if len(req.Password) < a.cfg.Security.PasswordMinLength {
		return a.erMsg(c, http.StatusBadRequest, ErrTypePasswordMinLength, "The password is too short")
	}

	// 查询用户：不区分「邮箱不存在」和「密码不对」，对外是同一个错误
	user, err := a.users.UserByEmail(rctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return a.er(c, http.StatusUnauthorized, ErrTypeInvalidCredentials)
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 提取密码 hash 并进行校验
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	} else if !match {
		// 密码不一致
		return a.er(c, http.StatusUnauthorized, ErrTypeInvalidCredentials)
	}

	// 凭据正确但注册尚未确认的账号不能登录
	// 确认 token 已过期、账号还没被清理任务删除的窗口期内同样算未确认
	if token, err := a.tokens.TokenForUser(rctx, user.ID); err == nil &&
		token.Type == models.TokenTypeRegisterConfirm {
		return a.er(c, http.StatusUnauthorized, ErrTypeUnconfirmedAccount)
	} else if err != nil && !errors.Is(err, database.ErrNotFound) {
		a.l.Error("failed to check token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 签出会话
	token, err := a.issueSession(c, user.ID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// AuthLogout 纯客户端注销：覆盖 cookie ，已签发的 JWT 到期自然失效
func (a *App) AuthLogout(c echo.Context) error {
	a.clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]any{})
}

// AuthAuthorized 会话有效性检查，身份由 Auth 中间件解析
func (a *App) AuthAuthorized(c echo.Context) error {
	return c.JSON(http.StatusOK, middlewares.UserFrom(c))
}

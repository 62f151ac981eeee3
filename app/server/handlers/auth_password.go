package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"time"

	"news-backend/app/server/database"
	"news-backend/app/server/models"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type authForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (a *App) AuthPasswordForgot(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req authForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeInvalidEmail, "Please add a valid email")
	}

	user, err := a.users.UserByEmail(rctx, req.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return a.er(c, http.StatusBadRequest, ErrTypeInvalidEmail)
		}
		a.l.Error("failed to find user", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 在途 token 检查：未确认的账号不能走找回流程（确认 token 过期也一样），
	// 已有找回流程的不能再开第二个；过期的找回 token 残留由 IssueToken 清掉后重新签发
	if token, err := a.tokens.TokenForUser(rctx, user.ID); err == nil {
		if token.Type == models.TokenTypeRegisterConfirm {
			return a.er(c, http.StatusUnauthorized, ErrTypeUnconfirmedAccount)
		}
		if token.Expire.After(time.Now()) {
			return a.er(c, http.StatusConflict, ErrTypeRecoveryInProgress)
		}
	} else if !errors.Is(err, database.ErrNotFound) {
		a.l.Error("failed to check token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	rawToken, err := a.tokens.IssueToken(rctx, user.ID, models.TokenTypePasswordReset,
		time.Now().Add(a.cfg.Security.TokenExpire))
	if err != nil {
		if errors.Is(err, database.ErrTokenConflict) {
			// 上面的检查和签发之间有并发窗口，唯一索引兜底
			return a.er(c, http.StatusConflict, ErrTypeRecoveryInProgress)
		}
		a.l.Error("failed to issue reset token", zap.Uint("userID", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 投递失败则撤回刚签发的 token ，流程状态回到签发前
	if err := a.mail.Send(models.TokenTypePasswordReset, user, rawToken); err != nil {
		a.l.Error("failed to send reset email", zap.Uint("userID", user.ID), zap.Error(err))

		if err := a.tokens.DeleteTokenForUser(rctx, user.ID); err != nil {
			a.l.Error("failed to roll back token after mail failure", zap.Uint("userID", user.ID), zap.Error(err))
		}

		return a.er(c, http.StatusInternalServerError, ErrTypeNotificationFailure)
	}

	return c.JSON(http.StatusOK, map[string]any{})
}

type authResetPasswordRequest struct {
	Password string `json:"password"`
}

func (a *App) AuthPasswordReset(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req authResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	// 新密码先过策略，token 消费是一次性的，校验失败不能把它烧掉
	if len(req.Password) < a.cfg.Security.PasswordMinLength {
		return a.erMsg(c, http.StatusBadRequest, ErrTypePasswordMinLength, "The password is too short")
	}

	userID, err := a.tokens.ConsumeToken(rctx, c.Param("token"), models.TokenTypePasswordReset)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return a.er(c, http.StatusBadRequest, ErrTypeInvalidToken)
		}
		a.l.Error("failed to consume reset token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	if err := a.users.SetPassword(rctx, userID, passwordHash); err != nil {
		a.l.Error("failed to set password", zap.Uint("userID", userID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	a.invalidateUserCache(c, userID)

	// 重设成功直接签出会话
	token, err := a.issueSession(c, userID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

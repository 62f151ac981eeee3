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

type authRegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeatedPassword"`
}

func (a *App) AuthRegister(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req authRegisterRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	// 先完成全部校验，确认通过前不产生任何写入
	if req.Name == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeNoName, "Please add a name")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeInvalidEmail, "Please add a valid email")
	}
	if len(req.Password) < a.cfg.Security.PasswordMinLength {
		return a.erMsg(c, http.StatusBadRequest, ErrTypePasswordMinLength, "The password is too short")
	}
	if req.RepeatedPassword != "" && req.RepeatedPassword != req.Password {
		return a.erMsg(c, http.StatusBadRequest, ErrTypePasswordNoMatch, "The repeated password doesn't match the password")
	}

	// 唯一性预检查，给出友好的错误；并发窗口由唯一索引兜底
	if _, err := a.users.UserByName(rctx, req.Name); err == nil {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeNameInUse, "The username is already in use")
	} else if !errors.Is(err, database.ErrNotFound) {
		a.l.Error("failed to check name uniqueness", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}
	if _, err := a.users.UserByEmail(rctx, req.Email); err == nil {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeEmailInUse, "The email address is already in use")
	} else if !errors.Is(err, database.ErrNotFound) {
		a.l.Error("failed to check email uniqueness", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 处理密码
	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 用户、默认角色和确认 token 在一个事务里落库
	user, rawToken, err := a.users.Register(rctx, req.Name, req.Email, passwordHash,
		time.Now().Add(a.cfg.Security.TokenExpire))
	if err != nil {
		a.l.Error("failed to register user", zap.String("email", req.Email), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	// 投递确认邮件；失败则补偿删除刚创建的账号，不允许留下无法触达的半成品
	if err := a.mail.Send(models.TokenTypeRegisterConfirm, user, rawToken); err != nil {
		a.l.Error("failed to send confirmation email", zap.Uint("userID", user.ID), zap.Error(err))

		if err := a.users.DeleteUser(rctx, user.ID); err != nil {
			a.l.Error("failed to roll back user after mail failure", zap.Uint("userID", user.ID), zap.Error(err))
		}

		return a.er(c, http.StatusInternalServerError, ErrTypeNotificationFailure)
	}

	return c.JSON(http.StatusCreated, map[string]any{})
}

// AuthRegisterConfirm 消费确认 token ；成功即视为登录，直接签出会话
func (a *App) AuthRegisterConfirm(c echo.Context) error {
	rctx := c.Request().Context()

	// token 只能消费一次，第二次兑换（包括并发的）看到的是 ErrNotFound
	userID, err := a.tokens.ConsumeToken(rctx, c.Param("token"), models.TokenTypeRegisterConfirm)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return a.er(c, http.StatusBadRequest, ErrTypeInvalidToken)
		}
		a.l.Error("failed to consume confirm token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	token, err := a.issueSession(c, userID)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

package handlers

import (
	"errors"
	"net/http"

	"news-backend/app/server/database"
	"news-backend/app/server/middlewares"

	"github.com/alexedwards/argon2id"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserGet 当前用户的资料与角色
func (a *App) UserGet(c echo.Context) error {
	return c.JSON(http.StatusOK, middlewares.UserFrom(c))
}

type userUpdateRequest struct {
	Name      string `json:"name"`
	Image     string `json:"image"`
	Biography string `json:"biography"`
}

func (a *App) UserUpdate(c echo.Context) error {
	caller := middlewares.UserFrom(c)
	rctx := c.Request().Context()

	// 绑定请求体
	var req userUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.Name == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeNoName, "Please add a name")
	}

	// 改名需要保证唯一
	if req.Name != caller.Name {
		if _, err := a.users.UserByName(rctx, req.Name); err == nil {
			return a.erMsg(c, http.StatusBadRequest, ErrTypeNameInUse, "The username is already in use")
		} else if !errors.Is(err, database.ErrNotFound) {
			a.l.Error("failed to check name uniqueness", zap.Error(err))
			return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
		}
	}

	if err := a.users.UpdateProfile(rctx, caller.ID, req.Name, req.Image, req.Biography); err != nil {
		a.l.Error("failed to update profile", zap.Uint("userID", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	a.invalidateUserCache(c, caller.ID)

	return c.JSON(http.StatusOK, map[string]string{
		"name":      req.Name,
		"image":     req.Image,
		"biography": req.Biography,
	})
}

type userPasswordUpdateRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

func (a *App) UserPasswordUpdate(c echo.Context) error {
	caller := middlewares.UserFrom(c)
	rctx := c.Request().Context()

	// 绑定请求体
	var req userPasswordUpdateRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if len(req.NewPassword) < a.cfg.Security.PasswordMinLength {
		return a.erMsg(c, http.StatusBadRequest, ErrTypePasswordMinLength, "The password is too short")
	}

	// 校验旧密码
	user, err := a.users.UserByID(rctx, caller.ID)
	if err != nil {
		a.l.Error("failed to find user", zap.Uint("userID", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}
	if match, _, err := argon2id.CheckHash(req.Password, user.Password); err != nil {
		a.l.Error("failed to check password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	} else if !match {
		return a.er(c, http.StatusUnauthorized, ErrTypeInvalidCredentials)
	}

	// SetPassword 总是收到新的 hash ，明文不会落库
	passwordHash, err := argon2id.CreateHash(req.NewPassword, argon2id.DefaultParams)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	if err := a.users.SetPassword(rctx, caller.ID, passwordHash); err != nil {
		a.l.Error("failed to set password", zap.Uint("userID", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	a.invalidateUserCache(c, caller.ID)

	return c.JSON(http.StatusOK, map[string]any{})
}

// UserDelete 删除当前账号：内容让渡给哨兵账号，随后清理会话 cookie
func (a *App) UserDelete(c echo.Context) error {
	caller := middlewares.UserFrom(c)

	if err := a.users.DeleteUser(c.Request().Context(), caller.ID); err != nil {
		a.l.Error("failed to delete user", zap.Uint("userID", caller.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError, ErrTypeInternal)
	}

	a.invalidateUserCache(c, caller.ID)
	a.clearSessionCookie(c)

	return c.JSON(http.StatusOK, map[string]any{})
}

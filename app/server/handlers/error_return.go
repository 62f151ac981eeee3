package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 错误代码：客户端据此分支，HTTP 状态由 handler 给出
const (
	ErrTypeValidation          = "VALIDATION"
	ErrTypeNoName              = "NO_NAME"
	ErrTypeNameInUse           = "NAME_IN_USE"
	ErrTypeInvalidEmail        = "INVALID_EMAIL"
	ErrTypeEmailInUse          = "EMAIL_IN_USE"
	ErrTypePasswordMinLength   = "PASSWORD_MIN_LENGTH"
	ErrTypePasswordNoMatch     = "REPEATED_PASSWORD_NO_MATCH"
	ErrTypeInvalidToken        = "INVALID_TOKEN"
	ErrTypeInvalidCredentials  = "INVALID_CREDENTIALS"
	ErrTypeUnconfirmedAccount  = "UNCONFIRMED_ACCOUNT"
	ErrTypeRecoveryInProgress  = "RECOVERY_IN_PROGRESS"
	ErrTypeNotificationFailure = "NOTIFICATION_FAILURE"
	ErrTypeUnauthorized        = "UNAUTHORIZED"
	ErrTypeForbidden           = "FORBIDDEN"
	ErrTypeNotFound            = "NOT_FOUND"
	ErrTypeUploadFailed        = "UPLOAD_FAILED"
	ErrTypeDeletionFailed      = "DELETION_FAILED"
	ErrTypeInternal            = "INTERNAL"
)

type errorMessage struct {
	Error string `json:"error"`
	Type  string `json:"type,omitempty"`
}

// er 统一的错误返回：不向客户端泄露存储层细节
func (a *App) er(c echo.Context, statusCode int, errType string) error {
	return c.JSON(statusCode, &errorMessage{
		Error: http.StatusText(statusCode),
		Type:  errType,
	})
}

// erMsg 带自定义提示的错误返回，用于校验类错误（只报第一个失败的字段）
func (a *App) erMsg(c echo.Context, statusCode int, errType, message string) error {
	return c.JSON(statusCode, &errorMessage{
		Error: message,
		Type:  errType,
	})
}

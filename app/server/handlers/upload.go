package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/middlewares"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Upload 上传文件到对象存储，返回公开访问地址
func (a *App) Upload(c echo.Context) error {
	caller := middlewares.UserFrom(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return a.er(c, http.StatusBadRequest, ErrTypeUploadFailed)
	}
	if fileHeader.Size > constants.UploadMaxBytes {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeUploadFailed, "File size limited to 10 MB")
	}

	file, err := fileHeader.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeUploadFailed)
	}
	defer file.Close()

	// 对象键： <folder>/<userID>/<userName>/<name>.<ext>
	contentType := fileHeader.Header.Get("Content-Type")
	name := c.FormValue("fileName")
	if name == "" {
		name = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	ext := ""
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		ext = "." + parts[1]
	}
	key := fmt.Sprintf("%s/%d/%s/%s%s", a.cfg.Storage.UploadFolder, caller.ID, caller.Name, name, ext)

	if err := a.files.Upload(c.Request().Context(), key, contentType, file, fileHeader.Size); err != nil {
		a.l.Error("failed to upload file", zap.String("key", key), zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeUploadFailed)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"file": a.cfg.Storage.PublicBase + "/" + key,
	})
}

type fileDeleteRequest struct {
	FileName string `json:"fileName"`
}

func (a *App) FileDelete(c echo.Context) error {
	// 绑定请求体
	var req fileDeleteRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeValidation)
	}

	if req.FileName == "" {
		return a.erMsg(c, http.StatusBadRequest, ErrTypeDeletionFailed, "There is no fileName parameter")
	}

	if err := a.files.Delete(c.Request().Context(), req.FileName); err != nil {
		a.l.Error("failed to delete file", zap.String("key", req.FileName), zap.Error(err))
		return a.er(c, http.StatusBadRequest, ErrTypeDeletionFailed)
	}

	return c.JSON(http.StatusOK, map[string]any{})
}

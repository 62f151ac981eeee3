package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"news-backend/app/server/config"
	"news-backend/app/server/constants"
	"news-backend/app/server/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	app    *App
	users  *fakeUserStore
	tokens *fakeTokenStore
	mail   *fakeMailer
	files  *fakeFileStore
	jwt    *jwt.JWT
	rdb    *redis.Client
	cfg    *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	j, err := jwt.New("test-signature-secret")
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Security.PasswordMinLength = 12
	cfg.Security.SessionExpireDays = 1
	cfg.Security.TokenExpire = time.Hour
	cfg.Storage.UploadFolder = "uploads"
	cfg.Storage.PublicBase = "https://img.example.com/bucket"

	tokens := newFakeTokenStore()
	users := newFakeUserStore(tokens)
	mail := &fakeMailer{}
	files := &fakeFileStore{}

	return &testApp{
		app:    NewApp(zap.NewNop(), nil, rdb, j, users, tokens, mail, files, cfg),
		users:  users,
		tokens: tokens,
		mail:   mail,
		files:  files,
		jwt:    j,
		rdb:    rdb,
		cfg:    cfg,
	}
}

// doJSON 构造一次 JSON 请求，返回响应记录器和上下文
func doJSON(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func errType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, rec)
	errCode, _ := body["type"].(string)

	return errCode
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	res := &http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == constants.SessionCookieName {
			return cookie
		}
	}

	return nil
}

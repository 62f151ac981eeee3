package middlewares

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/jwt"
	"news-backend/app/server/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUserStore struct {
	users map[uint]*models.User
	calls int
}

func (s *stubUserStore) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.calls++
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("user %d not found", id)
}

type authHarness struct {
	mw    echo.MiddlewareFunc
	jwt   *jwt.JWT
	users *stubUserStore
	mr    *miniredis.Miniredis
}

func newAuthHarness(t *testing.T) *authHarness {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	j, err := jwt.New("test-signature-secret")
	require.NoError(t, err)

	users := &stubUserStore{users: map[uint]*models.User{
		1: {
			ID:    1,
			Email: "alice@example.com",
			Name:  "alice",
			Roles: []models.Role{{ID: 2, Label: constants.RoleRegular, Name: "Regular"}},
		},
	}}

	return &authHarness{
		mw:    Auth(j, users, rdb, zap.NewNop()),
		jwt:   j,
		users: users,
		mr:    mr,
	}
}

// do 带上给定 cookie 值跑一次中间件链，终端 handler 回显解析出的调用方
func (h *authHarness) do(t *testing.T, cookieValue string, extra ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/api/user", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.JSON(http.StatusOK, UserFrom(c))
	}
	for i := len(extra) - 1; i >= 0; i-- {
		handler = extra[i](handler)
	}

	require.NoError(t, h.mw(handler)(c))

	return rec
}

func (h *authHarness) signFor(t *testing.T, id uint, expires time.Time) string {
	t.Helper()

	token, err := h.jwt.SignToken(&jwt.User{ID: id, Expires: expires.Unix()})
	require.NoError(t, err)

	return token
}

func TestAuthNoCookie(t *testing.T) {
	h := newAuthHarness(t)

	rec := h.do(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, h.users.calls)
}

func TestAuthBadToken(t *testing.T) {
	h := newAuthHarness(t)

	for _, value := range []string{"garbage", constants.SessionCookieClearValue} {
		rec := h.do(t, value)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	h := newAuthHarness(t)

	token := h.signFor(t, 1, time.Now().Add(-time.Minute))
	rec := h.do(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthUnknownUser(t *testing.T) {
	h := newAuthHarness(t)

	// 签名有效但用户已不存在
	token := h.signFor(t, 42, time.Now().Add(time.Hour))
	rec := h.do(t, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthResolvesAndCaches(t *testing.T) {
	h := newAuthHarness(t)
	token := h.signFor(t, 1, time.Now().Add(time.Hour))

	rec := h.do(t, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var user AuthUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, []string{constants.RoleRegular}, user.Roles)

	// 第二次命中缓存，不再查库
	rec = h.do(t, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.users.calls)
	assert.True(t, h.mr.Exists(fmt.Sprintf(constants.CacheKeyUserInfo, 1)))
}

func TestAuthCorruptCacheFallsBack(t *testing.T) {
	h := newAuthHarness(t)
	token := h.signFor(t, 1, time.Now().Add(time.Hour))

	require.NoError(t, h.mr.Set(fmt.Sprintf(constants.CacheKeyUserInfo, 1), "not json"))

	rec := h.do(t, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, h.users.calls)
}

func TestRole(t *testing.T) {
	h := newAuthHarness(t)
	token := h.signFor(t, 1, time.Now().Add(time.Hour))

	// 普通用户过不了 editor 门槛
	rec := h.do(t, token, Role(constants.RoleEditor, constants.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// 持有任一所需角色即放行
	rec = h.do(t, token, Role(constants.RoleRegular, constants.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHasRole(t *testing.T) {
	user := &AuthUser{Roles: []string{constants.RoleRegular, constants.RoleEditor}}

	assert.True(t, user.HasRole(constants.RoleEditor))
	assert.True(t, user.HasRole(constants.RoleAdmin, constants.RoleRegular))
	assert.False(t, user.HasRole(constants.RoleAdmin, constants.RoleModerator))
}

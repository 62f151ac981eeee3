package handlers

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"news-backend/app/server/constants"
	"news-backend/app/server/database"
	"news-backend/app/server/models"
	"news-backend/app/server/utils"
)

// 内存版的凭据 / token 存储，语义与 database.Store 对齐，方便不起数据库做 handler 测试

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
	tokens *fakeTokenStore // Register 需要一并签发确认 token

	deleteCalls int
}

func newFakeUserStore(tokens *fakeTokenStore) *fakeUserStore {
	return &fakeUserStore{
		nextID: 1,
		users:  map[uint]*models.User{},
		tokens: tokens,
	}
}

func (s *fakeUserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) UserByName(_ context.Context, name string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Name == name {
			copied := *user
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user, ok := s.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, database.ErrNotFound
}

func (s *fakeUserStore) Register(_ context.Context, name, email, passwordHash string, tokenExpire time.Time) (*models.User, string, error) {
	s.mu.Lock()
	user := &models.User{
		ID:               s.nextID,
		Email:            email,
		Name:             name,
		Password:         passwordHash,
		RegistrationDate: time.Now(),
		Roles:            []models.Role{{ID: 2, Label: constants.RoleRegular, Name: "Regular"}},
	}
	s.nextID++
	s.users[user.ID] = user
	copied := *user
	s.mu.Unlock()

	raw, err := s.tokens.IssueToken(context.Background(), user.ID, models.TokenTypeRegisterConfirm, tokenExpire)
	if err != nil {
		return nil, "", err
	}

	return &copied, raw, nil
}

func (s *fakeUserStore) SetPassword(_ context.Context, userID uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	user.Password = passwordHash
	return nil
}

func (s *fakeUserStore) UpdateProfile(_ context.Context, userID uint, name, image, biography string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[userID]
	if !ok {
		return database.ErrNotFound
	}
	user.Name = name
	user.Image = image
	user.Biography = biography
	return nil
}

func (s *fakeUserStore) DeleteUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteCalls++
	if _, ok := s.users[userID]; !ok {
		return database.ErrNotFound
	}
	delete(s.users, userID)
	delete(s.tokens.byUser, userID)
	return nil
}

type fakeToken struct {
	digest string
	kind   string
	expire time.Time
}

type fakeTokenStore struct {
	mu     sync.Mutex
	byUser map[uint]*fakeToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{byUser: map[uint]*fakeToken{}}
}

func (s *fakeTokenStore) IssueToken(_ context.Context, userID uint, kind string, expire time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[userID]; ok && token.expire.After(time.Now()) {
		return "", database.ErrTokenConflict
	}
	raw := utils.RandomToken()
	s.byUser[userID] = &fakeToken{digest: utils.DigestHash(raw), kind: kind, expire: expire}
	return raw, nil
}

func (s *fakeTokenStore) ConsumeToken(_ context.Context, raw, kind string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	digest := utils.DigestHash(raw)
	for userID, token := range s.byUser {
		if token.digest == digest && token.kind == kind && token.expire.After(time.Now()) {
			delete(s.byUser, userID)
			return userID, nil
		}
	}
	return 0, database.ErrNotFound
}

func (s *fakeTokenStore) TokenForUser(_ context.Context, userID uint) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.byUser[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &models.Token{Token: token.digest, Expire: token.expire, Type: token.kind, UserID: userID}, nil
}

// expireToken 把用户的在途 token 强制改成已过期，模拟清理任务跑起来之前的窗口期
func (s *fakeTokenStore) expireToken(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token, ok := s.byUser[userID]; ok {
		token.expire = time.Now().Add(-time.Minute)
	}
}

func (s *fakeTokenStore) DeleteTokenForUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	fail     bool
	sent     []string // kinds
	lastUser *models.User
	lastRaw  string
}

func (m *fakeMailer) Send(kind string, user *models.User, rawToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, kind)
	m.lastUser = user
	m.lastRaw = rawToken
	return nil
}

type fakeFileStore struct {
	uploadedKey string
	deletedKey  string
	failUpload  bool
}

func (f *fakeFileStore) Upload(_ context.Context, key, _ string, _ io.Reader, _ int64) error {
	if f.failUpload {
		return errors.New("storage unavailable")
	}
	f.uploadedKey = key
	return nil
}

func (f *fakeFileStore) Delete(_ context.Context, key string) error {
	f.deletedKey = key
	return nil
}

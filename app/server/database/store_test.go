package database

import (
	"database/sql/driver"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockStore 把 Store 架在 sqlmock 连接上，逐条核对真实生成的 SQL
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn: conn,
	}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	return NewStore(db), mock
}

// capture 记录实际传入语句的参数值，用于核对落库内容
type capture struct {
	v *driver.Value
}

func (c capture) Match(v driver.Value) bool {
	*c.v = v
	return true
}

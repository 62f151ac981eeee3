package database

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 记录不存在（或 token 已被消费 / 已过期）
	ErrNotFound = errors.New("record not found")
	// ErrTokenConflict 用户已有在途 token ，不能同时开启第二个流程
	ErrTokenConflict = errors.New("a live token already exists for this user")
)

// Store 基于 gorm 的持久层，所有跨行不变量交给数据库约束与事务保证
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

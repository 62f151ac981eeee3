package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"news-backend/app/server/models"
	"news-backend/app/server/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssueToken 为用户签发一次性 token ，返回原始随机值
// 同一用户已有在途 token 时返回 ErrTokenConflict （user_id 唯一索引兜底）
func (s *Store) IssueToken(ctx context.Context, userID uint, kind string, expire time.Time) (string, error) {
	raw := utils.RandomToken()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 已过期的残留行不算在途，先清掉，否则唯一索引会挡住新签发
		if err := tx.Where("user_id = ? AND expire <= ?", userID, time.Now()).
			Delete(&models.Token{}).Error; err != nil {
			return fmt.Errorf("clear stale token: %w", err)
		}

		var counter int64
		if err := tx.Model(&models.Token{}).Where("user_id = ?", userID).Count(&counter).Error; err != nil {
			return fmt.Errorf("count live tokens: %w", err)
		}
		if counter > 0 {
			return ErrTokenConflict
		}

		if err := tx.Create(&models.Token{
			Token:  utils.DigestHash(raw),
			Expire: expire,
			Type:   kind,
			UserID: userID,
		}).Error; err != nil {
			return fmt.Errorf("create token: %w", err)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return raw, nil
}

// ConsumeToken 按原始值消费 token ：单条带条件的 DELETE ... RETURNING
// 保证并发兑换下至多一次成功，第二个请求看到的是 ErrNotFound
// 已过期的 token 同样视为不存在
func (s *Store) ConsumeToken(ctx context.Context, raw, kind string) (uint, error) {
	var token models.Token
	res := s.db.WithContext(ctx).Clauses(clause.Returning{}).
		Where("token = ? AND type = ? AND expire > ?", utils.DigestHash(raw), kind, time.Now()).
		Delete(&token)
	if res.Error != nil {
		return 0, fmt.Errorf("consume token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}

	return token.UserID, nil
}

// TokenForUser 返回用户的在途 token 行，不过滤过期：
// 过期但还没被清理的 register-confirm 仍然代表「账号未确认」，由调用方按 Type 和 Expire 判断语义
func (s *Store) TokenForUser(ctx context.Context, userID uint) (*models.Token, error) {
	var token models.Token
	if err := s.db.WithContext(ctx).
		First(&token, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	return &token, nil
}

// DeleteTokenForUser 撤回未消费的 token ，用于通知发送失败后的补偿回滚
func (s *Store) DeleteTokenForUser(ctx context.Context, userID uint) error {
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Token{}).Error; err != nil {
		return fmt.Errorf("delete token: %w", err)
	}

	return nil
}

// SweepExpiredTokens 周期清理过期 token
// register-confirm 过期说明账号从未完成确认，连同账号一起删除
// password-reset 过期只删除 token 行本身
// 操作幂等，和在途的登录 / 注册流量并发运行是安全的
func (s *Store) SweepExpiredTokens(ctx context.Context) (int64, error) {
	var swept int64

	// 过期的 register-confirm ：先收集未确认账号
	var pending []models.Token
	if err := s.db.WithContext(ctx).
		Find(&pending, "type = ? AND expire <= ?", models.TokenTypeRegisterConfirm, time.Now()).Error; err != nil {
		return 0, fmt.Errorf("find expired confirm tokens: %w", err)
	}

	for _, token := range pending {
		// DeleteUser 会一并清掉 token 行；账号已被并发请求删除时忽略
		if err := s.DeleteUser(ctx, token.UserID); err != nil && !errors.Is(err, ErrNotFound) {
			return swept, fmt.Errorf("delete unconfirmed user %d: %w", token.UserID, err)
		}
		swept++
	}

	// 过期的 password-reset
	res := s.db.WithContext(ctx).
		Where("type = ? AND expire <= ?", models.TokenTypePasswordReset, time.Now()).
		Delete(&models.Token{})
	if res.Error != nil {
		return swept, fmt.Errorf("delete expired reset tokens: %w", res.Error)
	}

	return swept + res.RowsAffected, nil
}

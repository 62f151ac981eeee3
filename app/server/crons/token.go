package crons

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenSweeper 周期清理过期 token
type TokenSweeper interface {
	SweepExpiredTokens(ctx context.Context) (int64, error)
}

// ClearTokens 按固定周期清理过期 token ，独立于请求流量运行
// ctx 取消后退出
func ClearTokens(ctx context.Context, store TokenSweeper, interval time.Duration, l *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := store.SweepExpiredTokens(ctx)
			if err != nil {
				l.Error("failed to sweep expired tokens", zap.Error(err))
				continue
			}
			if swept > 0 {
				l.Info("swept expired tokens", zap.Int64("count", swept))
			}
		}
	}
}

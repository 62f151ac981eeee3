package constants

import "time"

const (
	CacheKeyUserInfo = "news:user:info:%d"
)

const (
	CacheExpireUserInfo = 1 * time.Hour
)

package constants

import "time"

// 会话 cookie
const (
	SessionCookieName = "token"
	// 注销时用一个 10 秒后过期的占位值覆盖 cookie
	SessionCookieClearValue  = "none"
	SessionCookieClearExpire = 10 * time.Second
)

// 角色标识
const (
	RoleAdmin     = "admin"
	RoleRegular   = "regular" // 注册即授予的默认角色
	RoleModerator = "moderator"
	RoleEditor    = "editor"
)

// 内容被删除用户让渡给哨兵账号，而不是连带删除
const AnonymousUserName = "anonymous"

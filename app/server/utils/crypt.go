package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// RandomToken 生成一次性流程用的随机值（20 字节，hex 编码）
// 原始值只发给用户一次，数据库中只保存摘要
func RandomToken() string {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand 不可用时系统已不可信，直接崩溃
		panic(err)
	}

	return hex.EncodeToString(buf)
}

// DigestHash 计算字符串的 sha256 摘要（hex 编码）
func DigestHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

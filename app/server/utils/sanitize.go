package utils

import "strings"

// Sanitize 转义用户输入中的尖括号，防止存储型 XSS
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

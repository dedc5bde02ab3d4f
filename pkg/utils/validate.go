package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// NormalizeEmail 邮箱按小写去空格后存储和比较
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

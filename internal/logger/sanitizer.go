package logger

import (
	"regexp"
	"strings"
)

// センシティブなキーのパターン（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"secret",
	"github_token",
	"authorization",
	"credential",
	"access_token",
	"refresh_token",
}

// センシティブな値のパターン
var sensitiveValuePatterns = []*regexp.Regexp{
	// GitHub personal access tokens
	regexp.MustCompile(`^ghp_[A-Za-z0-9]{36,}$`),
	// GitHub fine-grained tokens
	regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`),
	// GitHub app / user / OAuth tokens
	regexp.MustCompile(`^gh[sou]_[A-Za-z0-9]{36,}$`),
	regexp.MustCompile(`(?i)^Bearer\s+[A-Za-z0-9\-_\.]{20,}$`),
	regexp.MustCompile(`(?i)^token\s+[A-Za-z0-9\-_\.]{20,}$`),
}

const masked = "***MASKED***"

// SanitizeKeyValue はキーと値の組み合わせをチェックし、センシティブな情報をマスクする
func SanitizeKeyValue(key string, value interface{}) (string, interface{}) {
	if isSensitiveKey(key) {
		return key, masked
	}
	if isSensitiveValue(value) {
		return key, maskValue(value)
	}
	return key, value
}

// SanitizeArgs はログ引数（key-valueペア）をサニタイズする
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		if key, ok := sanitized[i].(string); ok {
			_, sanitized[i+1] = SanitizeKeyValue(key, sanitized[i+1])
		}
	}

	return sanitized
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}

	for _, pattern := range sensitiveValuePatterns {
		if pattern.MatchString(str) {
			return true
		}
	}

	return false
}

// maskValue はセンシティブな値をマスクする（トークン種別のプレフィックスは残す）
func maskValue(value interface{}) string {
	str, _ := value.(string)

	for _, prefix := range []string{"ghp_", "ghs_", "gho_", "ghu_", "github_pat_", "Bearer ", "token "} {
		if strings.HasPrefix(str, prefix) {
			return prefix + masked
		}
	}

	return masked
}

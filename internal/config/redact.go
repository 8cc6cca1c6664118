package config

import "strings"

const redacted = "REDACTED"

var sensitiveHeaderParts = []string{"auth", "key", "token", "secret", "cookie"}

// Redacted returns a copy of cfg safe to persist beside run results.
func Redacted(cfg Config) Config {
	out := cfg
	if len(cfg.Service.Headers) > 0 {
		out.Service.Headers = make(map[string]string, len(cfg.Service.Headers))
		for key, value := range cfg.Service.Headers {
			if isSensitiveHeader(key) {
				value = redacted
			}
			out.Service.Headers[key] = value
		}
	}
	if out.Upload.AccessKey != "" {
		out.Upload.AccessKey = redacted
	}
	if out.Upload.SecretKey != "" {
		out.Upload.SecretKey = redacted
	}
	return out
}

func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	for _, part := range sensitiveHeaderParts {
		if strings.Contains(lower, part) {
			return true
		}
	}
	return false
}

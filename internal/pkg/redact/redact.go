// redact маскирует чувствительные значения перед записью в логи.
package redact

import "strings"

// Email маскирует локальную часть адреса, домен остаётся видимым:
// "foobar@example.com" -> "fo***@example.com". Строка без единственного
// '@' маскируется целиком.
func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Password — плейсхолдер вместо пароля; сам пароль в логи не попадает никогда.
func Password() string { return "[REDACTED_PASSWORD]" }

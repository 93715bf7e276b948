package logger

import "strings"

// RedactEmail masks the local part of an address so recipient identities
// never appear in logs while the domain stays visible for debugging.
// Local parts of one or two characters are masked entirely.
func RedactEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return "***@***"
	}
	local, dom := parts[0], parts[1]
	if len(local) <= 2 {
		return "***@" + dom
	}
	return local[:2] + "***@" + dom
}

package database

import "strings"

// IsLockContention reports whether err is a row lock wait timeout or a
// deadlock, i.e. a conflict the caller can safely retry.
//
// MySQL reports these as error 1205 (lock wait timeout exceeded) and 1213
// (deadlock found); SQLite reports "database is locked" / "database table is
// locked". The drivers expose no stable typed errors for these, so matching
// is on the driver message.
func IsLockContention(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Error 1205"),
		strings.Contains(msg, "Lock wait timeout exceeded"),
		strings.Contains(msg, "Error 1213"),
		strings.Contains(msg, "Deadlock found"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "database table is locked"):
		return true
	}
	return false
}

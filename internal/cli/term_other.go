//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd

package cli

// IsTerminal reports false; color must be requested explicitly here.
func IsTerminal(fd uintptr) bool {
	return false
}

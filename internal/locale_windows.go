//go:build windows

package internal

import (
	"os"
	"syscall"
	"unsafe"
)

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

var (
	kernel32                 = syscall.NewLazyDLL("kernel32.dll")
	procGetUserDefaultLocale = kernel32.NewProc("GetUserDefaultLocaleName")
)

// detectSystemLocale returns the system locale string on Windows.
// Environment variables win (WSL, CI), then GetUserDefaultLocaleName.
func detectSystemLocale() string {
	if skipSystemLocale {
		return ""
	}

	for _, envVar := range []string{"LC_NUMERIC", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}

	const maxLen = 85 // LOCALE_NAME_MAX_LENGTH

	buf := make([]uint16, maxLen)
	ret, _, _ := procGetUserDefaultLocale.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(maxLen),
	)
	if ret == 0 {
		return ""
	}

	return syscall.UTF16ToString(buf)
}

//go:build !windows && !darwin

package internal

import "os"

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

// detectSystemLocale returns the system locale string on Unix-like systems.
// For number formatting, priority is: LC_NUMERIC (most specific), LC_ALL, LANG.
// Returns empty string if no valid locale is found.
func detectSystemLocale() string {
	if skipSystemLocale {
		return ""
	}
	for _, envVar := range []string{"LC_NUMERIC", "LC_ALL", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" && locale != "C.UTF-8" {
			return locale
		}
	}
	return ""
}

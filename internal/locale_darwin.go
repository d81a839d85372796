//go:build darwin

package internal

import (
	"os"
	"os/exec"
	"strings"
)

// skipSystemLocale can be set to true in tests to skip OS-level locale detection
var skipSystemLocale = false

// detectSystemLocale returns the system locale string on macOS.
// First checks environment variables (for terminal overrides),
// then falls back to macOS defaults (AppleLocale).
// Returns empty string if no valid locale is found.
func detectSystemLocale() string {
	if skipSystemLocale {
		return ""
	}

	for _, envVar := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" && locale != "C.UTF-8" {
			return locale
		}
	}

	out, err := exec.Command("defaults", "read", "-g", "AppleLocale").Output()
	if err != nil {
		return ""
	}

	// AppleLocale format is like "en_US" or "sv_SE" - already what we need
	return strings.TrimSpace(string(out))
}

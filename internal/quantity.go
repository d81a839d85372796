package internal

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Unit is a physical unit (MMcf, GWh) with the locale used to print quantities of it
type Unit struct {
	Code    string
	tag     language.Tag
	printer *message.Printer
}

// GetUnit returns a Unit formatted for the given locale ("sv_SE", "en-US").
// With an empty locale the system locale is used, falling back to English.
func GetUnit(code, locale string) Unit {
	tag := language.Und
	if locale != "" {
		tag = parseLocaleTag(locale)
	}
	if tag == language.Und {
		tag = DetectSystemLocale()
	}
	if tag == language.Und {
		tag = language.English
	}
	return GetUnitWithLocale(code, tag)
}

// GetUnitWithLocale returns a Unit with a specific locale for formatting
func GetUnitWithLocale(code string, tag language.Tag) Unit {
	return Unit{
		Code:    strings.TrimSpace(code),
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Locale returns the language tag quantities are printed with
func (u Unit) Locale() language.Tag {
	return u.tag
}

// DetectSystemLocale reads the number formatting locale of the OS.
// On Linux/Unix: checks LC_NUMERIC, LC_ALL, LANG env vars
// On macOS: checks env vars first, then falls back to AppleLocale system preference
// On Windows: uses GetUserDefaultLocaleName API
// Returns language.Und if detection fails.
func DetectSystemLocale() language.Tag {
	locale := detectSystemLocale()
	if locale == "" {
		return language.Und
	}
	return parseLocaleTag(locale)
}

// parseLocaleTag converts a POSIX locale string to a language tag.
// Examples: "sv_SE.UTF-8" -> sv-SE, "de_DE@euro" -> de-DE
func parseLocaleTag(locale string) language.Tag {
	// Remove encoding suffix (everything after .)
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}

	// Remove modifier suffix (everything after @)
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	// Convert to BCP 47 format: "sv_SE" -> "sv-SE"
	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return language.Und
	}
	return tag
}

// Format prints a quantity rounded to whole units, followed by the unit code
func (u Unit) Format(v float64) string {
	formatted := u.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(0)))
	if u.Code == "" {
		return formatted
	}
	return formatted + " " + u.Code
}

// FormatShare prints a fraction (0.25) as a percentage with one decimal
func (u Unit) FormatShare(share float64) string {
	return u.printer.Sprint(number.Percent(share, number.MaxFractionDigits(1)))
}

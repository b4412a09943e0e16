package http

import (
	"regexp"
	"strings"
	"unicode/utf8"
	"widgetdesk/internal/entities"
)

// Input validation constants
const (
	MaxBusinessNameLength = 256
	MaxMessageLength      = 4000
	MaxResponseLength     = 4000
	MaxKeywordLength      = 128
	MaxKeywordCount       = 32
	MaxVisitorNameLength  = 128
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	uuidPattern     = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// ValidHexColor checks a "#RRGGBB" color value
func ValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// ValidUUID checks an opaque row/owner identifier
func ValidUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// ValidPosition checks a widget corner anchor
func ValidPosition(s string) bool {
	switch s {
	case "bottom-right", "bottom-left", "top-right", "top-left":
		return true
	}
	return false
}

// SanitizeString removes null bytes and invalid UTF-8
func SanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")

	if !utf8.ValidString(s) {
		v := make([]rune, 0, len(s))
		for _, r := range s {
			if r != utf8.RuneError {
				v = append(v, r)
			}
		}
		s = string(v)
	}
	return s
}

// ValidSessionStatus checks a caller-supplied session state
func ValidSessionStatus(s entities.SessionStatus) bool {
	switch s {
	case entities.SessionActive, entities.SessionAgentAssigned, entities.SessionClosed:
		return true
	}
	return false
}

// TruncateString truncates to at most maxLen bytes without splitting a
// multi-byte rune, so the result stays valid UTF-8
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// ValidateLength checks if string is within bounds
func ValidateLength(s string, min, max int) bool {
	l := len(s)
	return l >= min && l <= max
}

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`\D`)

// NormalizePhone strips formatting from a local phone number and prepends the
// country code. Returns an error unless exactly ten digits remain.
func NormalizePhone(raw string) (string, error) {
	cleaned := nonDigitRegex.ReplaceAllString(raw, "")

	// "+7" country code or the domestic "8" trunk prefix
	if len(cleaned) == 11 && (strings.HasPrefix(cleaned, "7") || strings.HasPrefix(cleaned, "8")) {
		cleaned = cleaned[1:]
	}
	if len(cleaned) != 10 {
		return "", fmt.Errorf("invalid phone number: %q", raw)
	}

	return "+7" + cleaned, nil
}

// FormatClock renders hours and minutes as "HH:MM".
func FormatClock(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func WriteJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package journal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD calendar date and returns it unchanged.
func ParseDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if _, err := time.Parse(dateLayout, s); err != nil {
		return "", ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD", input)}
	}
	return s, nil
}

// ParseClock accepts H:MM or HH:MM (24h) and returns the zero-padded HH:MM form,
// which keeps lexicographic and chronological order identical.
func ParseClock(input string) (string, error) {
	s := strings.TrimSpace(input)
	hh, mm, ok := strings.Cut(s, ":")
	bad := ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not HH:MM", input)}
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return "", bad
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return "", bad
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return "", bad
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}

func ParseIntensity(input string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, ValidationError{Field: "intensity", Reason: fmt.Sprintf("%q is not a number", input)}
	}
	if err := checkIntensity(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkIntensity(n int) error {
	if n < MinIntensity || n > MaxIntensity {
		return ValidationError{Field: "intensity", Reason: fmt.Sprintf("%d is outside %d-%d", n, MinIntensity, MaxIntensity)}
	}
	return nil
}

func ParseTheme(input string) (Theme, error) {
	t := Theme(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return "", ValidationError{Field: "theme", Reason: fmt.Sprintf("%q is not light or dark", input)}
	}
	return t, nil
}

// ParseLanguage accepts a bare code or a locale tag such as vi-VN.
func ParseLanguage(input string) (Language, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	base, _, _ := strings.Cut(strings.ReplaceAll(s, "_", "-"), "-")
	l := Language(base)
	if !l.IsValid() {
		return "", ValidationError{Field: "language", Reason: fmt.Sprintf("%q is not supported", input)}
	}
	return l, nil
}

func ParseTab(input string) (Tab, error) {
	t := Tab(strings.TrimSpace(strings.ToLower(input)))
	if !t.IsValid() {
		return "", ValidationError{Field: "tab", Reason: fmt.Sprintf("unknown tab %q", input)}
	}
	return t, nil
}

// ResolveID expands a unique id prefix against ids. An exact match always wins.
func ResolveID(ids []string, prefix string) (string, error) {
	p := strings.TrimSpace(prefix)
	if p == "" {
		return "", ValidationError{Field: "id", Reason: "empty"}
	}
	var found []string
	for _, id := range ids {
		if id == p {
			return id, nil
		}
		if strings.HasPrefix(id, p) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, p)
	case 1:
		return found[0], nil
	default:
		return "", AmbiguousIDError{Prefix: p, Matches: len(found)}
	}
}

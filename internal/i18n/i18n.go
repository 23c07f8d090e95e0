// Package i18n registers the embedded en and vi message catalogs with
// golang.org/x/text and hands out printers for them.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the catalog every other locale is checked against.
const BaseLocale = "en"

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

//go:embed locales/*.yaml
var localeFS embed.FS

var catalogs = mustRegister(localeFS)

func mustRegister(fsys fs.FS) map[string]catalogFile {
	out, err := register(fsys)
	if err != nil {
		panic(err)
	}
	return out
}

func register(fsys fs.FS) (map[string]catalogFile, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	sort.Strings(paths)

	out := map[string]catalogFile{}
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if strings.TrimSpace(file.Locale) == "" {
			return nil, fmt.Errorf("%s: locale is required", path)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		for key, msg := range file.Messages {
			if err := message.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("%s: set %q: %w", path, key, err)
			}
		}
		out[file.Locale] = file
	}
	if _, ok := out[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", BaseLocale)
	}
	return out, nil
}

// Locales lists the registered locale codes.
func Locales() []string {
	out := make([]string, 0, len(catalogs))
	for l := range catalogs {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Code normalizes a language code or locale tag (vi-VN, en_US) to a
// registered locale, falling back to BaseLocale.
func Code(lang string) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(lang)), "_", "-")
	base, _, _ := strings.Cut(s, "-")
	if _, ok := catalogs[base]; !ok {
		return BaseLocale
	}
	return base
}

func Tag(lang string) language.Tag {
	return language.MustParse(Code(lang))
}

func Printer(lang string) *message.Printer {
	return message.NewPrinter(Tag(lang))
}

// T formats the message stored under key.
func T(lang, key string, args ...any) string {
	return Printer(lang).Sprintf(key, args...)
}

// MissingKeys reports keys present in the base catalog but absent from lang.
func MissingKeys(lang string) []string {
	base := catalogs[BaseLocale]
	other, ok := catalogs[lang]
	if !ok {
		return nil
	}
	var out []string
	for key := range base.Messages {
		if _, ok := other.Messages[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

var viWeekdays = [...]string{"Chủ Nhật", "Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy"}

// FormatLongDate renders the long date line printed under the export title,
// e.g. "Thursday, March 14, 2024".
func FormatLongDate(lang string, t time.Time) string {
	if Code(lang) == "vi" {
		return fmt.Sprintf("%s, %d tháng %d, %d", viWeekdays[t.Weekday()], t.Day(), int(t.Month()), t.Year())
	}
	return t.Format("Monday, January 2, 2006")
}

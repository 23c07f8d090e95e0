// Package content serves the static coping strategies and the curated song list.
package content

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var raw []byte

type Category struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

type Strategy struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// AllCategories selects every strategy.
const AllCategories = "all"

type catalog struct {
	Categories []Category `yaml:"categories"`
	Strategies []Strategy `yaml:"strategies"`
	Tracks     []string   `yaml:"tracks"`
}

var data = mustLoad(raw)

func mustLoad(b []byte) catalog {
	c, err := load(b)
	if err != nil {
		panic(err)
	}
	return c
}

func load(b []byte) (catalog, error) {
	var c catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return catalog{}, fmt.Errorf("parse content: %w", err)
	}
	known := map[string]bool{}
	for _, cat := range c.Categories {
		known[cat.ID] = true
	}
	for _, s := range c.Strategies {
		if !known[s.Category] {
			return catalog{}, fmt.Errorf("strategy %s: unknown category %q", s.ID, s.Category)
		}
	}
	if len(c.Tracks) == 0 {
		return catalog{}, fmt.Errorf("content: no tracks")
	}
	return c, nil
}

func Categories() []Category {
	return append([]Category(nil), data.Categories...)
}

// Strategies returns the strategies in category, or all of them for "" and "all".
func Strategies(category string) ([]Strategy, error) {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" || c == AllCategories {
		return append([]Strategy(nil), data.Strategies...), nil
	}
	found := false
	for _, cat := range data.Categories {
		if cat.ID == c {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	var out []Strategy
	for _, s := range data.Strategies {
		if s.Category == c {
			out = append(out, s)
		}
	}
	return out, nil
}

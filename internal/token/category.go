package token

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Category is a highlight severity. Lower values win tie-breaks.
type Category int

const (
	CategoryError Category = iota
	CategoryWarning
	CategoryInfo
	CategoryCustom1
	CategoryCustom2
	CategoryCustom3

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryError:   "ERROR",
	CategoryWarning: "WARNING",
	CategoryInfo:    "INFO",
	CategoryCustom1: "CUSTOM-1",
	CategoryCustom2: "CUSTOM-2",
	CategoryCustom3: "CUSTOM-3",
}

var categoryAliases = map[string]Category{
	"error":    CategoryError,
	"err":      CategoryError,
	"warning":  CategoryWarning,
	"warn":     CategoryWarning,
	"info":     CategoryInfo,
	"custom-1": CategoryCustom1,
	"custom-2": CategoryCustom2,
	"custom-3": CategoryCustom3,
}

// Categories returns every category in priority order.
func Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for c := CategoryError; c < categoryCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) Valid() bool {
	return c >= CategoryError && c < categoryCount
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("CATEGORY(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory accepts canonical names case-insensitively, plus the
// "custom1" / "custom_1" spellings used in older config files.
func ParseCategory(raw string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(raw))
	norm = strings.ReplaceAll(norm, "_", "-")
	if strings.HasPrefix(norm, "custom") && !strings.HasPrefix(norm, "custom-") {
		norm = "custom-" + strings.TrimPrefix(norm, "custom")
	}
	if c, ok := categoryAliases[norm]; ok {
		return c, nil
	}
	return 0, errors.Errorf("unknown category: %s", raw)
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, errors.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

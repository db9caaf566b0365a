package domain

import (
	"fmt"
	"strings"
)

type Category string

func (c Category) String() string {
	return string(c)
}

const (
	CategoryAll         Category = "all" // No filter
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryLayers      Category = "layers"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
)

// Categories lists the closet filter chips in display order.
var Categories = []Category{
	CategoryAll,
	CategoryTops,
	CategoryBottoms,
	CategoryLayers,
	CategoryShoes,
	CategoryAccessories,
}

func (c Category) Label() string {
	switch c {
	case CategoryAccessories:
		return "accs"
	case "":
		return string(CategoryAll)
	default:
		return string(c)
	}
}

// Filter returns the value sent to the server. "all" and "" both mean no filter.
func (c Category) Filter() string {
	if c == CategoryAll {
		return ""
	}
	return string(c)
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, nil
	}
	if s == "accs" {
		return CategoryAccessories, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyBrandName = errors.New("brand name is required")
	ErrEmptySizeName  = errors.New("size name is required")
)

// Brand groups products by manufacturer.
type Brand struct {
	ID   string
	Name string
}

// NewBrand trims the name and checks it is present.
func NewBrand(id, name string) (*Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyBrandName
	}
	return &Brand{ID: id, Name: name}, nil
}

// Clone returns a copy.
func (b *Brand) Clone() *Brand {
	if b == nil {
		return nil
	}
	clone := *b
	return &clone
}

// Size is a garment size. Its ID is the slug of its name.
type Size struct {
	ID   string
	Name string
}

// NewSize trims the name and derives the identifier from it.
func NewSize(name string) (*Size, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySizeName
	}
	return &Size{ID: Slugify(name), Name: name}, nil
}

// Clone returns a copy.
func (s *Size) Clone() *Size {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// whitespaceRun matches Unicode whitespace, not only the ASCII class of `\s`.
var whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)

// Slugify lowercases name and joins whitespace-separated words with hyphens.
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// NameKey is the case-insensitive comparison key for brand and size names.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// StoreSettings is the singleton storefront configuration.
type StoreSettings struct {
	IsStoreClosed bool
	LogoURL       string
}

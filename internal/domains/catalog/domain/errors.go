package domain

import (
	"errors"
	"fmt"
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	ErrNotFound      = errors.New("catalog record not found")
	ErrDuplicateName = errors.New("duplicate name")
	ErrReferenced    = errors.New("record is referenced by products")
	ErrUnknownBrand  = errors.New("unknown brand")
	ErrUnknownSize   = errors.New("unknown size")
)

// Entity names used in error messages.
const (
	EntityProduct = "product"
	EntityBrand   = "brand"
	EntitySize    = "size"
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateNameError reports a brand or size name (or size slug) collision.
type DuplicateNameError struct {
	Entity string
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s named %q already exists", e.Entity, e.Name)
}

func (e *DuplicateNameError) Is(target error) bool { return target == ErrDuplicateName }

// ReferentialIntegrityError reports a delete blocked by referencing products.
type ReferentialIntegrityError struct {
	Entity     string
	ID         string
	References int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s %q is used by %d product(s) and cannot be deleted", e.Entity, e.ID, e.References)
}

func (e *ReferentialIntegrityError) Is(target error) bool { return target == ErrReferenced }

// UnknownReferenceError reports a product pointing at a brand or size that does not exist.
type UnknownReferenceError struct {
	Entity string
	ID     string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s %q does not exist", e.Entity, e.ID)
}

func (e *UnknownReferenceError) Is(target error) bool {
	switch e.Entity {
	case EntityBrand:
		return target == ErrUnknownBrand
	case EntitySize:
		return target == ErrUnknownSize
	}
	return false
}

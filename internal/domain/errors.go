package domain

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindBlocked
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindBlocked:
		return "blocked"
	}
	return "unknown"
}

// Error is a failure the caller can act on. Title is the short label sent as
// "error" in responses, Message the human readable detail.
type Error struct {
	Kind    Kind
	Title   string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works
// regardless of title and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind && t.Title == "" && t.Message == ""
}

var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrBlocked    = &Error{Kind: KindBlocked}
)

func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Title: "Validation error", Message: message}
}

func CategoryNotFound(id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Title:   "Category not found",
		Message: fmt.Sprintf("Category with id %d does not exist", id),
	}
}

func ProductNotFound(id int64) *Error {
	return &Error{
		Kind:    KindNotFound,
		Title:   "Product not found",
		Message: fmt.Sprintf("Product with id %d does not exist", id),
	}
}

// CategoryExists is the conflict for a duplicate name. An empty name is used
// when the duplicate was only detected by the unique index.
func CategoryExists(name string) *Error {
	msg := "A category with this name already exists"
	if name != "" {
		msg = fmt.Sprintf(`A category with the name "%s" already exists`, name)
	}
	return &Error{Kind: KindConflict, Title: "Category already exists", Message: msg}
}

func CategoryInUse(count int64) *Error {
	return &Error{
		Kind:  KindBlocked,
		Title: "Cannot delete category",
		Message: fmt.Sprintf("Cannot delete category because it has %d associated products. "+
			"Please move or delete the products first.", count),
	}
}

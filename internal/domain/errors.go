package domain

import (
	"errors"
	"fmt"
)

// Machine-checkable error kinds surfaced to API callers.
const (
	CodeManifestNotFound = "manifest_not_found"
	CodeNoOpenManifest   = "no_open_manifest"
	CodeManifestLocked   = "manifest_locked"
	CodeManifestFull     = "manifest_full"
	CodeSeatOutOfRange   = "seat_out_of_range"
	CodeSeatTaken        = "seat_taken"
	CodeNoAvailableSeat  = "no_available_seat"
)

type NotFoundError struct {
	Resource string
	Code     string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Code  string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Code     string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// StateError means the entity exists but its current state refuses the
// operation (locked or full manifest). Unlike ConflictError it maps to 400.
type StateError struct {
	Msg  string
	Code string
	Err  error
}

func (e StateError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "invalid state"
}

func (e StateError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsState(err error) bool {
	var target StateError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// ErrorCode extracts the machine code carried by a domain error, if any.
func ErrorCode(err error) string {
	var nf NotFoundError
	if errors.As(err, &nf) && nf.Code != "" {
		return nf.Code
	}
	var ve ValidationError
	if errors.As(err, &ve) && ve.Code != "" {
		return ve.Code
	}
	var ce ConflictError
	if errors.As(err, &ce) && ce.Code != "" {
		return ce.Code
	}
	var se StateError
	if errors.As(err, &se) && se.Code != "" {
		return se.Code
	}
	return ""
}

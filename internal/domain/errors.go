package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Msg      string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Resource == "" {
		return "tidak ditemukan"
	}
	return fmt.Sprintf("%s tidak ditemukan", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError with a Field set is rendered as an inline form error.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s tidak valid", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Field    string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

type UnauthorizedError struct {
	Msg string
	Err error
}

func (e UnauthorizedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e UnauthorizedError) Unwrap() error { return e.Err }

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

var (
	ErrVoucherDisabled = ValidationError{Msg: "Fitur voucher sedang tidak aktif"}
	ErrVoucherInvalid  = NotFoundError{Resource: "voucher", Msg: "Voucher tidak valid atau sudah digunakan"}
	ErrVoucherConsumed = ConflictError{Resource: "voucher", Field: "voucher_code", Msg: "Voucher tidak valid atau sudah digunakan"}
	ErrVoucherClaimed  = ConflictError{Resource: "voucher", Field: "email", Msg: "Email ini sudah pernah mengklaim voucher"}
	ErrSlotTaken       = ConflictError{Resource: "booking", Field: "scheduled_at", Msg: "Tanggal tersebut sudah dipesan"}
	ErrBadCredentials  = UnauthorizedError{Msg: "Email atau password salah"}
)

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

func IsUnauthorized(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}

// InlineField returns the form field a validation or conflict error points at.
func InlineField(err error) string {
	var v ValidationError
	if errors.As(err, &v) {
		return v.Field
	}
	var c ConflictError
	if errors.As(err, &c) {
		return c.Field
	}
	return ""
}

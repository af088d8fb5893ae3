package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error categories. Handlers map them to HTTP status codes; specific errors
// below match their category through errors.Is.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a specific failure belonging to one category.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return target == e.Kind
}

func newError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

var (
	ErrInvalidDates       = newError(ErrInvalidInput, "invalid_dates", "start date must be today or later and before the end date")
	ErrInvalidRating      = newError(ErrInvalidInput, "invalid_rating", "rating must be an integer between 1 and 5")
	ErrInvalidValue       = newError(ErrInvalidInput, "invalid_value", "value and unit cost must be non-negative numbers")
	ErrRoomConflict       = newError(ErrConflict, "room_conflict", "room is already booked for an overlapping period")
	ErrAlreadyExists      = newError(ErrConflict, "already_exists", "an invoice already exists for this reservation")
	ErrDuplicateReview    = newError(ErrConflict, "duplicate_review", "a review was already submitted for this reservation")
	ErrRoomLocked         = newError(ErrConflict, "room_locked", "room is being booked by another request, retry")
	ErrInvalidCredentials = newError(ErrUnauthorized, "invalid_credentials", "invalid credentials")
)

// Kind returns the category of err, or nil when err is not a service error.
func Kind(err error) error {
	for _, k := range []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrInvalidState, ErrUnauthorized} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Code returns the machine readable code for err.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	switch Kind(err) {
	case ErrInvalidInput:
		return "invalid_input"
	case ErrNotFound:
		return "not_found"
	case ErrConflict:
		return "conflict"
	case ErrInvalidState:
		return "invalid_state"
	case ErrUnauthorized:
		return "unauthorized"
	}
	return "internal"
}

// isDuplicateKey detects unique index violations across the supported drivers.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

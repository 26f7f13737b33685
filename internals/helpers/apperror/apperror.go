// Package apperror holds the typed domain errors shared by services and controllers.
package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindBusinessRule
	KindConflict
	KindInvalid
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBusinessRule:
		return "business_rule"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

const (
	CodeNotFound               = "NOT_FOUND"
	CodeCapacityExceeded       = "CAPACITY_EXCEEDED"
	CodeRoomUnderMaintenance   = "ROOM_UNDER_MAINTENANCE"
	CodeRoomNotEmpty           = "ROOM_NOT_EMPTY"
	CodeCapacityBelowOccupancy = "CAPACITY_BELOW_OCCUPANCY"
	CodeDuplicateIdentity      = "DUPLICATE_IDENTITY"
	CodeDuplicatePaymentPeriod = "DUPLICATE_PAYMENT_PERIOD"
	CodeDuplicateRoomNumber    = "DUPLICATE_ROOM_NUMBER"
	CodeDuplicateEmail         = "DUPLICATE_EMAIL"
	CodeDuplicateRecord        = "DUPLICATE_RECORD"
	CodeNoPendingPayments      = "NO_PENDING_PAYMENTS"
	CodeNotAssigned            = "NOT_ASSIGNED"
	CodePaymentAlreadyPaid     = "PAYMENT_ALREADY_PAID"
	CodeInvalidCredentials     = "INVALID_CREDENTIALS"
	CodeEmailNotVerified       = "EMAIL_NOT_VERIFIED"
	CodeInvalidToken           = "INVALID_TOKEN"
	CodeInvalidInput           = "INVALID_INPUT"
	CodeTxConflict             = "TX_CONFLICT"
)

// Error is a domain failure with a stable code. Two errors match under
// errors.Is when their codes are equal, so the sentinels below work as
// targets regardless of message.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrNotFound               = &Error{Kind: KindNotFound, Code: CodeNotFound}
	ErrCapacityExceeded       = &Error{Kind: KindBusinessRule, Code: CodeCapacityExceeded}
	ErrRoomUnderMaintenance   = &Error{Kind: KindBusinessRule, Code: CodeRoomUnderMaintenance}
	ErrRoomNotEmpty           = &Error{Kind: KindBusinessRule, Code: CodeRoomNotEmpty}
	ErrCapacityBelowOccupancy = &Error{Kind: KindBusinessRule, Code: CodeCapacityBelowOccupancy}
	ErrDuplicateIdentity      = &Error{Kind: KindBusinessRule, Code: CodeDuplicateIdentity}
	ErrDuplicatePaymentPeriod = &Error{Kind: KindBusinessRule, Code: CodeDuplicatePaymentPeriod}
	ErrDuplicateRoomNumber    = &Error{Kind: KindBusinessRule, Code: CodeDuplicateRoomNumber}
	ErrDuplicateEmail         = &Error{Kind: KindBusinessRule, Code: CodeDuplicateEmail}
	ErrDuplicateRecord        = &Error{Kind: KindBusinessRule, Code: CodeDuplicateRecord}
	ErrNoPendingPayments      = &Error{Kind: KindBusinessRule, Code: CodeNoPendingPayments}
	ErrNotAssigned            = &Error{Kind: KindBusinessRule, Code: CodeNotAssigned}
	ErrPaymentAlreadyPaid     = &Error{Kind: KindBusinessRule, Code: CodePaymentAlreadyPaid}
	ErrInvalidCredentials     = &Error{Kind: KindUnauthorized, Code: CodeInvalidCredentials}
	ErrEmailNotVerified       = &Error{Kind: KindUnauthorized, Code: CodeEmailNotVerified}
	ErrInvalidToken           = &Error{Kind: KindBusinessRule, Code: CodeInvalidToken}
	ErrInvalidInput           = &Error{Kind: KindInvalid, Code: CodeInvalidInput}
	ErrTxConflict             = &Error{Kind: KindConflict, Code: CodeTxConflict}
)

/* ===================== Constructors ===================== */

func NotFound(entity string, id any) error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: fmt.Sprintf("%s not found with id: %v", entity, id)}
}

func CapacityExceeded(roomNumber string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeCapacityExceeded,
		Message: fmt.Sprintf("Room '%s' is already at full capacity.", roomNumber)}
}

func RoomUnderMaintenance(roomNumber string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeRoomUnderMaintenance,
		Message: fmt.Sprintf("Room '%s' is under maintenance and cannot accept residents.", roomNumber)}
}

func RoomNotEmpty(roomNumber string, occupancy int) error {
	return &Error{Kind: KindBusinessRule, Code: CodeRoomNotEmpty,
		Message: fmt.Sprintf("Cannot delete room '%s' because it has %d resident(s) assigned.", roomNumber, occupancy)}
}

func CapacityBelowOccupancy(roomNumber string, capacity, occupancy int) error {
	return &Error{Kind: KindBusinessRule, Code: CodeCapacityBelowOccupancy,
		Message: fmt.Sprintf("Room '%s' capacity %d is below its current occupancy %d.", roomNumber, capacity, occupancy)}
}

func DuplicateIdentity(nic string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeDuplicateIdentity,
		Message: fmt.Sprintf("A resident with NIC '%s' already exists.", nic)}
}

func DuplicatePaymentPeriod(residentName, month string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeDuplicatePaymentPeriod,
		Message: fmt.Sprintf("A payment for resident '%s' for month '%s' already exists.", residentName, month)}
}

func DuplicateRoomNumber(roomNumber string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeDuplicateRoomNumber,
		Message: fmt.Sprintf("Room with number '%s' already exists.", roomNumber)}
}

func DuplicateEmail(email string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeDuplicateEmail,
		Message: fmt.Sprintf("An account with email '%s' already exists.", email)}
}

// DuplicateRecord covers per-day uniqueness of the operations tables.
func DuplicateRecord(msg string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeDuplicateRecord, Message: msg}
}

func NoPendingPayments() error {
	return &Error{Kind: KindBusinessRule, Code: CodeNoPendingPayments,
		Message: "No pending payments found for this resident."}
}

func NotAssigned() error {
	return &Error{Kind: KindBusinessRule, Code: CodeNotAssigned,
		Message: "Resident is not assigned to any room."}
}

func PaymentAlreadyPaid() error {
	return &Error{Kind: KindBusinessRule, Code: CodePaymentAlreadyPaid,
		Message: "A paid payment cannot be moved back to pending or late."}
}

func InvalidCredentials() error {
	return &Error{Kind: KindUnauthorized, Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func EmailNotVerified() error {
	return &Error{Kind: KindUnauthorized, Code: CodeEmailNotVerified,
		Message: "Please verify your email before logging in."}
}

func InvalidToken(msg string) error {
	return &Error{Kind: KindBusinessRule, Code: CodeInvalidToken, Message: msg}
}

func Invalid(msg string) error {
	return &Error{Kind: KindInvalid, Code: CodeInvalidInput, Message: msg}
}

// Conflict marks err as a retryable transaction conflict.
func Conflict(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindConflict, Code: CodeTxConflict,
		Message: "The operation conflicted with a concurrent change, please retry.", Err: err}
}

/* ===================== Inspection ===================== */

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return 0
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrTxConflict)
}

package code

import (
	"fmt"
	"net/http"
)

// Error is a stable business error: an HTTP status, a numeric code and a
// human-readable message. Values below are compared by business code, so a
// derived error (WithErr/WithMsg) still matches its base via Is.
type Error struct {
	status int
	code   int
	msg    string
	cause  error
}

func New(status int, code int, msg string) *Error {
	return &Error{status: status, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.code, e.msg, e.cause)
	}
	return fmt.Sprintf("[%d] %s", e.code, e.msg)
}

func (e *Error) String() string { return e.msg }

func (e *Error) HTTPStatus() int { return e.status }

func (e *Error) Code() int { return e.code }

func (e *Error) Msg() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.code == e.code
}

// WithErr attaches a cause without mutating the shared value.
func (e *Error) WithErr(err error) *Error {
	clone := *e
	clone.cause = err
	return &clone
}

// WithMsg overrides the message without mutating the shared value.
func (e *Error) WithMsg(msg string) *Error {
	clone := *e
	clone.msg = msg
	return &clone
}

func (e *Error) WithMsgf(format string, args ...any) *Error {
	return e.WithMsg(fmt.Sprintf(format, args...))
}

var (
	// generic
	ParamErr       = New(http.StatusBadRequest, 10001, "invalid request parameter")
	UnLogin        = New(http.StatusUnauthorized, 10002, "login required")
	QueryRecordErr = New(http.StatusInternalServerError, 10003, "query record failed")
	CreateDataErr  = New(http.StatusInternalServerError, 10004, "create record failed")
	UpdateDataErr  = New(http.StatusInternalServerError, 10005, "update record failed")
	RecordNotFound = New(http.StatusNotFound, 10404, "record not found")

	// identity
	TokenMissing        = New(http.StatusUnauthorized, 11001, "token not provided")
	TokenInvalid        = New(http.StatusUnauthorized, 11002, "token invalid or expired")
	RefreshTokenInvalid = New(http.StatusUnauthorized, 11003, "refresh token invalid or expired")
	UserNotFound        = New(http.StatusUnauthorized, 11004, "user not found")
	EmailTaken          = New(http.StatusBadRequest, 11005, "email already registered")
	BadCredentials      = New(http.StatusUnauthorized, 11006, "incorrect email or password")

	// ledger
	WarehouseNotFound  = New(http.StatusNotFound, 20001, "warehouse not found")
	AdditionNotFound   = New(http.StatusNotFound, 20002, "addition not found")
	WithdrawalNotFound = New(http.StatusNotFound, 20003, "withdrawal not found")
	ContractNotFound   = New(http.StatusNotFound, 20004, "contract not found")
	PlotNotFound       = New(http.StatusBadRequest, 20005, "plot not found")
	ContractRefInvalid = New(http.StatusBadRequest, 20006, "contract reference not found")

	// stock engine
	GrainConflict     = New(http.StatusBadRequest, 21001, "warehouse already holds movements with a different grain")
	CapacityExceeded  = New(http.StatusBadRequest, 21002, "warehouse capacity exceeded")
	InsufficientStock = New(http.StatusBadRequest, 21003, "withdrawal exceeds available stock")
)

package client

import "errors"

// Operation names used in Error.Op.
const (
	OpGetUploadURL   = "GetUploadURL"
	OpUpload         = "Upload"
	OpRegister       = "Register"
	OpLogin          = "Login"
	OpChangeUserName = "ChangeUserName"
	OpChangeEmail    = "ChangeEmail"
	OpChangePassword = "ChangePassword"
	OpChangeImage    = "ChangeImage"
	OpChangeSettings = "ChangeSettings"
	OpDeleteAccount  = "DeleteAccount"
	OpCreateHome     = "CreateHome"
	OpJoinHome       = "JoinHome"
	OpLeaveHome      = "LeaveHome"
)

var opMessages = map[string]string{
	OpRegister:       "Sign Up Error",
	OpLogin:          "Login Error",
	OpChangeUserName: "Change User Name Error",
	OpChangeEmail:    "Change Email Error",
	OpChangePassword: "Change Password Error",
	OpChangeImage:    "Error saving image",
	OpChangeSettings: "Change Settings Error",
	OpDeleteAccount:  "Delete Account Error",
	OpCreateHome:     "Error creating Home",
	OpJoinHome:       "Join Home Error",
	OpLeaveHome:      "Leave Home Error",
}

// OpMessage returns the generic user-visible failure text of op.
func OpMessage(op string) string {
	if m, ok := opMessages[op]; ok {
		return m
	}
	return op + " Error"
}

var (
	ErrInvalidResponse = errors.New("response is not valid JSON")
	ErrMissingSuccess  = errors.New("response has no success key")
	ErrBadStatus       = errors.New("unexpected response status")
	ErrMissingField    = errors.New("response is missing a required field")
)

// Error is the uniform failure of a gateway operation.
type Error struct {
	Op      string
	Message string
	// Domain is set when Message came verbatim from the backend.
	Domain bool
	Err    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func transportError(op string, err error) *Error {
	return &Error{Op: op, Message: OpMessage(op), Err: err}
}

// ValidationError builds a client-side failure raised before any request.
func ValidationError(op, message string) *Error {
	return &Error{Op: op, Message: message}
}

// IsDomain reports whether err carries a backend-reported message.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Domain
}

// Relabel returns err with its user-visible text replaced by message and
// its Op by op. Nil stays nil; non-*Error values are wrapped.
func Relabel(err error, op, message string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{Op: op, Message: message, Err: e}
	}
	return &Error{Op: op, Message: message, Err: err}
}

// Message returns the user-visible text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

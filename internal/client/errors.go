package client

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a failed analysis request
type ErrorKind string

const (
	// ErrKindNetworkUnavailable indicates the request never reached the service
	ErrKindNetworkUnavailable ErrorKind = "network_unavailable"

	// ErrKindServerRejected indicates a non-2xx response
	ErrKindServerRejected ErrorKind = "server_rejected"

	// ErrKindMalformedResponse indicates a 2xx response that is not an analysis result
	ErrKindMalformedResponse ErrorKind = "malformed_response"

	// ErrKindNoFileSelected indicates a file analysis without a file
	ErrKindNoFileSelected ErrorKind = "no_file_selected"

	// ErrKindFileUnreadable indicates the selected file could not be read for upload
	ErrKindFileUnreadable ErrorKind = "file_unreadable"
)

// User-facing messages
const (
	MsgNetworkUnavailable = "Сетевая ошибка: не удается подключиться к серверу."
	MsgTextFailed         = "Произошла ошибка при анализе текста."
	MsgFileFailed         = "Ошибка при анализе файла."
	MsgNoFileSelected     = "Пожалуйста, выберите файл для анализа."
	MsgMalformedResponse  = "Сервер вернул некорректный ответ."
	msgFileUnreadable     = "Не удалось прочитать файл"
)

// AnalysisError is the single error type that leaves the client. Message
// is what the dashboard shows to the user.
type AnalysisError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AnalysisError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.RequestID != "" {
		parts = append(parts, fmt.Sprintf("request=%s", e.RequestID))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Is matches another *AnalysisError of the same kind
func (e *AnalysisError) Is(target error) bool {
	if ae, ok := target.(*AnalysisError); ok {
		return e.Kind == ae.Kind
	}
	return false
}

// UserMessage returns the human-readable message for display
func (e *AnalysisError) UserMessage() string {
	return e.Message
}

// NewAnalysisError creates a new analysis error
func NewAnalysisError(kind ErrorKind, message string) *AnalysisError {
	return &AnalysisError{
		Kind:    kind,
		Message: message,
	}
}

// NewAnalysisErrorWithCause creates an analysis error with an underlying cause
func NewAnalysisErrorWithCause(kind ErrorKind, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

// NoFileSelected returns the error reported when a file analysis has no file
func NoFileSelected() *AnalysisError {
	return NewAnalysisError(ErrKindNoFileSelected, MsgNoFileSelected)
}

// FallbackMessage returns the generic failure message for a request kind
func FallbackMessage(kind Kind) string {
	if kind == KindFile {
		return MsgFileFailed
	}
	return MsgTextFailed
}

// Classify converts any error into an *AnalysisError. Errors that are
// already classified pass through; anything else is reported with the
// generic message for kind.
func Classify(err error, kind Kind) *AnalysisError {
	if err == nil {
		return nil
	}
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	return NewAnalysisErrorWithCause(ErrKindServerRejected, FallbackMessage(kind), err)
}

// IsNetworkError checks if an error is a transport-level failure
func IsNetworkError(err error) bool {
	return hasKind(err, ErrKindNetworkUnavailable)
}

// IsServerRejected checks if an error is a non-2xx response
func IsServerRejected(err error) bool {
	return hasKind(err, ErrKindServerRejected)
}

// IsMalformedResponse checks if an error is an unparseable success response
func IsMalformedResponse(err error) bool {
	return hasKind(err, ErrKindMalformedResponse)
}

// IsNoFileSelected checks if an error reports a missing file
func IsNoFileSelected(err error) bool {
	return hasKind(err, ErrKindNoFileSelected)
}

func hasKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Envelope is the body of every successful response.
type Envelope[T any] struct {
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Message string `json:"message" doc:"Human-readable outcome"`
	Data    *T     `json:"data,omitempty"`
}

func ok[T any](message string, data *T) Envelope[T] {
	return Envelope[T]{Success: true, Message: message, Data: data}
}

// ErrorEnvelope is the body of every failed response. It implements
// [huma.StatusError] and replaces huma's problem details through [NewError].
type ErrorEnvelope struct {
	status  int
	Success bool     `json:"success" doc:"Always false"`
	Message string   `json:"message" doc:"Human-readable error"`
	Errors  []string `json:"errors,omitempty" doc:"Details about client errors"`
}

var _ huma.StatusError = (*ErrorEnvelope)(nil)

func (e *ErrorEnvelope) Error() string  { return e.Message }
func (e *ErrorEnvelope) GetStatus() int { return e.status }

// NewError has the signature of [huma.NewError]. Requests failing schema
// validation are reported as [http.StatusBadRequest] like any invalid input.
// Details are only exposed for client errors; server errors carry nothing
// beyond a generic message.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	e := &ErrorEnvelope{status: status, Message: msg}
	if status >= http.StatusInternalServerError {
		return e
	}
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err.Error())
		}
	}
	return e
}

// UseEnvelopeErrors makes huma build every error response with [NewError].
// It replaces the package-level [huma.NewError] and must run before any
// operation is registered.
func UseEnvelopeErrors() { huma.NewError = NewError }

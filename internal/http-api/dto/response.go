package dto

import (
	"errors"

	"libraryhub/internal/http-api/apperr"
)

// APIResponse is the success envelope every JSON endpoint uses.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func Success(message string, data any) APIResponse {
	return APIResponse{Success: true, Message: message, Data: data}
}

// APIError carries the error kind as data so clients can tell failures
// apart without parsing message text.
type APIError struct {
	Kind    string `json:"name"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}

func Failure(err error) ErrorResponse {
	msg := err.Error()
	var e *apperr.Error
	if errors.As(err, &e) {
		msg = e.Msg
	}
	return ErrorResponse{
		Success: false,
		Message: "Validation failed",
		Error:   APIError{Kind: string(apperr.KindOf(err)), Message: msg},
	}
}

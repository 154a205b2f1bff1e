package api

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/taskdesk/internal/common"
)

// GenericMessage is used when a failed response carries no readable message.
const GenericMessage = "API error"

// Error is a failed API call. Message is meant to be shown to the user as is.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	if target == common.ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// messageFrom extracts the human readable message of a failed response body.
func messageFrom(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return GenericMessage
	}
	if eb.Message != "" {
		return eb.Message
	}
	if eb.Error != "" {
		return eb.Error
	}
	return GenericMessage
}

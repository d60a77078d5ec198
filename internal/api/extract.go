package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is an HTTP failure normalized at the client boundary.
//
// Message is the user-facing string produced by [Extract].
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

// statusMessages maps HTTP statuses to fixed user-facing sentences.
var statusMessages = map[int]string{
	0:   "Network error: Unable to connect to server",
	400: "Bad request: Please check your input",
	401: "Authentication required: Please log in",
	403: "Access denied: You do not have permission",
	404: "Not found: The requested resource does not exist",
	408: "Request timeout: Please try again",
	409: "Conflict: The resource already exists",
	422: "Validation error: Please check your input",
	429: "Too many requests: Please slow down",
	500: "Server error: Something went wrong on our end",
	502: "Bad gateway: Server is temporarily unavailable",
	503: "Service unavailable: Please try again later",
	504: "Gateway timeout: Server took too long to respond",
}

// StatusMessage returns the fixed sentence for an HTTP status.
func StatusMessage(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Error %d: An error occurred", status)
}

// validationParam is one entry of a field-validation error.
type validationParam struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
	Ctx struct {
		Error string `json:"error"`
	} `json:"ctx"`
}

// validationError is the structured field-validation error shape.
type validationError struct {
	BodyParams  []validationParam `json:"body_params"`
	QueryParams []validationParam `json:"query_params"`
	PathParams  []validationParam `json:"path_params"`
}

// errorBody covers every structured error shape the backend emits.
type errorBody struct {
	Error           string           `json:"error"`
	Message         string           `json:"message"`
	ValidationError *validationError `json:"validation_error"`
}

// Extract normalizes a failed HTTP response into one user-facing message.
//
// Precedence, first match wins: structured {error} verbatim, structured
// {message}, field-validation error (body, then query, then path params),
// plain string body (JSON-encoded or raw text), fixed status table.
func Extract(status int, body []byte) string {
	var structured errorBody
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			return structured.Error
		}
		if structured.Message != "" {
			return structured.Message
		}
		if msg, ok := firstValidationMessage(structured.ValidationError); ok {
			return msg
		}
		return StatusMessage(status)
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain
	}

	// Proxies and some framework layers answer in text/plain.
	if text := strings.TrimSpace(string(body)); text != "" && !json.Valid(body) {
		return text
	}

	return StatusMessage(status)
}

// firstValidationMessage formats the first field-validation entry as
// "<dotted field path>: <cleaned message>".
func firstValidationMessage(v *validationError) (string, bool) {
	if v == nil {
		return "", false
	}

	for _, params := range [][]validationParam{v.BodyParams, v.QueryParams, v.PathParams} {
		if len(params) == 0 {
			continue
		}
		p := params[0]

		msg := p.Msg
		if p.Ctx.Error != "" {
			msg = p.Ctx.Error
		}
		msg = strings.TrimPrefix(msg, "Value error, ")

		parts := make([]string, 0, len(p.Loc))
		for _, loc := range p.Loc {
			parts = append(parts, fmt.Sprint(loc))
		}

		if len(parts) == 0 {
			return msg, true
		}
		return strings.Join(parts, ".") + ": " + msg, true
	}

	return "", false
}

// ExtractErr produces a user-facing message for any error from the client.
//
// HTTP failures keep their extracted message; client-side errors (timeouts,
// connection failures) fall back to their own message or a generic default.
func ExtractErr(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return "An unexpected error occurred"
}

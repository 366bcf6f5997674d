package handlers

import "github.com/labstack/echo/v4"

// ErrorResponse is the JSON body of every error returned by the messaging
// endpoint.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes used in ErrorResponse.
const (
	CodeBadRequest      = "bad_request"
	CodeUnauthorized    = "unauthorized"
	CodeInvalidActivity = "invalid_activity"
)

func newHTTPError(status int, code, message string) *echo.HTTPError {
	return echo.NewHTTPError(status, ErrorResponse{Code: code, Message: message})
}

package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/woozymasta/bc1ep"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ResponseError `json:"error"`
}

// ResponseError describes a failed request.
type ResponseError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type httpError struct {
	status int
	typ    string
	msg    string
}

func (e *httpError) write(c *echo.Context) error {
	return writeError(c, e.status, e.typ, e.msg)
}

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, ErrorBody{Error: ResponseError{Type: errType, Message: msg}})
}

var extractErrorTypes = []struct {
	err error
	typ string
}{
	{bc1ep.ErrTooShort, "too_short"},
	{bc1ep.ErrBadMagic, "bad_magic"},
	{bc1ep.ErrBadHeaderSize, "bad_header_size"},
	{bc1ep.ErrUnsupportedFourCC, "unsupported_fourcc"},
	{bc1ep.ErrUnsupportedDxgiFormat, "unsupported_dxgi_format"},
	{bc1ep.ErrTruncated, "truncated"},
}

// writeExtractError maps pipeline failures to 400 responses; anything else
// is a 422 for undecodable container data.
func writeExtractError(c *echo.Context, err error) error {
	for _, et := range extractErrorTypes {
		if errors.Is(err, et.err) {
			return writeError(c, http.StatusBadRequest, et.typ, err.Error())
		}
	}
	return writeError(c, http.StatusUnprocessableEntity, "invalid_container", err.Error())
}

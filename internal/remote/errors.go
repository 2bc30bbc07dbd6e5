package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidID is wrapped by the RequestError returned for an id that
// cannot name a single todo.
var ErrInvalidID = errors.New("invalid todo id")

// RequestError is the single failure kind of the client: a transport
// failure (StatusCode 0) or a non-2xx response.
type RequestError struct {
	Op         string // list, get, create, update, delete
	Method     string
	URL        string
	StatusCode int
	Detail     string // server-provided message, if any
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.URL == "":
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.StatusCode == 0:
		return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.URL, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s %s: %d %s: %s", e.Op, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("%s: %s %s: %d %s", e.Op, e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a RequestError for a 404 response.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.StatusCode == http.StatusNotFound
}

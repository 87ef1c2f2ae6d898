package webutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/kiteco/difficulty/kite-golib/errors"
	"go.uber.org/zap"
)

// StatusCodeMap is a mapping from app error codes to the appropriate http status code.
// Each app should define its own mapping, and pass it into `ErrorResponse` to handle
// errors correctly.
type StatusCodeMap map[int]int

var exposeErrorMessages = os.Getenv("DIFFICULTY_EXPOSE_HTTP_ERRORS") != "OFF"

// --

// ErrorCode returns a new error object with the provided error code and message.
func ErrorCode(code int, message string) error {
	return errorf{
		code:    code,
		message: message,
	}
}

// ErrorCodef returns a new error object with the provided error code and formatted message.
func ErrorCodef(code int, message string, data ...interface{}) error {
	return ErrorCode(code, fmt.Sprintf(message, data...))
}

// --

// errorf is an internal error type that wraps an application error code
// with a message. It is comparable, so coded errors can be package-level
// sentinels checked with errors.Is.
type errorf struct {
	code    int
	message string
}

// Error implements the error interface
func (a errorf) Error() string {
	return fmt.Sprintf("error %d: %s", a.code, a.message)
}

// MarshalJSON implements the json.Marshaler interface
func (a errorf) MarshalJSON() ([]byte, error) {
	val := struct {
		Error string `json:"error"`
		Code  int    `json:"code"`
	}{
		Error: a.message,
		Code:  a.code,
	}

	return json.Marshal(val)
}

// Code returns the app error code carried by err or anything it wraps.
func Code(err error) (int, bool) {
	var errf errorf
	if errors.As(err, &errf) {
		return errf.code, true
	}
	return 0, false
}

// HasCode checks to see whether err is an errorf with the provided error code
func HasCode(err error, code int) bool {
	c, ok := Code(err)
	return ok && c == code
}

// --

// ErrorResponse handles writing errors to a http.ResponseWriter. Takes in an error and a mapping of
// error codes to http status codes, and responds with a JSON error payload.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error, statusMap StatusCodeMap, logger *zap.Logger) {
	msg := "Internal server error"
	if exposeErrorMessages {
		msg = err.Error()
	}

	var t errorf
	if !errors.As(err, &t) {
		logger.Error("responding with error", zap.String("path", r.URL.Path), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	status, exists := statusMap[t.code]
	if !exists {
		logger.Error("could not find mapping for code", zap.Int("code", t.code), zap.String("path", r.URL.Path), zap.Error(err))
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": msg})
		return
	}
	logger.Info("app error", zap.Int("code", t.code), zap.Int("status", status), zap.String("message", t.message))
	WriteJSON(w, status, t)
}

// WriteJSON writes v as the JSON body of a response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	buf, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf)
}

// ReportBadRequest reports a StatusBadRequest error
func ReportBadRequest(w http.ResponseWriter, s string, args ...interface{}) {
	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}
	WriteJSON(w, http.StatusBadRequest, map[string]string{"error": s})
}

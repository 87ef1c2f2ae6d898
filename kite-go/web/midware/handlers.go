package midware

import (
	"fmt"
	"net/http"
	"regexp"
	"runtime"
	"time"

	"github.com/codegangsta/negroni"
	"go.uber.org/zap"
)

// Wrap wraps the provided handler with the default set of middleware.
func Wrap(handler http.Handler, logger *zap.Logger) http.Handler {
	return negroni.New(
		NewRecovery(logger),
		NewLogger(logger),
		NewNoCache(),
		negroni.Wrap(handler),
	)
}

// Logger is a HTTP request logger for use as negroni middleware.
type Logger struct {
	logger *zap.Logger
}

// NewLogger returns a Logger negroni.Handler that will log requests
// to the provided logger.
func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{
		logger: logger,
	}
}

// ServeHTTP implements negroni.Handler
func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	start := time.Now()
	next(w, r)
	url := r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.Query().Encode()
	}

	if ignoreForLogging(r.Method, url) {
		return
	}

	fields := []zap.Field{
		zap.String("method", r.Method),
		zap.String("url", url),
		zap.Duration("duration", time.Since(start)),
	}
	// Log HTTP status and content size if this is a negroni.ResponseWriter
	if rw, ok := w.(negroni.ResponseWriter); ok {
		fields = append(fields, zap.Int("status", rw.Status()), zap.Int("size", rw.Size()))
	}
	l.logger.Info("request", fields...)
}

var ignorePatterns = []*regexp.Regexp{
	regexp.MustCompile("^GET /health$"),
}

func ignoreForLogging(method string, url string) bool {
	s := method + " " + url
	for _, re := range ignorePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// --

// Recovery is a panic recovery middleware handler for negroni.
type Recovery struct {
	logger     *zap.Logger
	PrintStack bool
	StackAll   bool
	StackSize  int
}

// NewRecovery returns a new Recovery negroni.Handler
func NewRecovery(logger *zap.Logger) *Recovery {
	return &Recovery{
		logger:     logger,
		PrintStack: true,
		StackAll:   false,
		StackSize:  1028 * 8,
	}
}

// ServeHTTP implements negroni.Handler
func (rec *Recovery) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	defer func(req *http.Request) {
		if err := recover(); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal server error"}`))

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.String("panic", fmt.Sprint(err)),
			}
			if rec.PrintStack {
				stack := make([]byte, rec.StackSize)
				stack = stack[:runtime.Stack(stack, rec.StackAll)]
				fields = append(fields, zap.ByteString("stack", stack))
			}
			rec.logger.Error("[recovery!]", fields...)
		}
	}(r)

	next(w, r)
}

// NoCache is a middleware handler for setting no-cache headers.
type NoCache struct{}

// NewNoCache returns a NoCache negroni.Handler that sets the no-cache headers.
func NewNoCache() *NoCache {
	return &NoCache{}
}

// ServeHTTP implements negroni.Handler
func (nc *NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	newRw := negroni.NewResponseWriter(w)

	// ensure no caching occurs, must occur before response has been written
	newRw.Before(func(rw negroni.ResponseWriter) {
		h := rw.Header()
		h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
		h.Set("Pragma", "no-cache")
		h.Set("Expires", "0")
	})

	next(newRw, r)
}

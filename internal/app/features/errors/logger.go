// internal/app/features/errors/logger.go
package errors

import (
	"net/http"

	"github.com/trueportme/adminconsole/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure and answers the request with a
// friendly message.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger returns an ErrorLogger writing to logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
}

// LogServerError logs err and responds 500 with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg, e.fields(r, err)...)
	respond(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs err and responds 400 with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Warn(logMsg, e.fields(r, err)...)
	respond(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogAPIError answers with the status the API chose when it is a client
// error, and 502 otherwise. The API's own message is shown when it sent one.
func (e *ErrorLogger) LogAPIError(w http.ResponseWriter, r *http.Request, logMsg string, err error, backURL string) {
	status := apiclient.StatusOf(err)
	msg := apiclient.MessageOf(err)

	switch {
	case status == http.StatusUnauthorized:
		e.Log.Info(logMsg, e.fields(r, err)...)
		RenderUnauthorized(w, r, "")
		return
	case status == http.StatusForbidden:
		e.Log.Info(logMsg, e.fields(r, err)...)
		if msg == "" {
			msg = "You don't have permission to do that."
		}
		RenderForbidden(w, r, msg, backURL)
		return
	case status >= 400 && status < 500:
		e.Log.Warn(logMsg, e.fields(r, err)...)
		if msg == "" {
			msg = http.StatusText(status)
		}
		respond(w, r, status, http.StatusText(status), msg, backURL)
		return
	}

	e.Log.Error(logMsg, e.fields(r, err)...)
	if msg == "" || status == 0 {
		msg = "The TruePortMe service is unavailable. Please try again."
	}
	respond(w, r, http.StatusBadGateway, "Service unavailable", msg, backURL)
}

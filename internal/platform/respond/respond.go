// Package respond renders the {success, ...} response envelope and wires huma's
// error constructors to it.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/platform/logging"
)

// Error codes.
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

const (
	msgNotFound         = "resource not found"
	msgMethodNotAllowed = "method not allowed"
	msgInternal         = "internal server error"
)

// Meta is embedded in every success body so payload fields sit beside "success".
type Meta struct {
	Success bool `json:"success" doc:"Always true for 2xx responses"`
}

// OK returns the success marker.
func OK() Meta {
	return Meta{Success: true}
}

// FieldIssue gives field-level or contextual error information.
type FieldIssue struct {
	Field string `json:"field,omitempty"`
	Issue string `json:"issue"`
}

// ErrorBody describes an error in a predictable structured format.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldIssue `json:"details,omitempty"`
	TraceID *string      `json:"traceId,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

var installOnce sync.Once

// Install makes huma render every error through the shared envelope.
// Schema validation failures (422 in huma) are reported as 400 VALIDATION_ERROR.
func Install() {
	installOnce.Do(func() {
		huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
			return newStatusError(context.Background(), status, msg, errs...)
		}
		huma.NewErrorWithContext = func(hctx huma.Context, status int, msg string, errs ...error) huma.StatusError {
			ctx := context.Background()
			if hctx != nil {
				ctx = hctx.Context()
			}
			return newStatusError(ctx, status, msg, errs...)
		}
	})
}

// Error builds an envelope error carrying the request's trace ID. For 5xx statuses
// errs are logged but never rendered.
func Error(ctx context.Context, status int, msg string, errs ...error) huma.StatusError {
	return newStatusError(ctx, status, msg, errs...)
}

// Validation builds a 400 VALIDATION_ERROR with field issues.
func Validation(ctx context.Context, msg string, issues ...FieldIssue) huma.StatusError {
	se := newStatusError(ctx, http.StatusBadRequest, msg)
	se.ErrorEnvelope.Error.Details = append(se.ErrorEnvelope.Error.Details, issues...)
	return se
}

// WriteError renders an error envelope outside huma (router fallbacks, panics),
// honoring an Accept header that prefers CBOR.
func WriteError(w http.ResponseWriter, r *http.Request, status int, msg string, errs ...error) error {
	se := newStatusError(r.Context(), status, msg, errs...)
	return write(w, r, se.status, se.ErrorEnvelope)
}

// NotFoundHandler emits an envelope 404 for unknown routes.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := WriteError(w, r, http.StatusNotFound, msgNotFound); err != nil {
			logging.LogError(r.Context(), "failed to render not found", err)
		}
	}
}

// MethodNotAllowedHandler emits an envelope 405 with an Allow header.
func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if allow := allowedMethods(r); len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
		}
		if err := WriteError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed); err != nil {
			logging.LogError(r.Context(), "failed to render method not allowed", err)
		}
	}
}

// Recoverer converts panics into envelope 500 responses.
func Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				err = fmt.Errorf("%w\n%s", err, debug.Stack())
				if writeErr := WriteError(w, r, http.StatusInternalServerError, msgInternal, err); writeErr != nil {
					logging.LogError(r.Context(), "failed to render internal error", writeErr)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

type statusEnvelopeError struct {
	ErrorEnvelope
	status int
}

func (e *statusEnvelopeError) Error() string {
	return e.ErrorEnvelope.Error.Message
}

func (e *statusEnvelopeError) GetStatus() int {
	return e.status
}

func newStatusError(ctx context.Context, status int, msg string, errs ...error) *statusEnvelopeError {
	if ctx == nil {
		ctx = context.Background()
	}
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	code := CodeFor(status)
	msg = messageOrDefault(status, msg)

	var issues []FieldIssue
	if status < http.StatusInternalServerError {
		issues = issuesFromErrors(errs)
	}
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("code", code),
	}
	if len(issues) > 0 {
		fields = append(fields, zap.Any("details", issues))
	}
	logWithStatus(ctx, status, msg, errors.Join(errs...), fields...)

	return &statusEnvelopeError{
		status: status,
		ErrorEnvelope: ErrorEnvelope{
			Error: ErrorBody{
				Code:    code,
				Message: msg,
				Details: issues,
				TraceID: logging.TraceIDFromContext(ctx),
			},
		},
	}
}

// CodeFor maps an HTTP status to its error code.
func CodeFor(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeAuthRequired
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusInternalServerError:
		return CodeInternal
	}
	return statusCodeName(status)
}

func issuesFromErrors(errs []error) []FieldIssue {
	issues := make([]FieldIssue, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		issue := FieldIssue{Issue: err.Error()}
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			if detail := detailer.ErrorDetail(); detail != nil {
				issue.Issue = detail.Message
				issue.Field = detail.Location
			}
		}
		issues = append(issues, issue)
	}
	if len(issues) == 0 {
		return nil
	}
	return issues
}

func statusCodeName(status int) string {
	name := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	name = strings.ReplaceAll(name, "-", "_")
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("HTTP_%d", status)
	}
	return name
}

func messageOrDefault(status int, msg string) string {
	if strings.TrimSpace(msg) != "" {
		return msg
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

func logWithStatus(ctx context.Context, status int, msg string, err error, fields ...zap.Field) {
	switch {
	case status >= 500:
		logging.LogError(ctx, msg, err, fields...)
	default:
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logging.LogWarn(ctx, msg, fields...)
	}
}

func write(w http.ResponseWriter, r *http.Request, status int, body any) error {
	if acceptsCBOR(r) {
		data, err := cbor.Marshal(body)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/cbor")
		w.WriteHeader(status)
		_, err = w.Write(data)
		return err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

// acceptsCBOR reports whether CBOR is listed before JSON in the Accept header.
func acceptsCBOR(r *http.Request) bool {
	for part := range strings.SplitSeq(r.Header.Get("Accept"), ",") {
		mt := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		switch mt {
		case "application/cbor":
			return true
		case "application/json", "*/*":
			return false
		}
	}
	return false
}

// allowedMethods inspects chi's routing context to discover allowed methods.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	routePath := rctx.RoutePath
	if routePath == "" {
		routePath = r.URL.Path
	}
	if routePath == "" {
		routePath = "/"
	}

	methods := []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	allowed := make([]string, 0, len(methods))
	for _, method := range methods {
		if rctx.Routes.Match(chi.NewRouteContext(), method, routePath) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

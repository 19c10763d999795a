package logging

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"go.uber.org/zap"
)

const (
	traceparentHeader = "traceparent"
	cloudTraceHeader  = "X-Cloud-Trace-Context"
)

// W3C Trace Context: {version}-{trace-id}-{parent-id}-{trace-flags}
var traceparentRe = regexp.MustCompile(`^([0-9a-fA-F]{2})-([0-9a-fA-F]{32})-([0-9a-fA-F]{16})-([0-9a-fA-F]{2})$`)

// Legacy Cloud Run header: TRACE_ID/SPAN_ID;o=OPTIONS
var cloudTraceRe = regexp.MustCompile(`^([0-9a-fA-F]+)/([0-9]+)(?:;o=(\d))?$`)

var (
	projectIDOnce   sync.Once
	cachedProjectID string
)

// spanContext is the subset of trace metadata Cloud Logging understands.
type spanContext struct {
	traceID string
	spanID  string
	sampled bool
}

// parseTrace accepts a traceparent value first and falls back to X-Cloud-Trace-Context.
func parseTrace(traceparent, cloudTrace string) (spanContext, bool) {
	if m := traceparentRe.FindStringSubmatch(traceparent); len(m) == 5 {
		return spanContext{traceID: m[2], spanID: m[3], sampled: m[4] == "01"}, true
	}
	if m := cloudTraceRe.FindStringSubmatch(cloudTrace); len(m) == 4 {
		return spanContext{traceID: m[1], spanID: m[2], sampled: m[3] == "1"}, true
	}
	return spanContext{}, false
}

func traceResource(sc spanContext, projectID string) string {
	if projectID == "" || sc.traceID == "" {
		return ""
	}
	return fmt.Sprintf("projects/%s/traces/%s", projectID, sc.traceID)
}

func traceFields(sc spanContext, projectID string) []zap.Field {
	resource := traceResource(sc, projectID)
	if resource == "" {
		return nil
	}
	return []zap.Field{
		zap.String("logging.googleapis.com/trace", resource),
		zap.String("logging.googleapis.com/spanId", sc.spanID),
		zap.Bool("logging.googleapis.com/trace_sampled", sc.sampled),
	}
}

func loggerWithTrace(base *zap.Logger, sc spanContext, projectID, requestID string) *zap.Logger {
	if base == nil {
		base = zap.NewNop()
	}
	fields := traceFields(sc, projectID)
	if requestID != "" {
		fields = append(fields, zap.String("requestId", requestID))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func resolveProjectID() string {
	projectIDOnce.Do(func() {
		cachedProjectID = firstNonEmpty(
			os.Getenv("FIREBASE_PROJECT_ID"),
			os.Getenv("GOOGLE_CLOUD_PROJECT"),
			os.Getenv("GCP_PROJECT"),
			os.Getenv("PROJECT_ID"),
		)
	})
	return cachedProjectID
}

// Package health serves the liveness endpoint used by Cloud Run and load balancers.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// Handler returns a plain HTTP handler reporting the service as healthy with
// its build version. It never touches the stores.
func Handler(version string) http.HandlerFunc {
	body, _ := json.Marshal(Response{Status: "healthy", Version: version})
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}

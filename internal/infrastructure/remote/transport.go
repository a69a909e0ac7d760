package remote

import (
	"eshop-client/pkg/logger"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// loggingTransport stamps every outbound request with an X-Request-ID and
// logs method, url, status and duration.
type loggingTransport struct {
	next http.RoundTripper
}

func NewLoggingTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next}
}

func (t *loggingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	start := time.Now()

	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()[:8]
		r = r.Clone(r.Context())
		r.Header.Set("X-Request-ID", requestID)
	}

	reqLogger := logger.WithRequestID(requestID)
	ctx := logger.NewContext(r.Context(), &reqLogger)

	resp, err := t.next.RoundTrip(r)

	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	logger.RemoteCall(ctx, r.Method, r.URL.Redacted(), status, time.Since(start), err)
	return resp, err
}

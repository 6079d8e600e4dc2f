package backend

import (
	"net/http"

	"github.com/google/uuid"
)

// requestIDTransport stamps every outbound request with an X-Request-ID
// header so backend logs can be correlated with client activity. An ID
// already set by the caller is kept.
type requestIDTransport struct {
	next http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("X-Request-ID") == "" {
		// Per RoundTripper contract the request must not be mutated.
		req = req.Clone(req.Context())
		req.Header.Set("X-Request-ID", uuid.New().String())
	}
	return t.next.RoundTrip(req)
}

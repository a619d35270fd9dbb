package services

import (
	"net/http"
	"sync"
	"time"
)

// DefaultHttpClient returns the shared HTTP client for outbound API calls.
// The timeout bounds every knowledge-base round trip; call sites convert a
// timeout into an absent result rather than a pipeline failure.
var DefaultHttpClient = sync.OnceValue(func() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
})

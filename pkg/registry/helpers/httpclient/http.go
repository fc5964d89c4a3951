package httpclient

import (
	"net/http"
	"time"
)

// HTTPClient is the shared client for all outbound calls. Long-lived and
// read-mostly; handed to the API clients at assembly time.
var HTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}

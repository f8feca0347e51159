package extractor

import (
	"resty.dev/v3"
)

// NewHTTPClient creates the HTTP client shared by extractors. Requests are
// sent once; there is no retry policy and no client-side timeout beyond what
// the caller's context imposes.
func NewHTTPClient(baseURL string, headers map[string]string) *resty.Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	for name, value := range headers {
		client.SetHeader(name, value)
	}

	return client
}

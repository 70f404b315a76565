package http

import "net/http"

type headerAuthTransport struct {
	header    string
	value     string
	transport http.RoundTripper
}

func (t *headerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	if t.value != "" {
		reqCopy.Header.Set(t.header, t.value)
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends the token as a Bearer Authorization header
func WithAuthToken(token string) HttpOpts {
	return WithAuthHeader("Authorization", "Bearer "+token)
}

// WithAuthHeader sends the credential in an arbitrary header, e.g.
// x-goog-api-key for Google APIs
func WithAuthHeader(header, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerAuthTransport{
			header:    header,
			value:     value,
			transport: rt,
		}
	})
}

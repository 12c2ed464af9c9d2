package gateway

import (
	"net/http"

	"github.com/dmitrijs2005/repslog/internal/common"
)

// authTransport sets the Authorization header from tokens and turns
// 401/403 responses into common.ErrUnauthorized.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens != nil {
		token, err := t.tokens.Token(req.Context())
		if err != nil {
			return nil, err
		}
		if token != "" {
			req = req.Clone(req.Context())
			req.Header.Set(common.AuthorizationHeaderName, token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		resp.Body.Close()
		return nil, common.ErrUnauthorized
	}

	return resp, nil
}

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-playground/errors/v5"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

// Exchange trades an authorization code for an access token. GitHub expects
// the parameters in the query string and reports failures either as a non-OK
// status or as an error field inside an OK JSON body (a replayed single-use
// code yields "bad_verification_code").
func (o *OAuth) Exchange(ctx context.Context, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", o.config.ClientID)
	q.Set("redirect_uri", o.config.RedirectURL)
	q.Set("client_secret", o.config.ClientSecret)
	q.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.config.Endpoint.TokenURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", errors.Wrap(err, "http.NewRequestWithContext()")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", WrapError(KindProvider, err, "token exchange request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewError(KindProvider, fmt.Sprintf("token exchange returned status %d", resp.StatusCode))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", WrapError(KindMalformedResponse, err, "token exchange response is not valid JSON")
	}

	if tr.Error != "" {
		return "", NewError(KindProvider, fmt.Sprintf("provider rejected the code: %s: %s", tr.Error, tr.ErrorDesc))
	}

	if tr.AccessToken == "" {
		return "", NewError(KindValidation, "token exchange response has no access_token")
	}

	return tr.AccessToken, nil
}

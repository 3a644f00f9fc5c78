package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/errors/v5"
)

// RawProfile is the user object exactly as returned by the GitHub API.
// Numbers are decoded as json.Number so the integer user id survives intact.
type RawProfile map[string]any

// Profile fetches the authenticated user's raw profile. The User-Agent
// header is mandatory; GitHub rejects API requests without one.
func (o *OAuth) Profile(ctx context.Context, accessToken string) (RawProfile, error) {
	resp, err := o.get(ctx, o.userURL, accessToken)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, NewError(KindProvider, fmt.Sprintf("profile fetch returned status %d", resp.StatusCode))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var raw RawProfile
	if err := dec.Decode(&raw); err != nil {
		return nil, WrapError(KindMalformedResponse, err, "profile response is not valid JSON")
	}

	return raw, nil
}

type emailEntry struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// PrimaryEmail fetches the user's primary verified email address, falling
// back to any verified email and then to the first one listed. Accounts
// with a private email return an empty email field from the user endpoint,
// making this call the only source.
func (o *OAuth) PrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	resp, err := o.get(ctx, o.emailsURL, accessToken)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewError(KindProvider, fmt.Sprintf("email fetch returned status %d", resp.StatusCode))
	}

	var emails []emailEntry
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", WrapError(KindMalformedResponse, err, "email response is not valid JSON")
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}

	return "", NewError(KindValidation, "no email addresses on account")
}

func (o *OAuth) get(ctx context.Context, u, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "http.NewRequestWithContext()")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", o.userAgent)
	req.Header.Set("Authorization", "token "+accessToken)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, WrapError(KindProvider, err, "GitHub API request failed")
	}

	return resp, nil
}

package githubauth

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/cccteam/githubauth/oauth"
)

// ProviderName is the provider recorded on every canonical profile.
const ProviderName = "GitHub"

// Profile is the canonical user identity produced by a successful
// authentication, independent of GitHub's field names. It is built once per
// attempt and mutated only by the optional ProfileEnricher.
type Profile struct {
	ID          string  `json:"id"`
	Username    string  `json:"username,omitempty"`
	DisplayName string  `json:"displayName"`
	Provider    string  `json:"provider"`
	Emails      []Email `json:"emails,omitempty"`
	Photos      []Photo `json:"photos,omitempty"`
}

// Email is one of the profile's email addresses.
type Email struct {
	Value string `json:"value"`
	Type  string `json:"type,omitempty"`
}

// Photo is one of the profile's avatar images.
type Photo struct {
	URL string `json:"url"`
}

// ProfileEnricher customizes the mapped profile before the success responder
// fires. It receives the raw GitHub fields unmodified alongside the profile
// it may mutate.
type ProfileEnricher interface {
	Update(ctx context.Context, p *Profile, raw oauth.RawProfile) error
}

// NewProfile maps GitHub's raw user object into the canonical profile shape.
// The id field must be an integer; every other field is optional.
func NewProfile(raw oauth.RawProfile) (*Profile, error) {
	id, err := profileID(raw["id"])
	if err != nil {
		return nil, err
	}

	p := &Profile{
		ID:       id,
		Provider: ProviderName,
	}
	if name, ok := raw["name"].(string); ok {
		p.DisplayName = name
	}
	if login, ok := raw["login"].(string); ok {
		p.Username = login
	}
	if email, ok := raw["email"].(string); ok && email != "" {
		p.Emails = []Email{{Value: email, Type: "public"}}
	}
	if avatar, ok := raw["avatar_url"].(string); ok && avatar != "" {
		p.Photos = []Photo{{URL: avatar}}
	}

	return p, nil
}

// profileID normalizes GitHub's integer user id to its decimal string form.
// Raw profiles decoded by the oauth package carry json.Number; the other
// numeric cases cover profiles assembled programmatically.
func profileID(v any) (string, error) {
	switch id := v.(type) {
	case json.Number:
		n, err := id.Int64()
		if err != nil {
			return "", oauth.WrapError(oauth.KindValidation, err, "profile id is not an integer")
		}

		return strconv.FormatInt(n, 10), nil
	case float64:
		if id != float64(int64(id)) {
			return "", oauth.NewError(oauth.KindValidation, "profile id is not an integer")
		}

		return strconv.FormatInt(int64(id), 10), nil
	case int:
		return strconv.Itoa(id), nil
	case int64:
		return strconv.FormatInt(id, 10), nil
	case nil:
		return "", oauth.NewError(oauth.KindValidation, "profile has no id field")
	default:
		return "", oauth.NewError(oauth.KindValidation, "profile id is not an integer")
	}
}

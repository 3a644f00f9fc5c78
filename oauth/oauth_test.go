package oauth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/securecookie"
)

func TestOAuth_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		clientID     string
		clientSecret string
		callbackURL  string
		wantErr      bool
	}{
		{
			name:         "valid configuration",
			clientID:     "testClientID",
			clientSecret: "testClientSecret",
			callbackURL:  "https://app.example.com/auth/callback",
		},
		{
			name:        "missing client secret",
			clientID:    "testClientID",
			callbackURL: "https://app.example.com/auth/callback",
			wantErr:     true,
		},
		{
			name:         "missing client id",
			clientSecret: "testClientSecret",
			callbackURL:  "https://app.example.com/auth/callback",
			wantErr:      true,
		},
		{
			name:         "missing callback url",
			clientID:     "testClientID",
			clientSecret: "testClientSecret",
			wantErr:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := New(tt.clientID, tt.clientSecret, tt.callbackURL)

			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("OAuth.Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
			if err != nil {
				if kind, ok := KindOf(err); !ok || kind != KindConfiguration {
					t.Errorf("KindOf() = %v, want %v", kind, KindConfiguration)
				}
			}
		})
	}
}

func TestOAuth_AuthCodeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		options   []Option
		wantScope string
	}{
		{
			name: "no scopes",
		},
		{
			name:      "scopes joined by a single space",
			options:   []Option{WithScopes("read:user", "user:email")},
			wantScope: "read:user user:email",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := New("testClientID", "testClientSecret", "https://app.example.com/auth/callback", tt.options...)
			w := httptest.NewRecorder()

			got, err := o.AuthCodeURL(w, "")
			if err != nil {
				t.Fatalf("OAuth.AuthCodeURL() error = %v", err)
			}

			u, err := url.Parse(got)
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}
			if !strings.HasPrefix(got, "https://github.com/login/oauth/authorize?") {
				t.Errorf("OAuth.AuthCodeURL() = %v, want github authorize endpoint", got)
			}

			q := u.Query()
			if q.Get("client_id") != "testClientID" {
				t.Errorf("client_id = %v, want testClientID", q.Get("client_id"))
			}
			if q.Get("redirect_uri") != "https://app.example.com/auth/callback" {
				t.Errorf("redirect_uri = %v, want callback url", q.Get("redirect_uri"))
			}
			if q.Get("response_type") != "code" {
				t.Errorf("response_type = %v, want code", q.Get("response_type"))
			}
			if q.Get("scope") != tt.wantScope {
				t.Errorf("scope = %q, want %q", q.Get("scope"), tt.wantScope)
			}
			if q.Has("state") {
				t.Errorf("state = %v, want none without a state cookie", q.Get("state"))
			}
			if len(w.Result().Cookies()) != 0 {
				t.Errorf("cookies = %v, want none without a state cookie", w.Result().Cookies())
			}
		})
	}
}

func TestOAuth_AuthCodeURL_stateCookie(t *testing.T) {
	t.Parallel()

	sc := securecookie.New(securecookie.GenerateRandomKey(32), nil)
	o := New("testClientID", "testClientSecret", "https://app.example.com/auth/callback", WithStateCookie(sc))
	w := httptest.NewRecorder()

	got, err := o.AuthCodeURL(w, "/dashboard")
	if err != nil {
		t.Fatalf("OAuth.AuthCodeURL() error = %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("url.Parse() error = %v", err)
	}
	state := u.Query().Get("state")
	if state == "" {
		t.Fatal("state parameter is empty, want a random value")
	}

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == stCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatalf("state cookie %q was not written", stCookieName)
	}

	cval := make(map[stKey]string)
	if err := sc.Decode(stCookieName, cookie.Value, &cval); err != nil {
		t.Fatalf("securecookie.Decode() error = %v", err)
	}
	if cval[stState] != state {
		t.Errorf("cookie state = %v, want %v", cval[stState], state)
	}
	if cval[stReturnURL] != "/dashboard" {
		t.Errorf("cookie returnURL = %v, want /dashboard", cval[stReturnURL])
	}
}

func TestOAuth_Verify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		state         string
		returnURL     string
		omitCookie    bool
		wantReturnURL string
		wantErr       bool
	}{
		{
			name:          "valid state",
			returnURL:     "/dashboard",
			wantReturnURL: "/dashboard",
		},
		{
			name:          "empty returnURL defaults to root",
			wantReturnURL: "/",
		},
		{
			name:    "state mismatch",
			state:   "tampered",
			wantErr: true,
		},
		{
			name:       "missing state cookie",
			omitCookie: true,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sc := securecookie.New(securecookie.GenerateRandomKey(32), nil)
			o := New("testClientID", "testClientSecret", "https://app.example.com/auth/callback", WithStateCookie(sc))

			w := httptest.NewRecorder()
			authCodeURL, err := o.AuthCodeURL(w, tt.returnURL)
			if err != nil {
				t.Fatalf("OAuth.AuthCodeURL() error = %v", err)
			}

			u, err := url.Parse(authCodeURL)
			if err != nil {
				t.Fatalf("url.Parse() error = %v", err)
			}
			state := u.Query().Get("state")
			if tt.state != "" {
				state = tt.state
			}

			r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=testCode&state="+url.QueryEscape(state), http.NoBody)
			if !tt.omitCookie {
				for _, c := range w.Result().Cookies() {
					r.AddCookie(c)
				}
			}

			returnURL, err := o.Verify(httptest.NewRecorder(), r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OAuth.Verify() error = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if kind, ok := KindOf(err); !ok || kind != KindValidation {
					t.Errorf("KindOf() = %v, want %v", kind, KindValidation)
				}

				return
			}
			if returnURL != tt.wantReturnURL {
				t.Errorf("OAuth.Verify() returnURL = %v, want %v", returnURL, tt.wantReturnURL)
			}
		})
	}
}

func TestOAuth_Verify_withoutStateCookie(t *testing.T) {
	t.Parallel()

	o := New("testClientID", "testClientSecret", "https://app.example.com/auth/callback")
	r := httptest.NewRequest(http.MethodGet, "/auth/callback?code=testCode", http.NoBody)

	returnURL, err := o.Verify(httptest.NewRecorder(), r)
	if err != nil {
		t.Fatalf("OAuth.Verify() error = %v", err)
	}
	if returnURL != "" {
		t.Errorf("OAuth.Verify() returnURL = %v, want empty", returnURL)
	}
}

package oauth

import (
	"net/http"
	"time"

	"github.com/go-playground/errors/v5"
)

type stKey string

func (c stKey) String() string {
	return string(c)
}

const (
	stCookieName = "GH_OAUTH"
	// Keys used in the state cookie
	stState     stKey = "state"
	stReturnURL stKey = "returnURL"

	stateCookieExpiration = 10 * time.Minute
)

func (o *OAuth) writeStateCookie(w http.ResponseWriter, cval map[stKey]string) error {
	encoded, err := o.sc.Encode(stCookieName, cval)
	if err != nil {
		return errors.Wrap(err, "securecookie.Encode()")
	}

	http.SetCookie(w, &http.Cookie{
		Name:    stCookieName,
		Expires: time.Now().Add(stateCookieExpiration),
		Value:   encoded,
		Path:    "/",
		Secure:  o.secure,
	})

	return nil
}

func (o *OAuth) readStateCookie(r *http.Request) (map[stKey]string, bool) {
	c, err := r.Cookie(stCookieName)
	if err != nil {
		return nil, false
	}

	cval := make(map[stKey]string)
	if err := o.sc.Decode(stCookieName, c.Value, &cval); err != nil {
		return nil, false
	}

	return cval, true
}

func (o *OAuth) deleteStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:    stCookieName,
		Expires: time.Unix(0, 0),
		Path:    "/",
		Secure:  o.secure,
	})
}

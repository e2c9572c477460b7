package session

import (
	"io/ioutil"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/tlwa/courseadmin/core"
)

// Store persists the bearer token obtained at login, the way the browser
// client kept it in local storage. The token is attached to requests when
// present; an expired token is still attached (the backend decides), only
// logged.
type Store struct {
	path string
	log  core.Logger

	token  string
	loaded bool
}

func NewStore(path string, logger core.Logger) *Store {
	if path == "" {
		path = core.Conf.GetString("tokenPath")
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Store{path: path, log: logger}
}

// Token implements restapi.TokenSource.
func (s *Store) Token() string {
	if !s.loaded {
		s.load()
	}
	if s.token != "" && s.Expired() {
		s.log.Warn("stored token has expired", map[string]interface{}{"path": s.path})
	}
	return s.token
}

func (s *Store) load() {
	s.loaded = true
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error("session: read token", err)
		}
		return
	}
	s.token = strings.TrimSpace(string(data))
}

// Save persists a new token.
func (s *Store) Save(token string) error {
	token = core.CleanString(token)
	if err := ioutil.WriteFile(s.path, []byte(token), 0600); err != nil {
		return errors.Wrap(err, "session.Save")
	}
	s.token = token
	s.loaded = true
	return nil
}

// Clear forgets the persisted token.
func (s *Store) Clear() error {
	s.token = ""
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "session.Clear")
	}
	return nil
}

// Expired decodes the token's exp claim without verifying the signature;
// verification is the backend's job.
func (s *Store) Expired() bool {
	if !s.loaded {
		s.load()
	}
	if s.token == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(s.token, claims); err != nil {
		// opaque (non-JWT) tokens never expire client-side
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}

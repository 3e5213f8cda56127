package guard

import (
	"encoding/json"
	"errors"
)

// Session is the authentication state of one visitor.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	Role          string `json:"role,omitempty"`
	Token         string `json:"-"`
}

// HasRole reports whether the session is authenticated with role.
func (s Session) HasRole(role string) bool {
	return s.Authenticated && s.Role != "" && s.Role == role
}

// record is the durable form of a session.
type record struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func marshalRecord(token, role string) ([]byte, error) {
	return json.Marshal(record{Token: token, Role: role})
}

// sessionFromRecord hydrates a session only when both token and role are
// present; anything else is an anonymous session.
func sessionFromRecord(data []byte) (Session, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Session{}, err
	}
	if rec.Token == "" || rec.Role == "" {
		return Session{}, errors.Join(ErrInvalidCredentials, errors.New("stored session lacks token or role"))
	}
	return Session{Authenticated: true, Role: rec.Role, Token: rec.Token}, nil
}

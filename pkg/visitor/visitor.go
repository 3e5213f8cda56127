package visitor

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minSecretLength = 32

type Config struct {
	CookieName string        `env:"VISITOR_COOKIE_NAME" envDefault:"vid"`
	Secrets    []string      `env:"VISITOR_SECRETS" envSeparator:","`
	MaxAge     time.Duration `env:"VISITOR_COOKIE_MAX_AGE" envDefault:"8760h"`
	Secure     bool          `env:"VISITOR_SECURE_COOKIES" envDefault:"false"`
}

// Manager issues and verifies visitor cookies.
type Manager struct {
	name    string
	secrets []string
	maxAge  time.Duration
	secure  bool
}

// New validates cfg and returns a Manager.
func New(cfg Config) (*Manager, error) {
	secrets := slices.DeleteFunc(slices.Clone(cfg.Secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	name := cfg.CookieName
	if name == "" {
		name = "vid"
	}
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 365 * 24 * time.Hour
	}

	return &Manager{name: name, secrets: secrets, maxAge: maxAge, secure: cfg.Secure}, nil
}

// Identify returns the visitor ID carried by r, issuing a fresh one (and
// setting its cookie on w) when the cookie is missing or fails verification.
// The boolean reports whether the ID is new.
func (m *Manager) Identify(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	if c, err := r.Cookie(m.name); err == nil {
		if id, err := m.verify(c.Value); err == nil {
			return id, false
		}
	}

	id := uuid.New()
	m.set(w, id)
	return id, true
}

func (m *Manager) set(w http.ResponseWriter, id uuid.UUID) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    m.sign(id),
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sign returns "<uuid>.<base64url(hmac)>".
func (m *Manager) sign(id uuid.UUID) string {
	raw := id.String()
	return raw + "." + mac(m.secrets[0], raw)
}

func (m *Manager) verify(value string) (uuid.UUID, error) {
	raw, sig, ok := strings.Cut(value, ".")
	if !ok || raw == "" || sig == "" {
		return uuid.Nil, ErrInvalidFormat
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidFormat, err)
	}

	for _, secret := range m.secrets {
		if hmac.Equal([]byte(sig), []byte(mac(secret, raw))) {
			return id, nil
		}
	}
	return uuid.Nil, ErrInvalidSignature
}

func mac(secret, value string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// Package session persists per-requester state across requests in a
// signed (and optionally encrypted) cookie.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/ubermelon/shop/internal/domain"
)

const (
	defaultCookieName = "ubermelon_session"
	defaultCookiePath = "/"
	defaultLifetime   = 30 * 24 * time.Hour
)

// ErrInvalidConfig indicates the manager was initialised with missing
// or invalid options.
var ErrInvalidConfig = errors.New("session: invalid config")

// Data is the full persisted session payload: the typed shopping
// session plus transport-level extras (flash messages, creation time).
type Data struct {
	Session   domain.Session `json:"session"`
	Flashes   []string       `json:"flashes,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`

	dirty bool
}

// Flash queues a one-shot message for the next rendered page.
func (d *Data) Flash(msg string) {
	d.Flashes = append(d.Flashes, msg)
	d.dirty = true
}

// ConsumeFlashes drains and returns the queued flash messages.
func (d *Data) ConsumeFlashes() []string {
	out := d.Flashes
	d.Flashes = nil
	if len(out) > 0 {
		d.dirty = true
	}
	return out
}

// MarkDirty flags the session for persistence at the end of the request.
func (d *Data) MarkDirty() { d.dirty = true }

// Dirty reports whether the payload changed during this request.
func (d *Data) Dirty() bool { return d.dirty }

// Config controls cookie encoding and lifecycle for the Manager.
type Config struct {
	CookieName   string
	HashKey      []byte
	BlockKey     []byte
	CookiePath   string
	CookieSecure bool
	Lifetime     time.Duration
	Now          func() time.Time
}

// Manager decodes and persists session state via securecookie.
type Manager struct {
	cfg   Config
	codec *securecookie.SecureCookie
	now   func() time.Time
}

// NewManager constructs a Manager using the provided configuration.
// The hash key is mandatory; a block key additionally enables
// encryption of the payload.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.HashKey) == 0 {
		return nil, fmt.Errorf("%w: hash key is required", ErrInvalidConfig)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = defaultCookiePath
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = defaultLifetime
	}
	nowFn := cfg.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	codec := securecookie.New(cfg.HashKey, cfg.BlockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})

	return &Manager{cfg: cfg, codec: codec, now: nowFn}, nil
}

// Load retrieves the session from the incoming request. A missing,
// tampered, or undecodable cookie starts a fresh anonymous session
// rather than failing the request.
func (m *Manager) Load(r *http.Request) *Data {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return m.newData()
	}

	var stored Data
	if err := m.codec.Decode(m.cfg.CookieName, cookie.Value, &stored); err != nil {
		return m.newData()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = m.now().UTC()
		stored.dirty = true
	}
	return &stored
}

// Save writes the session back to the response as a cookie.
func (m *Manager) Save(w http.ResponseWriter, data *Data) error {
	if data == nil {
		return errors.New("session: nil data")
	}

	encoded, err := m.codec.Encode(m.cfg.CookieName, data)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    encoded,
		Path:     m.cfg.CookiePath,
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  m.now().Add(m.cfg.Lifetime).UTC(),
	})
	return nil
}

// Clear expires the session cookie immediately.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "",
		Path:     m.cfg.CookiePath,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.cfg.CookieSecure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// CookieName exposes the configured cookie name (used by tests).
func (m *Manager) CookieName() string { return m.cfg.CookieName }

func (m *Manager) newData() *Data {
	return &Data{
		CreatedAt: m.now().UTC(),
		dirty:     true,
	}
}

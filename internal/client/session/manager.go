package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/store"
	"github.com/dmitrijs2005/planplant/internal/common"
	"github.com/dmitrijs2005/planplant/internal/logging"
)

// Manager owns the session State and its persisted copy.
// It is safe for concurrent use.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger logging.Logger
	ttl    int
	state  State
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithTTLDays overrides the lifetime of written keys.
func WithTTLDays(days int) Option {
	return func(m *Manager) { m.ttl = days }
}

func NewManager(st store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:  st,
		logger: logging.Nop(),
		ttl:    common.CookieTTLDays,
		state:  defaultState(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Hydrate rebuilds the session from the store. It succeeds only when token,
// user name, user id, image and settings are all present and non-empty and
// settings decodes as a JSON object; the home name is optional.
// On success every key is re-written to extend its expiry. On failure the
// in-memory state is left untouched.
func (m *Manager) Hydrate(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	vals := make(map[string]string, len(AllKeys))
	for _, k := range AllKeys {
		v, ok, err := m.store.Get(ctx, k)
		if err != nil {
			m.logger.Warn(ctx, "session hydrate: store read failed", "key", k, "error", err)
			return false
		}
		if !ok {
			continue
		}
		vals[k] = v
	}

	for _, k := range []string{KeyToken, KeyUserName, KeyUserID, KeyImage, KeySettings} {
		if vals[k] == "" {
			m.logger.Debug(ctx, "session hydrate: required key missing", "key", k)
			return false
		}
	}

	settings, err := ParseSettings([]byte(vals[KeySettings]))
	if err != nil {
		m.logger.Debug(ctx, "session hydrate: settings undecodable", "value", vals[KeySettings])
		return false
	}

	m.state.Token = vals[KeyToken]
	m.state.UserName = vals[KeyUserName]
	m.state.UserID = vals[KeyUserID]
	m.state.Image = vals[KeyImage]
	m.state.Settings = settings
	m.state.HomeName = vals[KeyHomeName]

	vals[KeyHomeName] = m.state.HomeName
	for _, k := range AllKeys {
		if err := m.store.Set(ctx, k, vals[k], m.ttl); err != nil {
			m.logger.Warn(ctx, "session hydrate: refresh failed", "key", k, "error", err)
		}
	}

	m.logger.Info(ctx, "session hydrated", "user", m.state.UserName, "home", m.state.HomeName)
	return true
}

// Commit updates the named fields in memory and writes only their keys.
// Memory is updated even when a write fails; write errors are joined.
func (m *Manager) Commit(ctx context.Context, f Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	type write struct{ key, value string }
	var writes []write

	set := func(dst *string, src *string, key string) {
		if src == nil {
			return
		}
		*dst = *src
		writes = append(writes, write{key, *src})
	}
	set(&m.state.Token, f.Token, KeyToken)
	set(&m.state.UserName, f.UserName, KeyUserName)
	set(&m.state.UserID, f.UserID, KeyUserID)
	set(&m.state.Image, f.Image, KeyImage)

	if f.Settings != nil {
		raw, err := json.Marshal(f.Settings)
		if err != nil {
			return fmt.Errorf("failed to encode settings: %w", err)
		}
		m.state.Settings = f.Settings.Clone()
		writes = append(writes, write{KeySettings, string(raw)})
	}

	set(&m.state.HomeName, f.HomeName, KeyHomeName)

	var errs []error
	for _, w := range writes {
		if err := m.store.Set(ctx, w.key, w.value, m.ttl); err != nil {
			errs = append(errs, err)
		}
	}
	m.logger.Debug(ctx, "session committed", "keys", len(writes))
	return errors.Join(errs...)
}

// Reset logs the session out: identity fields cleared, settings back to
// the default, no home, and every persisted key removed. The in-memory
// reset happens even if the store fails.
func (m *Manager) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	landing := m.state.LandingDone
	m.state = defaultState()
	m.state.LandingDone = landing

	if err := m.store.Clear(ctx, AllKeys...); err != nil {
		m.logger.Warn(ctx, "session reset: store clear failed", "error", err)
		return fmt.Errorf("failed to clear session: %w", err)
	}
	m.logger.Info(ctx, "session reset")
	return nil
}

func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state
	s.Settings = m.state.Settings.Clone()
	return s
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Token
}

func (m *Manager) UserName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.UserName
}

func (m *Manager) HomeName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.HomeName
}

func (m *Manager) Settings() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Settings.Clone()
}

func (m *Manager) Vibrate() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Settings.Vibrate()
}

// MarkLandingDone records that the entry redirect has run. It is not
// persisted.
func (m *Manager) MarkLandingDone() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.LandingDone = true
}

func (m *Manager) LandingDone() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.LandingDone
}

// RequireToken returns the token or common.ErrNotLoggedIn.
func (m *Manager) RequireToken() (string, error) {
	t := m.Token()
	if t == "" {
		return "", common.ErrNotLoggedIn
	}
	return t, nil
}

// Package session holds the in-memory mirror of the logged-in user and
// keeps it in step with the persistent cookie store.
//
// One Manager is built by the application root and handed to every
// consumer; there is no package-level session.
package session

import (
	"encoding/json"
	"errors"
	"maps"
)

// Persistent keys. Every key is written with common.CookieTTLDays.
const (
	KeyToken    = "planPlant_token"
	KeyUserName = "planPlant_name"
	KeyUserID   = "planPlant_id"
	KeyImage    = "planPlant_image"
	KeySettings = "planPlant_settings"
	KeyHomeName = "planPlant_homeName"
)

// AllKeys lists every persisted key in write order.
var AllKeys = []string{KeyToken, KeyUserName, KeyUserID, KeyImage, KeySettings, KeyHomeName}

// SettingVibrate enables haptic pulses on transitions.
const SettingVibrate = "vibrate"

// Settings are the user's boolean preferences.
type Settings map[string]bool

// DefaultSettings returns a fresh {vibrate: true}.
func DefaultSettings() Settings {
	return Settings{SettingVibrate: true}
}

var errSettingsNotObject = errors.New("settings are not a JSON object")

// ParseSettings decodes a JSON object of preferences. Entries that are not
// booleans are dropped.
func ParseSettings(raw []byte) (Settings, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errSettingsNotObject
	}
	s := make(Settings, len(m))
	for k, v := range m {
		if b, ok := v.(bool); ok {
			s[k] = b
		}
	}
	return s, nil
}

func (s Settings) Clone() Settings {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}

// Vibrate reports the vibrate flag. An absent flag is off.
func (s Settings) Vibrate() bool {
	return s[SettingVibrate]
}

// State is a value snapshot of the session. Empty strings stand for
// "not set".
type State struct {
	Token    string
	UserName string
	UserID   string
	Image    string
	HomeName string
	Settings Settings

	LandingDone bool
}

func (s State) LoggedIn() bool { return s.Token != "" }

func (s State) HasHome() bool { return s.HomeName != "" }

func defaultState() State {
	return State{Settings: DefaultSettings()}
}

// Fields names the fields a Commit touches. Nil members are left alone.
type Fields struct {
	Token    *string
	UserName *string
	UserID   *string
	Image    *string
	HomeName *string
	Settings Settings
}

// Ptr is a convenience for building Fields literals.
func Ptr[T any](v T) *T { return &v }

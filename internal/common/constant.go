// Package common contains shared constants and sentinel errors used across
// PlanPlant client components.
package common

// TokenHeaderName is the HTTP header carrying the session token on
// authenticated backend requests.
const TokenHeaderName = "token"

// CookieTTLDays is the lifetime applied to every persisted session key.
const CookieTTLDays = 365

// HapticPulseMillis is the length of the vibration pulse fired on
// screen transitions and toggles.
const HapticPulseMillis = 25

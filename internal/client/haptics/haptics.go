// Package haptics fires the short vibration pulse that accompanies screen
// transitions and toggles.
package haptics

import (
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/planplant/internal/common"
)

// Pulse is the length of one feedback pulse.
const Pulse = common.HapticPulseMillis * time.Millisecond

type Vibrator interface {
	Vibrate(d time.Duration)
}

// Feedback pulses a Vibrator when enabled reports true. A nil enabled
// func means always on.
type Feedback struct {
	v       Vibrator
	enabled func() bool
}

func New(v Vibrator, enabled func() bool) *Feedback {
	return &Feedback{v: v, enabled: enabled}
}

func (f *Feedback) Pulse() {
	if f == nil || f.v == nil {
		return
	}
	if f.enabled != nil && !f.enabled() {
		return
	}
	f.v.Vibrate(Pulse)
}

// TerminalVibrator rings the terminal bell.
type TerminalVibrator struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminalVibrator(w io.Writer) *TerminalVibrator {
	return &TerminalVibrator{w: w}
}

func (t *TerminalVibrator) Vibrate(time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = io.WriteString(t.w, "\a")
}

type Nop struct{}

func (Nop) Vibrate(time.Duration) {}

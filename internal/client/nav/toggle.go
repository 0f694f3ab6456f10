package nav

import "sync"

// Toggle is a value-carrying slider. Its knob travels a quarter of the
// track width; a release past an eighth of the width (or a flick) sets the
// value.
type Toggle struct {
	mu       sync.Mutex
	width    float64
	on       bool
	pos      float64
	dragging bool
	action   func(on bool)
	haptics  Haptics
}

type ToggleOption func(*Toggle)

func WithToggleHaptics(h Haptics) ToggleOption {
	return func(t *Toggle) { t.haptics = h }
}

// NewToggle returns a settled toggle. action runs after every actual
// value change, after the haptic pulse.
func NewToggle(width float64, on bool, action func(on bool), opts ...ToggleOption) *Toggle {
	t := &Toggle{width: width, on: on, action: action}
	for _, o := range opts {
		o(t)
	}
	t.pos = t.rest()
	return t
}

func (t *Toggle) travel() float64 { return t.width / 4 }

func (t *Toggle) rest() float64 {
	if t.on {
		return t.travel()
	}
	return 0
}

func clamp(v, lo, hi float64) float64 { return min(max(v, lo), hi) }

func (t *Toggle) BeginDrag() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dragging = true
}

// UpdateDrag places the knob for a displacement mx. Rightward motion
// measures from the left end, leftward motion from the right end.
func (t *Toggle) UpdateDrag(mx float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dragging {
		return
	}
	tr := t.travel()
	if mx > 0 {
		t.pos = clamp(mx, 0, tr)
	} else {
		t.pos = tr - clamp(-mx, 0, tr)
	}
}

// EndDrag settles the knob and reports whether the value changed.
func (t *Toggle) EndDrag(mx, vx float64) bool {
	t.mu.Lock()
	t.dragging = false
	threshold := t.width / 8
	switch {
	case mx > threshold || vx > 1:
		t.mu.Unlock()
		return t.set(true)
	case mx < -threshold || vx < -1:
		t.mu.Unlock()
		return t.set(false)
	default:
		t.pos = t.rest()
		t.mu.Unlock()
		return false
	}
}

// Click flips the value.
func (t *Toggle) Click() bool {
	t.mu.Lock()
	next := !t.on
	t.mu.Unlock()
	return t.set(next)
}

func (t *Toggle) set(on bool) bool {
	t.mu.Lock()
	changed := t.on != on
	t.on = on
	t.pos = t.rest()
	t.mu.Unlock()

	if !changed {
		return false
	}
	if t.haptics != nil {
		t.haptics.Pulse()
	}
	if t.action != nil {
		t.action(on)
	}
	return true
}

func (t *Toggle) On() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.on
}

func (t *Toggle) Position() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pos
}

// Progress is the knob position as a fraction of its travel.
func (t *Toggle) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr := t.travel()
	if tr == 0 {
		return 0
	}
	return clamp(t.pos/tr, 0, 1)
}

func (t *Toggle) Dragging() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dragging
}

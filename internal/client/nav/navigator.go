package nav

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/common"
	"github.com/dmitrijs2005/planplant/internal/logging"
)

// Gesture constants, in distance units and units per millisecond.
const (
	Overscroll        = 20.0
	CommitDistance    = 100.0
	CommitVelocity    = 1.0
	DefaultTrackWidth = 390.0
)

var ErrDragInProgress = errors.New("drag already in progress")

// Haptics is the feedback pulse fired on transitions.
type Haptics interface {
	Pulse()
}

type GoToOptions struct {
	// KeepForm skips the form reset.
	KeepForm bool
	// Silent skips the haptic pulse.
	Silent bool
}

// Outcome of a gesture release.
type Outcome int

const (
	Ignored Outcome = iota
	SnappedBack
	Committed
)

func (o Outcome) String() string {
	switch o {
	case SnappedBack:
		return "snapped back"
	case Committed:
		return "committed"
	default:
		return "ignored"
	}
}

type drag struct {
	screen Screen
	back   Screen
	offset float64
}

// Navigator is safe for concurrent use. One drag may be active at a time.
type Navigator struct {
	mu        sync.Mutex
	layout    Layout
	width     float64
	trail     []Screen
	offsets   map[Screen]float64
	drag      *drag
	haptics   Haptics
	resetForm func()
	onChange  func(Screen)
	logger    logging.Logger
}

type Option func(*Navigator)

func WithHaptics(h Haptics) Option {
	return func(n *Navigator) { n.haptics = h }
}

// WithFormReset sets the callback run by transitions without KeepForm.
func WithFormReset(fn func()) Option {
	return func(n *Navigator) { n.resetForm = fn }
}

// WithOnChange sets a callback invoked with the new current screen after
// every settled transition. It runs without the navigator lock held.
func WithOnChange(fn func(Screen)) Option {
	return func(n *Navigator) { n.onChange = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(n *Navigator) { n.logger = l }
}

// New returns a navigator settled on the initial screen. It panics if the
// layout is invalid or width is not positive; layouts are static tables.
func New(layout Layout, width float64, opts ...Option) *Navigator {
	if err := layout.Validate(); err != nil {
		panic(err)
	}
	if width <= 0 {
		panic("nav: width must be positive")
	}
	n := &Navigator{
		layout:  layout,
		width:   width,
		offsets: make(map[Screen]float64, len(layout.Screens)),
		logger:  logging.Nop(),
	}
	for _, o := range opts {
		o(n)
	}
	n.trail = []Screen{layout.Initial()}
	n.settle()
	return n
}

// settle places every screen from the trail. Caller holds mu.
func (n *Navigator) settle() {
	for _, s := range n.layout.Screens {
		n.offsets[s] = n.width
	}
	for _, s := range n.trail[:len(n.trail)-1] {
		n.offsets[s] = -n.width
	}
	n.offsets[n.current()] = 0
}

func (n *Navigator) current() Screen { return n.trail[len(n.trail)-1] }

func (n *Navigator) backTarget() (Screen, bool) {
	if len(n.trail) < 2 {
		return "", false
	}
	return n.trail[len(n.trail)-2], true
}

// retrail computes the trail that ends at target. Caller holds mu.
func (n *Navigator) retrail(target Screen) []Screen {
	for i, s := range n.trail {
		if s == target {
			return n.trail[:i+1]
		}
	}
	if n.layout.Transient[target] {
		return append(n.trail[:len(n.trail):len(n.trail)], target)
	}
	path, _ := n.layout.chain(target)
	return path
}

// GoTo settles on screen. Any active drag ends.
func (n *Navigator) GoTo(screen Screen, opts GoToOptions) error {
	n.mu.Lock()
	if !n.layout.Has(screen) {
		n.mu.Unlock()
		return common.ErrUnknownScreen
	}
	n.move(screen)
	n.mu.Unlock()

	n.logger.Debug(context.Background(), "screen", "to", string(screen), "keepForm", opts.KeepForm)
	n.after(screen, !opts.KeepForm, !opts.Silent)
	return nil
}

// move ends any drag and settles on screen. Caller holds mu.
func (n *Navigator) move(screen Screen) {
	n.drag = nil
	n.trail = n.retrail(screen)
	n.settle()
}

// after runs side effects outside the lock.
func (n *Navigator) after(screen Screen, reset, pulse bool) {
	if reset && n.resetForm != nil {
		n.resetForm()
	}
	if pulse && n.haptics != nil {
		n.haptics.Pulse()
	}
	if n.onChange != nil {
		n.onChange(screen)
	}
}

// Enter is the first entry of the page: settle on the initial screen and
// reset forms without a pulse.
func (n *Navigator) Enter() {
	n.mu.Lock()
	n.drag = nil
	n.trail = []Screen{n.layout.Initial()}
	n.settle()
	initial := n.current()
	n.mu.Unlock()

	n.after(initial, true, false)
}

// Back moves to the back target. The form is kept unless the target is
// the initial screen. It reports false when already at the root.
func (n *Navigator) Back() (Screen, bool) {
	n.mu.Lock()
	target, ok := n.backTarget()
	if !ok {
		n.mu.Unlock()
		return "", false
	}
	n.move(target)
	n.mu.Unlock()

	n.after(target, target == n.layout.Initial(), true)
	return target, true
}

func (n *Navigator) Current() Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current()
}

// Trail returns the screens from the initial one to the current one.
func (n *Navigator) Trail() []Screen {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Screen(nil), n.trail...)
}

func (n *Navigator) Offsets() map[Screen]float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return maps.Clone(n.offsets)
}

func (n *Navigator) Offset(s Screen) float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.offsets[s]
}

func (n *Navigator) Width() float64 { return n.width }

func (n *Navigator) Layout() Layout { return n.layout }

func (n *Navigator) Dragging() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.drag != nil
}

func (n *Navigator) DragOffset() (float64, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.drag == nil {
		return 0, false
	}
	return n.drag.offset, true
}

// Settled reports that no drag is active and exactly one screen is at 0
// with every other one a full width away.
func (n *Navigator) Settled() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.drag != nil {
		return false
	}
	zero := 0
	for _, o := range n.offsets {
		switch o {
		case 0:
			zero++
		case n.width, -n.width:
		default:
			return false
		}
	}
	return zero == 1
}

// Armed reports whether the back gesture is allowed on the current screen.
func (n *Navigator) Armed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, ok := n.backTarget()
	return ok && n.layout.Armed[n.current()]
}

// BeginDrag starts a back gesture. On a screen that is not armed the
// gesture is cancelled with common.ErrGestureNotArmed and nothing moves.
func (n *Navigator) BeginDrag() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.drag != nil {
		return ErrDragInProgress
	}
	back, ok := n.backTarget()
	if !ok || !n.layout.Armed[n.current()] {
		return common.ErrGestureNotArmed
	}
	n.drag = &drag{screen: n.current(), back: back}
	return nil
}

// UpdateDrag moves the dragged pair by mx, limiting forward motion to
// Overscroll. It reports false when no drag applies.
func (n *Navigator) UpdateDrag(mx float64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.drag == nil || n.drag.screen != n.current() {
		return false
	}
	d := max(mx, -Overscroll)
	n.drag.offset = d
	n.offsets[n.drag.screen] = d
	n.offsets[n.drag.back] = -n.width + d
	return true
}

// CancelDrag drops the active drag and restores the settled offsets.
func (n *Navigator) CancelDrag() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.drag == nil {
		return
	}
	n.drag = nil
	n.settle()
}

// EndDrag releases the gesture at displacement mx and velocity vx. It
// commits to the back target iff mx > CommitDistance or vx > CommitVelocity,
// otherwise it snaps back keeping the form. A release with no drag, or
// after the screen changed under the drag, is Ignored.
func (n *Navigator) EndDrag(mx, vx float64) Outcome {
	n.mu.Lock()
	d := n.drag
	n.drag = nil
	if d == nil || d.screen != n.current() {
		n.mu.Unlock()
		return Ignored
	}

	target, out := d.screen, SnappedBack
	if mx > CommitDistance || vx > CommitVelocity {
		target, out = d.back, Committed
	}
	n.move(target)
	n.mu.Unlock()

	n.logger.Debug(context.Background(), "gesture", "outcome", out.String(), "to", string(target))
	n.after(target, out == Committed && target == n.layout.Initial(), true)
	return out
}

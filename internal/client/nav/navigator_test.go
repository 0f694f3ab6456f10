package nav

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/dmitrijs2005/planplant/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	welcome Screen = "welcome"
	login   Screen = "login"
	signup  Screen = "signup"
	loading Screen = "loading"
	camera  Screen = "camera"
)

const W = 390.0

func authLayout() Layout {
	return Layout{
		Screens:   []Screen{welcome, login, signup, loading, camera},
		Parents:   map[Screen]Screen{login: welcome, signup: welcome, camera: signup},
		Transient: Set(loading),
		Armed:     Set(login, signup, camera),
	}
}

type counter struct{ n int }

func (c *counter) Pulse() { c.n++ }

type harness struct {
	nav    *Navigator
	pulses *counter
	resets int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{pulses: &counter{}}
	h.nav = New(authLayout(), W, WithHaptics(h.pulses), WithFormReset(func() { h.resets++ }))
	return h
}

func (h *harness) goTo(t *testing.T, s Screen, o GoToOptions) {
	t.Helper()
	require.NoError(t, h.nav.GoTo(s, o))
}

func TestNew_SettledOnInitial(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, welcome, h.nav.Current())
	assert.Equal(t, map[Screen]float64{welcome: 0, login: W, signup: W, loading: W, camera: W}, h.nav.Offsets())
	assert.True(t, h.nav.Settled())
	assert.Zero(t, h.pulses.n)
	assert.Zero(t, h.resets)
}

func TestGoTo_Offsets(t *testing.T) {
	h := newHarness(t)

	h.goTo(t, login, GoToOptions{})
	assert.Equal(t, map[Screen]float64{welcome: -W, login: 0, signup: W, loading: W, camera: W}, h.nav.Offsets())
	assert.Equal(t, 1, h.pulses.n)
	assert.Equal(t, 1, h.resets)

	h.goTo(t, loading, GoToOptions{KeepForm: true})
	assert.Equal(t, map[Screen]float64{welcome: -W, login: -W, signup: W, loading: 0, camera: W}, h.nav.Offsets())
	assert.Equal(t, 1, h.resets, "keepForm skips the reset")

	h.goTo(t, login, GoToOptions{KeepForm: true})
	assert.Equal(t, map[Screen]float64{welcome: -W, login: 0, signup: W, loading: W, camera: W}, h.nav.Offsets())
	assert.Equal(t, []Screen{welcome, login}, h.nav.Trail())
}

func TestGoTo_LoadingFromSignupAndCamera(t *testing.T) {
	h := newHarness(t)

	h.goTo(t, signup, GoToOptions{})
	h.goTo(t, camera, GoToOptions{KeepForm: true})
	assert.Equal(t, map[Screen]float64{welcome: -W, login: W, signup: -W, loading: W, camera: 0}, h.nav.Offsets())

	h.goTo(t, signup, GoToOptions{KeepForm: true})
	h.goTo(t, loading, GoToOptions{KeepForm: true})
	assert.Equal(t, map[Screen]float64{welcome: -W, login: W, signup: -W, loading: 0, camera: W}, h.nav.Offsets())
}

func TestGoTo_ParentChainFromRoot(t *testing.T) {
	h := newHarness(t)

	h.goTo(t, camera, GoToOptions{})
	assert.Equal(t, []Screen{welcome, signup, camera}, h.nav.Trail())
}

func TestGoTo_UnknownScreen(t *testing.T) {
	h := newHarness(t)

	err := h.nav.GoTo("nowhere", GoToOptions{})
	require.ErrorIs(t, err, common.ErrUnknownScreen)
	assert.Equal(t, welcome, h.nav.Current())
	assert.Zero(t, h.pulses.n)
}

func TestGoTo_Silent(t *testing.T) {
	h := newHarness(t)

	h.goTo(t, login, GoToOptions{Silent: true})
	assert.Zero(t, h.pulses.n)
}

func TestEnter_NoPulse(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, signup, GoToOptions{})
	pulses := h.pulses.n

	h.nav.Enter()
	assert.Equal(t, welcome, h.nav.Current())
	assert.True(t, h.nav.Settled())
	assert.Equal(t, pulses, h.pulses.n)
	assert.Equal(t, 2, h.resets)
}

func TestBack(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, signup, GoToOptions{})
	h.goTo(t, camera, GoToOptions{KeepForm: true})
	resets := h.resets

	s, ok := h.nav.Back()
	require.True(t, ok)
	assert.Equal(t, signup, s)
	assert.Equal(t, resets, h.resets, "back to a non-initial screen keeps the form")

	s, ok = h.nav.Back()
	require.True(t, ok)
	assert.Equal(t, welcome, s)
	assert.Equal(t, resets+1, h.resets)

	_, ok = h.nav.Back()
	assert.False(t, ok)
}

func TestBeginDrag_NotArmed(t *testing.T) {
	h := newHarness(t)

	require.ErrorIs(t, h.nav.BeginDrag(), common.ErrGestureNotArmed)
	assert.False(t, h.nav.Dragging())
	assert.False(t, h.nav.UpdateDrag(50))
	assert.True(t, h.nav.Settled())

	h.goTo(t, login, GoToOptions{})
	h.goTo(t, loading, GoToOptions{KeepForm: true})
	before := h.nav.Offsets()
	require.ErrorIs(t, h.nav.BeginDrag(), common.ErrGestureNotArmed)
	assert.Equal(t, before, h.nav.Offsets())
	assert.False(t, h.nav.Armed())
}

func TestDrag_UpdatesActivePair(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, login, GoToOptions{})

	require.NoError(t, h.nav.BeginDrag())
	require.ErrorIs(t, h.nav.BeginDrag(), ErrDragInProgress)

	assert.True(t, h.nav.UpdateDrag(50))
	assert.Equal(t, map[Screen]float64{welcome: -W + 50, login: 50, signup: W, loading: W, camera: W}, h.nav.Offsets())
	assert.False(t, h.nav.Settled())

	h.nav.UpdateDrag(-100)
	d, ok := h.nav.DragOffset()
	require.True(t, ok)
	assert.Equal(t, -20.0, d)
	assert.Equal(t, -20.0, h.nav.Offset(login))
	assert.Equal(t, -W-20, h.nav.Offset(welcome))

	h.nav.UpdateDrag(1000)
	assert.Equal(t, 1000.0, h.nav.Offset(login), "backward motion is unclamped")
}

func TestDrag_CameraPair(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, camera, GoToOptions{})

	require.NoError(t, h.nav.BeginDrag())
	h.nav.UpdateDrag(30)
	assert.Equal(t, map[Screen]float64{welcome: -W, login: W, signup: -W + 30, loading: W, camera: 30}, h.nav.Offsets())
}

func TestEndDrag_DistanceThreshold(t *testing.T) {
	for _, tc := range []struct {
		mx   float64
		want Outcome
		at   Screen
	}{
		{100, SnappedBack, login},
		{101, Committed, welcome},
		{-50, SnappedBack, login},
	} {
		h := newHarness(t)
		h.goTo(t, login, GoToOptions{})
		require.NoError(t, h.nav.BeginDrag())
		h.nav.UpdateDrag(tc.mx)

		assert.Equal(t, tc.want, h.nav.EndDrag(tc.mx, 0), "mx=%v", tc.mx)
		assert.Equal(t, tc.at, h.nav.Current(), "mx=%v", tc.mx)
		assert.True(t, h.nav.Settled(), "mx=%v", tc.mx)
	}
}

func TestEndDrag_VelocityThreshold(t *testing.T) {
	for _, tc := range []struct {
		vx   float64
		want Outcome
	}{
		{1, SnappedBack},
		{1.01, Committed},
	} {
		n := New(authLayout(), W)
		require.NoError(t, n.GoTo(signup, GoToOptions{}))
		require.NoError(t, n.BeginDrag())

		assert.Equal(t, tc.want, n.EndDrag(10, tc.vx), "vx=%v", tc.vx)
	}
}

func TestEndDrag_SnapBackKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, login, GoToOptions{})
	resets, pulses := h.resets, h.pulses.n

	require.NoError(t, h.nav.BeginDrag())
	h.nav.UpdateDrag(40)
	require.Equal(t, SnappedBack, h.nav.EndDrag(40, 0.2))

	assert.Equal(t, resets, h.resets)
	assert.Equal(t, pulses+1, h.pulses.n)
	assert.Equal(t, 0.0, h.nav.Offset(login))
	assert.Equal(t, -W, h.nav.Offset(welcome))
}

func TestEndDrag_CommitFromCameraKeepsForm(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, signup, GoToOptions{})
	h.goTo(t, camera, GoToOptions{KeepForm: true})
	resets := h.resets

	require.NoError(t, h.nav.BeginDrag())
	require.Equal(t, Committed, h.nav.EndDrag(150, 0))
	assert.Equal(t, signup, h.nav.Current())
	assert.Equal(t, resets, h.resets)

	require.NoError(t, h.nav.BeginDrag())
	require.Equal(t, Committed, h.nav.EndDrag(0, 2))
	assert.Equal(t, welcome, h.nav.Current())
	assert.Equal(t, resets+1, h.resets, "committing to the initial screen resets")
}

func TestEndDrag_StaleReleaseIgnored(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, login, GoToOptions{})

	require.NoError(t, h.nav.BeginDrag())
	h.nav.UpdateDrag(60)
	h.goTo(t, loading, GoToOptions{KeepForm: true})

	assert.Equal(t, Ignored, h.nav.EndDrag(200, 5))
	assert.Equal(t, loading, h.nav.Current())
	assert.True(t, h.nav.Settled())
}

func TestEndDrag_ConcurrentGoToWins(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := New(authLayout(), W)
		require.NoError(t, n.GoTo(signup, GoToOptions{}))
		require.NoError(t, n.BeginDrag())

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			n.EndDrag(CommitDistance+1, 0)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, n.GoTo(login, GoToOptions{KeepForm: true}))
		}()
		wg.Wait()

		require.Equal(t, login, n.Current(), "iteration %d", i)
		assert.True(t, n.Settled())
	}
}

func TestEndDrag_WithoutDrag(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, login, GoToOptions{})
	assert.Equal(t, Ignored, h.nav.EndDrag(200, 0))
	assert.Equal(t, login, h.nav.Current())
}

func TestCancelDrag(t *testing.T) {
	h := newHarness(t)
	h.goTo(t, login, GoToOptions{})
	settled := h.nav.Offsets()

	require.NoError(t, h.nav.BeginDrag())
	h.nav.UpdateDrag(70)
	h.nav.CancelDrag()

	assert.Equal(t, settled, h.nav.Offsets())
	assert.True(t, h.nav.Settled())
	assert.Equal(t, Ignored, h.nav.EndDrag(200, 0))
}

func TestSettleInvariant_RandomWalk(t *testing.T) {
	h := newHarness(t)
	rng := rand.New(rand.NewSource(7))
	screens := authLayout().Screens

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			h.goTo(t, screens[rng.Intn(len(screens))], GoToOptions{KeepForm: rng.Intn(2) == 0})
		case 1:
			if h.nav.BeginDrag() == nil {
				mx := rng.Float64()*300 - 50
				h.nav.UpdateDrag(mx)
				h.nav.EndDrag(mx, rng.Float64()*2)
			}
		case 2:
			h.nav.Back()
		}
		require.True(t, h.nav.Settled(), "step %d: %v", i, h.nav.Offsets())
		require.Equal(t, 0.0, h.nav.Offset(h.nav.Current()))
	}
}

func TestLayoutValidate(t *testing.T) {
	require.NoError(t, authLayout().Validate())

	bad := []Layout{
		{},
		{Screens: []Screen{"a", "a"}},
		{Screens: []Screen{"a"}, Parents: map[Screen]Screen{"b": "a"}},
		{Screens: []Screen{"a"}, Armed: Set("x")},
		{Screens: []Screen{"a", "b", "c"}, Parents: map[Screen]Screen{"b": "c", "c": "b"}},
	}
	for i, l := range bad {
		assert.ErrorIs(t, l.Validate(), ErrInvalidLayout, "layout %d", i)
	}

	assert.Panics(t, func() { New(Layout{}, W) })
	assert.Panics(t, func() { New(authLayout(), 0) })
}

func TestOnChange(t *testing.T) {
	var seen []Screen
	n := New(authLayout(), W, WithOnChange(func(s Screen) { seen = append(seen, s) }))

	require.NoError(t, n.GoTo(login, GoToOptions{}))
	n.Back()
	assert.Equal(t, []Screen{login, welcome}, seen)
}

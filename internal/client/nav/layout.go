// Package nav implements the per-page screen navigator: which logical
// screen is visible, the horizontal offsets that place every screen side
// by side, and the drag gesture that slides back to the previous screen.
//
// Screens the user has come through form a trail. The top of the trail is
// visible at offset 0, the rest of the trail is parked one width to the
// left and every other screen one width to the right.
package nav

import (
	"errors"
	"fmt"
)

type Screen string

// Layout is the static screen table of a page.
type Layout struct {
	// Screens lists every screen; the first is the initial one.
	Screens []Screen
	// Parents maps a screen to its back target.
	Parents map[Screen]Screen
	// Transient screens (loading) stack on whatever screen is current.
	Transient map[Screen]bool
	// Armed screens accept the back gesture.
	Armed map[Screen]bool
}

func (l Layout) Initial() Screen {
	if len(l.Screens) == 0 {
		return ""
	}
	return l.Screens[0]
}

func (l Layout) Has(s Screen) bool {
	for _, x := range l.Screens {
		if x == s {
			return true
		}
	}
	return false
}

var ErrInvalidLayout = errors.New("invalid layout")

// Validate checks that every referenced screen exists and that parent
// chains end at the initial screen.
func (l Layout) Validate() error {
	if len(l.Screens) == 0 {
		return fmt.Errorf("%w: no screens", ErrInvalidLayout)
	}
	seen := map[Screen]bool{}
	for _, s := range l.Screens {
		if seen[s] {
			return fmt.Errorf("%w: duplicate screen %q", ErrInvalidLayout, s)
		}
		seen[s] = true
	}
	for c, p := range l.Parents {
		if !seen[c] || !seen[p] {
			return fmt.Errorf("%w: parent %q -> %q", ErrInvalidLayout, c, p)
		}
	}
	for _, set := range []map[Screen]bool{l.Transient, l.Armed} {
		for s := range set {
			if !seen[s] {
				return fmt.Errorf("%w: unknown screen %q", ErrInvalidLayout, s)
			}
		}
	}
	for _, s := range l.Screens {
		if _, err := l.chain(s); err != nil {
			return err
		}
	}
	return nil
}

// chain returns the static path from the initial screen to s.
func (l Layout) chain(s Screen) ([]Screen, error) {
	path := []Screen{s}
	for cur := s; cur != l.Initial(); {
		p, ok := l.Parents[cur]
		if !ok {
			p = l.Initial()
		}
		if len(path) > len(l.Screens) {
			return nil, fmt.Errorf("%w: parent cycle at %q", ErrInvalidLayout, s)
		}
		path = append(path, p)
		cur = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Set builds a screen set.
func Set(screens ...Screen) map[Screen]bool {
	m := make(map[Screen]bool, len(screens))
	for _, s := range screens {
		m[s] = true
	}
	return m
}

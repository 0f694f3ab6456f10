// Package theme holds the app background gradient as an observable value.
package theme

import (
	"fmt"
	"sync"
)

type Gradient struct {
	Name string
	From string
	To   string
}

// CSS renders the gradient as a CSS background value.
func (g Gradient) CSS() string {
	return fmt.Sprintf("linear-gradient(60deg, %s 0%%, %s 100%%)", g.From, g.To)
}

const (
	Turquoise = "turquoise"
	Purple    = "purple"
	Orange    = "orange"
)

var presets = map[string]Gradient{
	Turquoise: {Name: Turquoise, From: "#2192bf", To: "#02f8ab"},
	Purple:    {Name: Purple, From: "#b758f4", To: "#2192bf"},
	Orange:    {Name: Orange, From: "#f4a658", To: "#f46b6b"},
}

// Preset looks up a named gradient.
func Preset(name string) (Gradient, bool) {
	g, ok := presets[name]
	return g, ok
}

// Background is the current gradient plus its subscribers. The zero value
// is not usable; use NewBackground.
type Background struct {
	mu      sync.Mutex
	current Gradient
	nextID  int
	subs    map[int]func(Gradient)
}

func NewBackground() *Background {
	return &Background{current: presets[Turquoise], subs: map[int]func(Gradient){}}
}

func (b *Background) Current() Gradient {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

func (b *Background) CSS() string { return b.Current().CSS() }

// Change switches to the named preset and notifies subscribers. Unknown
// names are ignored and reported as false. Changing to the current
// gradient notifies nobody.
func (b *Background) Change(name string) bool {
	g, ok := presets[name]
	if !ok {
		return false
	}

	b.mu.Lock()
	if b.current == g {
		b.mu.Unlock()
		return true
	}
	b.current = g
	fns := make([]func(Gradient), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(g)
	}
	return true
}

// Subscribe registers fn for future changes and returns its unsubscribe.
func (b *Background) Subscribe(fn func(Gradient)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

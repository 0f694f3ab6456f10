// Package pages holds the page controllers of the PlanPlant client and the
// router that moves between them.
//
// A page owns its screen navigator, form state and inline messages. Every
// operation that blocks on the backend checks afterwards that the page is
// still mounted; results that arrive after Unmount are dropped and the
// operation reports common.ErrUnmounted. Route changes are not applied by
// the page itself: it records a pending redirect that the Router follows.
package pages

package golistview

import "fmt"

// fetchPhase is the internal phase of the controller's single fetch slot.
type fetchPhase uint8

const (
	fetchIdle fetchPhase = iota
	fetchActive
)

// String - implements fmt.Stringer.
func (p fetchPhase) String() string {
	switch p {
	case fetchIdle:
		return "idle"
	case fetchActive:
		return "active"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(p))
	}
}

// fetchGate is the one-slot in-flight guard: Idle -> Active on TryAcquire,
// Active -> Idle on Release. It makes the mutual-exclusion transitions explicit
// instead of hiding them in a bare boolean.
//
// The gate itself is not goroutine-safe; the owning controller mutates it only
// under its own lock. It guards the non-refresh fetch path exclusively: refresh
// fetches bypass it deliberately (see Controller.Refresh).
type fetchGate struct {
	phase fetchPhase
}

// TryAcquire moves the gate to Active and returns true, or returns false when a
// fetch already holds the slot.
func (g *fetchGate) TryAcquire() bool {
	if g.phase == fetchActive {
		return false
	}

	g.phase = fetchActive

	return true
}

// Release returns the gate to Idle. Releasing an idle gate is a programming
// error: acquire and release are strictly paired around one fetch.
func (g *fetchGate) Release() {
	if g.phase != fetchActive {
		panic(fmt.Errorf("cannot release fetch gate in phase '%s'", g.phase))
	}

	g.phase = fetchIdle
}

// Held reports whether a fetch currently occupies the slot.
func (g *fetchGate) Held() bool {
	return g.phase == fetchActive
}

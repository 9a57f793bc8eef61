// Package irq abstracts interrupt masking for the allocator's critical
// sections.
//
// On the real machine, disabling means clearing the hart's interrupt-enable
// bit and Restore means setting it back only if it was set before, so
// nested critical sections do not re-enable interrupts early. Off-target
// code substitutes Noop or Sim.
package irq

// Flags is the opaque pre-disable interrupt state. Restore receives exactly
// the value the matching Disable returned.
type Flags uint64

// Source disables and restores interrupt delivery. Implementations must
// tolerate nesting: Restore re-enables only when the saved Flags say
// interrupts were on.
type Source interface {
	Disable() Flags
	Restore(Flags)
}

// Noop is a Source that masks nothing. Use it where no trap context exists,
// such as tools and tests that never allocate concurrently.
type Noop struct{}

func (Noop) Disable() Flags { return 0 }

func (Noop) Restore(Flags) {}

// enabled is the single state bit Sim models, mirroring sstatus.SIE.
const enabled Flags = 1

// Sim models a one-bit interrupt-enable flag and records every transition.
// Tests wrap an allocator around a Sim and assert that critical sections
// nest and balance.
type Sim struct {
	// Enabled starts true for a fresh Sim unless constructed otherwise.
	on bool

	Disables uint64
	Restores uint64
	// Depth is the current nesting level; MaxDepth the high-water mark.
	Depth    int
	MaxDepth int
}

// NewSim returns a Sim with interrupt delivery on.
func NewSim() *Sim { return &Sim{on: true} }

func (s *Sim) Disable() Flags {
	s.Disables++
	s.Depth++
	if s.Depth > s.MaxDepth {
		s.MaxDepth = s.Depth
	}
	var f Flags
	if s.on {
		f = enabled
	}
	s.on = false
	return f
}

func (s *Sim) Restore(f Flags) {
	s.Restores++
	s.Depth--
	if f&enabled != 0 {
		s.on = true
	}
}

// Enabled reports whether simulated delivery is currently on.
func (s *Sim) Enabled() bool { return s.on }

// Balanced reports whether every Disable has been matched by a Restore.
func (s *Sim) Balanced() bool { return s.Depth == 0 && s.Disables == s.Restores }

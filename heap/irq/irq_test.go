package irq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SimDisableRestore(t *testing.T) {
	s := NewSim()
	require.True(t, s.Enabled(), "fresh Sim should start with delivery on")

	f := s.Disable()
	assert.False(t, s.Enabled(), "Disable should mask delivery")

	s.Restore(f)
	assert.True(t, s.Enabled(), "Restore should re-enable when flags say on")
	assert.True(t, s.Balanced())
}

func Test_SimNestedSectionsStayMasked(t *testing.T) {
	s := NewSim()

	outer := s.Disable()
	inner := s.Disable()
	require.False(t, s.Enabled())

	// The inner Restore sees "already masked" flags and must not
	// re-enable delivery while the outer section is still open.
	s.Restore(inner)
	assert.False(t, s.Enabled(), "inner restore must not unmask early")

	s.Restore(outer)
	assert.True(t, s.Enabled())
	assert.Equal(t, 2, s.MaxDepth)
	assert.True(t, s.Balanced())
}

func Test_NoopIsInert(t *testing.T) {
	var n Noop
	f := n.Disable()
	n.Restore(f)
	assert.Equal(t, Flags(0), f)
}

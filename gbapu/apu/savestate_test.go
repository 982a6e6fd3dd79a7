package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadStateRoundTrip(t *testing.T) {
	a := newTestAPU(t, CGB)
	a.WriteIO(0x12, 0xF0, 0)
	a.WriteIO(0x14, 0x80, 0)
	a.WriteIO(0x24, 0x77, 0)
	a.wave.ram[0][3] = 0x42
	a.UpdateTimestamp(1234)

	size := a.StateSize()
	buf := make([]byte, size)
	n, err := a.SaveState(buf)
	require.NoError(t, err)
	assert.Equal(t, size, n)

	b, err := New(DMG, 44100) // different model, must be overwritten by LoadState
	require.NoError(t, err)
	require.NoError(t, b.LoadState(buf))

	assert.Equal(t, a.model, b.model)
	assert.Equal(t, a.nr50, b.nr50)
	assert.Equal(t, a.square[chSquare0], b.square[chSquare0])
	assert.Equal(t, a.envelope[chSquare0], b.envelope[chSquare0])
	assert.Equal(t, a.wave.ram, b.wave.ram)
	assert.Equal(t, a.channels[chSquare0].enabled, b.channels[chSquare0].enabled)
}

func TestSaveStateRejectsUndersizedBuffer(t *testing.T) {
	a := newTestAPU(t, DMG)
	_, err := a.SaveState(make([]byte, 1))
	assert.Error(t, err)
}

func TestLoadStateRejectsBadVersion(t *testing.T) {
	a := newTestAPU(t, DMG)
	err := a.LoadState([]byte{0xFF})
	assert.Error(t, err)
}

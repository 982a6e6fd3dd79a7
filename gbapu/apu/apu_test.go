package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPU(t *testing.T, model Model) *APU {
	t.Helper()
	a, err := New(model, 44100)
	require.NoError(t, err)
	a.WriteIO(0x26, 0x80, 0) // power on
	return a
}

func TestNewRejectsInvalidSampleRate(t *testing.T) {
	_, err := New(DMG, 0)
	assert.Error(t, err)
}

func TestPowerOnOffClearsRegisters(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x11, 0xBF, 0) // NR11: duty + length data
	assert.NotEqual(t, uint8(0), a.io[0x11-0x10])

	a.WriteIO(0x26, 0x00, 0) // power off
	assert.Equal(t, uint8(0), a.io[0x11-0x10])
	assert.False(t, a.powered)
}

func TestDMGIgnoresWritesWhilePoweredOff(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x26, 0x00, 0)
	a.WriteIO(0x12, 0xF0, 0) // NR12 envelope: should be ignored while off
	assert.Equal(t, uint8(0), a.io[0x12-0x10])
}

func TestDMGAllowsLengthLoadWhilePoweredOff(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x26, 0x00, 0)
	a.WriteIO(0x11, 0x3F, 0) // NR11 length bits writable even while off
	assert.Equal(t, uint8(0x3F), a.io[0x11-0x10])
}

func TestTriggerSquare0EnablesChannelWhenDACOn(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x12, 0xF0, 0) // max volume, increase=false but initial!=0 => DAC on
	a.WriteIO(0x14, 0x80, 0) // trigger
	assert.True(t, a.channels[chSquare0].enabled)
}

func TestTriggerSquare0DisabledWhenDACOff(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x12, 0x00, 0) // DAC off
	a.WriteIO(0x14, 0x80, 0)
	assert.False(t, a.channels[chSquare0].enabled)
}

func TestNR52ReportsChannelStatus(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x12, 0xF0, 0)
	a.WriteIO(0x14, 0x80, 0)
	v := a.ReadIO(0x26, 0)
	assert.NotZero(t, v&0x01)
	assert.NotZero(t, v&0x80)
}

func TestWaveRAMReadWriteWhenChannelDisabled(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.WriteIO(0x1A, 0x00, 0) // NR30 DAC off, channel stays disabled
	a.WriteIO(0x30, 0xAB, 0)
	assert.Equal(t, uint8(0xAB), a.ReadIO(0x30, 0))
}

func TestAGBRegisterWindowMirrorsDMG(t *testing.T) {
	a := newTestAPU(t, AGB)
	a.WriteAGB(0x63, 0xF0, 0) // AGB_NR12 -> NR12
	assert.Equal(t, uint8(0xF0), a.io[0x12-0x10])
}

func TestAGBSoundcntHRoundTrips(t *testing.T) {
	a := newTestAPU(t, AGB)
	a.WriteAGB(0x82, 0x36, 0) // mix=2(100%), fifoA full vol, enable both sides
	assert.Equal(t, uint8(2), a.psgMixLevel())
	assert.True(t, a.fifo[0].fullVolume)
	assert.True(t, a.fifo[0].enableLeft)
	assert.True(t, a.fifo[0].enableRight)
}

func TestClampedVolumeConfig(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.SetMasterVolume(2.0) // should clamp to 1.0 internally, not panic
	a.SetChannelVolume(chSquare0, -1)
	assert.Equal(t, 0.0, a.channelVolume[chSquare0])
}

func TestEndFrameRebasesTimestamp(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.UpdateTimestamp(1000)
	a.EndFrame(1000)
	for _, c := range a.channels {
		assert.Equal(t, uint32(0), c.timestamp)
	}
}

func TestUpdateTimestampShiftsChannelTimestamps(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.synchronize(chSquare0, 500)
	a.UpdateTimestamp(100)
	assert.Equal(t, uint32(600), a.channels[chSquare0].timestamp)
}

func TestZombieModeDisabledOnAGB(t *testing.T) {
	a := newTestAPU(t, AGB)
	a.SetZombieMode(true)
	assert.False(t, a.zombieMode)
}

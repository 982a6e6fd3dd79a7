package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWavePowerOnPatternDiffersByModel(t *testing.T) {
	dmg := wavePowerOnPatternFor(DMG)
	cgb := wavePowerOnPatternFor(CGB)
	assert.NotEqual(t, *dmg, *cgb)
}

func TestWaveCurrentNibbleReadsHighThenLow(t *testing.T) {
	w := &waveState{}
	w.ram[0][0] = 0xAB
	w.position = 0
	assert.Equal(t, uint8(0xA), w.currentNibble())
	w.position = 1
	assert.Equal(t, uint8(0xB), w.currentNibble())
}

func TestWaveLevelZeroWhenDisabled(t *testing.T) {
	a := newTestAPU(t, DMG)
	assert.Equal(t, int32(0), a.waveLevel())
}

func TestWaveLevelMuteCodeIsZero(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.channels[chWave].enabled = true
	a.wave.volumeCode = 0
	a.wave.ram[0][0] = 0xFF
	assert.Equal(t, int32(0), a.waveLevel())
}

func TestAGBWaveOutputIsBitInverted(t *testing.T) {
	withoutInvert := newTestAPU(t, DMG)
	withoutInvert.channels[chWave].enabled = true
	withoutInvert.wave.ram[0][0] = 0xF0
	withoutInvert.wave.volumeCode = 1

	withInvert := newTestAPU(t, AGB)
	withInvert.channels[chWave].enabled = true
	withInvert.wave.ram[0][0] = 0xF0
	withInvert.wave.volumeCode = 1

	assert.NotEqual(t, withoutInvert.waveLevel(), withInvert.waveLevel())
}

func TestAGBDimension64SpansBothBanks(t *testing.T) {
	w := &waveState{dimension64: true}
	w.ram[0][0] = 0x12
	w.ram[1][0] = 0x34
	w.position = 0
	assert.Equal(t, uint8(0x1), w.currentNibble())
	w.position = 32
	assert.Equal(t, uint8(0x3), w.currentNibble())
}

func TestTriggerWaveResetsPositionAndReloadsTimer(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.wave.position = 5
	a.WriteIO(0x1A, 0x80, 0) // NR30 DAC on
	a.WriteIO(0x1E, 0x80, 0) // NR34 trigger
	assert.Equal(t, uint8(0), a.wave.position)
	assert.True(t, a.channels[chWave].enabled)
	assert.Equal(t, waveReload(0, DMG)+6, a.channels[chWave].frequencyTimer)
}

package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriggerNoiseResetsLFSR(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.noise.lfsr = 0
	a.WriteIO(0x21, 0xF0, 0) // NR42 DAC on
	a.WriteIO(0x23, 0x80, 0) // NR44 trigger
	assert.Equal(t, uint16(0x7FFF), a.noise.lfsr)
	assert.True(t, a.channels[chNoise].enabled)
}

func TestNoiseFreezesAtHighClockShift(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.noise.clockShift = 14
	a.channels[chNoise].timestamp = 0
	a.runNoise(10000)
	assert.Equal(t, uint32(10000), a.channels[chNoise].timestamp)
}

func TestNoiseLFSRFeedbackProducesNonzeroSequence(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.noise.lfsr = 0x7FFF
	a.noise.divisorCode = 0
	a.noise.clockShift = 0
	a.channels[chNoise].enabled = true
	a.envelope[chNoise].volume = 15
	a.runNoise(1000)
	assert.NotEqual(t, uint16(0), a.noise.lfsr)
}

func TestNoiseWidthModeMirrorsFeedbackIntoBit6(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.noise.widthMode = true
	a.noise.lfsr = 0x7FFF
	a.noise.divisorCode = 0
	a.noise.clockShift = 0
	a.runNoise(8)

	feedbackBit := (a.noise.lfsr >> 14) & 1
	widthBit := (a.noise.lfsr >> 6) & 1
	assert.Equal(t, feedbackBit, widthBit)
}

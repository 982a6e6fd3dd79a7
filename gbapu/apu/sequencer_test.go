package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameSequencerPhases(t *testing.T) {
	f := &frameSequencer{}
	lengthSteps := map[uint8]bool{0: true, 2: true, 4: true, 6: true}
	sweepSteps := map[uint8]bool{2: true, 6: true}
	for step := uint8(0); step < 8; step++ {
		f.step = step
		assert.Equal(t, lengthSteps[step], f.clocksLength(), "step %d", step)
		assert.Equal(t, sweepSteps[step], f.clocksSweep(), "step %d", step)
		assert.Equal(t, step == 7, f.clocksEnvelope(), "step %d", step)
	}
}

func TestFrameSequencerAdvanceWraps(t *testing.T) {
	f := &frameSequencer{step: 7}
	f.advance()
	assert.Equal(t, uint8(0), f.step)
}

func TestFrameSequencerNextClocksLength(t *testing.T) {
	f := &frameSequencer{step: 2} // next FrameSequencerClock runs step 2, which clocks length
	assert.True(t, f.nextClocksLength())
	f.step = 1 // next FrameSequencerClock runs step 1, which does not
	assert.False(t, f.nextClocksLength())
}

func TestFrameSequencerClockDisablesExpiredLength(t *testing.T) {
	a := newTestAPU(t, DMG)
	a.channels[chSquare0].enabled = true
	a.length[chSquare0] = lengthCounter{max: 64, counter: 1, enabled: true}
	a.sequencer.step = 0 // step 0 itself clocks length

	a.FrameSequencerClock(100)
	assert.False(t, a.channels[chSquare0].enabled)
	assert.Equal(t, 0, a.length[chSquare0].counter)
}

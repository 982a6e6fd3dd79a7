package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvelopeTriggerReloadsFromFields(t *testing.T) {
	e := &envelope{initialVolume: 12, increase: true, pace: 3}
	e.trigger()
	assert.Equal(t, 12, e.volume)
	assert.Equal(t, int(periodTable[3]), e.timer)
}

func TestEnvelopeClockIncreasesAndClamps(t *testing.T) {
	e := &envelope{initialVolume: 15, increase: true, pace: 1}
	e.trigger()
	for i := 0; i < 5; i++ {
		e.clock()
	}
	assert.Equal(t, 15, e.volume) // already at max, never exceeds
}

func TestEnvelopeClockDecreasesAndClamps(t *testing.T) {
	e := &envelope{initialVolume: 1, increase: false, pace: 1}
	e.trigger()
	for i := 0; i < 5; i++ {
		e.clock()
	}
	assert.Equal(t, 0, e.volume) // never goes negative
}

func TestEnvelopeClockNoopWhenPaceZero(t *testing.T) {
	e := &envelope{initialVolume: 5, increase: true, pace: 0}
	e.trigger()
	for i := 0; i < 10; i++ {
		e.clock()
	}
	assert.Equal(t, 5, e.volume)
}

func TestEnvelopeWriteStagesFieldsWithoutZombieMode(t *testing.T) {
	e := &envelope{volume: 7}
	e.write(0xAB, false, true) // vol=10, increase=true, pace=3
	assert.Equal(t, 7, e.volume) // untouched, zombie mode off
	assert.Equal(t, uint8(10), e.initialVolume)
	assert.True(t, e.increase)
	assert.Equal(t, uint8(3), e.pace)
}

func TestEnvelopeWriteZombieModePriorPaceZero(t *testing.T) {
	e := &envelope{volume: 5, increase: true, pace: 0}
	e.write(0xAA, true, true) // newIncrease=true (no flip), pace=2
	assert.Equal(t, 6, e.volume)
}

func TestEnvelopeWriteZombieModePriorModeDown(t *testing.T) {
	e := &envelope{volume: 3, increase: false, pace: 3}
	e.write(0x55, true, true) // newIncrease=false (no flip), pace=5
	assert.Equal(t, 5, e.volume)
}

func TestEnvelopeWriteZombieModeDirectionFlipInverts(t *testing.T) {
	e := &envelope{volume: 4, increase: true, pace: 1}
	e.write(0x02, true, true) // newIncrease=false: flips, pace nonzero so no add
	assert.Equal(t, 12, e.volume)
}

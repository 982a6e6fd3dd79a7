package apu

import "github.com/go-gbapu/gbapu/gbapu/bit"

// envelope implements the volume envelope shared by square0, square1 and
// noise (wave has none — its "envelope" is the static NR32 volume code
// handled in wave.go). Grounded in original_source/gb_apu.c's env_clock /
// env_trigger / env_write.
type envelope struct {
	initialVolume uint8 // NRx2 bits 4-7
	increase      bool  // NRx2 bit 3: true = add, false = subtract
	pace          uint8 // NRx2 bits 0-2; 0 disables automatic clocking

	volume int   // current 0-15 output volume
	timer  int   // cycles (in 64 Hz envelope-clock units) until next step
}

// clock is called once per frame-sequencer envelope tick (step 7).
func (e *envelope) clock() {
	if e.pace == 0 {
		return
	}
	e.timer--
	if e.timer > 0 {
		return
	}
	e.timer = int(periodTable[e.pace])
	if e.increase && e.volume < 15 {
		e.volume++
	} else if !e.increase && e.volume > 0 {
		e.volume--
	}
}

// trigger reloads the envelope from its NRx2 fields, per the channel
// trigger event.
func (e *envelope) trigger() {
	e.timer = int(periodTable[e.pace])
	e.volume = int(e.initialVolume)
}

// write handles an NRx2 register write. When zombieMode is enabled (see
// APU.SetZombieMode — off by default, and never on for AGB, which fixed
// this glitch in hardware) and the channel's DAC is currently on, the
// write can nudge the running volume instead of only staging values for
// the next trigger, reproducing the well known "zombie mode" glitch: if
// the prior pace was zero, volume += 1; else if the prior mode was down,
// volume += 2; then, if the mode bit flipped, volume = 16 - volume;
// finally the result is masked to 4 bits.
func (e *envelope) write(raw uint8, zombieMode, channelOn bool) {
	newInitial := bit.ExtractBits(raw, 7, 4)
	newIncrease := bit.IsSet(3, raw)
	newPace := bit.ExtractBits(raw, 2, 0)

	if zombieMode && channelOn {
		if e.pace == 0 {
			e.volume++
		} else if !e.increase {
			e.volume += 2
		}
		if newIncrease != e.increase {
			e.volume = 16 - e.volume
		}
		e.volume &= 0x0F
	}

	e.initialVolume = newInitial
	e.increase = newIncrease
	e.pace = newPace
}

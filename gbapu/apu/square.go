package apu

// squareChannel holds the state specific to a square-wave generator
// (square0 and square1 each have one) beyond the common Channel fields:
// the 11-bit period loaded from NRx3/NRx4 and the duty waveform's
// current step. Grounded in jeebie's audio/apu.go Channel.freqTimer
// handling, generalized into the synchronize-then-mutate model.
type squareChannel struct {
	period   uint16 // NRx3 | (NRx4&0x07)<<8
	dutyCode uint8  // NRx1 bits 6-7
	dutyStep uint8  // 0-7, current position in the duty waveform
}

func squareReload(period uint16, m Model) int32 {
	r := (2048 - int32(period)) * 4 * int32(m.cycleMultiplier())
	if r <= 0 {
		r = 4
	}
	return r
}

// squareLevel returns the channel's current instantaneous amplitude
// (0 or the envelope's current volume), or 0 if the channel (DAC) is off.
func (a *APU) squareLevel(ch int) int32 {
	c := &a.channels[ch]
	if !c.enabled {
		return 0
	}
	sq := &a.square[ch]
	if dutyTableFor(a.model)[sq.dutyCode][sq.dutyStep] == 0 {
		return 0
	}
	return a.scaleChannelVolume(ch, int32(a.envelope[ch].volume))
}

// runSquare advances square channel ch's duty generator from its last
// synchronized time up to "until", depositing a blip delta every time
// the duty waveform's output level changes.
func (a *APU) runSquare(ch int, until uint32) {
	c := &a.channels[ch]
	sq := &a.square[ch]
	t := c.timestamp
	for t < until {
		if c.frequencyTimer <= 0 {
			c.frequencyTimer = squareReload(sq.period, a.model)
			sq.dutyStep = (sq.dutyStep + 1) & 7
			level := a.squareLevel(ch)
			gain := a.panGain(ch)
			a.deposit(ch, t, [2]int32{level * gain[0], level * gain[1]}, false)
		}
		step := c.frequencyTimer
		if remaining := int32(until - t); step > remaining {
			step = remaining
		}
		t += uint32(step)
		c.frequencyTimer -= step
	}
}

// triggerSquare handles the shared part of a square channel's trigger
// event (NRx4 bit 7): DAC gating from NRx2's top five bits, envelope and
// length-counter reload, and (square0 only) the sweep unit.
func (a *APU) triggerSquare(ch int, at uint32, nextTickClocksLength bool) {
	c := &a.channels[ch]
	env := &a.envelope[ch]
	dacOn := env.initialVolume != 0 || env.increase
	c.enabled = dacOn
	env.trigger()
	a.length[ch].trigger(nextTickClocksLength)
	if c.frequencyTimer <= 0 {
		c.frequencyTimer = squareReload(a.square[ch].period, a.model)
	}
	if ch == chSquare0 {
		if a.sweep.trigger(int(a.square[ch].period)) {
			c.enabled = false
		}
	}
	if !c.enabled {
		a.deposit(ch, at, [2]int32{0, 0}, false)
	}
}

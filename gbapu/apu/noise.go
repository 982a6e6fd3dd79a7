package apu

// noiseState implements channel 4's linear feedback shift register.
// Grounded in original_source/gb_apu.c's noise stepping and
// NOISE_DIVISOR table.
type noiseState struct {
	lfsr        uint16 // 15 bits of shift register state
	widthMode   bool   // NR43 bit 3: true = 7-bit LFSR (shorter, metallic tone)
	clockShift  uint8  // NR43 bits 4-7
	divisorCode uint8  // NR43 bits 0-2
}

func noiseReload(divisorCode, clockShift uint8, m Model) int32 {
	return (int32(noiseDivisorTable[divisorCode]) << clockShift) * int32(m.cycleMultiplier())
}

// noiseLevel returns the channel's current amplitude: the envelope
// volume when the LFSR's low bit is clear, 0 when it's set (real
// hardware's DAC treats bit 0 as "high" = silence), or 0 outright if the
// channel's DAC is off.
func (a *APU) noiseLevel() int32 {
	c := &a.channels[chNoise]
	if !c.enabled {
		return 0
	}
	if a.noise.lfsr&1 != 0 {
		return 0
	}
	return a.scaleChannelVolume(chNoise, int32(a.envelope[chNoise].volume))
}

// runNoise advances the LFSR up to "until". A clock shift of 14 or 15
// is unrepresentable on real silicon's internal counter and freezes the
// generator: once reached, the LFSR simply stops changing and the
// channel holds its last output, so no further deltas are produced.
func (a *APU) runNoise(until uint32) {
	c := &a.channels[chNoise]
	if a.noise.clockShift >= 14 {
		c.timestamp = until
		return
	}
	t := c.timestamp
	for t < until {
		if c.frequencyTimer <= 0 {
			c.frequencyTimer = noiseReload(a.noise.divisorCode, a.noise.clockShift, a.model)
			feedback := (a.noise.lfsr ^ (a.noise.lfsr >> 1)) & 1
			a.noise.lfsr = (a.noise.lfsr >> 1) | (feedback << 14)
			if a.noise.widthMode {
				a.noise.lfsr = (a.noise.lfsr &^ (1 << 6)) | (feedback << 6)
			}
			level := a.noiseLevel()
			gain := a.panGain(chNoise)
			a.deposit(chNoise, t, [2]int32{level * gain[0], level * gain[1]}, true)
		}
		step := c.frequencyTimer
		if remaining := int32(until - t); step > remaining {
			step = remaining
		}
		t += uint32(step)
		c.frequencyTimer -= step
	}
}

// triggerNoise handles channel 4's trigger event (NR44 bit 7).
func (a *APU) triggerNoise(at uint32, nextTickClocksLength bool) {
	c := &a.channels[chNoise]
	env := &a.envelope[chNoise]
	dacOn := env.initialVolume != 0 || env.increase
	c.enabled = dacOn
	env.trigger()
	a.length[chNoise].trigger(nextTickClocksLength)
	a.noise.lfsr = 0x7FFF
	c.frequencyTimer = noiseReload(a.noise.divisorCode, a.noise.clockShift, a.model)
	if !c.enabled {
		a.deposit(chNoise, at, [2]int32{0, 0}, true)
	}
}

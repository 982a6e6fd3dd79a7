package apu

// waveState holds channel 3's state: up to two 16-byte RAM banks (AGB
// only uses the second), the CPU-visible bank selector, the AGB
// "dimension" bit that stitches both banks into one 64-step waveform,
// the current sample position, and the DMG timing flag that decides
// whether CPU wave-RAM reads/writes land while the channel is playing.
type waveState struct {
	ram          [2][16]byte
	bank         uint8  // which bank is CPU-addressable right now (AGB only; always 0 on DMG/CGB)
	dimension64  bool   // AGB bank mode: true = 64 contiguous 4-bit steps across both banks
	position     uint8  // 0-31 (single bank) or 0-63 (64-step mode)
	period       uint16 // NR33 | (NR34&0x07)<<8
	volumeCode   uint8  // NR32 bits 5-6
	dacOn        bool   // NR30 bit 7
	justAccessed bool   // set when the generator steps to a new sample, cleared when it runs without stepping
}

// waveBankFor returns which physical RAM bank sample index "pos" lives
// in, and the in-bank nibble index.
func (w *waveState) waveBankFor(pos uint8) (bank, idx uint8) {
	if w.dimension64 {
		return pos / 32, pos % 32
	}
	return w.bank, pos
}

func (w *waveState) currentNibble() uint8 {
	bank, idx := w.waveBankFor(w.position)
	b := w.ram[bank][idx/2]
	if idx%2 == 0 {
		return b >> 4
	}
	return b & 0x0F
}

// waveLevel computes wave channel's current bipolar output sample,
// scaled by NR32's volume code and (AGB only) bit-inverted the same way
// the square duty tables are.
func (a *APU) waveLevel() int32 {
	c := &a.channels[chWave]
	if !c.enabled {
		return 0
	}
	nibble := a.wave.currentNibble()
	if a.model == AGB {
		nibble ^= 0x0F
	}
	mult := waveVolumeTableFor(a.model)[a.wave.volumeCode]
	raw := (int32(nibble)*2 - 15) * int32(mult)
	return a.scaleChannelVolume(chWave, raw>>2)
}

func waveReload(period uint16, m Model) int32 {
	r := (2048 - int32(period)) * 2 * int32(m.cycleMultiplier())
	if r <= 0 {
		r = 2
	}
	return r
}

// runWave advances the wave generator up to "until", depositing a delta
// at each nibble step. Wave steps at twice the square rate (one nibble
// per half-period), per Pan Docs.
func (a *APU) runWave(until uint32) {
	c := &a.channels[chWave]
	t := c.timestamp
	for t < until {
		if c.frequencyTimer <= 0 {
			c.frequencyTimer = waveReload(a.wave.period, a.model)
			steps := uint8(32)
			if a.wave.dimension64 {
				steps = 64
			}
			a.wave.position = (a.wave.position + 1) % steps
			a.wave.justAccessed = true
			level := a.waveLevel()
			gain := a.panGain(chWave)
			a.deposit(chWave, t, [2]int32{level * gain[0], level * gain[1]}, true)
		} else {
			a.wave.justAccessed = false
		}
		step := c.frequencyTimer
		if remaining := int32(until - t); step > remaining {
			step = remaining
		}
		t += uint32(step)
		c.frequencyTimer -= step
	}
}

// triggerWave handles channel 3's trigger event (NR34 bit 7): the DMG
// wave-RAM-corruption quirk (if the channel was already running and is
// retriggered within a couple of cycles of its next natural step, the
// first few RAM bytes get overwritten with bytes copied from wherever
// the read pointer is about to land), then the ordinary DAC/position/
// length reset. CGB/AGB never exhibit this. Grounded in spec.md §4.6's
// index = ((position_counter+1)%32)>>1 rule.
func (a *APU) triggerWave(at uint32, nextTickClocksLength bool) {
	c := &a.channels[chWave]
	if a.model == DMG && c.enabled && c.frequencyTimer <= 2 {
		upcoming := (a.wave.position + 1) % 32
		index := upcoming / 2
		if index < 4 {
			a.wave.ram[0][0] = a.wave.ram[0][index]
		} else {
			base := index &^ 3
			copy(a.wave.ram[0][:4], a.wave.ram[0][base:base+4])
		}
	}
	c.enabled = a.wave.dacOn
	a.length[chWave].trigger(nextTickClocksLength)
	a.wave.position = 0
	c.frequencyTimer = waveReload(a.wave.period, a.model) + 6 // extra startup delay on retrigger
	if !c.enabled {
		a.deposit(chWave, at, [2]int32{0, 0}, true)
	}
}

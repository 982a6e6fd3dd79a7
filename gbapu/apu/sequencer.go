package apu

// frameSequencer is the 8-phase 512 Hz dispatcher every PSG channel's
// length, sweep and envelope unit is clocked from. The host is
// responsible for calling APU.FrameSequencerClock at the right cadence
// (every 8192 DMG cycles, scaled ×4 on AGB) — the sequencer itself only
// tracks which of the eight phases it's in.
type frameSequencer struct {
	step uint8 // 0-7
}

func (f *frameSequencer) clocksLength() bool   { return f.step%2 == 0 }
func (f *frameSequencer) clocksSweep() bool    { return f.step == 2 || f.step == 6 }
func (f *frameSequencer) clocksEnvelope() bool { return f.step == 7 }

// nextClocksLength reports whether the next FrameSequencerClock call will
// clock the length counters — used by the NRx4 length-enable and
// trigger quirks, which care about the upcoming edge. Because
// FrameSequencerClock runs the phase held in step before advancing,
// that upcoming edge is the one for step itself.
func (f *frameSequencer) nextClocksLength() bool { return f.clocksLength() }

func (f *frameSequencer) advance() { f.step = (f.step + 1) % 8 }

// FrameSequencerClock advances the frame sequencer by one phase, first
// synchronizing every channel to "at" so length/sweep/envelope effects
// land on the correct sample, then applying whichever units the
// *current* phase clocks, and only then advancing to the next index —
// per gb_apu.c's apu_frame_sequencer_clock, which does the phase's work
// before incrementing its step counter.
func (a *APU) FrameSequencerClock(at uint32) {
	a.synchronizeAll(at)

	if a.sequencer.clocksLength() {
		for ch := 0; ch < psgChannels; ch++ {
			if a.length[ch].clock() {
				a.channels[ch].enabled = false
				a.deposit(ch, at, [2]int32{0, 0}, true)
			}
		}
	}
	if a.sequencer.clocksSweep() {
		if newFreq, changed, disable := a.sweep.clock(); changed || disable {
			if disable {
				a.channels[chSquare0].enabled = false
				a.deposit(chSquare0, at, [2]int32{0, 0}, false)
			} else if changed {
				a.square[chSquare0].period = uint16(newFreq)
			}
		}
	}
	if a.sequencer.clocksEnvelope() {
		a.envelope[chSquare0].clock()
		a.envelope[chSquare1].clock()
		a.envelope[chNoise].clock()
	}

	a.sequencer.advance()
}

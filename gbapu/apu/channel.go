package apu

import "github.com/go-gbapu/gbapu/gbapu/bit"

// Channel holds the handful of fields every generator — both PSG and
// FIFO — needs to stay in sync with the rest of the APU: how far its
// waveform generator has been run, the last amplitude it deposited on
// each stereo side, and (PSG channels only) the countdown to its next
// waveform step. Mirrors the minimal per-channel footprint described in
// original_source/gb_apu.h's GbApuChannel.
type Channel struct {
	timestamp      uint32  // clock time this channel was last synchronized to
	amp            [2]int32 // last amplitude deposited into the blip buffer, per side (0=left,1=right)
	frequencyTimer int32   // cycles remaining until the next waveform step
	enabled        bool    // DAC + length/trigger gate; false mutes this channel entirely
}

// synchronize runs a channel's generator from its last timestamp up to
// "until", depositing any amplitude-changing deltas along the way, then
// advances its timestamp. This is the "synchronize-then-mutate" rule
// every register read/write obeys: call synchronize on the affected
// channel(s) before touching any of their state, so deltas are
// attributed to the cycle they actually changed on, not the cycle the
// register write happened to land on. Grounded in gb_apu.c's
// channel_sync, generalized from Blargg's channel-specific C functions
// into one table-driven dispatch across all six channel kinds.
func (a *APU) synchronize(ch int, until uint32) {
	debugAssert(ch >= 0 && ch < numChannels, "channel index %d out of range", ch)
	c := &a.channels[ch]
	if until <= c.timestamp {
		return
	}
	switch ch {
	case chSquare0, chSquare1:
		a.runSquare(ch, until)
	case chWave:
		a.runWave(until)
	case chNoise:
		a.runNoise(until)
	case chFifoA, chFifoB:
		a.runFifo(ch, until)
	}
	c.timestamp = until
}

// synchronizeAll brings every channel up to "until". Used by EndFrame,
// FrameSequencerClock, and by register writes that can affect more than
// one channel (NR50, NR51, NR52, and the AGB SOUNDCNT_H/SOUNDBIAS
// registers).
func (a *APU) synchronizeAll(until uint32) {
	for ch := 0; ch < numChannels; ch++ {
		a.synchronize(ch, until)
	}
}

// deposit compares the channel's last-deposited amplitude against a
// freshly computed one for both stereo sides and pushes the difference
// into the blip buffer, so the buffer only ever sees step deltas.
func (a *APU) deposit(ch int, at uint32, newAmp [2]int32, fast bool) {
	c := &a.channels[ch]
	for side := 0; side < 2; side++ {
		d := newAmp[side] - c.amp[side]
		if d == 0 {
			continue
		}
		if fast {
			a.blip.AddDeltaFast(at, int(d), side)
		} else {
			a.blip.AddDelta(at, int(d), side)
		}
		c.amp[side] = newAmp[side]
	}
}

// panGain returns the per-side gain NR51 assigns to channel ch, scaled by
// NR50's master volume for that side. Side 0 is left (SO2: NR51 bits
// 4-7, NR50 bits 4-6), side 1 is right (SO1: NR51 bits 0-3, NR50 bits
// 0-2), matching blip.Stereo's Left/Right convention.
func (a *APU) panGain(ch int) [2]int32 {
	var gain [2]int32
	flagBit := uint8(1) << uint(ch)
	if a.nr51&(flagBit<<4) != 0 {
		gain[0] = int32(a.nr50LeftVol()) + 1
	}
	if a.nr51&flagBit != 0 {
		gain[1] = int32(a.nr50RightVol()) + 1
	}
	if a.model == AGB && ch != chFifoA && ch != chFifoB {
		gain[0] = agbPSGMix(gain[0], a.psgMixLevel())
		gain[1] = agbPSGMix(gain[1], a.psgMixLevel())
	}
	return gain
}

func (a *APU) nr50LeftVol() uint8  { return bit.ExtractBits(a.nr50, 6, 4) }
func (a *APU) nr50RightVol() uint8 { return bit.ExtractBits(a.nr50, 2, 0) }

// agbPSGMix applies SOUNDCNT_H's PSG master mix level (25/50/100%) on
// top of the ordinary NR50/NR51 gain, numerator/denominator so the
// result stays an exact integer scale like the rest of the pan-gain
// pipeline.
func agbPSGMix(gain int32, level uint8) int32 {
	switch level {
	case 0:
		return gain / 4
	case 1:
		return gain / 2
	default:
		return gain
	}
}

// Package blip implements the band-limited synthesis buffer façade the
// APU core deposits channel deltas into (spec §4.1). There is no existing
// Go port of a blip-style buffer in the reference corpus to wrap, so this
// package provides one from scratch, grounded in the contract exposed by
// original_source/blip_wrap.h (itself a thin wrapper around Blargg's
// Blip_Buffer/blip_buf).
//
// A delta deposited at a clock time represents a STEP in the channel's
// output level, not an impulse: the actual waveform is the running
// integral of every delta deposited so far. Buffer keeps that integral
// (the "accumulator") and spreads each step across one or two
// neighbouring output-sample slots to soften the edge, trading the
// original's windowed-sinc kernel for a much smaller linear one (see
// DESIGN.md for why).
package blip

import (
	"fmt"
)

// guardSamples is extra headroom past one frame's worth of samples so a
// step's high tap never writes past the slice.
const guardSamples = 4

// Buffer is a single (mono) band-limited synthesis channel.
type Buffer struct {
	sampleRate int
	factor     float64 // output samples per input clock, set by SetRates
	volume     float64

	accum      []int32 // pending deltas, indexed by output-sample offset from frame start
	integrator int32    // running level carried across EndFrame calls
	avail      []int16  // samples ready for ReadSamples
}

// NewBuffer allocates a mono buffer sized to sampleRate/10 samples, per
// spec §4.1's "new(sample_rate)" contract.
func NewBuffer(sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("blip: invalid sample rate %d", sampleRate)
	}
	size := sampleRate/10 + guardSamples
	return &Buffer{
		sampleRate: sampleRate,
		volume:     1.0,
		accum:      make([]int32, size),
	}, nil
}

// SetRates configures the buffer's clock-to-sample time base.
func (b *Buffer) SetRates(clockRate, sampleRate float64) {
	if clockRate <= 0 {
		b.factor = 0
		return
	}
	b.factor = sampleRate / clockRate
}

// Clear discards all pending deltas, the running integrator, and any
// samples already produced.
func (b *Buffer) Clear() {
	for i := range b.accum {
		b.accum[i] = 0
	}
	b.integrator = 0
	b.avail = b.avail[:0]
}

// SetVolume sets this buffer's output gain (0.0-1.0 typically, but values
// outside that range are not clamped here — apu.APU is responsible for
// clamping at the public API boundary).
func (b *Buffer) SetVolume(v float64) { b.volume = v }

// AddDelta deposits a band-limited (two-tap, linear-phase) delta at
// clockTime.
func (b *Buffer) AddDelta(clockTime uint32, delta int) { b.addDelta(clockTime, delta, false) }

// AddDeltaFast deposits a single-tap (non band-limited) delta at
// clockTime. Used for generators whose amplitude changes too often for
// the full kernel to matter (wave, noise).
func (b *Buffer) AddDeltaFast(clockTime uint32, delta int) { b.addDelta(clockTime, delta, true) }

func (b *Buffer) addDelta(clockTime uint32, delta int, fast bool) {
	if delta == 0 || b.factor == 0 {
		return
	}
	posF := float64(clockTime) * b.factor
	pos := int(posF)
	if pos < 0 {
		pos = 0
	}
	if pos >= len(b.accum) {
		pos = len(b.accum) - 1
	}
	if fast || pos+1 >= len(b.accum) {
		b.accum[pos] += int32(delta)
		return
	}
	frac := posF - float64(pos)
	w1 := int32(float64(delta) * (1 - frac))
	w2 := int32(delta) - w1
	b.accum[pos] += w1
	b.accum[pos+1] += w2
}

// ClocksNeeded returns how many input clocks are required to produce
// sampleCount output samples at the current rate.
func (b *Buffer) ClocksNeeded(sampleCount int) int {
	if b.factor == 0 {
		return 0
	}
	return int(float64(sampleCount) / b.factor)
}

// EndFrame finalizes sample generation up to clockDuration clocks,
// integrating pending deltas into PCM samples and carrying any leftover
// accumulator state (and the running level) into the next frame.
func (b *Buffer) EndFrame(clockDuration uint32) {
	count := int(float64(clockDuration) * b.factor)
	if count > len(b.accum) {
		count = len(b.accum)
	}
	if count <= 0 {
		return
	}

	out := make([]int16, count)
	level := b.integrator
	for i := 0; i < count; i++ {
		level += b.accum[i]
		out[i] = clampInt16(float64(level) * b.volume)
	}
	b.integrator = level

	remaining := copy(b.accum, b.accum[count:])
	for i := remaining; i < len(b.accum); i++ {
		b.accum[i] = 0
	}

	b.avail = append(b.avail, out...)
}

// SamplesAvail returns how many samples are ready for ReadSamples.
func (b *Buffer) SamplesAvail() int { return len(b.avail) }

// ReadSamples drains up to count samples into out, returning the number
// actually written.
func (b *Buffer) ReadSamples(out []int16, count int) int {
	n := count
	if n > len(b.avail) {
		n = len(b.avail)
	}
	if n > len(out) {
		n = len(out)
	}
	copy(out, b.avail[:n])
	b.avail = b.avail[n:]
	return n
}

// SetBass and SetTreble are optional EQ shaping hooks; the linear-kernel
// implementation has no frequency-domain state to shape, so both are
// no-ops, matching spec §4.1's "no-op if the underlying buffer lacks it".
func (b *Buffer) SetBass(freq int)       {}
func (b *Buffer) SetTreble(db float64)   {}

func clampInt16(v float64) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

package apu

// HighpassPreset selects one of the "capacitor" high-pass filter charge
// rates real Game Boy hardware imposes on its analog output stage, or
// disables the filter entirely (as a real emulator host that mixes its
// own DC-removal stage downstream would want).
type HighpassPreset int

const (
	HighpassNone HighpassPreset = iota
	HighpassDMG
	HighpassCGB
)

// highpass-charge factors, expressed as Q15 fixed point (32768 = 1.0),
// approximating the RC time constant of each model's analog sound
// output capacitor. DMG's capacitor decays slower (longer time
// constant) than CGB's, giving DMG titles their characteristically
// "boomier" low end.
const (
	dmgHighpassQ15 int32 = 32758 // ≈0.999695
	cgbHighpassQ15 int32 = 32704 // ≈0.998047
)

// highpassFilter implements a one-pole DC-blocking filter per stereo
// side: y[n] = x[n] - x[n-1] + factor*y[n-1], in Q15 fixed point.
type highpassFilter struct {
	factor   int32 // Q15; 32768 disables filtering (no decay)
	prevIn   [2]int32
	prevOut  [2]int32
}

func (h *highpassFilter) setFactor(q15 int32) { h.factor = q15 }

func (h *highpassFilter) apply(side int, sample int16) int16 {
	if h.factor >= 32768 {
		return sample
	}
	in := int32(sample)
	out := in - h.prevIn[side] + int32((int64(h.factor)*int64(h.prevOut[side]))>>15)
	h.prevIn[side] = in
	h.prevOut[side] = out
	if out > 32767 {
		out = 32767
	} else if out < -32768 {
		out = -32768
	}
	return int16(out)
}

// SetHighpassFilter selects a built-in filter preset.
func (a *APU) SetHighpassFilter(preset HighpassPreset) {
	switch preset {
	case HighpassDMG:
		a.filter.setFactor(dmgHighpassQ15)
	case HighpassCGB:
		a.filter.setFactor(cgbHighpassQ15)
	default:
		a.filter.setFactor(32768)
	}
}

// SetHighpassFilterCustom sets an arbitrary charge factor in [0,1],
// converted to Q15 internally. A factor of 1.0 disables filtering.
func (a *APU) SetHighpassFilterCustom(factor float64) {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	a.filter.setFactor(int32(factor * 32768))
}

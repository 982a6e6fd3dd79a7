package apu

import "github.com/go-gbapu/gbapu/gbapu/addr"

// Model selects which Game Boy family member's quirks the core emulates.
// Duty tables, wave RAM power-on patterns, read-or-mask tables, the noise
// channel's clock multiplier, and the wave channel's bank/inversion
// behavior are all branched on this tag rather than expressed as
// polymorphic subtypes, per spec.md §9 "Model variants".
type Model int

const (
	DMG Model = iota
	CGB
	AGB
)

func (m Model) String() string {
	switch m {
	case DMG:
		return "DMG"
	case CGB:
		return "CGB"
	case AGB:
		return "AGB"
	default:
		return "unknown"
	}
}

// ClockRate returns the host CPU clock, in Hz, for this model.
func (m Model) ClockRate() float64 {
	if m == AGB {
		return addr.AGBClockRate
	}
	return addr.DMGClockRate
}

// cycleMultiplier is the factor applied to every DMG-derived frequency
// formula on this model (spec §4.2: "Multiply by 4 on AGB").
func (m Model) cycleMultiplier() int {
	if m == AGB {
		return 4
	}
	return 1
}

// channel kind indices, shared across every table keyed by channel.
const (
	chSquare0 = iota
	chSquare1
	chWave
	chNoise
	chFifoA
	chFifoB
	numChannels
)

// psgChannels is the count of register-driven channels with a length
// counter (square0, square1, wave, noise) — the FIFO channels have none.
const psgChannels = 4

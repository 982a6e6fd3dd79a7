package apu

import "github.com/go-gbapu/gbapu/gbapu/bit"

// sweep implements square0's frequency sweep unit (NR10). Grounded in
// original_source/gb_apu.c's sweep_get_new_freq / sweep_do_freq_calc /
// sweep_clock / sweep_trigger / on_nrx0_write.
type sweep struct {
	pace   uint8 // NR10 bits 4-6
	negate bool  // NR10 bit 3
	shift  uint8 // NR10 bits 0-2

	shadowFreq   int
	timer        int
	enabled      bool
	usedNegateSinceTrigger bool // tracks the negate-then-clear disable quirk
}

// newFreq computes the next candidate frequency without changing the
// shadow register, so both the periodic clock and the trigger's one-shot
// overflow check can share it. In negate mode it does record that negate
// was used (usedNegateSinceTrigger).
func (s *sweep) newFreq() int {
	delta := s.shadowFreq >> s.shift
	if s.negate {
		s.usedNegateSinceTrigger = true
		return s.shadowFreq - delta
	}
	return s.shadowFreq + delta
}

// overflowed reports whether a frequency is out of the 11-bit range the
// sweep unit can represent; square0 is disabled the instant this happens.
func overflowed(freq int) bool { return freq > 2047 }

// clock runs one sweep-unit tick (frame-sequencer steps 2 and 6).
// Returns the new period register value when it changes, and whether
// the channel must be disabled.
func (s *sweep) clock() (newFreq int, changed, disable bool) {
	if !s.enabled || s.pace == 0 {
		return 0, false, false
	}
	s.timer--
	if s.timer > 0 {
		return 0, false, false
	}
	s.timer = int(periodTable[s.pace])

	f := s.newFreq()
	if overflowed(f) {
		return 0, false, true
	}
	if s.shift == 0 {
		return 0, false, false
	}
	s.shadowFreq = f
	// a shift-driven recalculation also re-checks overflow immediately,
	// matching real hardware's double computation per clock.
	if overflowed(s.newFreq()) {
		return f, true, true
	}
	return f, true, false
}

// trigger loads the shadow register from the channel's current period
// and performs the hardware's immediate overflow check.
func (s *sweep) trigger(currentFreq int) (disable bool) {
	s.shadowFreq = currentFreq
	s.usedNegateSinceTrigger = false
	s.timer = int(periodTable[s.pace])
	s.enabled = s.pace != 0 || s.shift != 0
	if s.shift != 0 && overflowed(s.newFreq()) {
		return true
	}
	return false
}

// writeNR10 handles the negate-then-clear quirk: if the negate bit was
// used to compute at least one frequency since the last trigger, then
// clearing it (without an intervening trigger) disables the channel
// outright, since the shadow frequency calculation it depends on would
// otherwise silently change sign mid-flight.
func (s *sweep) writeNR10(raw uint8) (disable bool) {
	newNegate := bit.IsSet(3, raw)
	if s.usedNegateSinceTrigger && s.negate && !newNegate {
		disable = true
	}
	s.pace = bit.ExtractBits(raw, 6, 4)
	s.negate = newNegate
	s.shift = bit.ExtractBits(raw, 2, 0)
	return disable
}

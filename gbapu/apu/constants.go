package apu

// dutyTable holds, for each of the four square-wave duty cycles, the
// eight-step waveform (1 = high) that runSquare walks through via
// squareChannel.dutyStep. Grounded
// in original_source/gb_apu.c's SQUARE_DUTY_CYCLES and cross-checked
// against jeebie's audio/apu.go duty handling.
var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1}, // 12.5%
	{1, 0, 0, 0, 0, 0, 0, 1}, // 25%
	{1, 0, 0, 0, 0, 1, 1, 1}, // 50%
	{0, 1, 1, 1, 1, 1, 1, 0}, // 75%
}

// agbDutyTable is dutyTable with every bit inverted: AGB's square DACs
// drive the opposite polarity of the DMG/CGB ones (spec §4.2, "AGB: the
// duty table is bit-inverted").
var agbDutyTable = func() [4][8]uint8 {
	var t [4][8]uint8
	for d := range dutyTable {
		for s := range dutyTable[d] {
			t[d][s] = dutyTable[d][s] ^ 1
		}
	}
	return t
}()

func dutyTableFor(m Model) *[4][8]uint8 {
	if m == AGB {
		return &agbDutyTable
	}
	return &dutyTable
}

// periodTable converts a 3-bit sweep/envelope "period" field into its
// clock divisor, with the hardware's 0-means-8 quirk folded in. Grounded
// in gb_apu.c's PERIOD_TABLE.
var periodTable = [8]uint8{8, 1, 2, 3, 4, 5, 6, 7}

// noiseDivisorTable converts the 3-bit NR43 divisor code into the actual
// clock divisor. Grounded in gb_apu.c's NOISE_DIVISOR.
var noiseDivisorTable = [8]uint16{8, 16, 32, 48, 64, 80, 96, 112}

// waveVolumeTable maps the two-bit NR32 output-level code to the
// multiplier spec §4.2 applies before the final ">> 2": mute, 100%, 50%,
// then either 25% (DMG/CGB) or 75% (AGB, GBATEK's "forced volume" mode
// that replaces the DMG 25% option on code 3).
var waveVolumeTableDMG = [4]uint8{0, 4, 2, 1}
var waveVolumeTableAGB = [4]uint8{0, 4, 2, 3}

func waveVolumeTableFor(m Model) *[4]uint8 {
	if m == AGB {
		return &waveVolumeTableAGB
	}
	return &waveVolumeTableDMG
}

// wavePowerOnPattern is the wave RAM contents hardware leaves behind at
// power-on before any game writes to it. DMG and CGB/AGB differ (Pan
// Docs "Power Up Sequence").
var wavePowerOnPatternDMG = [16]byte{
	0x84, 0x40, 0x43, 0xAA, 0x2D, 0x78, 0x92, 0x3C,
	0x60, 0x59, 0x59, 0xB0, 0x34, 0xB8, 0x2E, 0xDA,
}
var wavePowerOnPatternCGB = [16]byte{
	0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
	0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF, 0x00, 0xFF,
}

func wavePowerOnPatternFor(m Model) *[16]byte {
	if m == DMG {
		return &wavePowerOnPatternDMG
	}
	return &wavePowerOnPatternCGB
}

// ioReadMaskDMG lists, per DMG/CGB register absolute address (0x10-0x3F
// window), the bits forced high on readback — real hardware can't pull
// those bits low, so reads OR them in regardless of what was last
// written. Grounded verbatim in gb_apu.c's IO_READ_VALUE. Sized to the
// whole audio window (not just the part addr.AudioEnd reaches) so the
// absolute address can be used as the index directly.
var ioReadMaskDMG = [0x40]uint8{
	0x10: 0x80, // NR10
	0x11: 0x3F, // NR11
	0x12: 0x00, // NR12
	0x13: 0xFF, // NR13
	0x14: 0xBF, // NR14
	0x16: 0x3F, // NR21
	0x17: 0x00, // NR22
	0x18: 0xFF, // NR23
	0x19: 0xBF, // NR24
	0x1A: 0x7F, // NR30
	0x1B: 0xFF, // NR31
	0x1C: 0x9F, // NR32
	0x1D: 0xFF, // NR33
	0x1E: 0xBF, // NR34
	0x20: 0xFF, // NR41
	0x21: 0x00, // NR42
	0x22: 0x00, // NR43
	0x23: 0xBF, // NR44
	0x24: 0x00, // NR50
	0x25: 0x00, // NR51
	0x26: 0x70, // NR52
	// unused slots read back as all ones
	0x15: 0xFF, 0x1F: 0xFF,
	0x27: 0xFF, 0x28: 0xFF, 0x29: 0xFF, 0x2A: 0xFF, 0x2B: 0xFF,
	0x2C: 0xFF, 0x2D: 0xFF, 0x2E: 0xFF, 0x2F: 0xFF,
}

// ioReadMaskAGB resolves the Open Question spec.md leaves for the AGB
// read path: AGB's sound registers are not OR-masked the way DMG/CGB
// are, they're AND-masked — unused bits read back as 0, not forced
// high. We derive the AGB mask as the
// complement of the DMG one: any bit DMG forces to 1 (meaning "this bit
// isn't backed by real state") reads as 0 on AGB instead of 1, and every
// other bit passes through unmodified. See DESIGN.md for this decision.
var ioReadMaskAGB = func() [0x40]uint8 {
	var t [0x40]uint8
	for i := range t {
		t[i] = ^ioReadMaskDMG[i]
	}
	return t
}()

func ioReadMaskFor(m Model) *[0x40]uint8 {
	if m == AGB {
		return &ioReadMaskAGB
	}
	return &ioReadMaskDMG
}

func ioReadCombine(m Model, raw, mask uint8) uint8 {
	if m == AGB {
		return raw & mask
	}
	return raw | mask
}

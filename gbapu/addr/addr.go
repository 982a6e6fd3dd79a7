// Package addr holds the MMIO address constants for the Game Boy family
// APU, for both the native DMG/CGB window and the AGB (Game Boy Advance)
// sound register window, plus the table that translates one into the
// other.
//
// Reference: https://gbdev.io/pandocs/Audio_Registers.html and GBATEK's
// "GBA Sound Control Registers" section for the AGB offsets.
package addr

// DMG/CGB audio register window: addresses 0x10..0x3F, relative to the
// I/O base (real hardware: 0xFF10..0xFF3F). The core only ever sees the
// low byte, so these constants are the low byte only.
const (
	AudioStart uint16 = 0x10
	AudioEnd   uint16 = 0x3F

	// Channel 1 - square wave with sweep
	NR10 uint16 = 0x10
	NR11 uint16 = 0x11
	NR12 uint16 = 0x12
	NR13 uint16 = 0x13
	NR14 uint16 = 0x14

	// Channel 2 - square wave
	NR21 uint16 = 0x16
	NR22 uint16 = 0x17
	NR23 uint16 = 0x18
	NR24 uint16 = 0x19

	// Channel 3 - wave
	NR30 uint16 = 0x1A
	NR31 uint16 = 0x1B
	NR32 uint16 = 0x1C
	NR33 uint16 = 0x1D
	NR34 uint16 = 0x1E

	// Channel 4 - noise
	NR41 uint16 = 0x20
	NR42 uint16 = 0x21
	NR43 uint16 = 0x22
	NR44 uint16 = 0x23

	// Global control
	NR50 uint16 = 0x24
	NR51 uint16 = 0x25
	NR52 uint16 = 0x26

	// Wave RAM, one 16 byte bank on DMG/CGB, two banks on AGB.
	WaveRAMStart uint16 = 0x30
	WaveRAMEnd   uint16 = 0x3F

	// CGB-only PCM amplitude peeks, outside the 0x10..0x3F register window.
	PCM12 uint16 = 0x76
	PCM34 uint16 = 0x77
)

// AGB sound register window: addresses 0x60..0x9F, relative to the GBA
// sound I/O base (real hardware: 0x4000060..0x400009F). Two of the regular
// slots (SOUNDCNT_H, SOUNDBIAS) have no DMG equivalent and are handled by
// dedicated accessors rather than through the translation table.
const (
	AGBStart uint16 = 0x60
	AGBEnd   uint16 = 0x9F

	AGB_NR10     uint16 = 0x60
	AGB_NR11     uint16 = 0x62
	AGB_NR12     uint16 = 0x63
	AGB_NR13     uint16 = 0x64
	AGB_NR14     uint16 = 0x65
	AGB_NR21     uint16 = 0x68
	AGB_NR22     uint16 = 0x69
	AGB_NR23     uint16 = 0x6C
	AGB_NR24     uint16 = 0x6D
	AGB_NR30     uint16 = 0x70
	AGB_NR31     uint16 = 0x72
	AGB_NR32     uint16 = 0x73
	AGB_NR33     uint16 = 0x74
	AGB_NR34     uint16 = 0x75
	AGB_NR41     uint16 = 0x78
	AGB_NR42     uint16 = 0x79
	AGB_NR43     uint16 = 0x7C
	AGB_NR44     uint16 = 0x7D
	AGB_NR50     uint16 = 0x80
	AGB_NR51     uint16 = 0x81
	AGB_SOUNDCNT_H uint16 = 0x82
	AGB_NR52     uint16 = 0x84
	AGB_SOUNDBIAS  uint16 = 0x88
	AGB_WaveStart  uint16 = 0x90
	AGB_WaveEnd    uint16 = 0x9F
	AGB_FifoA      uint16 = 0xA0
	AGB_FifoB      uint16 = 0xA4
)

// agbUnusedSentinel is a DMG address inside one of the 0x10..0x3F window's
// existing holes (the NR15 slot). Writes to AGB addresses that have no DMG
// equivalent (SOUNDCNT_H, SOUNDBIAS, the gap bytes) are translated here,
// so they land on a byte no channel reacts to and whose reads are fully
// masked by the register file, rather than needing a second sentinel
// concept.
const agbUnusedSentinel uint16 = 0x15

// agbToDMG maps every AGB sound register byte (0x60..0x9F) to the DMG
// address it mirrors. Built once at package init.
var agbToDMG [AGBEnd - AGBStart + 1]uint16

func init() {
	for i := range agbToDMG {
		agbToDMG[i] = agbUnusedSentinel
	}
	set := func(agb, dmg uint16) { agbToDMG[agb-AGBStart] = dmg }

	set(AGB_NR10, NR10)
	set(AGB_NR11, NR11)
	set(AGB_NR12, NR12)
	set(AGB_NR13, NR13)
	set(AGB_NR14, NR14)
	set(AGB_NR21, NR21)
	set(AGB_NR22, NR22)
	set(AGB_NR23, NR23)
	set(AGB_NR24, NR24)
	set(AGB_NR30, NR30)
	set(AGB_NR31, NR31)
	set(AGB_NR32, NR32)
	set(AGB_NR33, NR33)
	set(AGB_NR34, NR34)
	set(AGB_NR41, NR41)
	set(AGB_NR42, NR42)
	set(AGB_NR43, NR43)
	set(AGB_NR44, NR44)
	set(AGB_NR50, NR50)
	set(AGB_NR51, NR51)
	set(AGB_NR52, NR52)
	for i := uint16(0); i < 16; i++ {
		set(AGB_WaveStart+i, WaveRAMStart+i)
	}
}

// TranslateAGB returns the DMG-window address an AGB sound register
// address mirrors, or agbUnusedSentinel if the slot has no DMG
// equivalent (SOUNDCNT_H, SOUNDBIAS, and the inter-register gaps).
func TranslateAGB(agbAddr uint16) uint16 {
	if agbAddr < AGBStart || agbAddr > AGBEnd {
		return agbUnusedSentinel
	}
	return agbToDMG[agbAddr-AGBStart]
}

// CPU clock rates, in Hz, for each hardware model. AGB runs its sound
// hardware at 4x the DMG/CGB rate (the host ARM7TDMI clock), so every
// host-cycle period derived from a DMG formula is multiplied by 4 on AGB.
const (
	DMGClockRate = 4194304
	AGBClockRate = DMGClockRate * 4
)

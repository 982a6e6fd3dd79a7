package apu

import (
	"github.com/go-gbapu/gbapu/gbapu/addr"
	"github.com/go-gbapu/gbapu/gbapu/bit"
)

// ReadAGB and WriteAGB speak the GBA sound register window (0x60-0x9F)
// at the given host cycle time: most of it mirrors the DMG window
// byte-for-byte through addr.TranslateAGB, but SOUNDCNT_H, SOUNDBIAS,
// and the FIFO A/B ports have no DMG equivalent and are handled
// directly here.
func (a *APU) ReadAGB(offset uint16, at uint32) uint8 {
	switch {
	case offset == addr.AGB_SOUNDCNT_H || offset == addr.AGB_SOUNDCNT_H+1:
		return byte(a.soundcntH >> (8 * (offset - addr.AGB_SOUNDCNT_H)))
	case offset == addr.AGB_SOUNDBIAS || offset == addr.AGB_SOUNDBIAS+1:
		return byte(a.soundbias >> (8 * (offset - addr.AGB_SOUNDBIAS)))
	case offset >= addr.AGB_FifoA && offset < addr.AGB_FifoA+4:
		return 0 // FIFO ports are write-only on real hardware
	case offset >= addr.AGB_FifoB && offset < addr.AGB_FifoB+4:
		return 0
	}
	dmg := addr.TranslateAGB(offset)
	return a.ReadIO(dmg, at)
}

func (a *APU) WriteAGB(offset uint16, value uint8, at uint32) {
	switch {
	case offset == addr.AGB_SOUNDCNT_H:
		a.synchronizeAll(at)
		a.writeSoundcntHLow(value)
		return
	case offset == addr.AGB_SOUNDCNT_H+1:
		a.synchronizeAll(at)
		a.writeSoundcntHHigh(value)
		return
	case offset == addr.AGB_SOUNDBIAS:
		a.synchronizeAll(at)
		a.soundbias = (a.soundbias & 0xFF00) | uint16(value)
		return
	case offset == addr.AGB_SOUNDBIAS+1:
		a.synchronizeAll(at)
		a.soundbias = (a.soundbias & 0x00FF) | uint16(value)<<8
		return
	case offset >= addr.AGB_FifoA && offset < addr.AGB_FifoA+4:
		a.fifo[0].writeByte(int(offset-addr.AGB_FifoA), value)
		return
	case offset >= addr.AGB_FifoB && offset < addr.AGB_FifoB+4:
		a.fifo[1].writeByte(int(offset-addr.AGB_FifoB), value)
		return
	}
	dmg := addr.TranslateAGB(offset)
	a.WriteIO(dmg, value, at)
}

// WriteFifoWord32 writes a full 32-bit DMA word (as the DMA controller
// would) to FIFO channel idx in one call, advancing the ring's write
// index per spec §4.9.
func (a *APU) WriteFifoWord32(idx int, word uint32) { a.WriteFifo(idx, word) }

// soundcntH bit layout (GBATEK "SOUNDCNT_H"):
//
//	bits 0-1: PSG mix level (0=25%,1=50%,2=100%)
//	bit 2:    FIFO A volume (0=50%,1=100%)
//	bit 3:    FIFO B volume (0=50%,1=100%)
//	bit 4:    FIFO A enable right
//	bit 5:    FIFO A enable left
//	bit 6:    FIFO A timer select
//	bit 7:    FIFO A reset (write 1 to clear)
//	bit 8-11: mirrors bits 4-7 for FIFO B
func (a *APU) writeSoundcntHLow(v uint8) {
	a.soundcntH = (a.soundcntH & 0xFF00) | uint16(v)
	a.fifo[0].fullVolume = bit.IsSet(2, v)
	a.fifo[1].fullVolume = bit.IsSet(3, v)
	a.fifo[0].enableRight = bit.IsSet(4, v)
	a.fifo[0].enableLeft = bit.IsSet(5, v)
	if bit.IsSet(6, v) {
		a.fifo[0].timerSelect = 1
	} else {
		a.fifo[0].timerSelect = 0
	}
	if bit.IsSet(7, v) {
		a.ResetFifo(0)
	}
}

func (a *APU) writeSoundcntHHigh(v uint8) {
	a.soundcntH = (a.soundcntH & 0x00FF) | uint16(v)<<8
	a.fifo[1].enableRight = bit.IsSet(0, v)
	a.fifo[1].enableLeft = bit.IsSet(1, v)
	if bit.IsSet(2, v) {
		a.fifo[1].timerSelect = 1
	} else {
		a.fifo[1].timerSelect = 0
	}
	if bit.IsSet(3, v) {
		a.ResetFifo(1)
	}
}

// psgMixLevel returns the 0-2 PSG master mix level code from SOUNDCNT_H.
func (a *APU) psgMixLevel() uint8 { return uint8(bit.ExtractBits16(a.soundcntH, 1, 0)) }

package apu

import (
	"github.com/go-gbapu/gbapu/gbapu/addr"
	"github.com/go-gbapu/gbapu/gbapu/bit"
)

// ReadIO reads a DMG/CGB-window audio register (0xFF10-0xFF3F on real
// hardware; callers pass only the low byte, 0x10-0x3F) at the given
// host cycle time. Reads of PCM12/PCM34, wave RAM and the channel
// registers first synchronize the channel(s) the address belongs to up
// to "at"; NR52 is read without synchronizing. Register reads return
// the last written byte combined with the model's read mask. PCM12 and
// PCM34 read as 0 on models other than CGB. Grounded in
// original_source/gb_apu.c's apu_read_io(apu, addr, time).
func (a *APU) ReadIO(offset uint16, at uint32) uint8 {
	switch {
	case (offset == addr.PCM12 || offset == addr.PCM34) && a.model != CGB:
		debugAssert(false, "PCM12/PCM34 read on %s", a.model)
		return 0
	case offset == addr.PCM12:
		a.synchronize(chSquare0, at)
		a.synchronize(chSquare1, at)
		return uint8(a.squareLevel(chSquare0)) | uint8(a.squareLevel(chSquare1))<<4
	case offset == addr.PCM34:
		a.synchronize(chWave, at)
		a.synchronize(chNoise, at)
		return uint8(a.waveLevel()) | uint8(a.noiseLevel())<<4
	case offset >= addr.WaveRAMStart && offset <= addr.WaveRAMEnd:
		a.synchronize(chWave, at)
		return a.readWaveRAM(offset - addr.WaveRAMStart)
	case offset == addr.NR52:
		return a.readNR52()
	case offset < addr.AudioStart || offset > addr.AudioEnd:
		debugAssert(false, "register offset %#x outside 0x10-0x3F", offset)
		return 0xFF
	}

	a.syncForAddr(offset, at)
	raw := a.io[offset-addr.AudioStart]
	mask := ioReadMaskFor(a.model)[offset]
	return ioReadCombine(a.model, raw, mask)
}

// WriteIO writes a DMG/CGB-window audio register at the given host
// cycle time. Writes to any register while the APU is powered off are
// ignored on DMG (the length counters being the one documented
// exception — handled in writeWhilePoweredOffDMG), but freely accepted on
// CGB/AGB per spec.md's per-model power-gating note. Grounded in
// gb_apu.c's apu_write_io(apu, addr, value, time).
func (a *APU) WriteIO(offset uint16, value uint8, at uint32) {
	if offset >= addr.WaveRAMStart && offset <= addr.WaveRAMEnd {
		a.synchronize(chWave, at)
		a.writeWaveRAM(offset-addr.WaveRAMStart, value)
		return
	}
	if offset < addr.AudioStart || offset > addr.AudioEnd {
		debugAssert(false, "register offset %#x outside 0x10-0x3F", offset)
		return
	}

	if !a.powered && a.model == DMG {
		a.writeWhilePoweredOffDMG(offset, value, at)
		return
	}

	a.syncForAddr(offset, at)
	idx := offset - addr.AudioStart
	a.io[idx] = value
	a.dispatchWrite(offset, value, at)
}

// writeWhilePoweredOffDMG implements DMG's documented quirk: while the
// APU is off, only NR52 (to turn back on) and the length-counter load
// registers (NRx1/NR31) are writable.
func (a *APU) writeWhilePoweredOffDMG(offset uint16, value uint8, at uint32) {
	switch offset {
	case addr.NR52:
		a.dispatchWrite(offset, value, at)
	case addr.NR11, addr.NR21, addr.NR31, addr.NR41:
		idx := offset - addr.AudioStart
		a.io[idx] = value
		a.dispatchWrite(offset, value, at)
	}
}

// syncForAddr synchronizes whichever channel(s) a register address can
// affect, before the write or computed read touches their state.
func (a *APU) syncForAddr(offset uint16, at uint32) {
	switch {
	case offset >= addr.NR10 && offset <= addr.NR14:
		a.synchronize(chSquare0, at)
	case offset >= addr.NR21 && offset <= addr.NR24:
		a.synchronize(chSquare1, at)
	case offset >= addr.NR30 && offset <= addr.NR34:
		a.synchronize(chWave, at)
	case offset >= addr.NR41 && offset <= addr.NR44:
		a.synchronize(chNoise, at)
	case offset == addr.NR50 || offset == addr.NR51 || offset == addr.NR52:
		a.synchronizeAll(at)
	}
}

func (a *APU) dispatchWrite(offset uint16, v uint8, at uint32) {
	switch offset {
	case addr.NR10:
		if a.sweep.writeNR10(v) {
			a.channels[chSquare0].enabled = false
			a.deposit(chSquare0, at, [2]int32{0, 0}, false)
		}
	case addr.NR11:
		a.square[chSquare0].dutyCode = bit.ExtractBits(v, 7, 6)
		a.length[chSquare0].writeReload(int(v & 0x3F))
	case addr.NR12:
		a.envelope[chSquare0].write(v, a.zombieMode, a.channels[chSquare0].enabled)
	case addr.NR13:
		a.square[chSquare0].period = (a.square[chSquare0].period & 0x700) | uint16(v)
	case addr.NR14:
		a.square[chSquare0].period = (a.square[chSquare0].period & 0xFF) | (uint16(v&0x07) << 8)
		a.writeNRx4(chSquare0, v, at)

	case addr.NR21:
		a.square[chSquare1].dutyCode = bit.ExtractBits(v, 7, 6)
		a.length[chSquare1].writeReload(int(v & 0x3F))
	case addr.NR22:
		a.envelope[chSquare1].write(v, a.zombieMode, a.channels[chSquare1].enabled)
	case addr.NR23:
		a.square[chSquare1].period = (a.square[chSquare1].period & 0x700) | uint16(v)
	case addr.NR24:
		a.square[chSquare1].period = (a.square[chSquare1].period & 0xFF) | (uint16(v&0x07) << 8)
		a.writeNRx4(chSquare1, v, at)

	case addr.NR30:
		a.wave.dacOn = bit.IsSet(7, v)
		if a.model == AGB {
			a.wave.dimension64 = bit.IsSet(5, v)
			a.wave.bank = bit.ExtractBits(v, 6, 6)
		}
		if !a.wave.dacOn {
			a.channels[chWave].enabled = false
			a.deposit(chWave, at, [2]int32{0, 0}, true)
		}
	case addr.NR31:
		a.length[chWave].writeReload(int(v))
	case addr.NR32:
		a.wave.volumeCode = bit.ExtractBits(v, 6, 5)
	case addr.NR33:
		a.wave.period = (a.wave.period & 0x700) | uint16(v)
	case addr.NR34:
		a.wave.period = (a.wave.period & 0xFF) | (uint16(v&0x07) << 8)
		a.writeNRx4(chWave, v, at)

	case addr.NR41:
		a.length[chNoise].writeReload(int(v & 0x3F))
	case addr.NR42:
		a.envelope[chNoise].write(v, a.zombieMode, a.channels[chNoise].enabled)
	case addr.NR43:
		a.noise.divisorCode = bit.ExtractBits(v, 2, 0)
		a.noise.widthMode = bit.IsSet(3, v)
		a.noise.clockShift = bit.ExtractBits(v, 7, 4)
	case addr.NR44:
		a.writeNRx4(chNoise, v, at)

	case addr.NR50:
		a.nr50 = v
	case addr.NR51:
		a.nr51 = v
	case addr.NR52:
		a.writeNR52(v, at)
	}
}

// writeNRx4 handles the length-enable and trigger bits shared by
// NR14/NR24/NR34/NR44.
func (a *APU) writeNRx4(ch int, v uint8, at uint32) {
	newEnable := v&0x40 != 0
	isTrigger := v&0x80 != 0
	if a.length[ch].writeNRx4Enable(newEnable, a.sequencer.nextClocksLength(), isTrigger) {
		a.channels[ch].enabled = false
		a.deposit(ch, at, [2]int32{0, 0}, ch != chSquare0)
	}
	if isTrigger {
		switch ch {
		case chSquare0, chSquare1:
			a.triggerSquare(ch, at, a.sequencer.nextClocksLength())
		case chWave:
			a.triggerWave(at, a.sequencer.nextClocksLength())
		case chNoise:
			a.triggerNoise(at, a.sequencer.nextClocksLength())
		}
		a.powered = true
	}
}

func (a *APU) readNR52() uint8 {
	var v uint8
	if a.powered {
		v |= 0x80
	}
	if a.channels[chSquare0].enabled {
		v |= 0x01
	}
	if a.channels[chSquare1].enabled {
		v |= 0x02
	}
	if a.channels[chWave].enabled {
		v |= 0x04
	}
	if a.channels[chNoise].enabled {
		v |= 0x08
	}
	return ioReadCombine(a.model, v, ioReadMaskFor(a.model)[addr.NR52])
}

// writeNR52 handles global power: turning the APU off immediately
// silences and clears every channel's register state except, on DMG,
// the length counters — which real hardware keeps ticking even while
// the rest of the unit is powered down.
func (a *APU) writeNR52(v uint8, at uint32) {
	wasOn := a.powered
	a.powered = v&0x80 != 0
	if wasOn && !a.powered {
		for ch := 0; ch < numChannels; ch++ {
			a.channels[ch].enabled = false
			a.deposit(ch, at, [2]int32{0, 0}, true)
		}
		a.square = [2]squareChannel{}
		a.wave.volumeCode, a.wave.dacOn = 0, false
		a.noise = noiseState{}
		a.sweep = sweep{}
		a.envelope = [4]envelope{}
		a.nr50, a.nr51 = 0, 0
		for i := addr.NR10 - addr.AudioStart; i <= addr.NR51-addr.AudioStart; i++ {
			a.io[i] = 0
		}
		if a.model != DMG {
			for ch := 0; ch < psgChannels; ch++ {
				a.length[ch] = lengthCounter{max: a.length[ch].max}
			}
		}
	}
}

func (a *APU) readWaveRAM(i uint16) uint8 {
	if a.model == DMG && a.channels[chWave].enabled && !a.wave.justAccessed {
		return 0xFF
	}
	bank, idx := a.wave.waveBankFor(a.wave.position)
	if a.channels[chWave].enabled {
		return a.wave.ram[bank][idx/2]
	}
	return a.wave.ram[a.wave.bank][i]
}

func (a *APU) writeWaveRAM(i uint16, v uint8) {
	if a.model == DMG && a.channels[chWave].enabled && !a.wave.justAccessed {
		return
	}
	if a.channels[chWave].enabled {
		bank, idx := a.wave.waveBankFor(a.wave.position)
		a.wave.ram[bank][idx/2] = v
		return
	}
	a.wave.ram[a.wave.bank][i] = v
}

package apu

// fifoState implements one of AGB's two PCM DMA channels (FIFO A /
// FIFO B), per spec.md §4.9: a ring of 8 32-bit words addressed by
// rIndex/wIndex (both modulo 8), plus a separate playingBuffer holding
// whichever word is currently being shifted out one byte at a time and
// playingBufferIndex (0..4) counting how many bytes of it remain.
// currentSample is the byte presently feeding the DAC, held until the
// next timer_overflow. A FIFO channel's amplitude only ever changes in
// response to TimerOverflow — there is no internal frequency timer —
// so runFifo (below) is a no-op beyond advancing the channel's
// synchronized timestamp.
type fifoState struct {
	words          [8]uint32
	rIndex, wIndex int // both mod 8
	size           int // complete, undrained words currently queued (0..8)

	playingBuffer      uint32
	playingBufferIndex int // 0..4: bytes remaining in playingBuffer
	currentSample      int8

	enableLeft  bool
	enableRight bool
	timerSelect uint8 // which of the two hardware timers' overflow drains this FIFO
	fullVolume  bool  // SOUNDCNT_H gain bit: true = 100%, false = 50%
}

// DMARequestFunc is invoked when a FIFO channel's ring has more than 4
// free word slots, matching real hardware's DMA request trigger. The
// host is expected to push a fresh 32-bit word via WriteFifo.
type DMARequestFunc func(channel int)

// freeWords reports how many of the ring's 8 word slots are not
// currently holding undrained data.
func (f *fifoState) freeWords() int { return 8 - f.size }

// pushWord appends a full 32-bit DMA word to the ring and advances
// wIndex, matching spec.md §4.9's "the 32-bit write... advances
// w_index". Undrained rings (size already 8) drop the write, mirroring
// hardware's fixed 8-word capacity.
func (f *fifoState) pushWord(word uint32) {
	if f.size >= 8 {
		return
	}
	f.words[f.wIndex] = word
	f.wIndex = (f.wIndex + 1) % 8
	f.size++
}

// writeByte merges a single byte into the word currently at wIndex
// without advancing the ring, per spec.md §4.9's "8-bit or 16-bit
// writes merge into the current ring[w_index] word at the low bit of
// the address". offset is the byte position within the FIFO port
// (0-3).
func (f *fifoState) writeByte(offset int, value uint8) {
	shift := uint(offset&3) * 8
	mask := uint32(0xFF) << shift
	f.words[f.wIndex] = (f.words[f.wIndex] &^ mask) | uint32(value)<<shift
}

// runFifo has no generator stepping to do: a FIFO channel's amplitude
// only changes via TimerOverflow, and synchronize itself advances the
// channel's timestamp.
func (a *APU) runFifo(ch int, until uint32) {}

// fifoLevel scales a FIFO channel's current signed sample by its
// enable/volume bits.
func (a *APU) fifoLevel(idx int) int32 {
	f := &a.fifo[idx]
	v := int32(f.currentSample)
	if !f.fullVolume {
		v /= 2
	}
	ch := chFifoA
	if idx == 1 {
		ch = chFifoB
	}
	return a.scaleChannelVolume(ch, v)
}

func (a *APU) fifoGain(idx int) [2]int32 {
	f := &a.fifo[idx]
	var gain [2]int32
	if f.enableLeft {
		gain[0] = 1
	}
	if f.enableRight {
		gain[1] = 1
	}
	return gain
}

// TimerOverflow is called by the host CPU core when hardware timer t
// (0 or 1) overflows. For each FIFO channel bound to that timer, it
// implements spec.md §4.9's three numbered steps in order: (1) a DMA
// request fires if the ring has more than 4 free word slots, checked
// before this call drains anything; (2) if the currently-shifting word
// is exhausted and the ring isn't empty, the next queued word is
// loaded; (3) if a shifting word is active, one byte is shifted out
// into currentSample and deposited. On models other than AGB it does
// nothing.
func (a *APU) TimerOverflow(t int, at uint32, onDMARequest DMARequestFunc) {
	if a.model != AGB {
		debugAssert(false, "TimerOverflow on %s", a.model)
		return
	}
	for i, ch := range []int{chFifoA, chFifoB} {
		f := &a.fifo[i]
		if int(f.timerSelect) != t {
			continue
		}

		if onDMARequest != nil && f.freeWords() > 4 {
			onDMARequest(i)
		}

		if f.playingBufferIndex == 0 && f.size > 0 {
			f.playingBuffer = f.words[f.rIndex]
			f.rIndex = (f.rIndex + 1) % 8
			f.size--
			f.playingBufferIndex = 4
		}

		if f.playingBufferIndex > 0 {
			a.synchronize(ch, at)
			f.currentSample = int8(byte(f.playingBuffer))
			f.playingBuffer >>= 8
			f.playingBufferIndex--

			level := a.fifoLevel(i)
			gain := a.fifoGain(i)
			a.deposit(ch, at, [2]int32{level * gain[0], level * gain[1]}, true)
		}
	}
}

// WriteFifo appends one 32-bit DMA word to FIFO channel idx's ring,
// advancing its write index.
func (a *APU) WriteFifo(idx int, word uint32) {
	a.fifo[idx].pushWord(word)
}

// ResetFifo clears FIFO channel idx's ring indices back to empty
// (SOUNDCNT_H's FIFO reset bits), per spec.md §4.9.
func (a *APU) ResetFifo(idx int) {
	f := &a.fifo[idx]
	f.rIndex, f.wIndex, f.size = 0, 0, 0
}

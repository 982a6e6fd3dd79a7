package apu

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Save-state is a flat, versioned byte schema written field-by-field
// with encoding/binary, deliberately not a raw dump of APU's in-memory
// struct layout (which could shift across compiler versions or package
// edits) — per spec.md §9's save-state design note. stateVersion bumps
// whenever the schema changes shape.
const stateVersion uint8 = 1

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// encodeState writes every piece of machine state (not host-side output
// configuration like channel/master volume or the high-pass filter,
// which belong to the host's audio pipeline rather than the emulated
// hardware) to buf.
func (a *APU) encodeState(buf *bytes.Buffer) {
	binary.Write(buf, binary.LittleEndian, stateVersion)
	binary.Write(buf, binary.LittleEndian, uint8(a.model))

	for i := range a.channels {
		c := &a.channels[i]
		binary.Write(buf, binary.LittleEndian, c.timestamp)
		binary.Write(buf, binary.LittleEndian, c.amp)
		binary.Write(buf, binary.LittleEndian, c.frequencyTimer)
		binary.Write(buf, binary.LittleEndian, boolByte(c.enabled))
	}

	for i := range a.length {
		l := &a.length[i]
		binary.Write(buf, binary.LittleEndian, int32(l.max))
		binary.Write(buf, binary.LittleEndian, int32(l.counter))
		binary.Write(buf, binary.LittleEndian, boolByte(l.enabled))
	}

	for i := range a.envelope {
		e := &a.envelope[i]
		binary.Write(buf, binary.LittleEndian, e.initialVolume)
		binary.Write(buf, binary.LittleEndian, boolByte(e.increase))
		binary.Write(buf, binary.LittleEndian, e.pace)
		binary.Write(buf, binary.LittleEndian, int32(e.volume))
		binary.Write(buf, binary.LittleEndian, int32(e.timer))
	}

	binary.Write(buf, binary.LittleEndian, a.sweep.pace)
	binary.Write(buf, binary.LittleEndian, boolByte(a.sweep.negate))
	binary.Write(buf, binary.LittleEndian, a.sweep.shift)
	binary.Write(buf, binary.LittleEndian, int32(a.sweep.shadowFreq))
	binary.Write(buf, binary.LittleEndian, int32(a.sweep.timer))
	binary.Write(buf, binary.LittleEndian, boolByte(a.sweep.enabled))
	binary.Write(buf, binary.LittleEndian, boolByte(a.sweep.usedNegateSinceTrigger))

	for i := range a.square {
		s := &a.square[i]
		binary.Write(buf, binary.LittleEndian, s.period)
		binary.Write(buf, binary.LittleEndian, s.dutyCode)
		binary.Write(buf, binary.LittleEndian, s.dutyStep)
	}

	binary.Write(buf, binary.LittleEndian, a.wave.ram)
	binary.Write(buf, binary.LittleEndian, a.wave.bank)
	binary.Write(buf, binary.LittleEndian, boolByte(a.wave.dimension64))
	binary.Write(buf, binary.LittleEndian, a.wave.position)
	binary.Write(buf, binary.LittleEndian, a.wave.period)
	binary.Write(buf, binary.LittleEndian, a.wave.volumeCode)
	binary.Write(buf, binary.LittleEndian, boolByte(a.wave.dacOn))
	binary.Write(buf, binary.LittleEndian, boolByte(a.wave.justAccessed))

	binary.Write(buf, binary.LittleEndian, a.noise.lfsr)
	binary.Write(buf, binary.LittleEndian, boolByte(a.noise.widthMode))
	binary.Write(buf, binary.LittleEndian, a.noise.clockShift)
	binary.Write(buf, binary.LittleEndian, a.noise.divisorCode)

	for i := range a.fifo {
		f := &a.fifo[i]
		binary.Write(buf, binary.LittleEndian, f.words)
		binary.Write(buf, binary.LittleEndian, int32(f.rIndex))
		binary.Write(buf, binary.LittleEndian, int32(f.wIndex))
		binary.Write(buf, binary.LittleEndian, int32(f.size))
		binary.Write(buf, binary.LittleEndian, f.playingBuffer)
		binary.Write(buf, binary.LittleEndian, int32(f.playingBufferIndex))
		binary.Write(buf, binary.LittleEndian, f.currentSample)
		binary.Write(buf, binary.LittleEndian, boolByte(f.enableLeft))
		binary.Write(buf, binary.LittleEndian, boolByte(f.enableRight))
		binary.Write(buf, binary.LittleEndian, f.timerSelect)
		binary.Write(buf, binary.LittleEndian, boolByte(f.fullVolume))
	}

	binary.Write(buf, binary.LittleEndian, a.sequencer.step)
	binary.Write(buf, binary.LittleEndian, a.io)
	binary.Write(buf, binary.LittleEndian, a.nr50)
	binary.Write(buf, binary.LittleEndian, a.nr51)
	binary.Write(buf, binary.LittleEndian, boolByte(a.powered))
	binary.Write(buf, binary.LittleEndian, boolByte(a.zombieMode))
	binary.Write(buf, binary.LittleEndian, a.soundcntH)
	binary.Write(buf, binary.LittleEndian, a.soundbias)
}

// StateSize returns the exact number of bytes SaveState will write.
func (a *APU) StateSize() int {
	var buf bytes.Buffer
	a.encodeState(&buf)
	return buf.Len()
}

// SaveState serializes the APU's machine state into dst, returning the
// number of bytes written. dst must be at least StateSize() bytes.
func (a *APU) SaveState(dst []byte) (int, error) {
	var buf bytes.Buffer
	a.encodeState(&buf)
	if buf.Len() > len(dst) {
		return 0, fmt.Errorf("apu: save state needs %d bytes, dst has %d", buf.Len(), len(dst))
	}
	return copy(dst, buf.Bytes()), nil
}

// LoadState restores machine state previously produced by SaveState.
// The output buffer, channel/master volume, and filter configuration
// are left untouched — callers that changed those since the save was
// taken keep their current settings. A src shorter than StateSize() or
// with an unknown version is rejected before any state is changed.
func (a *APU) LoadState(src []byte) error {
	if size := a.StateSize(); len(src) < size {
		return fmt.Errorf("apu: load state needs %d bytes, src has %d", size, len(src))
	}
	r := bytes.NewReader(src)
	read := func(v any) error { return binary.Read(r, binary.LittleEndian, v) }

	var version uint8
	if err := read(&version); err != nil {
		return fmt.Errorf("apu: load state: %w", err)
	}
	if version != stateVersion {
		return fmt.Errorf("apu: load state: unsupported version %d (want %d)", version, stateVersion)
	}

	var modelByte uint8
	if err := read(&modelByte); err != nil {
		return fmt.Errorf("apu: load state: %w", err)
	}
	a.model = Model(modelByte)

	for i := range a.channels {
		c := &a.channels[i]
		var enabled uint8
		if err := read(&c.timestamp); err != nil {
			return err
		}
		if err := read(&c.amp); err != nil {
			return err
		}
		if err := read(&c.frequencyTimer); err != nil {
			return err
		}
		if err := read(&enabled); err != nil {
			return err
		}
		c.enabled = enabled != 0
	}

	for i := range a.length {
		l := &a.length[i]
		var max, counter int32
		var enabled uint8
		if err := read(&max); err != nil {
			return err
		}
		if err := read(&counter); err != nil {
			return err
		}
		if err := read(&enabled); err != nil {
			return err
		}
		l.max, l.counter, l.enabled = int(max), int(counter), enabled != 0
	}

	for i := range a.envelope {
		e := &a.envelope[i]
		var increase uint8
		var volume, timer int32
		if err := read(&e.initialVolume); err != nil {
			return err
		}
		if err := read(&increase); err != nil {
			return err
		}
		if err := read(&e.pace); err != nil {
			return err
		}
		if err := read(&volume); err != nil {
			return err
		}
		if err := read(&timer); err != nil {
			return err
		}
		e.increase, e.volume, e.timer = increase != 0, int(volume), int(timer)
	}

	{
		s := &a.sweep
		var negate, enabled, usedNegate uint8
		var shadowFreq, timer int32
		if err := read(&s.pace); err != nil {
			return err
		}
		if err := read(&negate); err != nil {
			return err
		}
		if err := read(&s.shift); err != nil {
			return err
		}
		if err := read(&shadowFreq); err != nil {
			return err
		}
		if err := read(&timer); err != nil {
			return err
		}
		if err := read(&enabled); err != nil {
			return err
		}
		if err := read(&usedNegate); err != nil {
			return err
		}
		s.negate, s.shadowFreq, s.timer = negate != 0, int(shadowFreq), int(timer)
		s.enabled, s.usedNegateSinceTrigger = enabled != 0, usedNegate != 0
	}

	for i := range a.square {
		s := &a.square[i]
		if err := read(&s.period); err != nil {
			return err
		}
		if err := read(&s.dutyCode); err != nil {
			return err
		}
		if err := read(&s.dutyStep); err != nil {
			return err
		}
	}

	{
		w := &a.wave
		var dimension64, dacOn, justAccessed uint8
		if err := read(&w.ram); err != nil {
			return err
		}
		if err := read(&w.bank); err != nil {
			return err
		}
		if err := read(&dimension64); err != nil {
			return err
		}
		if err := read(&w.position); err != nil {
			return err
		}
		if err := read(&w.period); err != nil {
			return err
		}
		if err := read(&w.volumeCode); err != nil {
			return err
		}
		if err := read(&dacOn); err != nil {
			return err
		}
		if err := read(&justAccessed); err != nil {
			return err
		}
		w.dimension64, w.dacOn, w.justAccessed = dimension64 != 0, dacOn != 0, justAccessed != 0
	}

	{
		n := &a.noise
		var widthMode uint8
		if err := read(&n.lfsr); err != nil {
			return err
		}
		if err := read(&widthMode); err != nil {
			return err
		}
		if err := read(&n.clockShift); err != nil {
			return err
		}
		if err := read(&n.divisorCode); err != nil {
			return err
		}
		n.widthMode = widthMode != 0
	}

	for i := range a.fifo {
		f := &a.fifo[i]
		var rIndex, wIndex, size, playingBufferIndex int32
		var enableLeft, enableRight, fullVolume uint8
		if err := read(&f.words); err != nil {
			return err
		}
		if err := read(&rIndex); err != nil {
			return err
		}
		if err := read(&wIndex); err != nil {
			return err
		}
		if err := read(&size); err != nil {
			return err
		}
		if err := read(&f.playingBuffer); err != nil {
			return err
		}
		if err := read(&playingBufferIndex); err != nil {
			return err
		}
		if err := read(&f.currentSample); err != nil {
			return err
		}
		if err := read(&enableLeft); err != nil {
			return err
		}
		if err := read(&enableRight); err != nil {
			return err
		}
		if err := read(&f.timerSelect); err != nil {
			return err
		}
		if err := read(&fullVolume); err != nil {
			return err
		}
		f.rIndex, f.wIndex, f.size, f.playingBufferIndex = int(rIndex), int(wIndex), int(size), int(playingBufferIndex)
		f.enableLeft, f.enableRight, f.fullVolume = enableLeft != 0, enableRight != 0, fullVolume != 0
	}

	var powered, zombieMode uint8
	if err := read(&a.sequencer.step); err != nil {
		return err
	}
	if err := read(&a.io); err != nil {
		return err
	}
	if err := read(&a.nr50); err != nil {
		return err
	}
	if err := read(&a.nr51); err != nil {
		return err
	}
	if err := read(&powered); err != nil {
		return err
	}
	if err := read(&zombieMode); err != nil {
		return err
	}
	if err := read(&a.soundcntH); err != nil {
		return err
	}
	if err := read(&a.soundbias); err != nil {
		return err
	}
	a.powered, a.zombieMode = powered != 0, zombieMode != 0
	return nil
}

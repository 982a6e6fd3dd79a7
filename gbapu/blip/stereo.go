package blip

import "fmt"

// sampleScale converts the raw per-channel amplitude range (envelope
// volume 0-15 times a panning gain of 1-8, summed across up to 6
// channels) up to 16-bit headroom.
const sampleScale = 32767.0 / (15.0 * 8.0 * 6.0)

// Stereo wraps two mono Buffers behind the façade spec §4.1 describes:
// uniform add_delta/end_frame/read_samples/clocks_needed/clear/set_rates,
// plus apply_volume_to_sample and master-volume/EQ plumbing.
type Stereo struct {
	Left, Right  *Buffer
	masterVolume float64
}

// NewStereo constructs two independent mono buffers, each sized to
// sampleRate/10 samples.
func NewStereo(sampleRate int) (*Stereo, error) {
	left, err := NewBuffer(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("blip: left channel: %w", err)
	}
	right, err := NewBuffer(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("blip: right channel: %w", err)
	}
	return &Stereo{Left: left, Right: right, masterVolume: 1.0}, nil
}

// SetRates configures both buffers' time base.
func (s *Stereo) SetRates(clockRate, sampleRate float64) {
	s.Left.SetRates(clockRate, sampleRate)
	s.Right.SetRates(clockRate, sampleRate)
}

// AddDelta deposits a band-limited delta into channel lr (0=left, 1=right).
func (s *Stereo) AddDelta(clockTime uint32, delta, lr int) {
	if lr == 0 {
		s.Left.AddDelta(clockTime, delta)
	} else {
		s.Right.AddDelta(clockTime, delta)
	}
}

// AddDeltaFast is AddDelta without the band-limiting kernel.
func (s *Stereo) AddDeltaFast(clockTime uint32, delta, lr int) {
	if lr == 0 {
		s.Left.AddDeltaFast(clockTime, delta)
	} else {
		s.Right.AddDeltaFast(clockTime, delta)
	}
}

// ApplyVolumeToSample scales a raw channel amplitude to 16-bit headroom
// using the façade's master volume and the caller-supplied per-channel
// volume.
func (s *Stereo) ApplyVolumeToSample(sample int, perChannelVolume float64) int {
	v := float64(sample) * perChannelVolume * s.masterVolume * sampleScale
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int(v)
}

// SetMasterVolume sets the façade's master volume, clamped to [0,1], and
// applies it as the output gain of both mono buffers.
func (s *Stereo) SetMasterVolume(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	s.masterVolume = v
	s.Left.SetVolume(v)
	s.Right.SetVolume(v)
}

// EndFrame finalizes both buffers up to clockDuration clocks.
func (s *Stereo) EndFrame(clockDuration uint32) {
	s.Left.EndFrame(clockDuration)
	s.Right.EndFrame(clockDuration)
}

// SamplesAvail returns the number of complete stereo frames available.
func (s *Stereo) SamplesAvail() int {
	n := s.Left.SamplesAvail()
	if r := s.Right.SamplesAvail(); r < n {
		n = r
	}
	return n
}

// ReadSamples drains up to count interleaved stereo frames (2*count
// int16s) into out, returning the number of frames written.
func (s *Stereo) ReadSamples(out []int16, count int) int {
	n := count
	if avail := s.SamplesAvail(); n > avail {
		n = avail
	}
	if n <= 0 {
		return 0
	}
	left := make([]int16, n)
	right := make([]int16, n)
	s.Left.ReadSamples(left, n)
	s.Right.ReadSamples(right, n)
	for i := 0; i < n; i++ {
		if 2*i+1 >= len(out) {
			break
		}
		out[2*i] = left[i]
		out[2*i+1] = right[i]
	}
	return n
}

// ClocksNeeded returns how many input clocks are needed to produce n
// output stereo frames.
func (s *Stereo) ClocksNeeded(n int) int { return s.Left.ClocksNeeded(n) }

// Clear discards all buffered state in both channels.
func (s *Stereo) Clear() {
	s.Left.Clear()
	s.Right.Clear()
}

// SetBass / SetTreble forward to both mono buffers.
func (s *Stereo) SetBass(freq int) {
	s.Left.SetBass(freq)
	s.Right.SetBass(freq)
}

func (s *Stereo) SetTreble(db float64) {
	s.Left.SetTreble(db)
	s.Right.SetTreble(db)
}

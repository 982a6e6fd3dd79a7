package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	tests := []struct {
		high, low uint8
		expected  uint16
	}{
		{0xAB, 0xCD, 0xABCD},
		{0x00, 0x00, 0x0000},
		{0xFF, 0xFF, 0xFFFF},
		{0x12, 0x34, 0x1234},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Combine(tt.high, tt.low))
	}
}

func TestLowHigh(t *testing.T) {
	assert.Equal(t, uint8(0xCD), Low(0xABCD))
	assert.Equal(t, uint8(0xAB), High(0xABCD))
}

func TestSetClearIsSet(t *testing.T) {
	var v uint8
	v = Set(3, v)
	assert.True(t, IsSet(3, v))
	assert.Equal(t, uint8(1), GetBitValue(3, v))
	v = Clear(3, v)
	assert.False(t, IsSet(3, v))
	assert.Equal(t, uint8(0), GetBitValue(3, v))
}

func TestExtractBits(t *testing.T) {
	assert.Equal(t, uint8(0b101), ExtractBits(0b11010110, 6, 4))
	assert.Equal(t, uint8(0b1101), ExtractBits(0b11010110, 7, 4))
	assert.Equal(t, uint8(0), ExtractBits(0, 7, 0))
}

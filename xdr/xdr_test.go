package xdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Size Helpers
// ============================================================================

func TestPad(t *testing.T) {
	cases := []struct {
		length   uint32
		expected uint32
	}{
		{0, 0},
		{1, 3},
		{2, 2},
		{3, 1},
		{4, 0},
		{5, 3},
		{8, 0},
		{9, 3},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Pad(tc.length), "Pad(%d)", tc.length)
	}
}

func TestOpaqueLenInvariant(t *testing.T) {
	// Total encoded size is always 4 (length prefix) + data + padding,
	// and always a multiple of 4.
	for n := 0; n <= 9; n++ {
		total := OpaqueLen(n)
		assert.Equal(t, 4+n+int(Pad(uint32(n))), total)
		assert.Zero(t, total%4, "OpaqueLen(%d) not 4-aligned", n)
	}
}

// ============================================================================
// Decoder - Fixed-Width Primitives
// ============================================================================

func TestDecoderUint32(t *testing.T) {
	t.Run("reads big-endian", func(t *testing.T) {
		d := NewDecoder([]byte{0x12, 0x34, 0x56, 0x78})

		v, err := d.Uint32()

		require.NoError(t, err)
		assert.Equal(t, uint32(0x12345678), v)
		assert.Equal(t, 4, d.Pos())
		assert.Equal(t, 0, d.Remaining())
	})

	t.Run("short input", func(t *testing.T) {
		d := NewDecoder([]byte{0x12, 0x34, 0x56})

		_, err := d.Uint32()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("empty input", func(t *testing.T) {
		d := NewDecoder(nil)

		_, err := d.Uint32()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecoderUint64(t *testing.T) {
	t.Run("reads big-endian", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02})

		v, err := d.Uint64()

		require.NoError(t, err)
		assert.Equal(t, uint64(0x0000000100000002), v)
	})

	t.Run("short input", func(t *testing.T) {
		d := NewDecoder([]byte{0, 0, 0, 0, 0, 0, 0})

		_, err := d.Uint64()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecoderBool(t *testing.T) {
	t.Run("zero is false", func(t *testing.T) {
		d := NewDecoder([]byte{0, 0, 0, 0})

		v, err := d.Bool()

		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("one is true", func(t *testing.T) {
		d := NewDecoder([]byte{0, 0, 0, 1})

		v, err := d.Bool()

		require.NoError(t, err)
		assert.True(t, v)
	})

	t.Run("any non-zero is true", func(t *testing.T) {
		d := NewDecoder([]byte{0xFF, 0xFF, 0xFF, 0xFF})

		v, err := d.Bool()

		require.NoError(t, err)
		assert.True(t, v)
	})
}

// ============================================================================
// Decoder - Opaque Data
// ============================================================================

func TestDecoderOpaque(t *testing.T) {
	t.Run("aligned payload", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x04, // length 4
			0xAA, 0xBB, 0xCC, 0xDD,
		})

		data, err := d.Opaque()

		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, data)
		assert.Equal(t, 0, d.Remaining())
	})

	t.Run("padded payload", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x03, // length 3
			0xAA, 0xBB, 0xCC, 0x00, // 1 padding byte
			0x00, 0x00, 0x00, 0x07, // next field
		})

		data, err := d.Opaque()

		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, data)

		// Padding consumed: the cursor lands on the next field.
		next, err := d.Uint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(7), next)
	})

	t.Run("non-zero padding accepted", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x01,
			0xAA, 0xDE, 0xAD, 0xBE, // garbage padding
		})

		data, err := d.Opaque()

		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA}, data)
		assert.Equal(t, 0, d.Remaining())
	})

	t.Run("zero length decodes as nil", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x00})

		data, err := d.Opaque()

		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("length exceeds input", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x10, // claims 16 bytes
			0xAA, 0xBB,
		})

		_, err := d.Opaque()

		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("huge forged length does not wrap", func(t *testing.T) {
		d := NewDecoder([]byte{
			0xFF, 0xFF, 0xFF, 0xFF, // length 2^32-1
			0xAA, 0xBB, 0xCC, 0xDD,
		})

		_, err := d.Opaque()

		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("truncated length prefix", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00})

		_, err := d.Opaque()

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("returned slice aliases the input", func(t *testing.T) {
		buf := []byte{0x00, 0x00, 0x00, 0x04, 0x01, 0x02, 0x03, 0x04}
		d := NewDecoder(buf)

		data, err := d.Opaque()
		require.NoError(t, err)

		buf[4] = 0x99
		assert.Equal(t, byte(0x99), data[0])
	})
}

func TestDecoderFixedOpaque(t *testing.T) {
	t.Run("unaligned block consumes padding", func(t *testing.T) {
		d := NewDecoder([]byte{
			0xAA, 0xBB, 0xCC, 0x00, // 3 bytes + 1 padding
			0x00, 0x00, 0x00, 0x05,
		})

		data, err := d.FixedOpaque(3)

		require.NoError(t, err)
		assert.Equal(t, []byte{0xAA, 0xBB, 0xCC}, data)

		next, err := d.Uint32()
		require.NoError(t, err)
		assert.Equal(t, uint32(5), next)
	})

	t.Run("zero length decodes as nil", func(t *testing.T) {
		d := NewDecoder([]byte{0xAA})

		data, err := d.FixedOpaque(0)

		require.NoError(t, err)
		assert.Nil(t, data)
		assert.Equal(t, 0, d.Pos())
	})

	t.Run("short input", func(t *testing.T) {
		d := NewDecoder([]byte{0xAA, 0xBB})

		_, err := d.FixedOpaque(3)

		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestDecoderString(t *testing.T) {
	d := NewDecoder([]byte{
		0x00, 0x00, 0x00, 0x05,
		'h', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00,
	})

	s, err := d.String()

	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 0, d.Remaining())
}

// ============================================================================
// Decoder - Arrays and Remainder
// ============================================================================

func TestDecoderUint32Array(t *testing.T) {
	t.Run("decodes values", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x03, // count 3
			0x00, 0x00, 0x00, 0x0A,
			0x00, 0x00, 0x00, 0x14,
			0x00, 0x00, 0x00, 0x1E,
		})

		values, err := d.Uint32Array()

		require.NoError(t, err)
		assert.Equal(t, []uint32{10, 20, 30}, values)
	})

	t.Run("zero count decodes as nil", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x00})

		values, err := d.Uint32Array()

		require.NoError(t, err)
		assert.Nil(t, values)
	})

	t.Run("forged count rejected before allocating", func(t *testing.T) {
		d := NewDecoder([]byte{
			0xFF, 0xFF, 0xFF, 0xFF, // count 2^32-1
			0x00, 0x00, 0x00, 0x01,
		})

		_, err := d.Uint32Array()

		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("count exceeds remaining", func(t *testing.T) {
		d := NewDecoder([]byte{
			0x00, 0x00, 0x00, 0x02,
			0x00, 0x00, 0x00, 0x01,
		})

		_, err := d.Uint32Array()

		assert.ErrorIs(t, err, ErrInvalidLength)
	})
}

func TestDecoderRest(t *testing.T) {
	t.Run("returns remainder", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x01, 0xAA, 0xBB})
		_, err := d.Uint32()
		require.NoError(t, err)

		rest := d.Rest()

		assert.Equal(t, []byte{0xAA, 0xBB}, rest)
		assert.Equal(t, 0, d.Remaining())
	})

	t.Run("empty remainder is nil", func(t *testing.T) {
		d := NewDecoder([]byte{0x00, 0x00, 0x00, 0x01})
		_, err := d.Uint32()
		require.NoError(t, err)

		assert.Nil(t, d.Rest())
	})
}

// ============================================================================
// Encoder
// ============================================================================

func TestEncoderUint32(t *testing.T) {
	t.Run("writes big-endian", func(t *testing.T) {
		buf := make([]byte, 4)
		e := NewEncoder(buf)

		require.NoError(t, e.Uint32(0x12345678))

		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, buf)
		assert.Equal(t, 4, e.Len())
	})

	t.Run("buffer too small", func(t *testing.T) {
		e := NewEncoder(make([]byte, 3))

		assert.ErrorIs(t, e.Uint32(1), ErrBufferTooSmall)
	})
}

func TestEncoderOpaque(t *testing.T) {
	t.Run("writes length prefix and zero padding", func(t *testing.T) {
		buf := make([]byte, 8)
		e := NewEncoder(buf)

		require.NoError(t, e.Opaque([]byte{0xAA, 0xBB, 0xCC}))

		assert.Equal(t, []byte{
			0x00, 0x00, 0x00, 0x03,
			0xAA, 0xBB, 0xCC, 0x00,
		}, buf)
		assert.Equal(t, 8, e.Len())
	})

	t.Run("empty data", func(t *testing.T) {
		buf := make([]byte, 4)
		e := NewEncoder(buf)

		require.NoError(t, e.Opaque(nil))

		assert.Equal(t, []byte{0, 0, 0, 0}, buf)
	})

	t.Run("buffer too small for data", func(t *testing.T) {
		e := NewEncoder(make([]byte, 6))

		assert.ErrorIs(t, e.Opaque([]byte{1, 2, 3}), ErrBufferTooSmall)
	})
}

func TestEncoderFixedOpaque(t *testing.T) {
	buf := make([]byte, 4)
	e := NewEncoder(buf)

	require.NoError(t, e.FixedOpaque([]byte{0xAA, 0xBB, 0xCC}))

	assert.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0x00}, buf)
}

func TestEncoderString(t *testing.T) {
	buf := make([]byte, 12)
	e := NewEncoder(buf)

	require.NoError(t, e.String("hello"))

	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x05,
		'h', 'e', 'l', 'l', 'o', 0x00, 0x00, 0x00,
	}, buf)
}

func TestEncoderUint32Array(t *testing.T) {
	buf := make([]byte, 12)
	e := NewEncoder(buf)

	require.NoError(t, e.Uint32Array([]uint32{10, 20}))

	assert.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x0A,
		0x00, 0x00, 0x00, 0x14,
	}, buf)
}

func TestEncoderRawBytes(t *testing.T) {
	t.Run("verbatim without padding", func(t *testing.T) {
		buf := make([]byte, 3)
		e := NewEncoder(buf)

		require.NoError(t, e.RawBytes([]byte{1, 2, 3}))

		assert.Equal(t, []byte{1, 2, 3}, buf)
		assert.Equal(t, 3, e.Len())
	})

	t.Run("buffer too small", func(t *testing.T) {
		e := NewEncoder(make([]byte, 2))

		assert.ErrorIs(t, e.RawBytes([]byte{1, 2, 3}), ErrBufferTooSmall)
	})
}

// ============================================================================
// Round Trips
// ============================================================================

func TestOpaqueRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		{0xAA},
		{0xAA, 0xBB},
		{0xAA, 0xBB, 0xCC},
		{0xAA, 0xBB, 0xCC, 0xDD},
		{0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
	}

	for _, payload := range payloads {
		buf := make([]byte, OpaqueLen(len(payload)))
		e := NewEncoder(buf)
		require.NoError(t, e.Opaque(payload))
		require.Equal(t, len(buf), e.Len())

		d := NewDecoder(buf)
		decoded, err := d.Opaque()
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
		assert.Equal(t, 0, d.Remaining())
	}
}

func TestUint32ArrayRoundTrip(t *testing.T) {
	values := []uint32{501, 12, 20, 0xFFFFFFFF}

	buf := make([]byte, 4+4*len(values))
	e := NewEncoder(buf)
	require.NoError(t, e.Uint32Array(values))

	d := NewDecoder(buf)
	decoded, err := d.Uint32Array()
	require.NoError(t, err)
	assert.Equal(t, values, decoded)
}

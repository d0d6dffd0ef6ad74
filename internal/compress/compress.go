// Package compress frames byte blobs with optional zstd or lz4 compression.
//
// Frame format: [Kind uint8][UncompressedSize uint32][CompressedSize uint32][Data...]
// If CompressedSize == 0, Data is stored uncompressed. Frames are
// self-describing, so Decode does not need to know the Kind used to encode.
package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/kmeans3d/internal/conv"
)

// Kind selects the compression algorithm.
type Kind uint8

const (
	// None stores data uncompressed.
	None Kind = 0
	// LZ4 uses LZ4 block compression (fast).
	LZ4 Kind = 1
	// Zstd uses zstd compression (better ratio).
	Zstd Kind = 2
)

const headerSize = 9

var (
	// ErrCorrupt is returned when a frame cannot be decoded.
	ErrCorrupt = errors.New("corrupt frame")

	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

// ParseKind maps "none", "lz4" and "zstd" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression %q (want none, lz4 or zstd)", s)
	}
}

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Extension returns the file-name suffix for frames of this kind.
func (k Kind) Extension() string {
	switch k {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Encode compresses data into a frame. If compression does not shrink the
// data by at least 10%, the frame stores it uncompressed.
func Encode(k Kind, data []byte) ([]byte, error) {
	var compressed []byte

	switch k {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unsupported compression kind %v", k)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		compressed = nil
	}

	body := data
	if compressed != nil {
		body = compressed
	}

	rawSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, fmt.Errorf("payload too large for frame: %w", err)
	}
	storedSize, err := conv.IntToUint32(len(compressed))
	if err != nil {
		return nil, fmt.Errorf("payload too large for frame: %w", err)
	}

	frame := make([]byte, headerSize+len(body))
	frame[0] = byte(k)
	binary.LittleEndian.PutUint32(frame[1:], rawSize)
	binary.LittleEndian.PutUint32(frame[5:], storedSize)
	copy(frame[headerSize:], body)
	return frame, nil
}

// Decode returns the payload of a frame produced by Encode.
func Decode(frame []byte) ([]byte, error) {
	if len(frame) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(frame))
	}

	kind := Kind(frame[0])
	uncompressedSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(frame[1:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	compressedSize, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(frame[5:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	body := frame[headerSize:]

	if compressedSize == 0 {
		if len(body) != uncompressedSize {
			return nil, fmt.Errorf("%w: stored size %d, have %d bytes", ErrCorrupt, uncompressedSize, len(body))
		}
		return body, nil
	}
	if len(body) != compressedSize {
		return nil, fmt.Errorf("%w: compressed size %d, have %d bytes", ErrCorrupt, compressedSize, len(body))
	}

	switch kind {
	case LZ4:
		out := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if n != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil

	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		out, err := dec.DecodeAll(body, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if len(out) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrCorrupt, kind)
	}
}

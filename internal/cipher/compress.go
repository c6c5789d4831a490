package cipher

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/maskvault/maskvault/internal/errs"
)

const (
	defaultCompressionThreshold = 256
	minCompressionSavings       = 0.10

	// maxDecompressedSize caps how far a sealed payload may expand.
	maxDecompressedSize = 64 * 1024 * 1024
)

var (
	// encoder and decoder are reusable and safe for concurrent use
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
	zstdOnce    sync.Once
	zstdErr     error
)

func initZstd() (*zstd.Encoder, *zstd.Decoder, error) {
	zstdOnce.Do(func() {
		zstdEncoder, zstdErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if zstdErr != nil {
			return
		}
		zstdDecoder, zstdErr = zstd.NewReader(nil)
		if zstdErr != nil {
			zstdEncoder.Close()
			zstdEncoder = nil
		}
	})
	return zstdEncoder, zstdDecoder, zstdErr
}

// maybeCompress compresses payloads above the threshold when doing so saves
// at least minCompressionSavings. Returns the payload to seal and the
// matching flag byte.
func maybeCompress(data []byte, threshold int, disabled bool) ([]byte, byte) {
	if disabled || len(data) < threshold {
		return data, flagRaw
	}
	encoder, _, err := initZstd()
	if err != nil {
		return data, flagRaw
	}
	compressed := encoder.EncodeAll(data, nil)
	savings := float64(len(data)-len(compressed)) / float64(len(data))
	if savings < minCompressionSavings {
		return data, flagRaw
	}
	return compressed, flagZstd
}

// decompress restores the payload according to the envelope flag.
func decompress(data []byte, flag byte) ([]byte, error) {
	if flag == flagRaw {
		return data, nil
	}
	_, decoder, err := initZstd()
	if err != nil {
		return nil, err
	}
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", errs.ErrCiphertextInvalid)
	}
	if len(out) > maxDecompressedSize {
		return nil, fmt.Errorf("payload exceeds %d bytes: %w", maxDecompressedSize, errs.ErrCiphertextInvalid)
	}
	return out, nil
}

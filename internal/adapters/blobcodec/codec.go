// Package blobcodec compresses stored image payloads. Inline base64 images
// dominate the size of a stored comparison.
package blobcodec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	initOnce sync.Once
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	initErr  error
)

func coders() error {
	initOnce.Do(func() {
		encoder, initErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if initErr != nil {
			return
		}
		decoder, initErr = zstd.NewReader(nil)
	})
	return initErr
}

// Encode compresses s. The empty string encodes to nil.
func Encode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if err := coders(); err != nil {
		return nil, fmt.Errorf("init zstd: %w", err)
	}
	return encoder.EncodeAll([]byte(s), nil), nil
}

func Decode(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if err := coders(); err != nil {
		return "", fmt.Errorf("init zstd: %w", err)
	}
	out, err := decoder.DecodeAll(b, nil)
	if err != nil {
		return "", fmt.Errorf("decompress payload: %w", err)
	}
	return string(out), nil
}

package cipher

// Envelope layout (before text encoding):
// [version:1][flag:1][issuedAt:8 BE unix sec][nonce:24][sealed payload+tag]
//
// Flag byte values:
//   0x00 = payload sealed as-is
//   0x01 = payload zstd-compressed before sealing
//
// The header (version||flag||issuedAt) is bound as AEAD additional data, so
// header tampering fails authentication.

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/maskvault/maskvault/internal/errs"
)

const (
	envelopeVersion byte = 1

	flagRaw  byte = 0x00
	flagZstd byte = 0x01

	headerSize = 1 + 1 + 8
	nonceSize  = chacha20poly1305.NonceSizeX
)

// formatHeader assembles the envelope header, which doubles as the AAD.
func formatHeader(flag byte, issuedAt int64) []byte {
	h := make([]byte, headerSize)
	h[0] = envelopeVersion
	h[1] = flag
	binary.BigEndian.PutUint64(h[2:], uint64(issuedAt))
	return h
}

// parseEnvelope splits a binary envelope into its parts. The returned aad
// slice covers the header bytes exactly as they must be fed to the AEAD.
func parseEnvelope(data []byte) (flag byte, issuedAt int64, nonce, sealed, aad []byte, err error) {
	// header + nonce + at least the Poly1305 tag
	if len(data) < headerSize+nonceSize+chacha20poly1305.Overhead {
		err = errs.ErrCiphertextInvalid
		return
	}
	if data[0] != envelopeVersion {
		err = errs.ErrCiphertextInvalid
		return
	}
	flag = data[1]
	if flag != flagRaw && flag != flagZstd {
		err = errs.ErrCiphertextInvalid
		return
	}
	issuedAt = int64(binary.BigEndian.Uint64(data[2:headerSize]))
	aad = data[:headerSize]
	nonce = data[headerSize : headerSize+nonceSize]
	sealed = data[headerSize+nonceSize:]
	return
}

// Package cipher seals short text values into authenticated, text-safe
// envelopes under a single master key.
package cipher

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/maskvault/maskvault/internal/errs"
)

// infoSealing keeps the sealing key domain-separated from the raw master key.
const infoSealing = "maskvault-email-sealing-v1"

// Cipher seals and opens short text values. Safe for concurrent use.
type Cipher struct {
	sealKey [chacha20poly1305.KeySize]byte
	cfg     *config
}

// New derives the sealing key from a 32-byte master key via HKDF-SHA256.
func New(masterKey []byte, opts ...Option) (*Cipher, error) {
	if len(masterKey) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("master key must be %d bytes, got %d: %w",
			chacha20poly1305.KeySize, len(masterKey), errs.ErrKeyStore)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	c := &Cipher{cfg: cfg}
	r := hkdf.New(sha256.New, masterKey, nil, []byte(infoSealing))
	if _, err := io.ReadFull(r, c.sealKey[:]); err != nil {
		return nil, fmt.Errorf("derive sealing key: %w", err)
	}
	return c, nil
}

// EncryptString seals plaintext into a text-safe envelope. Every call draws a
// fresh nonce, so equal plaintexts produce different envelopes.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	payload, flag := maybeCompress([]byte(plaintext), c.cfg.compressionThreshold, c.cfg.compressionDisabled)

	aead, err := chacha20poly1305.NewX(c.sealKey[:])
	if err != nil {
		return "", err
	}
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	header := formatHeader(flag, c.cfg.now().Unix())
	out := make([]byte, 0, len(header)+len(nonce)+len(payload)+aead.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, payload, header)...)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// DecryptString authenticates and opens an envelope produced by
// EncryptString. Failures wrap ErrCiphertextInvalid (malformed input) or
// ErrDecrypt (wrong key, tampering); no unauthenticated plaintext is ever
// returned.
func (c *Cipher) DecryptString(envelope string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("decode envelope: %w", errs.ErrCiphertextInvalid)
	}
	flag, _, nonce, sealed, aad, err := parseEnvelope(raw)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(c.sealKey[:])
	if err != nil {
		return "", err
	}
	payload, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return "", fmt.Errorf("open envelope: %w", errs.ErrDecrypt)
	}
	plain, err := decompress(payload, flag)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// IssuedAt reports when an envelope was sealed, without opening it. The
// timestamp is only trustworthy once DecryptString succeeds on the same
// envelope.
func IssuedAt(envelope string) (time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(envelope)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode envelope: %w", errs.ErrCiphertextInvalid)
	}
	_, issuedAt, _, _, _, err := parseEnvelope(raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(issuedAt, 0).UTC(), nil
}

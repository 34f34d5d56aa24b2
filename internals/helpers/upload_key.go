// file: internals/helpers/upload_key.go
package helper

import (
	"crypto/rand"
	"math/big"
)

const uploadKeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const UploadKeyLength = 32

// GenerateUploadKey returns a 32-char alphanumeric token (62-char alphabet)
// that groups attachments to a future parent entity.
func GenerateUploadKey() string {
	b := make([]byte, UploadKeyLength)
	max := big.NewInt(int64(len(uploadKeyAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			b[i] = uploadKeyAlphabet[0]
			continue
		}
		b[i] = uploadKeyAlphabet[n.Int64()]
	}
	return string(b)
}

// IsUploadKey reports whether s looks like a generated upload key.
func IsUploadKey(s string) bool {
	if len(s) != UploadKeyLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}

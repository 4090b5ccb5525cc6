package mdb

import "fmt"

// KeyV8 is the fixed keystream table protecting GFDM V8's mdbe.bin.
var KeyV8 = []byte("2+.58>;.A")

// Cipher is the symmetric transform between the encrypted blob as stored in
// the pak archive and its decodable plaintext form.
//
// The transform XORs each byte against a keystream derived only from the byte
// position and the key table, and reverses the buffer: plaintext byte i comes
// from raw byte len-1-i. Encrypt is the exact algebraic inverse of Decrypt,
// both preserve length, and both are total over any input.
type Cipher struct {
	key []byte
}

// NewCipher returns a Cipher driven by the given key table.
// The key is copied; the V8 database uses KeyV8.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: key table must not be empty", ErrInvalidKey)
	}
	c := &Cipher{key: make([]byte, len(key))}
	copy(c.key, key)
	return c, nil
}

// keystream returns the key byte for plaintext position i.
func (c *Cipher) keystream(i int) byte {
	k := i % len(c.key)
	return byte(k + 16*(i%8) + (int(c.key[k]) ^ (127 - k)))
}

// Decrypt transforms an encrypted blob into its plaintext form.
func (c *Cipher) Decrypt(raw []byte) []byte {
	n := len(raw)
	plain := make([]byte, n)
	for i := 0; i < n; i++ {
		plain[i] = raw[n-1-i] ^ c.keystream(i)
	}
	return plain
}

// Encrypt transforms a plaintext blob back into its encrypted form, such that
// Decrypt(Encrypt(p)) == p and Encrypt(Decrypt(x)) == x.
func (c *Cipher) Encrypt(plain []byte) []byte {
	n := len(plain)
	raw := make([]byte, n)
	for i := 0; i < n; i++ {
		raw[n-1-i] = plain[i] ^ c.keystream(i)
	}
	return raw
}

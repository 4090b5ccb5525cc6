package mdb_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/573dev/pakdump/mdb"
)

func TestNewCipherEmptyKey(t *testing.T) {
	_, err := mdb.NewCipher(nil)
	if !errors.Is(err, mdb.ErrInvalidKey) {
		t.Errorf("NewCipher(nil) error = %v, want ErrInvalidKey", err)
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, err := mdb.NewCipher(mdb.KeyV8)
	if err != nil {
		t.Fatalf("NewCipher() error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for _, size := range []int{0, 1, 9, 72, 488, 4096} {
		raw := make([]byte, size)
		rng.Read(raw)

		if got := c.Encrypt(c.Decrypt(raw)); !bytes.Equal(got, raw) {
			t.Errorf("size %d: Encrypt(Decrypt(x)) != x", size)
		}
		if got := c.Decrypt(c.Encrypt(raw)); !bytes.Equal(got, raw) {
			t.Errorf("size %d: Decrypt(Encrypt(p)) != p", size)
		}
	}
}

func TestCipherPreservesLength(t *testing.T) {
	c, _ := mdb.NewCipher(mdb.KeyV8)

	raw := make([]byte, 333)
	if got := len(c.Decrypt(raw)); got != len(raw) {
		t.Errorf("Decrypt() length = %d, want %d", got, len(raw))
	}
	if got := len(c.Encrypt(raw)); got != len(raw) {
		t.Errorf("Encrypt() length = %d, want %d", got, len(raw))
	}
}

// TestDecryptMatchesReferenceTransform spells the published V8 transform out
// longhand and checks Decrypt byte for byte against it.
func TestDecryptMatchesReferenceTransform(t *testing.T) {
	c, _ := mdb.NewCipher(mdb.KeyV8)

	rng := rand.New(rand.NewSource(2))
	raw := make([]byte, 301)
	rng.Read(raw)

	plain := c.Decrypt(raw)
	n := len(raw)
	for i := 0; i < n; i++ {
		ks := i + 16*(i%8) + (int(mdb.KeyV8[i%9]) ^ (9*(i/9) - i + 127)) - 9*(i/9)
		want := raw[n-1-i] ^ byte(ks)
		if plain[i] != want {
			t.Fatalf("Decrypt()[%d] = 0x%02x, want 0x%02x", i, plain[i], want)
		}
	}
}

func TestCipherIsKeyed(t *testing.T) {
	a, _ := mdb.NewCipher(mdb.KeyV8)
	b, _ := mdb.NewCipher([]byte("different"))

	plain := bytes.Repeat([]byte{0xAA}, 64)
	if bytes.Equal(a.Encrypt(plain), b.Encrypt(plain)) {
		t.Error("different key tables should produce different ciphertext")
	}
}

func TestCipherDeterministic(t *testing.T) {
	c, _ := mdb.NewCipher(mdb.KeyV8)

	plain := []byte("deterministic input")
	if !bytes.Equal(c.Encrypt(plain), c.Encrypt(plain)) {
		t.Error("Encrypt() should be deterministic")
	}
}

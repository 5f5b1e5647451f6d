package models

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Algorithm identifiers persisted in users.password_algo.
const (
	AlgoArgon2id = "argon2id"
	AlgoBcrypt   = "bcrypt"
)

// Argon2id parameters (tuned for server-side hashing).
const (
	argonTime    uint32 = 3         // iterations
	argonMemory  uint32 = 64 * 1024 // 64 MB
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
	argonSaltLen        = 16
)

// Hasher computes and verifies salted password digests.
// Hash returns the digest and the salt it used, both as printable strings.
type Hasher interface {
	Algorithm() string
	Hash(password string) (hash, salt string, err error)
	Verify(password, hash, salt string) bool
}

type argon2idHasher struct{}

func (argon2idHasher) Algorithm() string { return AlgoArgon2id }

func (argon2idHasher) Hash(password string) (string, string, error) {
	salt, err := randBytes(argonSaltLen)
	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return encode(key), encode(salt), nil
}

func (argon2idHasher) Verify(password, hash, salt string) bool {
	want, err := decode(hash)
	if err != nil || len(want) == 0 {
		return false
	}
	s, err := decode(salt)
	if err != nil || len(s) == 0 {
		return false
	}
	got := argon2.IDKey([]byte(password), s, argonTime, argonMemory, argonThreads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}

// bcryptHasher keeps its salt inside the digest, so the salt column stays empty.
type bcryptHasher struct {
	cost int
}

func (bcryptHasher) Algorithm() string { return AlgoBcrypt }

func (h bcryptHasher) Hash(password string) (string, string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), "", nil
}

func (bcryptHasher) Verify(password, hash, _ string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	hashersMu sync.RWMutex
	hashers   = map[string]Hasher{
		AlgoArgon2id: argon2idHasher{},
		AlgoBcrypt:   bcryptHasher{cost: bcrypt.DefaultCost},
	}
	defaultAlgo = AlgoArgon2id
)

// HasherFor returns the registered hasher for algo.
func HasherFor(algo string) (Hasher, bool) {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	h, ok := hashers[algo]
	return h, ok
}

// DefaultHasher returns the hasher used for newly set passwords.
func DefaultHasher() Hasher {
	hashersMu.RLock()
	defer hashersMu.RUnlock()
	return hashers[defaultAlgo]
}

// SetDefaultHasher selects the algorithm used for newly set passwords.
// Existing credentials keep verifying with the algorithm they were stored with.
func SetDefaultHasher(algo string) error {
	hashersMu.Lock()
	defer hashersMu.Unlock()
	if _, ok := hashers[algo]; !ok {
		return fmt.Errorf("unknown password hasher %q", algo)
	}
	defaultAlgo = algo
	return nil
}

func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

func encode(b []byte) string { return base64.RawStdEncoding.EncodeToString(b) }

func decode(s string) ([]byte, error) { return base64.RawStdEncoding.DecodeString(s) }

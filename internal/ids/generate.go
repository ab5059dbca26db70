package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

// DefaultLength is the standard length for short IDs.
const DefaultLength = 8

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length <= 0 {
		return ""
	}
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLower(encoded[:length])
}

// GenerateWithTimestamp appends a timestamp to input before hashing.
func GenerateWithTimestamp(input string, timestamp time.Time, length int) string {
	return Generate(input+timestamp.Format(time.RFC3339Nano), length)
}

// NewUUID returns a random version 4 UUID.
func NewUUID() string {
	return uuid.NewString()
}

// ShortGenerator produces short base32 IDs. Each ID hashes a per-generator
// random seed, the current time and a sequence number, so two calls never
// hash the same input.
type ShortGenerator struct {
	length int
	seed   string
	now    func() time.Time

	mu  sync.Mutex
	seq uint64
}

// NewShortGenerator returns a generator of IDs with the given length.
func NewShortGenerator(length int) *ShortGenerator {
	if length <= 0 {
		length = DefaultLength
	}
	return &ShortGenerator{
		length: length,
		seed:   uuid.NewString(),
		now:    time.Now,
	}
}

// Next returns a fresh ID.
func (g *ShortGenerator) Next() string {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	return GenerateWithTimestamp(g.seed+":"+strconv.FormatUint(seq, 10), g.now(), g.length)
}

// Package sessionid generates identifiers for practice sessions: a UUIDv7
// encoded as 26 lowercase Crockford base32 characters, so identifiers sort by
// creation time.
package sessionid

import (
	crand "crypto/rand"
	"encoding/base32"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/coder/quartz"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an identifier.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates identifiers from a clock and a random source.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator returns a generator. A nil rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns an identifier using the real clock and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate returns a new identifier.
func (g *Generator) Generate() string {
	var random [10]byte
	if g.rng != nil {
		for i := range random {
			random[i] = byte(g.rng.UintN(256))
		}
	} else if _, err := crand.Read(random[:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return encode(g.clock.Now(), random)
}

// encode lays out a UUIDv7: 48 bits of unix milliseconds, version 7, the
// RFC 4122 variant and the random bits.
func encode(now time.Time, random [10]byte) string {
	var uuid [16]byte
	ms := uint64(now.UnixMilli())
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}
	copy(uuid[6:], random[:])
	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return encoding.EncodeToString(uuid[:])
}

// Validate checks that id is a well formed identifier.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if i := strings.IndexFunc(id, func(r rune) bool { return !strings.ContainsRune(alphabet, r) }); i >= 0 {
		return fmt.Errorf("invalid character %q at position %d", id[i], i)
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("session ID is not a version 7 UUID")
	}
	return nil
}

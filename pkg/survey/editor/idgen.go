package editor

import (
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces section and question ids. Generated ids must be unique
// with overwhelming probability across the process lifetime; collisions are
// not actively checked.
type IDGenerator interface {
	NewID() string
}

// TimeRandomID is the default generator: millisecond timestamp plus a random
// suffix, both base36.
type TimeRandomID struct{}

func (TimeRandomID) NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strconv.FormatInt(rand.Int63n(36*36*36*36*36), 36)
	return ts + "-" + suffix
}

// UUIDGenerator produces random UUID ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequentialID produces deterministic ids for tests.
type SequentialID struct {
	Prefix string

	mu      sync.Mutex
	counter int
}

func (g *SequentialID) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s%d", g.Prefix, g.counter)
}

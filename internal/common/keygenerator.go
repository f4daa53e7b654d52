package common

import (
	"fmt"
	"sync"
	"time"
)

// KeyGenerator issues object names of the form "<epoch_millis>.<ext>". When
// the clock has not advanced since the last key, the previous value plus one
// is used, so keys never repeat within a process.
type KeyGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{now: time.Now}
}

func (g *KeyGenerator) Next(ext string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("%d.%s", ms, ext)
}

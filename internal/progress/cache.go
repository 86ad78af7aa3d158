package progress

import (
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
	"github.com/google/uuid"
	util "github.com/saulo-duarte/habits-lambda/internal/utils"
)

// StreakCache memoizes a habit's recent completion days, the input of the
// streak calculator. Store only succeeds when gen still matches the value
// returned by Lookup, so a load that raced with Invalidate is discarded.
type StreakCache interface {
	Lookup(habitID uuid.UUID) (days []util.Date, gen uint64, ok bool)
	Store(habitID uuid.UUID, gen uint64, days []util.Date)
	Invalidate(habitID uuid.UUID)
}

// genStripes bounds generation tracking. Habits sharing a stripe only cost
// each other a discarded Store, never a stale read.
const genStripes = 4096

type freeStreakCache struct {
	cache *freecache.Cache
	ttl   int

	mu   sync.Mutex
	gens [genStripes]uint64
}

// NewStreakCache returns a freecache-backed cache of sizeMB megabytes whose
// entries expire after ttlSeconds (0 means no expiry).
func NewStreakCache(sizeMB, ttlSeconds int) StreakCache {
	return &freeStreakCache{
		cache: freecache.NewCache(sizeMB * 1024 * 1024),
		ttl:   ttlSeconds,
	}
}

func stripe(habitID uuid.UUID) uint64 {
	return xxhash.Sum64(habitID[:]) % genStripes
}

func (c *freeStreakCache) Lookup(habitID uuid.UUID) ([]util.Date, uint64, bool) {
	c.mu.Lock()
	gen := c.gens[stripe(habitID)]
	c.mu.Unlock()

	raw, err := c.cache.Get(habitID[:])
	if err != nil {
		return nil, gen, false
	}
	var days []util.Date
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, gen, false
	}
	return days, gen, true
}

func (c *freeStreakCache) Store(habitID uuid.UUID, gen uint64, days []util.Date) {
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[stripe(habitID)] != gen {
		return
	}
	_ = c.cache.Set(habitID[:], raw, c.ttl)
}

func (c *freeStreakCache) Invalidate(habitID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[stripe(habitID)]++
	c.cache.Del(habitID[:])
}

type noopStreakCache struct{}

func NewNoopStreakCache() StreakCache {
	return noopStreakCache{}
}

func (noopStreakCache) Lookup(uuid.UUID) ([]util.Date, uint64, bool) { return nil, 0, false }
func (noopStreakCache) Store(uuid.UUID, uint64, []util.Date)         {}
func (noopStreakCache) Invalidate(uuid.UUID)                         {}

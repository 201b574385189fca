package chart

import (
	"strings"
	"sync"

	"norya.com/report/types"
	"norya.com/report/utils"
)

// Cache memoizes synthesized artifacts. The key covers every input that
// shapes the output, including the name since it is drawn into the label.
// Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]types.ChartArtifact
}

func NewCache() *Cache {
	return &Cache{entries: map[uint64]types.ChartArtifact{}}
}

func (c *Cache) Synthesize(name string, value *float64, unit string, ref *types.ReferenceRange, status types.Status) (types.ChartArtifact, bool) {
	if value == nil || ref == nil || ref.High <= ref.Low {
		return types.ChartArtifact{}, false
	}
	key := cacheKey(name, *value, unit, *ref, status)
	c.mu.Lock()
	defer c.mu.Unlock()
	artifact, ok := c.entries[key]
	if !ok {
		artifact, _ = Synthesize(name, value, unit, ref, status)
		c.entries[key] = artifact
	}
	return artifact, true
}

func cacheKey(name string, value float64, unit string, ref types.ReferenceRange, status types.Status) uint64 {
	return utils.HashString(strings.Join([]string{
		name,
		num(value),
		unit,
		num(ref.Low),
		num(ref.High),
		string(status),
	}, "\x1f"))
}

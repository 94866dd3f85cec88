package validate

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache reuses compiled validators across calls, keyed by schema digest.
// Compiling is the expensive step; validating the same schema against many
// sample batches should pay it once.
type Cache struct {
	cache *lru.Cache[string, *Validator]
}

// NewCache creates an LRU cache holding up to maxItems compiled validators.
func NewCache(maxItems int) (*Cache, error) {
	c, err := lru.New[string, *Validator](maxItems)
	if err != nil {
		return nil, err
	}
	return &Cache{cache: c}, nil
}

// Get returns a compiled validator for the schema, compiling on miss.
func (c *Cache) Get(schema any) (*Validator, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	sum := sha256.Sum256(raw)
	key := hex.EncodeToString(sum[:])

	if v, ok := c.cache.Get(key); ok {
		return v, nil
	}

	v, err := CompileBytes(raw)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, v)
	return v, nil
}

// Len returns the number of cached validators.
func (c *Cache) Len() int {
	return c.cache.Len()
}

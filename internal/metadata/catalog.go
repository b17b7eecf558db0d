package metadata

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/thoreinstein/pkgmeta/internal/logging"
)

// Catalog is an ordered set of records keyed by package name. Iteration
// order is insertion order until Sort is called.
type Catalog struct {
	keys    []string
	records map[string]*Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[string]*Record)}
}

// Put stores r under r.Key. A new key is appended to the order; an existing
// key keeps its position and its record is replaced. It reports whether a
// record was replaced.
func (c *Catalog) Put(r *Record) bool {
	if _, ok := c.records[r.Key]; ok {
		c.records[r.Key] = r
		return true
	}
	c.keys = append(c.keys, r.Key)
	c.records[r.Key] = r
	return false
}

// Get returns the record stored under key.
func (c *Catalog) Get(key string) (*Record, bool) {
	r, ok := c.records[key]
	return r, ok
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Keys returns the keys in catalog order.
func (c *Catalog) Keys() []string {
	return slices.Clone(c.keys)
}

// Records returns the records in catalog order.
func (c *Catalog) Records() []*Record {
	out := make([]*Record, len(c.keys))
	for i, k := range c.keys {
		out[i] = c.records[k]
	}
	return out
}

// Sort orders the catalog with CompareKeys.
func (c *Catalog) Sort() {
	slices.SortFunc(c.keys, CompareKeys)
}

// CompareKeys orders package names ascending by byte value. Keys are
// unique within a catalog, so no tie-break is needed.
func CompareKeys(a, b string) int {
	return strings.Compare(a, b)
}

// Aggregate merges the external table and the loaded records into a sorted
// catalog. Loaded records win over an external record with the same key.
// Nil entries in loaded (skipped packages) are ignored.
func Aggregate(ctx context.Context, external map[string]*Record, loaded []*Record) *Catalog {
	logger := logging.FromContext(ctx)

	c := NewCatalog()
	for _, key := range slices.Sorted(maps.Keys(external)) {
		r := external[key]
		if r.Key == "" {
			r = r.Clone()
			r.Key = key
		}
		c.Put(r)
	}

	for _, r := range loaded {
		if r == nil {
			continue
		}
		if c.Put(r) {
			logger.Warn("package metadata replaces external entry", "key", r.Key)
		}
	}

	c.Sort()
	logger.Debug("aggregated catalog", "external", len(external), "records", c.Len())
	return c
}

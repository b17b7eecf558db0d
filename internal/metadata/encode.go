package metadata

import (
	"bytes"
	"maps"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

// ErrNotTable indicates a top-level value in a metadata file is not a table.
var ErrNotTable = errors.New("top-level value is not a table")

// Encode renders the catalog as TOML: one table per record, in catalog
// order, separated by a blank line. Typed fields come first, followed by
// the pass-through fields sorted by name. The output depends only on the
// catalog content, so encoding the same catalog twice yields identical bytes.
func Encode(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range c.Records() {
		table, err := encodeTable(r)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %q", r.Key)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(table)
	}
	return buf.Bytes(), nil
}

func encodeTable(r *Record) ([]byte, error) {
	typed, err := toml.Marshal(map[string]*Record{r.Key: r})
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return typed, nil
	}

	// The extra fields are marshaled under the same key and appended without
	// their table header, so both halves end up in a single table.
	header := typed[:bytes.IndexByte(typed, '\n')+1]
	extra, err := toml.Marshal(map[string]map[string]any{r.Key: r.Extra})
	if err != nil {
		return nil, err
	}
	body, ok := bytes.CutPrefix(extra, header)
	if !ok {
		return nil, errors.Newf("unexpected table header in %q", extra)
	}

	out := make([]byte, 0, len(typed)+len(body))
	out = append(out, typed...)
	return append(out, body...), nil
}

// Decode parses a metadata file into a catalog. Tables keep the order in
// which they appear in data; Decode does not sort.
func Decode(data []byte) (*Catalog, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing metadata")
	}

	order, err := topLevelKeys(data)
	if err != nil {
		return nil, errors.Wrap(err, "scanning metadata")
	}
	// Keys defined only through inline tables or dotted paths inside other
	// constructs are not seen by the scan; keep them in sorted order.
	for _, k := range slices.Sorted(maps.Keys(doc)) {
		if !slices.Contains(order, k) {
			order = append(order, k)
		}
	}

	c := NewCatalog()
	for _, key := range order {
		fields, ok := doc[key].(map[string]any)
		if !ok {
			return nil, errors.Wrapf(ErrNotTable, "key %q", key)
		}
		c.Put(recordFromFields(key, fields))
	}
	return c, nil
}

// topLevelKeys returns the first segment of every table header and root
// key, in document order, without duplicates.
func topLevelKeys(data []byte) ([]string, error) {
	var (
		p     unstable.Parser
		order []string
		seen  = make(map[string]bool)
		root  = true
	)

	add := func(it unstable.Iterator) {
		if !it.Next() {
			return
		}
		k := string(it.Node().Data)
		if !seen[k] {
			seen[k] = true
			order = append(order, k)
		}
	}

	p.Reset(data)
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			root = false
			add(e.Key())
		case unstable.KeyValue:
			if root {
				add(e.Key())
			}
		}
	}
	return order, p.Error()
}

package metadata

import (
	"maps"
	"slices"
)

// Field names as they appear in metadata.toml.
const (
	FieldShortName        = "shortName"
	FieldShortDescription = "shortDescription"
	FieldLongDescription  = "longDescription"
	FieldInputExample     = "inputExample"
	FieldOutputExample    = "outputExample"
	FieldSource           = "source"
	FieldSafe             = "safe"
)

// Record is the metadata of one package.
//
// Key is the package's full name; it names the TOML table and is not
// repeated inside it. Fields without a typed counterpart are kept in Extra
// and written back unchanged.
type Record struct {
	Key              string         `toml:"-" json:"key" yaml:"key"`
	ShortName        string         `toml:"shortName,omitempty" json:"shortName,omitempty" yaml:"shortName,omitempty"`
	ShortDescription string         `toml:"shortDescription,omitempty" json:"shortDescription,omitempty" yaml:"shortDescription,omitempty"`
	LongDescription  string         `toml:"longDescription,omitempty" json:"longDescription,omitempty" yaml:"longDescription,omitempty"`
	InputExample     string         `toml:"inputExample,multiline,omitempty" json:"inputExample,omitempty" yaml:"inputExample,omitempty"`
	OutputExample    string         `toml:"outputExample,multiline,omitempty" json:"outputExample,omitempty" yaml:"outputExample,omitempty"`
	Source           string         `toml:"source,omitempty" json:"source,omitempty" yaml:"source,omitempty"`
	Safe             *float64       `toml:"safe,omitempty" json:"safe,omitempty" yaml:"safe,omitempty"`
	Extra            map[string]any `toml:"-" json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Clone returns a deep copy of the typed fields and a shallow copy of Extra.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	if r.Safe != nil {
		safe := *r.Safe
		c.Safe = &safe
	}
	if r.Extra != nil {
		c.Extra = maps.Clone(r.Extra)
	}
	return &c
}

// Fields returns the record as a flat field map, the shape a metadata.toml
// table decodes into. Key is not included.
func (r *Record) Fields() map[string]any {
	fields := make(map[string]any, len(r.Extra)+7)
	maps.Copy(fields, r.Extra)

	set := func(name, value string) {
		if value != "" {
			fields[name] = value
		}
	}
	set(FieldShortName, r.ShortName)
	set(FieldShortDescription, r.ShortDescription)
	set(FieldLongDescription, r.LongDescription)
	set(FieldInputExample, r.InputExample)
	set(FieldOutputExample, r.OutputExample)
	set(FieldSource, r.Source)
	if r.Safe != nil {
		fields[FieldSafe] = *r.Safe
	}
	return fields
}

// ExtraKeys returns the names of the pass-through fields in sorted order.
func (r *Record) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(r.Extra))
}

// recordFromFields builds a Record from a decoded TOML table. Known fields
// with the expected type are lifted into the typed fields; everything else,
// including known names holding an unexpected type, stays in Extra.
func recordFromFields(key string, fields map[string]any) *Record {
	r := &Record{Key: key}

	targets := map[string]*string{
		FieldShortName:        &r.ShortName,
		FieldShortDescription: &r.ShortDescription,
		FieldLongDescription:  &r.LongDescription,
		FieldInputExample:     &r.InputExample,
		FieldOutputExample:    &r.OutputExample,
		FieldSource:           &r.Source,
	}

	for name, value := range fields {
		if dst, ok := targets[name]; ok {
			if s, ok := value.(string); ok {
				*dst = s
				continue
			}
		}
		if name == FieldSafe {
			if f, ok := toFloat(value); ok {
				r.Safe = &f
				continue
			}
		}
		if r.Extra == nil {
			r.Extra = make(map[string]any)
		}
		r.Extra[name] = value
	}

	return r
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

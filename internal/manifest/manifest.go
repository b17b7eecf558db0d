// Package manifest reads the package.json of a monorepo package.
package manifest

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/thoreinstein/pkgmeta/internal/errors"
	"github.com/thoreinstein/pkgmeta/pkg/fileutil"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingField indicates a required manifest field is empty or absent.
var ErrMissingField = errors.New("required manifest field missing")

// Manifest holds the package.json fields pkgmeta consumes.
type Manifest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Homepage    string `json:"homepage"`
}

// Read loads and validates the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, nil
}

// Parse decodes a manifest and checks that name is present. Description
// and homepage may be empty; they are copied into the record as found.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "parsing JSON")
	}
	if m.Name == "" {
		return nil, errors.Wrap(ErrMissingField, "name")
	}
	return &m, nil
}

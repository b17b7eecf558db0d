// Package translate converts documents between TOML, YAML and JSON.
package translate

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/pkgmeta/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format names an output document format.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnknownFormat is returned for a format other than toml, yaml or json.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported formats.
func Formats() []string {
	return []string{string(FormatTOML), string(FormatYAML), string(FormatJSON)}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTOML, FormatYAML, FormatJSON:
		return f, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// FromTOML converts a TOML document to the given format. TOML input is
// returned unchanged.
func FromTOML(tomlData []byte, to Format) ([]byte, error) {
	switch to {
	case FormatTOML:
		return tomlData, nil
	case FormatYAML:
		return TOMLToYAML(tomlData)
	case FormatJSON:
		return TOMLToJSON(tomlData)
	}
	return nil, errors.Wrapf(ErrUnknownFormat, "%q", to)
}

// YAMLToTOML converts YAML data to TOML data.
func YAMLToTOML(yamlData []byte) ([]byte, error) {
	var data any
	if err := yaml.Unmarshal(yamlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling yaml")
	}
	out, err := toml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling toml")
	}
	return out, nil
}

// TOMLToYAML converts TOML data to YAML data.
func TOMLToYAML(tomlData []byte) ([]byte, error) {
	var data any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling yaml")
	}
	return out, nil
}

// TOMLToJSON converts TOML data to indented JSON with a trailing newline.
func TOMLToJSON(tomlData []byte) ([]byte, error) {
	var data map[string]any
	if err := toml.Unmarshal(tomlData, &data); err != nil {
		return nil, errors.Wrap(err, "unmarshaling toml")
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshaling json")
	}
	return append(out, '\n'), nil
}

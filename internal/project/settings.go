package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ArvindGuruRK/construction-3d-plan/internal/model"
)

// ErrUnknownFormat is returned for settings files whose extension is not
// .json, .toml, .yaml or .yml.
var ErrUnknownFormat = errors.New("unknown settings format")

// Format names a settings file codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the codec from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// LoadSettings reads a settings file and overlays it on model.DefaultSettings,
// so a file only needs the keys it changes. Unknown keys are rejected, and the
// merged settings must pass Validate.
func LoadSettings(path string) (model.Settings, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return model.Settings{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	s, err := DecodeSettings(data, format)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

// DecodeSettings overlays data in the given format on the default settings.
func DecodeSettings(data []byte, format Format) (model.Settings, error) {
	s := model.DefaultSettings()

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return model.Settings{}, err
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return model.Settings{}, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return model.Settings{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return model.Settings{}, err
		}
	default:
		return model.Settings{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// SaveSettings writes s in the format implied by the path's extension.
func SaveSettings(path string, s model.Settings) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := EncodeSettings(&buf, s, format); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// EncodeSettings writes s to w in the given format.
func EncodeSettings(w io.Writer, s model.Settings, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatTOML:
		return toml.NewEncoder(w).Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

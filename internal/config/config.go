// Package config loads the optional options file for character-collector.
//
// The file holds the same settings as the command-line flags, so a project
// can keep its collection setup (inputs, output, exclusions) under version
// control. Two formats are accepted, chosen by file extension:
//   - .yaml / .yml, decoded with gopkg.in/yaml.v3
//   - .json / .jsonc, JSON with comments and trailing commas, cleaned with
//     github.com/tidwall/jsonc and decoded with encoding/json
//
// Unknown keys are rejected in both formats so that a misspelt option does
// not silently do nothing.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ZiYueCommentary/character-collector/internal/model"
)

// Options mirrors the collection flags.
type Options struct {
	// Inputs lists files, directories or glob patterns to scan.
	// Relative entries are resolved against the options file's directory.
	Inputs []string `json:"inputs,omitempty" yaml:"inputs,omitempty"`

	// Output is the destination file. Empty means standard output.
	// A relative path is resolved against the options file's directory.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Recursive descends into subdirectories of directory inputs.
	Recursive bool `json:"recursive,omitempty" yaml:"recursive,omitempty"`

	// Silence suppresses informational messages.
	Silence bool `json:"silence,omitempty" yaml:"silence,omitempty"`

	// Suppress suppresses warnings and errors.
	Suppress bool `json:"suppress,omitempty" yaml:"suppress,omitempty"`

	// ExcludeDirs lists directory names skipped while recursing.
	ExcludeDirs []string `json:"excludeDirs,omitempty" yaml:"excludeDirs,omitempty"`
}

// Format identifies the encoding of an options file.
type Format string

const (
	// FormatYAML is a YAML document.
	FormatYAML Format = "yaml"

	// FormatJSONC is JSON, optionally with comments and trailing commas.
	FormatJSONC Format = "jsonc"
)

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSONC, nil
	default:
		return "", fmt.Errorf("unsupported config file extension %q (valid: .yaml, .yml, .json, .jsonc)", filepath.Ext(path))
	}
}

// Load reads and decodes the options file at path, then resolves relative
// paths in it against the file's directory.
//
// A missing or undecodable file is returned as a *model.CLIError with
// ExitGeneralError.
func Load(path string) (*Options, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "invalid config file", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	opts, err := Decode(data, format)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("failed to parse config file %s", path), err)
	}

	opts.resolveRelative(filepath.Dir(path))
	return opts, nil
}

// Decode parses data in the given format. Empty input yields zero Options.
func Decode(data []byte, format Format) (*Options, error) {
	var opts Options

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	case FormatJSONC:
		// Strip comments and trailing commas, then decode strictly.
		clean := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(clean)) == 0 {
			return &opts, nil
		}
		dec := json.NewDecoder(bytes.NewReader(clean))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&opts); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}

	return &opts, nil
}

// resolveRelative joins relative Inputs and Output onto baseDir.
func (o *Options) resolveRelative(baseDir string) {
	for i, in := range o.Inputs {
		if in != "" && !filepath.IsAbs(in) {
			o.Inputs[i] = filepath.Join(baseDir, in)
		}
	}
	if o.Output != "" && !filepath.IsAbs(o.Output) {
		o.Output = filepath.Join(baseDir, o.Output)
	}
}

// Package config holds a small set of run options (printer width, a
// cast-phase strictness flag, and extra copyable-primitive type names),
// loadable from a YAML file. The options are plain data; no other package in
// this module reads them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPrinterWidth is the line width prettyprint.Printer targets when no
// Options.PrinterWidth is set.
const DefaultPrinterWidth = 80

// Options configures a single checker run.
type Options struct {
	// PrinterWidth is the target line width for prettyprint.Printer.
	PrinterWidth int `yaml:"printer_width"`

	// StrictCastPhase is a cast-phase strictness flag. It is loaded and
	// stored only: typecheck.Check does not read it and always gives a cast
	// the phase of its body, whatever the phase of the equivalence.
	StrictCastPhase bool `yaml:"strict_cast_phase"`

	// CopyablePrimitives is a list of type constructor names. It is loaded
	// and stored only: typecheck.IsCopyablePrimitive does not read it.
	CopyablePrimitives []string `yaml:"copyable_primitives"`
}

// Default returns the zero-value Options with PrinterWidth filled in.
func Default() Options {
	return Options{PrinterWidth: DefaultPrinterWidth}
}

// Load reads Options from a YAML file at path, falling back to Default
// field values for anything the file leaves unset.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if opts.PrinterWidth <= 0 {
		opts.PrinterWidth = DefaultPrinterWidth
	}
	return opts, nil
}

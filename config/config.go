// Package config loads and validates context profiles: declarative
// descriptions of which intrinsic groups a sandbox exposes and which
// engine-wide limits apply.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	serrors "github.com/reglet-dev/scriptbox/errors"
)

// Intrinsics selects the intrinsic groups of a profile. The preset "base"
// and "full" ignore the individual flags; "custom" uses them.
type Intrinsics struct {
	Preset      string `yaml:"preset" validate:"omitempty,oneof=base full custom"`
	Date        bool   `yaml:"date"`
	RegExp      bool   `yaml:"regexp"`
	JSON        bool   `yaml:"json"`
	Proxy       bool   `yaml:"proxy"`
	MapSet      bool   `yaml:"mapset"`
	TypedArrays bool   `yaml:"typed_arrays"`
	Eval        bool   `yaml:"eval"`
	Promise     bool   `yaml:"promise"`
}

// Profile describes one sandbox configuration.
type Profile struct {
	Intrinsics   Intrinsics `yaml:"intrinsics"`
	MaxStackSize uint64     `yaml:"max_stack_size" validate:"lte=1073741824"`
	BigNum       bool       `yaml:"bignum"`
}

// Default returns the full-intrinsics profile with engine default limits.
func Default() *Profile {
	return &Profile{Intrinsics: Intrinsics{Preset: "full"}}
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads a profile from disk. Read failures surface as the IO error
// kind.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &serrors.IOError{Err: err}
	}
	return Parse(data)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the profile's declarative constraints.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

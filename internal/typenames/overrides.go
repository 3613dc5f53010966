package typenames

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Overrides supplies user-maintained display names for discriminators the
// built-in tables miss (new vendor tags, private templates). A discriminator
// found in an override table is treated as known and never reported in the
// unknown-types gap list.
//
// The file format is one TOML table per category:
//
//	[tags]
//	xyz = "XYZ Pixel"
//
//	[variables]
//	qq = "Quantum Quality Score"
type Overrides struct {
	Tags      map[string]string `toml:"tags"`
	Variables map[string]string `toml:"variables"`
	Triggers  map[string]string `toml:"triggers"`
	Clients   map[string]string `toml:"clients"`
	BuiltIns  map[string]string `toml:"builtins"`
}

// LoadOverrides reads an overrides file. A missing file is not an error and
// yields nil, so a configured-but-absent path degrades to the static tables.
func LoadOverrides(path string) (*Overrides, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	var ov Overrides
	if _, err := toml.DecodeFile(path, &ov); err != nil {
		return nil, fmt.Errorf("parse type-name overrides %s: %w", path, err)
	}
	return &ov, nil
}

func (o *Overrides) variable(t string) (string, bool) {
	if o == nil {
		return "", false
	}
	name, ok := o.Variables[t]
	return name, ok
}

func (o *Overrides) tag(t string) (string, bool) {
	if o == nil {
		return "", false
	}
	name, ok := o.Tags[t]
	return name, ok
}

func (o *Overrides) trigger(t string) (string, bool) {
	if o == nil {
		return "", false
	}
	name, ok := o.Triggers[t]
	return name, ok
}

func (o *Overrides) client(t string) (string, bool) {
	if o == nil {
		return "", false
	}
	name, ok := o.Clients[t]
	return name, ok
}

func (o *Overrides) builtIn(t string) (string, bool) {
	if o == nil {
		return "", false
	}
	name, ok := o.BuiltIns[t]
	return name, ok
}

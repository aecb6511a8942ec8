package input

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keymap is the file form of a set of axis and button bindings.
//
//	axes:
//	  Horizontal:
//	    - {key: a, value: -1}
//	    - {key: d, value: 1}
//	buttons:
//	  Quit: [escape]
type Keymap struct {
	Axes    map[string][]AxisBinding `yaml:"axes"`
	Buttons map[string][]Key         `yaml:"buttons"`
}

// DefaultKeymap binds WASD and the arrow keys to the Horizontal and Vertical axes.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Axes: map[string][]AxisBinding{
			"Horizontal": {
				{Key: "a", Value: -1}, {Key: "d", Value: 1},
				{Key: KeyLeft, Value: -1}, {Key: KeyRight, Value: 1},
			},
			"Vertical": {
				{Key: "s", Value: -1}, {Key: "w", Value: 1},
				{Key: KeyDown, Value: -1}, {Key: KeyUp, Value: 1},
			},
		},
		Buttons: map[string][]Key{
			"Quit": {KeyEscape},
		},
	}
}

// ParseKeymap decodes a YAML keymap.
func ParseKeymap(data []byte) (*Keymap, error) {
	var km Keymap
	if err := yaml.Unmarshal(data, &km); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	for axis, bindings := range km.Axes {
		for _, b := range bindings {
			if b.Key == "" {
				return nil, fmt.Errorf("parse keymap: axis %q has a binding without a key", axis)
			}
		}
	}
	return &km, nil
}

// LoadKeymap reads a YAML keymap from path.
func LoadKeymap(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap %s: %w", path, err)
	}
	km, err := ParseKeymap(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return km, nil
}

// Apply registers every binding of km.
func (in *Input) Apply(km *Keymap) {
	for name, bindings := range km.Axes {
		in.RegisterAxis(name, bindings...)
	}
	for name, keys := range km.Buttons {
		in.RegisterButton(name, keys...)
	}
}

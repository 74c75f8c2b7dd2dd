// Package presets holds named configurations that overwrite the defaults.
package presets

import (
	"fmt"
	"sort"

	"github.com/spacemeshos/go-parachain/config"
)

var presets = map[string]config.Config{}

func register(name string, conf config.Config) {
	if _, exist := presets[name]; exist {
		panic(fmt.Sprintf("preset with name %s already exists", name))
	}
	conf.Preset = name
	presets[name] = conf
}

// Options returns the names of all registered presets.
func Options() []string {
	rst := make([]string, 0, len(presets))
	for name := range presets {
		rst = append(rst, name)
	}
	sort.Strings(rst)
	return rst
}

// Get returns the preset registered under name.
func Get(name string) (config.Config, error) {
	conf, exists := presets[name]
	if !exists {
		return config.Config{}, fmt.Errorf("preset %s doesn't exist", name)
	}
	return conf, nil
}

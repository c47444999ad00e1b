// Package config holds compiler-wide options that are not carried by the
// AST itself, decoded from YAML the same way the teacher's benchmark specs
// are (internal/eval_harness).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the compiler-wide configuration (§4.3 do_source_mapping,
// §4.4.1 list/set element-size cap, and the USE_COLOR/TOMO_STACKTRACE
// globals from §4.3/§10.1).
type Config struct {
	DoSourceMapping bool  `yaml:"do_source_mapping"`
	MaxListStride   int   `yaml:"max_list_stride"`
	StackTrace      bool  `yaml:"stack_trace"`
	UseColor        *bool `yaml:"use_color"`
}

// Default returns the zero-config defaults: source mapping on, and a stride
// cap matching original_source/src/compile/lists.c's fixed element-size
// limit for a single list allocation.
func Default() *Config {
	return &Config{
		DoSourceMapping: true,
		MaxListStride:   65536,
	}
}

// Load decodes a YAML configuration file, falling back to Default() for any
// field the file omits.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

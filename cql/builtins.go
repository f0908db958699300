package cql

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed builtins.yaml
var builtinsYAML []byte

// Builtin is a native CQL function offered alongside column completions.
type Builtin struct {
	Name          string `yaml:"name"`
	Detail        string `yaml:"detail"`
	Documentation string `yaml:"documentation"`
}

var builtins struct {
	Functions []Builtin `yaml:"functions"`
}

func init() {
	if err := yaml.Unmarshal(builtinsYAML, &builtins); err != nil {
		panic("failed to parse builtins.yaml: " + err.Error())
	}
}

// Builtins returns the native function table in declaration order.
func Builtins() []Builtin {
	return builtins.Functions
}

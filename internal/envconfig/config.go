// Package envconfig reads quick ReLU settings from the environment.
//
// Each setting is exposed as a getter so that the environment is consulted
// at call time:
//   - QUICKRELU_WORKERS: lanes used by the multicore backend
//   - QUICKRELU_MIN_CHUNK: minimum elements per multicore lane
//   - QUICKRELU_CHAIN_RULE: use the chain-rule leaky gradient
//   - QUICKRELU_BACKEND: default backend of the quickrelu command
package envconfig

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"k8s.io/klog/v2"
)

var (
	// Workers is the number of multicore lanes. Default: number of CPUs.
	Workers = Uint("QUICKRELU_WORKERS", uint(runtime.NumCPU()))
	// MinChunk is the minimum number of elements handed to one lane.
	MinChunk = Uint("QUICKRELU_MIN_CHUNK", 16384)
	// ChainRule selects the chain-rule leaky gradient instead of the reference one.
	ChainRule = Bool("QUICKRELU_CHAIN_RULE")
	// Backend is the default backend name of the quickrelu command.
	Backend = StringWithDefault("QUICKRELU_BACKEND", "cpu")
)

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// BoolWithDefault returns a getter for a boolean variable.
// A set but unparsable value counts as true.
func BoolWithDefault(k string) func(defaultValue bool) bool {
	return func(defaultValue bool) bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return defaultValue
	}
}

// Bool returns a getter for a boolean variable defaulting to false.
func Bool(k string) func() bool {
	withDefault := BoolWithDefault(k)
	return func() bool {
		return withDefault(false)
	}
}

// StringWithDefault returns a getter for a string variable.
func StringWithDefault(k, defaultValue string) func() string {
	return func() string {
		if s := Var(k); s != "" {
			return s
		}
		return defaultValue
	}
}

// Uint returns a getter for an unsigned variable. Invalid values are
// logged and replaced by defaultValue.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				klog.Warningf("invalid environment variable %s=%q, using default %d", key, s, defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one setting.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"QUICKRELU_WORKERS":    {"QUICKRELU_WORKERS", Workers(), "Number of multicore lanes"},
		"QUICKRELU_MIN_CHUNK":  {"QUICKRELU_MIN_CHUNK", MinChunk(), "Minimum elements per multicore lane"},
		"QUICKRELU_CHAIN_RULE": {"QUICKRELU_CHAIN_RULE", ChainRule(), "Use the chain-rule leaky gradient"},
		"QUICKRELU_BACKEND":    {"QUICKRELU_BACKEND", Backend(), "Default backend (cpu, multicore, webgpu)"},
	}
}

package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "quickrelu version "+version+"\n", out)

	out, err = execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"cpu float32", []string{"--backend", "cpu", "--size", "1000"}, []string{"backend:   CPU", "regime:    plain", "mismatch:  forward 0, backward 0"}},
		{"cpu float64 leaky", []string{"--backend", "cpu", "--dtype", "float64", "--leak", "2e7"}, []string{"dtype:     float64", "regime:    leaky"}},
		{"cpu float16", []string{"--backend", "cpu", "--dtype", "float16", "--size", "64"}, []string{"dtype:     float16"}},
		{"multicore chain rule", []string{"--backend", "multicore", "--leak", "-3e7", "--chain-rule", "--size", "100000"}, []string{"backend:   Multicore", "gradient:  chain-rule"}},
		{"empty", []string{"--backend", "cpu", "--size", "0"}, []string{"elements:  0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"run"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestRunInfiniteLeak(t *testing.T) {
	for _, backend := range []string{"cpu", "multicore"} {
		t.Run(backend, func(t *testing.T) {
			out, err := execute(t, "run", "--backend", backend, "--size", "16", "--leak", "inf")
			require.NoError(t, err)
			assert.Contains(t, out, "mismatch:  forward 0, backward 0")
		})
	}
}

func TestMismatches(t *testing.T) {
	nan := math.NaN()
	assert.Equal(t, 0, mismatches([]float64{1, nan, 0}, []float64{1, nan, 0}))
	assert.Equal(t, 1, mismatches([]float64{1, nan}, []float64{1, 2}))
	assert.Equal(t, 1, mismatches([]float64{1, 2}, []float64{1, nan}))
	assert.Equal(t, 1, mismatches([]float32{1, 2}, []float32{1, 3}))
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown backend", []string{"--backend", "tpu"}, `unknown backend "tpu"`},
		{"unknown dtype", []string{"--backend", "cpu", "--dtype", "int8"}, `unknown dtype "int8"`},
		{"unsupported dtype", []string{"--backend", "multicore", "--dtype", "float16"}, "does not support float16"},
		{"negative size", []string{"--backend", "cpu", "--size", "-1"}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"run"}, tt.args...)...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEval(t *testing.T) {
	out, err := execute(t, "eval", "--", "-3", "0", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "FORWARD")
	assert.Regexp(t, `-3\s+\|\s+0\s+\|\s+0`, out)
	assert.Regexp(t, `4\s+\|\s+4\s+\|\s+1`, out)

	out, err = execute(t, "eval", "--leak", "2e7", "--dtype", "float64", "--", "-3", "4")
	require.NoError(t, err)
	assert.Regexp(t, `-3\s+\|\s+-6e\+07\s+\|\s+2e\+07`, out)
	assert.Regexp(t, `4\s+\|\s+4\s+\|\s+1`, out)

	_, err = execute(t, "eval", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid value "abc"`)
}

func TestDevices(t *testing.T) {
	out, err := execute(t, "devices")
	require.NoError(t, err)
	assert.Contains(t, out, "BACKEND")
	assert.Contains(t, out, "multicore")
	assert.Contains(t, out, "webgpu")
}

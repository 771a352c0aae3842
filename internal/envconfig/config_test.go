package envconfig

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkers(t *testing.T) {
	t.Setenv("QUICKRELU_WORKERS", "")
	assert.Equal(t, uint(runtime.NumCPU()), Workers())

	t.Setenv("QUICKRELU_WORKERS", "3")
	assert.Equal(t, uint(3), Workers())

	t.Setenv("QUICKRELU_WORKERS", "many")
	assert.Equal(t, uint(runtime.NumCPU()), Workers())
}

func TestChainRule(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"false": false,
		"0":     false,
		"1":     true,
		"true":  true,
		"yes":   true,
	}
	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("QUICKRELU_CHAIN_RULE", value)
			assert.Equal(t, want, ChainRule())
		})
	}
}

func TestBackend(t *testing.T) {
	t.Setenv("QUICKRELU_BACKEND", "")
	assert.Equal(t, "cpu", Backend())

	t.Setenv("QUICKRELU_BACKEND", " 'webgpu' ")
	assert.Equal(t, "webgpu", Backend())
}

func TestAsMap(t *testing.T) {
	t.Setenv("QUICKRELU_MIN_CHUNK", "128")
	m := AsMap()
	assert.Len(t, m, 4)
	assert.Equal(t, uint(128), m["QUICKRELU_MIN_CHUNK"].Value)
}

//go:build windows

// Package webgpu implements the quick ReLU kernel on the GPU using WebGPU.
// Uses go-webgpu (github.com/go-webgpu/webgpu) for zero-CGO WebGPU bindings.
package webgpu

import (
	"fmt"
	"sync"

	"github.com/born-ml/quickrelu/internal/quickrelu"
	"github.com/born-ml/quickrelu/internal/tensor"
	"github.com/go-webgpu/webgpu/wgpu"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Backend runs quick ReLU compute shaders on a WebGPU device.
//
// The Backend is the execution context of its kernels: it owns the device
// and queue, and caches one shader module and pipeline per program. Calls
// are serialized; each call submits its work and waits for the result
// before returning.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	// Shader and pipeline cache
	shaders   map[string]*wgpu.ShaderModule
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex

	// launchMu serializes submissions so a readback never races another call.
	launchMu sync.Mutex

	opts quickrelu.Options
}

var _ quickrelu.Kernel[float32] = (*Backend)(nil)

// New creates a new WebGPU backend.
// Returns ErrUnavailable if WebGPU is not available or initialization fails.
func New(opts ...quickrelu.Option) (backend *Backend, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = errors.Wrapf(quickrelu.ErrUnavailable, "webgpu: native library not available: %v", r)
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return nil, errors.Wrapf(quickrelu.ErrUnavailable, "webgpu: failed to create instance: %v", err)
	}
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, errors.Wrapf(quickrelu.ErrUnavailable, "webgpu: failed to request adapter: %v", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, errors.Wrapf(quickrelu.ErrUnavailable, "webgpu: failed to request device: %v", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, errors.Wrap(quickrelu.ErrUnavailable, "webgpu: failed to get queue")
	}

	klog.V(1).Infof("webgpu: device acquired")
	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		shaders:   make(map[string]*wgpu.ShaderModule),
		pipelines: make(map[string]*wgpu.ComputePipeline),
		opts:      quickrelu.NewOptions(opts...),
	}, nil
}

// Release releases all WebGPU resources.
// Must be called when the backend is no longer needed.
func (b *Backend) Release() {
	b.launchMu.Lock()
	defer b.launchMu.Unlock()
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.pipelines {
		p.Release()
	}
	b.pipelines = nil

	for _, s := range b.shaders {
		s.Release()
	}
	b.shaders = nil

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// Gradient returns the configured leaky-regime gradient mode.
func (b *Backend) Gradient() quickrelu.Gradient {
	return b.opts.Gradient
}

// IsAvailable checks if WebGPU is available on this system.
func IsAvailable() (available bool) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			available = false
		}
	}()

	instance, err := wgpu.CreateInstance(nil)
	if err != nil {
		return false
	}
	defer instance.Release()

	adapter, err := instance.RequestAdapter(nil)
	if err != nil {
		return false
	}
	adapter.Release()

	return true
}

// deviceError converts a recovered panic or error into a *quickrelu.DeviceError.
func (b *Backend) deviceError(op string, cause any) error {
	var err error
	switch c := cause.(type) {
	case error:
		err = c
	default:
		err = errors.New(fmt.Sprint(c))
	}
	klog.Warningf("webgpu: %s failed: %v", op, err)
	return &quickrelu.DeviceError{Backend: b.Name(), Op: op, Err: err}
}

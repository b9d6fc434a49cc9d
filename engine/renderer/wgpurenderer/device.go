// Package wgpurenderer mirrors shader uniform uploads into WebGPU uniform buffers and reads them back to
// check that the GPU copy matches what the OpenGL backend received.
package wgpurenderer

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a headless WebGPU device and its queue. No surface is created.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// OpenDevice requests an adapter and a device with default limits.
//
// Parameters:
//   - forceFallbackAdapter: true to request a software adapter
//
// Returns:
//   - *Device: the opened device
//   - error: error if no adapter or device is available
func OpenDevice(forceFallbackAdapter bool) (*Device, error) {
	instance := wgpu.CreateInstance(nil)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Uniform Mirror Device",
	})
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}

	return &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
	}, nil
}

// Release frees the queue, device, adapter and instance.
func (d *Device) Release() {
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

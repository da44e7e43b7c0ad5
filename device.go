package wgpu2d

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device owns a HAL device and queue, either opened by this package or
// supplied by the host application. It is the entry point for creating
// renderers and textures.
type Device struct {
	device hal.Device
	queue  hal.Queue

	// instance is non-nil only when the device was opened by Open.
	// Externally supplied devices are not ours to destroy.
	instance hal.Instance
	owned    bool
}

// Open acquires a GPU device on the given backend, preferring discrete
// over integrated adapters. The returned device must be released with
// Close when no longer needed.
func Open(backend gputypes.Backend) (*Device, error) {
	api, ok := hal.GetBackend(backend)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNoBackend, backend)
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		dt := adapters[i].Info.DeviceType
		if dt == gputypes.DeviceTypeDiscreteGPU {
			selected = &adapters[i]
			break
		}
		if dt == gputypes.DeviceTypeIntegratedGPU && selected == nil {
			selected = &adapters[i]
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("device opened",
		"adapter", selected.Info.Name,
		"backend", backend)

	return &Device{
		device:   openDev.Device,
		queue:    openDev.Queue,
		instance: instance,
		owned:    true,
	}, nil
}

// NewDevice wraps an externally owned HAL device and queue. Close on the
// returned Device is a no-op for the underlying resources.
func NewDevice(device hal.Device, queue hal.Queue) *Device {
	return &Device{device: device, queue: queue}
}

// HAL returns the underlying HAL device.
func (d *Device) HAL() hal.Device { return d.device }

// Queue returns the underlying HAL queue.
func (d *Device) Queue() hal.Queue { return d.queue }

// Close releases the device if it was opened by this package.
func (d *Device) Close() {
	if !d.owned {
		return
	}
	if d.device != nil {
		d.device.Destroy()
		d.device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.owned = false
}

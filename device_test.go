package wgpu2d

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the wrapped device and a cleanup function.
func createNoopDevice(t *testing.T) (*Device, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return NewDevice(openDev.Device, openDev.Queue), cleanup
}

// createTargetView creates a color target texture and view for frame
// encoding tests.
func createTargetView(t *testing.T, dev *Device, width, height uint32) (hal.TextureView, func()) {
	t.Helper()
	texture, err := dev.HAL().CreateTexture(&hal.TextureDescriptor{
		Label:         "test_target",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	view, err := dev.HAL().CreateTextureView(texture, &hal.TextureViewDescriptor{Label: "test_target_view"})
	if err != nil {
		dev.HAL().DestroyTexture(texture)
		t.Fatalf("CreateTextureView failed: %v", err)
	}
	cleanup := func() {
		dev.HAL().DestroyTextureView(view)
		dev.HAL().DestroyTexture(texture)
	}
	return view, cleanup
}

func TestNewDeviceWrapsExternal(t *testing.T) {
	dev, cleanup := createNoopDevice(t)
	defer cleanup()

	if dev.HAL() == nil {
		t.Error("HAL() returned nil")
	}
	if dev.Queue() == nil {
		t.Error("Queue() returned nil")
	}

	// Close on an externally owned device must not destroy it.
	dev.Close()
	if dev.HAL() == nil {
		t.Error("Close destroyed an externally owned device")
	}
}

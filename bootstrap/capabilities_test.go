package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/bootstrap/internal/fakegpu"
)

func newProbeTarget(t *testing.T) (*fakegpu.Driver, gpu.Surface) {
	t.Helper()

	driver := fakegpu.NewDriver()
	window, err := driver.OpenWindow("probe", 800, 600)
	require.NoError(t, err)
	surface, err := window.CreateSurface(nil)
	require.NoError(t, err)

	return driver, surface
}

func TestFindQueueFamiliesTakesFirstMatch(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))
	device.Families = []gpu.QueueFamily{
		{QueueFlags: gpu.QueueCompute, QueueCount: 2},
		{QueueFlags: gpu.QueueGraphics, QueueCount: 1},
		{QueueFlags: gpu.QueueGraphics, QueueCount: 1},
	}
	device.PresentFamily = map[int]bool{1: true, 2: true}

	indices, err := FindQueueFamilies(device, surface)
	require.NoError(t, err)
	require.True(t, indices.IsComplete())
	require.Equal(t, 1, *indices.GraphicsFamily)
	require.Equal(t, 1, *indices.PresentFamily)
	require.Equal(t, []int{1}, indices.Unique())

	// the walk stops as soon as both roles are filled
	require.Equal(t, []int{0, 1}, device.PresentQueries())
}

func TestFindQueueFamiliesSeparateFamilies(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))
	device.Families = []gpu.QueueFamily{
		{QueueFlags: gpu.QueueGraphics, QueueCount: 1},
		{QueueFlags: gpu.QueueTransfer, QueueCount: 1},
	}
	device.PresentFamily = map[int]bool{1: true}

	indices, err := FindQueueFamilies(device, surface)
	require.NoError(t, err)
	require.Equal(t, 0, *indices.GraphicsFamily)
	require.Equal(t, 1, *indices.PresentFamily)
	require.Equal(t, []int{0, 1}, indices.Unique())
}

func TestFindQueueFamiliesIncomplete(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("compute only", gpu.DeviceTypeOther, 4096))
	device.Families = []gpu.QueueFamily{
		{QueueFlags: gpu.QueueCompute, QueueCount: 1},
	}

	indices, err := FindQueueFamilies(device, surface)
	require.NoError(t, err)
	require.False(t, indices.IsComplete())
	require.Nil(t, indices.GraphicsFamily)
	require.NotNil(t, indices.PresentFamily)
}

func TestMissingExtensions(t *testing.T) {
	driver, _ := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))

	missing, err := MissingExtensions(device, []string{"VK_KHR_dynamic_rendering", gpu.SwapchainExtensionName, "VK_KHR_maintenance4"})
	require.NoError(t, err)
	require.Equal(t, []string{"VK_KHR_dynamic_rendering", "VK_KHR_maintenance4"}, missing)
}

func TestProbeDeviceSkipsSurfaceWithoutExtensions(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))
	device.DeviceExts = map[string]struct{}{}

	candidate, err := ProbeDevice(device, surface, []string{gpu.SwapchainExtensionName})
	require.NoError(t, err)
	require.False(t, candidate.ExtensionsSupported)
	require.Equal(t, []string{gpu.SwapchainExtensionName}, candidate.MissingExtensions)
	require.False(t, candidate.IsSuitable())
	require.Zero(t, device.SurfaceQueries())
}

func TestProbeDeviceSuitable(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))

	candidate, err := ProbeDevice(device, surface, []string{gpu.SwapchainExtensionName})
	require.NoError(t, err)
	require.True(t, candidate.IsSuitable())
	require.Equal(t, "gpu", candidate.Properties.Name)
	require.True(t, candidate.Surface.Presentable())
	require.Equal(t, 1, device.SurfaceQueries())
}

func TestProbeDeviceWithoutPresentModesIsUnsuitable(t *testing.T) {
	driver, surface := newProbeTarget(t)
	device := driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))
	device.PresentModes = nil

	candidate, err := ProbeDevice(device, surface, []string{gpu.SwapchainExtensionName})
	require.NoError(t, err)
	require.False(t, candidate.IsSuitable())
}

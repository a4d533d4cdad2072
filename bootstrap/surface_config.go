package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
)

// SwapchainConfig is the negotiated presentation configuration for the
// selected device and surface.
type SwapchainConfig struct {
	Format       gpu.Format
	ColorSpace   gpu.ColorSpace
	PresentMode  gpu.PresentMode
	Extent       gpu.Extent2D
	ImageCount   int
	PreTransform gpu.SurfaceTransformFlags
}

// ChooseSwapSurfaceFormat prefers 8-bit BGRA sRGB with a nonlinear sRGB color
// space, and otherwise takes the first format the surface reports. It returns
// false when there are no formats to choose from.
func ChooseSwapSurfaceFormat(availableFormats []gpu.SurfaceFormat) (gpu.SurfaceFormat, bool) {
	if len(availableFormats) == 0 {
		return gpu.SurfaceFormat{}, false
	}

	for _, format := range availableFormats {
		if format.Format == gpu.FormatB8G8R8A8SRGB && format.ColorSpace == gpu.ColorSpaceSRGBNonlinear {
			return format, true
		}
	}

	return availableFormats[0], true
}

// ChooseSwapPresentMode prefers mailbox and falls back to FIFO, which every
// driver must support.
func ChooseSwapPresentMode(availablePresentModes []gpu.PresentMode) gpu.PresentMode {
	for _, presentMode := range availablePresentModes {
		if presentMode == gpu.PresentModeMailbox {
			return presentMode
		}
	}

	return gpu.PresentModeFIFO
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ChooseSwapExtent uses the surface's current extent unless the surface leaves
// the extent to the window, in which case the drawable size is clamped into the
// allowed range one axis at a time.
func ChooseSwapExtent(capabilities *gpu.SurfaceCapabilities, drawableWidth, drawableHeight int) gpu.Extent2D {
	if capabilities.CurrentExtent.Width != gpu.UndefinedExtent {
		return capabilities.CurrentExtent
	}

	return gpu.Extent2D{
		Width:  clamp(drawableWidth, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(drawableHeight, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum. A maximum of 0
// means unbounded.
func ChooseImageCount(capabilities *gpu.SurfaceCapabilities) int {
	imageCount := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && capabilities.MaxImageCount < imageCount {
		imageCount = capabilities.MaxImageCount
	}
	return imageCount
}

func ResolveSwapchainConfig(support SurfaceSupport, drawableWidth, drawableHeight int) (SwapchainConfig, error) {
	if !support.Presentable() {
		return SwapchainConfig{}, errors.Mark(errors.New("surface reports no formats or present modes"), ErrSwapchainCreation)
	}

	surfaceFormat, _ := ChooseSwapSurfaceFormat(support.Formats)

	return SwapchainConfig{
		Format:       surfaceFormat.Format,
		ColorSpace:   surfaceFormat.ColorSpace,
		PresentMode:  ChooseSwapPresentMode(support.PresentModes),
		Extent:       ChooseSwapExtent(support.Capabilities, drawableWidth, drawableHeight),
		ImageCount:   ChooseImageCount(support.Capabilities),
		PreTransform: support.Capabilities.CurrentTransform,
	}, nil
}

package bootstrap

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
)

type QueueFamilyIndices struct {
	GraphicsFamily *int
	PresentFamily  *int
}

func (i *QueueFamilyIndices) IsComplete() bool {
	return i.GraphicsFamily != nil && i.PresentFamily != nil
}

// Unique returns the distinct queue families, graphics first. It must only be
// called on complete indices.
func (i *QueueFamilyIndices) Unique() []int {
	families := []int{*i.GraphicsFamily}
	if *i.PresentFamily != *i.GraphicsFamily {
		families = append(families, *i.PresentFamily)
	}
	return families
}

// SurfaceSupport is what a device can do with a particular surface.
type SurfaceSupport struct {
	Capabilities *gpu.SurfaceCapabilities
	Formats      []gpu.SurfaceFormat
	PresentModes []gpu.PresentMode
}

// Presentable reports whether there is at least one format and one present
// mode to build a swapchain from.
func (s *SurfaceSupport) Presentable() bool {
	return s.Capabilities != nil && len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// DeviceCandidate is a physical device together with everything the selector
// needs to judge it.
type DeviceCandidate struct {
	Device     gpu.PhysicalDevice
	Properties *gpu.DeviceProperties
	Features   *gpu.DeviceFeatures

	QueueFamilies       QueueFamilyIndices
	ExtensionsSupported bool
	MissingExtensions   []string
	Surface             SurfaceSupport
}

func (c *DeviceCandidate) IsSuitable() bool {
	return c.QueueFamilies.IsComplete() && c.ExtensionsSupported && c.Surface.Presentable()
}

// FindQueueFamilies walks the queue families in index order and keeps the first
// family with graphics support and, independently, the first family that can
// present to surface.
func FindQueueFamilies(device gpu.PhysicalDevice, surface gpu.Surface) (QueueFamilyIndices, error) {
	indices := QueueFamilyIndices{}
	queueFamilies, err := device.QueueFamilies()
	if err != nil {
		return indices, errors.Wrap(err, "query queue families")
	}

	for queueFamilyIdx, queueFamily := range queueFamilies {
		if indices.GraphicsFamily == nil && (queueFamily.QueueFlags&gpu.QueueGraphics) != 0 {
			graphicsIdx := queueFamilyIdx
			indices.GraphicsFamily = &graphicsIdx
		}

		if indices.PresentFamily == nil {
			supported, err := surface.SupportsPresent(device, queueFamilyIdx)
			if err != nil {
				return indices, errors.Wrapf(err, "query present support for queue family %d", queueFamilyIdx)
			}

			if supported {
				presentIdx := queueFamilyIdx
				indices.PresentFamily = &presentIdx
			}
		}

		if indices.IsComplete() {
			break
		}
	}

	return indices, nil
}

// MissingExtensions returns the required extensions the device does not report,
// in the order they were required.
func MissingExtensions(device gpu.PhysicalDevice, required []string) ([]string, error) {
	extensions, err := device.Extensions()
	if err != nil {
		return nil, errors.Wrap(err, "enumerate device extensions")
	}

	var missing []string
	for _, extension := range required {
		_, hasExtension := extensions[extension]
		if !hasExtension {
			missing = append(missing, extension)
		}
	}

	return missing, nil
}

func QuerySurfaceSupport(device gpu.PhysicalDevice, surface gpu.Surface) (SurfaceSupport, error) {
	var support SurfaceSupport
	var err error

	support.Capabilities, err = surface.Capabilities(device)
	if err != nil {
		return support, errors.Wrap(err, "query surface capabilities")
	}

	support.Formats, err = surface.Formats(device)
	if err != nil {
		return support, errors.Wrap(err, "query surface formats")
	}

	support.PresentModes, err = surface.PresentModes(device)
	if err != nil {
		return support, errors.Wrap(err, "query surface present modes")
	}

	return support, nil
}

// ProbeDevice gathers the properties, features, queue families, extension
// support and surface support of device. Surface support is only queried when
// every required extension is present.
func ProbeDevice(device gpu.PhysicalDevice, surface gpu.Surface, requiredExtensions []string) (*DeviceCandidate, error) {
	var err error
	candidate := &DeviceCandidate{Device: device}

	candidate.Properties, err = device.Properties()
	if err != nil {
		return nil, errors.Wrap(err, "query device properties")
	}

	candidate.Features, err = device.Features()
	if err != nil {
		return nil, errors.Wrap(err, "query device features")
	}

	candidate.QueueFamilies, err = FindQueueFamilies(device, surface)
	if err != nil {
		return nil, err
	}

	candidate.MissingExtensions, err = MissingExtensions(device, requiredExtensions)
	if err != nil {
		return nil, err
	}
	candidate.ExtensionsSupported = len(candidate.MissingExtensions) == 0

	if candidate.ExtensionsSupported {
		candidate.Surface, err = QuerySurfaceSupport(device, surface)
		if err != nil {
			return nil, err
		}
	}

	return candidate, nil
}

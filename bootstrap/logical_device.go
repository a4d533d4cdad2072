package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/gpu"
)

// PortabilitySubsetExtensionName must be enabled on devices that expose it
// (MoltenVK on macOS and iOS).
const PortabilitySubsetExtensionName = "VK_KHR_portability_subset"

type LogicalDevice struct {
	Device        gpu.Device
	GraphicsQueue gpu.Queue
	PresentQueue  gpu.Queue
}

// CreateLogicalDevice creates one queue per distinct queue family of the
// candidate and enables the required extensions.
func CreateLogicalDevice(candidate *DeviceCandidate, requiredExtensions []string) (*LogicalDevice, error) {
	indices := candidate.QueueFamilies

	var queueFamilyOptions []gpu.DeviceQueueCreateInfo
	queuePriority := float32(1.0)
	for _, queueFamily := range indices.Unique() {
		queueFamilyOptions = append(queueFamilyOptions, gpu.DeviceQueueCreateInfo{
			QueueFamilyIndex: queueFamily,
			QueuePriorities:  []float32{queuePriority},
		})
	}

	var extensionNames []string
	extensionNames = append(extensionNames, requiredExtensions...)

	extensions, err := candidate.Device.Extensions()
	if err != nil {
		return nil, markf(err, ErrLogicalDeviceCreation, "enumerate device extensions")
	}

	_, supported := extensions[PortabilitySubsetExtensionName]
	if supported {
		extensionNames = append(extensionNames, PortabilitySubsetExtensionName)
	}

	device, err := candidate.Device.CreateDevice(gpu.DeviceCreateInfo{
		QueueCreateInfos:      queueFamilyOptions,
		EnabledFeatures:       gpu.DeviceFeatures{},
		EnabledExtensionNames: extensionNames,
	})
	if err != nil {
		return nil, markf(err, ErrLogicalDeviceCreation, "create device on %q", candidate.Properties.Name)
	}

	return &LogicalDevice{
		Device:        device,
		GraphicsQueue: device.GetQueue(*indices.GraphicsFamily, 0),
		PresentQueue:  device.GetQueue(*indices.PresentFamily, 0),
	}, nil
}

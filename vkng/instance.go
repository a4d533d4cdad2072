// Package vkng implements the gpu boundary on top of vkngwrapper, with SDL2
// providing the window and the Vulkan loader.
package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/ext_debug_utils"
	"github.com/vkngwrapper/extensions/v3/khr_portability_enumeration"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
)

type Loader struct {
	driver core1_0.GlobalDriver
}

func NewLoader(driver core1_0.GlobalDriver) *Loader {
	return &Loader{driver: driver}
}

func (l *Loader) AvailableExtensions() (map[string]struct{}, error) {
	extensions, _, err := l.driver.AvailableExtensions()
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(extensions))
	for name := range extensions {
		names[name] = struct{}{}
	}
	return names, nil
}

func (l *Loader) AvailableLayers() (map[string]struct{}, error) {
	layers, _, err := l.driver.AvailableLayers()
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(layers))
	for name := range layers {
		names[name] = struct{}{}
	}
	return names, nil
}

func debugMessengerOptions(severities gpu.DebugSeverity, callback gpu.DebugCallback) ext_debug_utils.DebugUtilsMessengerCreateInfo {
	return ext_debug_utils.DebugUtilsMessengerCreateInfo{
		MessageSeverity: ext_debug_utils.DebugUtilsMessageSeverityFlags(severities),
		MessageType:     ext_debug_utils.TypeGeneral | ext_debug_utils.TypeValidation | ext_debug_utils.TypePerformance,
		UserCallback: func(msgType ext_debug_utils.DebugUtilsMessageTypeFlags, severity ext_debug_utils.DebugUtilsMessageSeverityFlags, data *ext_debug_utils.DebugUtilsMessengerCallbackData) bool {
			return callback(gpu.DebugSeverity(severity), msgType.String(), data.Message)
		},
	}
}

func (l *Loader) CreateInstance(info gpu.InstanceCreateInfo) (gpu.Instance, error) {
	instanceOptions := core1_0.InstanceCreateInfo{
		ApplicationName:    info.ApplicationName,
		ApplicationVersion: common.CreateVersion(1, 0, 0),
		EngineName:         info.EngineName,
		EngineVersion:      common.CreateVersion(1, 0, 0),
		APIVersion:         common.Vulkan1_2,

		EnabledExtensionNames: info.EnabledExtensionNames,
		EnabledLayerNames:     info.EnabledLayerNames,
	}

	if info.EnumeratePortability {
		instanceOptions.Flags |= khr_portability_enumeration.InstanceCreateEnumeratePortability
	}

	// Messages from instance creation and destruction
	if info.DebugCallback != nil {
		instanceOptions.Next = debugMessengerOptions(gpu.DebugSeverityError|gpu.DebugSeverityWarning, info.DebugCallback)
	}

	instanceDriver, _, err := l.driver.CreateInstance(nil, instanceOptions)
	if err != nil {
		return nil, err
	}

	return &Instance{
		driver:  instanceDriver,
		surface: khr_surface.CreateExtensionDriverFromCoreDriver(instanceDriver),
	}, nil
}

type Instance struct {
	driver  core1_0.CoreInstanceDriver
	surface khr_surface.ExtensionDriver
	debug   ext_debug_utils.ExtensionDriver
}

func (i *Instance) PhysicalDevices() ([]gpu.PhysicalDevice, error) {
	physicalDevices, _, err := i.driver.EnumeratePhysicalDevices()
	if err != nil {
		return nil, err
	}

	devices := make([]gpu.PhysicalDevice, 0, len(physicalDevices))
	for _, device := range physicalDevices {
		devices = append(devices, &PhysicalDevice{instance: i, handle: device})
	}
	return devices, nil
}

func (i *Instance) CreateDebugMessenger(severities gpu.DebugSeverity, callback gpu.DebugCallback) (gpu.DebugMessenger, error) {
	if i.debug == nil {
		i.debug = ext_debug_utils.CreateExtensionDriverFromCoreDriver(i.driver)
	}

	messenger, _, err := i.debug.CreateDebugUtilsMessenger(nil, debugMessengerOptions(severities, callback))
	if err != nil {
		return nil, errors.Wrap(err, "create debug utils messenger")
	}

	return &DebugMessenger{instance: i, handle: messenger}, nil
}

func (i *Instance) Destroy() {
	i.driver.DestroyInstance(nil)
}

type DebugMessenger struct {
	instance *Instance
	handle   ext_debug_utils.DebugUtilsMessenger
}

func (m *DebugMessenger) Destroy() {
	m.instance.debug.DestroyDebugUtilsMessenger(m.handle, nil)
}

// Surface is a khr_surface surface created from an SDL window.
type Surface struct {
	instance *Instance
	handle   khr_surface.Surface
}

func (s *Surface) SupportsPresent(device gpu.PhysicalDevice, queueFamilyIndex int) (bool, error) {
	supported, _, err := s.instance.surface.GetPhysicalDeviceSurfaceSupport(s.handle, physicalHandle(device), queueFamilyIndex)
	return supported, err
}

func (s *Surface) Capabilities(device gpu.PhysicalDevice) (*gpu.SurfaceCapabilities, error) {
	capabilities, _, err := s.instance.surface.GetPhysicalDeviceSurfaceCapabilities(s.handle, physicalHandle(device))
	if err != nil {
		return nil, err
	}

	return &gpu.SurfaceCapabilities{
		MinImageCount:       capabilities.MinImageCount,
		MaxImageCount:       capabilities.MaxImageCount,
		CurrentExtent:       fromExtent(capabilities.CurrentExtent),
		MinImageExtent:      fromExtent(capabilities.MinImageExtent),
		MaxImageExtent:      fromExtent(capabilities.MaxImageExtent),
		SupportedTransforms: gpu.SurfaceTransformFlags(capabilities.SupportedTransforms),
		CurrentTransform:    gpu.SurfaceTransformFlags(capabilities.CurrentTransform),
	}, nil
}

func (s *Surface) Formats(device gpu.PhysicalDevice) ([]gpu.SurfaceFormat, error) {
	surfaceFormats, _, err := s.instance.surface.GetPhysicalDeviceSurfaceFormats(s.handle, physicalHandle(device))
	if err != nil {
		return nil, err
	}

	formats := make([]gpu.SurfaceFormat, 0, len(surfaceFormats))
	for _, format := range surfaceFormats {
		formats = append(formats, gpu.SurfaceFormat{
			Format:     gpu.Format(format.Format),
			ColorSpace: gpu.ColorSpace(format.ColorSpace),
		})
	}
	return formats, nil
}

func (s *Surface) PresentModes(device gpu.PhysicalDevice) ([]gpu.PresentMode, error) {
	presentModes, _, err := s.instance.surface.GetPhysicalDeviceSurfacePresentModes(s.handle, physicalHandle(device))
	if err != nil {
		return nil, err
	}

	modes := make([]gpu.PresentMode, 0, len(presentModes))
	for _, mode := range presentModes {
		modes = append(modes, gpu.PresentMode(mode))
	}
	return modes, nil
}

func (s *Surface) Destroy() {
	s.instance.surface.DestroySurface(s.handle, nil)
}

// Package gpu is the boundary between the context bootstrap and a graphics
// driver. The value types mirror the Vulkan API; the handle interfaces cover
// only the calls needed to negotiate a device and surface and to build the
// objects a first frame depends on.
//
// Every handle is exclusively owned by the object that created it. Destroy
// releases the driver object and must be called at most once.
package gpu

// Loader is the entry point into the driver, available before an instance
// exists.
type Loader interface {
	// AvailableExtensions returns the set of instance extension names
	AvailableExtensions() (map[string]struct{}, error)
	// AvailableLayers returns the set of instance layer names
	AvailableLayers() (map[string]struct{}, error)
	CreateInstance(info InstanceCreateInfo) (Instance, error)
}

type Instance interface {
	// PhysicalDevices enumerates devices in driver order
	PhysicalDevices() ([]PhysicalDevice, error)
	CreateDebugMessenger(severities DebugSeverity, callback DebugCallback) (DebugMessenger, error)
	Destroy()
}

type DebugMessenger interface {
	Destroy()
}

// PhysicalDevice queries are read-only and may be issued from any goroutine.
type PhysicalDevice interface {
	Properties() (*DeviceProperties, error)
	Features() (*DeviceFeatures, error)
	QueueFamilies() ([]QueueFamily, error)
	// Extensions returns the set of device extension names
	Extensions() (map[string]struct{}, error)
	CreateDevice(info DeviceCreateInfo) (Device, error)
}

// Surface is a presentable target. It keeps a non-owning reference to the
// instance it was created from, used only to destroy itself.
type Surface interface {
	SupportsPresent(device PhysicalDevice, queueFamilyIndex int) (bool, error)
	Capabilities(device PhysicalDevice) (*SurfaceCapabilities, error)
	Formats(device PhysicalDevice) ([]SurfaceFormat, error)
	PresentModes(device PhysicalDevice) ([]PresentMode, error)
	Destroy()
}

type Queue interface {
	WaitIdle() error
}

type Device interface {
	GetQueue(queueFamilyIndex, queueIndex int) Queue
	WaitIdle() error

	CreateSwapchain(info SwapchainCreateInfo) (Swapchain, error)
	CreateImageView(info ImageViewCreateInfo) (ImageView, error)
	CreateRenderPass(info RenderPassCreateInfo) (RenderPass, error)
	// CreatePipelineLayout creates a layout with no descriptor set layouts
	// and no push constant ranges
	CreatePipelineLayout() (PipelineLayout, error)
	// CreateShaderModule wraps SPIR-V words
	CreateShaderModule(code []uint32) (ShaderModule, error)
	CreateGraphicsPipeline(info GraphicsPipelineCreateInfo) (Pipeline, error)

	Destroy()
}

type Swapchain interface {
	// Images returns the presentable images. The driver may create more
	// images than were requested.
	Images() ([]Image, error)
	Destroy()
}

// Image is owned by its swapchain and has no Destroy.
type Image interface{}

type ImageView interface {
	Destroy()
}

type RenderPass interface {
	Destroy()
}

type PipelineLayout interface {
	Destroy()
}

type ShaderModule interface {
	Destroy()
}

type Pipeline interface {
	Destroy()
}

// Window is the windowing collaborator. Event handling beyond close and resize
// stays with the window implementation.
type Window interface {
	// RequiredInstanceExtensions lists the instance extensions the window
	// needs to create a surface
	RequiredInstanceExtensions() []string
	CreateSurface(instance Instance) (Surface, error)
	// DrawableSize is the framebuffer size in pixels
	DrawableSize() (width, height int)
	PollEvents()
	ShouldClose() bool
	// ConsumeResize reports whether the window was resized since the last call
	ConsumeResize() bool
	Destroy()
}

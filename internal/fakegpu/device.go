package fakegpu

import (
	"sync"

	"github.com/vkngwrapper/bootstrap/gpu"
)

// PhysicalDevice describes a device and how it behaves against the driver's
// surface. NewPhysicalDevice returns one that is suitable for presentation.
type PhysicalDevice struct {
	Props         gpu.DeviceProperties
	Feats         gpu.DeviceFeatures
	Families      []gpu.QueueFamily
	DeviceExts    map[string]struct{}
	PresentFamily map[int]bool

	SurfaceCaps    gpu.SurfaceCapabilities
	SurfaceFormats []gpu.SurfaceFormat
	PresentModes   []gpu.PresentMode

	// SwapchainImages is the number of images a swapchain created on this
	// device holds. Zero means exactly the requested minimum.
	SwapchainImages int

	// PropertiesErr fails Properties, making the device impossible to probe
	PropertiesErr error

	driver *Driver

	mu             sync.Mutex
	presentQueries []int
	surfaceQueries int
}

func NewPhysicalDevice(name string, deviceType gpu.DeviceType, maxImageDimension2D int) *PhysicalDevice {
	return &PhysicalDevice{
		Props: gpu.DeviceProperties{
			Name:   name,
			Type:   deviceType,
			Limits: gpu.DeviceLimits{MaxImageDimension2D: maxImageDimension2D},
		},
		Feats: gpu.DeviceFeatures{GeometryShader: true},
		Families: []gpu.QueueFamily{
			{QueueFlags: gpu.QueueGraphics | gpu.QueueCompute | gpu.QueueTransfer, QueueCount: 1},
		},
		DeviceExts:    set(gpu.SwapchainExtensionName),
		PresentFamily: map[int]bool{0: true},
		SurfaceCaps: gpu.SurfaceCapabilities{
			MinImageCount:       2,
			MaxImageCount:       8,
			CurrentExtent:       gpu.Extent2D{Width: 800, Height: 600},
			MinImageExtent:      gpu.Extent2D{Width: 1, Height: 1},
			MaxImageExtent:      gpu.Extent2D{Width: 4096, Height: 4096},
			SupportedTransforms: gpu.TransformIdentity,
			CurrentTransform:    gpu.TransformIdentity,
		},
		SurfaceFormats: []gpu.SurfaceFormat{
			{Format: gpu.FormatB8G8R8A8SRGB, ColorSpace: gpu.ColorSpaceSRGBNonlinear},
		},
		PresentModes: []gpu.PresentMode{gpu.PresentModeFIFO},
	}
}

func (p *PhysicalDevice) Properties() (*gpu.DeviceProperties, error) {
	if p.PropertiesErr != nil {
		return nil, p.PropertiesErr
	}
	props := p.Props
	return &props, nil
}

func (p *PhysicalDevice) Features() (*gpu.DeviceFeatures, error) {
	features := p.Feats
	return &features, nil
}

func (p *PhysicalDevice) QueueFamilies() ([]gpu.QueueFamily, error) {
	return p.Families, nil
}

func (p *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	return p.DeviceExts, nil
}

// PresentQueries returns the queue family indices present support was asked
// for, in order.
func (p *PhysicalDevice) PresentQueries() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.presentQueries...)
}

// SurfaceQueries returns how many times surface capabilities were queried.
func (p *PhysicalDevice) SurfaceQueries() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.surfaceQueries
}

func (p *PhysicalDevice) CreateDevice(info gpu.DeviceCreateInfo) (gpu.Device, error) {
	p.driver.DeviceInfos = append(p.driver.DeviceInfos, info)

	err := p.driver.check(OpCreateDevice)
	if err != nil {
		return nil, err
	}
	return &Device{handle: p.driver.newHandle("device"), physical: p}, nil
}

type Queue struct {
	Family int
	Index  int
}

func (q *Queue) WaitIdle() error {
	return nil
}

type Device struct {
	*handle
	physical *PhysicalDevice
}

func (d *Device) GetQueue(queueFamilyIndex, queueIndex int) gpu.Queue {
	return &Queue{Family: queueFamilyIndex, Index: queueIndex}
}

func (d *Device) WaitIdle() error {
	return d.driver.check(OpWaitIdle)
}

func (d *Device) CreateSwapchain(info gpu.SwapchainCreateInfo) (gpu.Swapchain, error) {
	d.driver.SwapchainInfos = append(d.driver.SwapchainInfos, info)

	err := d.driver.check(OpCreateSwapchain)
	if err != nil {
		return nil, err
	}

	imageCount := d.physical.SwapchainImages
	if imageCount == 0 {
		imageCount = info.MinImageCount
	}
	return &Swapchain{handle: d.driver.newHandle("swapchain"), imageCount: imageCount}, nil
}

func (d *Device) CreateImageView(info gpu.ImageViewCreateInfo) (gpu.ImageView, error) {
	d.driver.ViewInfos = append(d.driver.ViewInfos, info)

	err := d.driver.check(OpCreateImageView)
	if err != nil {
		return nil, err
	}
	return d.driver.newHandle("image-view"), nil
}

func (d *Device) CreateRenderPass(info gpu.RenderPassCreateInfo) (gpu.RenderPass, error) {
	d.driver.RenderPasses = append(d.driver.RenderPasses, info)

	err := d.driver.check(OpCreateRenderPass)
	if err != nil {
		return nil, err
	}
	return d.driver.newHandle("render-pass"), nil
}

func (d *Device) CreatePipelineLayout() (gpu.PipelineLayout, error) {
	err := d.driver.check(OpCreatePipelineLayout)
	if err != nil {
		return nil, err
	}
	return d.driver.newHandle("pipeline-layout"), nil
}

func (d *Device) CreateShaderModule(code []uint32) (gpu.ShaderModule, error) {
	d.driver.ShaderCode = append(d.driver.ShaderCode, code)

	err := d.driver.check(OpCreateShaderModule)
	if err != nil {
		return nil, err
	}
	return d.driver.newHandle("shader-module"), nil
}

func (d *Device) CreateGraphicsPipeline(info gpu.GraphicsPipelineCreateInfo) (gpu.Pipeline, error) {
	d.driver.Pipelines = append(d.driver.Pipelines, info)

	err := d.driver.check(OpCreateGraphicsPipeline)
	if err != nil {
		return nil, err
	}
	return d.driver.newHandle("pipeline"), nil
}

type Swapchain struct {
	*handle
	imageCount int
}

// Image is a swapchain image. It is owned by its swapchain.
type Image struct {
	Index int
}

func (s *Swapchain) Images() ([]gpu.Image, error) {
	err := s.driver.check(OpSwapchainImages)
	if err != nil {
		return nil, err
	}

	images := make([]gpu.Image, s.imageCount)
	for i := range images {
		images[i] = &Image{Index: i}
	}
	return images, nil
}

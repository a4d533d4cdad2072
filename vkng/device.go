package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_surface"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

type PhysicalDevice struct {
	instance *Instance
	handle   core1_0.PhysicalDevice
}

// physicalHandle unwraps a device handed out by Instance.PhysicalDevices.
func physicalHandle(device gpu.PhysicalDevice) core1_0.PhysicalDevice {
	return device.(*PhysicalDevice).handle
}

func (p *PhysicalDevice) Properties() (*gpu.DeviceProperties, error) {
	properties, err := p.instance.driver.GetPhysicalDeviceProperties(p.handle)
	if err != nil {
		return nil, err
	}

	return &gpu.DeviceProperties{
		Name:      properties.DriverName,
		Type:      gpu.DeviceType(properties.DriverType),
		VendorID:  uint32(properties.VendorID),
		DeviceID:  uint32(properties.DeviceID),
		CacheUUID: properties.PipelineCacheUUID,
		Limits: gpu.DeviceLimits{
			MaxImageDimension2D: int(properties.Limits.MaxImageDimension2D),
		},
	}, nil
}

func (p *PhysicalDevice) Features() (*gpu.DeviceFeatures, error) {
	features := p.instance.driver.GetPhysicalDeviceFeatures(p.handle)

	return &gpu.DeviceFeatures{
		GeometryShader: features.GeometryShader,
	}, nil
}

func (p *PhysicalDevice) QueueFamilies() ([]gpu.QueueFamily, error) {
	queueFamilies := p.instance.driver.GetPhysicalDeviceQueueFamilyProperties(p.handle)

	families := make([]gpu.QueueFamily, 0, len(queueFamilies))
	for _, queueFamily := range queueFamilies {
		families = append(families, gpu.QueueFamily{
			QueueFlags: gpu.QueueFlags(queueFamily.QueueFlags),
			QueueCount: int(queueFamily.QueueCount),
		})
	}
	return families, nil
}

func (p *PhysicalDevice) Extensions() (map[string]struct{}, error) {
	extensions, _, err := p.instance.driver.EnumerateDeviceExtensionProperties(p.handle)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(extensions))
	for name := range extensions {
		names[name] = struct{}{}
	}
	return names, nil
}

func (p *PhysicalDevice) CreateDevice(info gpu.DeviceCreateInfo) (gpu.Device, error) {
	var queueFamilyOptions []core1_0.DeviceQueueCreateInfo
	for _, queue := range info.QueueCreateInfos {
		queueFamilyOptions = append(queueFamilyOptions, core1_0.DeviceQueueCreateInfo{
			QueueFamilyIndex: queue.QueueFamilyIndex,
			QueuePriorities:  queue.QueuePriorities,
		})
	}

	deviceDriver, _, err := p.instance.driver.CreateDevice(p.handle, nil, core1_0.DeviceCreateInfo{
		QueueCreateInfos: queueFamilyOptions,
		EnabledFeatures: &core1_0.PhysicalDeviceFeatures{
			GeometryShader: info.EnabledFeatures.GeometryShader,
		},
		EnabledExtensionNames: info.EnabledExtensionNames,
	})
	if err != nil {
		return nil, err
	}

	return &Device{
		driver:     deviceDriver,
		swapchains: khr_swapchain.CreateExtensionDriverFromCoreDriver(deviceDriver),
	}, nil
}

type Device struct {
	driver     core1_0.CoreDeviceDriver
	swapchains khr_swapchain.ExtensionDriver
}

type Queue struct {
	device *Device
	handle core1_0.Queue
}

func (q *Queue) WaitIdle() error {
	_, err := q.device.driver.QueueWaitIdle(q.handle)
	return err
}

func (d *Device) GetQueue(queueFamilyIndex, queueIndex int) gpu.Queue {
	return &Queue{device: d, handle: d.driver.GetQueue(queueFamilyIndex, queueIndex)}
}

func (d *Device) WaitIdle() error {
	_, err := d.driver.DeviceWaitIdle()
	return err
}

func (d *Device) Destroy() {
	d.driver.DestroyDevice(nil)
}

func (d *Device) CreateSwapchain(info gpu.SwapchainCreateInfo) (gpu.Swapchain, error) {
	options := khr_swapchain.SwapchainCreateInfo{
		Surface: info.Surface.(*Surface).handle,

		MinImageCount:    info.MinImageCount,
		ImageFormat:      core1_0.Format(info.ImageFormat),
		ImageColorSpace:  khr_surface.ColorSpace(info.ImageColorSpace),
		ImageExtent:      toExtent(info.ImageExtent),
		ImageArrayLayers: info.ImageArrayLayers,
		ImageUsage:       core1_0.ImageUsageFlags(info.ImageUsage),

		ImageSharingMode:   core1_0.SharingMode(info.ImageSharingMode),
		QueueFamilyIndices: info.QueueFamilyIndices,

		PreTransform:   khr_surface.SurfaceTransformFlags(info.PreTransform),
		CompositeAlpha: khr_surface.CompositeAlphaFlags(info.CompositeAlpha),
		PresentMode:    khr_surface.PresentMode(info.PresentMode),
		Clipped:        info.Clipped,
	}
	if info.OldSwapchain != nil {
		options.OldSwapchain = info.OldSwapchain.(*Swapchain).handle
	}

	swapchain, _, err := d.swapchains.CreateSwapchain(nil, options)
	if err != nil {
		return nil, err
	}

	return &Swapchain{device: d, handle: swapchain}, nil
}

func (d *Device) CreateImageView(info gpu.ImageViewCreateInfo) (gpu.ImageView, error) {
	imageView, _, err := d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:    info.Image.(core1_0.Image),
		ViewType: core1_0.ImageViewType(info.ViewType),
		Format:   core1_0.Format(info.Format),
		Components: core1_0.ComponentMapping{
			R: core1_0.ComponentSwizzle(info.Components.R),
			G: core1_0.ComponentSwizzle(info.Components.G),
			B: core1_0.ComponentSwizzle(info.Components.B),
			A: core1_0.ComponentSwizzle(info.Components.A),
		},
		SubresourceRange: core1_0.ImageSubresourceRange{
			AspectMask:     core1_0.ImageAspectFlags(info.SubresourceRange.AspectMask),
			BaseMipLevel:   info.SubresourceRange.BaseMipLevel,
			LevelCount:     info.SubresourceRange.LevelCount,
			BaseArrayLayer: info.SubresourceRange.BaseArrayLayer,
			LayerCount:     info.SubresourceRange.LayerCount,
		},
	})
	if err != nil {
		return nil, err
	}

	return &ImageView{device: d, handle: imageView}, nil
}

func (d *Device) CreateRenderPass(info gpu.RenderPassCreateInfo) (gpu.RenderPass, error) {
	renderPass, _, err := d.driver.CreateRenderPass(nil, renderPassCreateInfo(info))
	if err != nil {
		return nil, err
	}

	return &RenderPass{device: d, handle: renderPass}, nil
}

func (d *Device) CreatePipelineLayout() (gpu.PipelineLayout, error) {
	pipelineLayout, _, err := d.driver.CreatePipelineLayout(nil, core1_0.PipelineLayoutCreateInfo{})
	if err != nil {
		return nil, err
	}

	return &PipelineLayout{device: d, handle: pipelineLayout}, nil
}

func (d *Device) CreateShaderModule(code []uint32) (gpu.ShaderModule, error) {
	shaderModule, _, err := d.driver.CreateShaderModule(nil, core1_0.ShaderModuleCreateInfo{
		Code: code,
	})
	if err != nil {
		return nil, err
	}

	return &ShaderModule{device: d, handle: shaderModule}, nil
}

func (d *Device) CreateGraphicsPipeline(info gpu.GraphicsPipelineCreateInfo) (gpu.Pipeline, error) {
	pipelines, _, err := d.driver.CreateGraphicsPipelines(nil, nil, graphicsPipelineCreateInfo(info))
	if err != nil {
		return nil, err
	}
	if len(pipelines) != 1 {
		return nil, errors.Newf("driver returned %d pipelines for one create info", len(pipelines))
	}

	return &Pipeline{device: d, handle: pipelines[0]}, nil
}

type Swapchain struct {
	device *Device
	handle khr_swapchain.Swapchain
}

func (s *Swapchain) Images() ([]gpu.Image, error) {
	swapchainImages, _, err := s.device.swapchains.GetSwapchainImages(s.handle)
	if err != nil {
		return nil, err
	}

	images := make([]gpu.Image, 0, len(swapchainImages))
	for _, image := range swapchainImages {
		images = append(images, image)
	}
	return images, nil
}

func (s *Swapchain) Destroy() {
	s.device.swapchains.DestroySwapchain(s.handle, nil)
}

type ImageView struct {
	device *Device
	handle core1_0.ImageView
}

func (v *ImageView) Destroy() {
	v.device.driver.DestroyImageView(v.handle, nil)
}

type RenderPass struct {
	device *Device
	handle core1_0.RenderPass
}

func (r *RenderPass) Destroy() {
	r.device.driver.DestroyRenderPass(r.handle, nil)
}

type PipelineLayout struct {
	device *Device
	handle core1_0.PipelineLayout
}

func (l *PipelineLayout) Destroy() {
	l.device.driver.DestroyPipelineLayout(l.handle, nil)
}

type ShaderModule struct {
	device *Device
	handle core1_0.ShaderModule
}

func (m *ShaderModule) Destroy() {
	m.device.driver.DestroyShaderModule(m.handle, nil)
}

type Pipeline struct {
	device *Device
	handle core1_0.Pipeline
}

func (p *Pipeline) Destroy() {
	p.device.driver.DestroyPipeline(p.handle, nil)
}

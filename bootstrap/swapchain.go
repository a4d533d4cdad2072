package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/gpu"
)

// PresentationChain is a swapchain with one view per swapchain image. Images
// and ImageViews are index aligned.
type PresentationChain struct {
	Swapchain  gpu.Swapchain
	Config     SwapchainConfig
	Images     []gpu.Image
	ImageViews []gpu.ImageView
}

// CreateSwapchain creates the swapchain for config. When the graphics and
// present queue families differ the images are shared concurrently between
// them.
func CreateSwapchain(device gpu.Device, surface gpu.Surface, config SwapchainConfig, indices QueueFamilyIndices) (gpu.Swapchain, error) {
	sharingMode := gpu.SharingModeExclusive
	var queueFamilyIndices []int

	if *indices.GraphicsFamily != *indices.PresentFamily {
		sharingMode = gpu.SharingModeConcurrent
		queueFamilyIndices = append(queueFamilyIndices, *indices.GraphicsFamily, *indices.PresentFamily)
	}

	swapchain, err := device.CreateSwapchain(gpu.SwapchainCreateInfo{
		Surface: surface,

		MinImageCount:    config.ImageCount,
		ImageFormat:      config.Format,
		ImageColorSpace:  config.ColorSpace,
		ImageExtent:      config.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       gpu.ImageUsageColorAttachment,

		ImageSharingMode:   sharingMode,
		QueueFamilyIndices: queueFamilyIndices,

		PreTransform:   config.PreTransform,
		CompositeAlpha: gpu.CompositeAlphaOpaque,
		PresentMode:    config.PresentMode,
		Clipped:        true,
	})
	if err != nil {
		return nil, markf(err, ErrSwapchainCreation, "create swapchain %dx%d", config.Extent.Width, config.Extent.Height)
	}

	return swapchain, nil
}

func CreateImageView(device gpu.Device, image gpu.Image, format gpu.Format) (gpu.ImageView, error) {
	return device.CreateImageView(gpu.ImageViewCreateInfo{
		Image:    image,
		ViewType: gpu.ImageViewType2D,
		Format:   format,
		Components: gpu.ComponentMapping{
			R: gpu.ComponentSwizzleIdentity,
			G: gpu.ComponentSwizzleIdentity,
			B: gpu.ComponentSwizzleIdentity,
			A: gpu.ComponentSwizzleIdentity,
		},
		SubresourceRange: gpu.ImageSubresourceRange{
			AspectMask:     gpu.ImageAspectColor,
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	})
}

// CreateImageViews fetches the swapchain images and creates a view for each of
// them. The image count comes from the swapchain, not from the requested
// count. If a view fails, the views created so far are returned with the error
// and the caller owns them.
func CreateImageViews(device gpu.Device, swapchain gpu.Swapchain, format gpu.Format) ([]gpu.Image, []gpu.ImageView, error) {
	images, err := swapchain.Images()
	if err != nil {
		return nil, nil, markf(err, ErrSwapchainCreation, "get swapchain images")
	}

	imageViews := make([]gpu.ImageView, 0, len(images))
	for imageIdx, image := range images {
		view, err := CreateImageView(device, image, format)
		if err != nil {
			return images, imageViews, markf(err, ErrImageViewCreation, "create view for swapchain image %d", imageIdx)
		}

		imageViews = append(imageViews, view)
	}

	return images, imageViews, nil
}

// CreatePresentationChain creates the swapchain and its views in one call. On
// failure the returned chain holds whatever was created and the caller is
// responsible for releasing it; it is nil only if the swapchain itself failed.
func CreatePresentationChain(device gpu.Device, surface gpu.Surface, config SwapchainConfig, indices QueueFamilyIndices) (*PresentationChain, error) {
	swapchain, err := CreateSwapchain(device, surface, config, indices)
	if err != nil {
		return nil, err
	}

	chain := &PresentationChain{Swapchain: swapchain, Config: config}
	chain.Images, chain.ImageViews, err = CreateImageViews(device, swapchain, config.Format)
	return chain, err
}

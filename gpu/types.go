package gpu

import (
	"fmt"

	"github.com/google/uuid"
)

// Enum values mirror the numeric values of the Vulkan API so that a backend can
// convert them with a plain integer conversion.

type DeviceType int32

const (
	DeviceTypeOther DeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

var deviceTypeNames = map[DeviceType]string{
	DeviceTypeOther:         "Other",
	DeviceTypeIntegratedGPU: "Integrated GPU",
	DeviceTypeDiscreteGPU:   "Discrete GPU",
	DeviceTypeVirtualGPU:    "Virtual GPU",
	DeviceTypeCPU:           "CPU",
}

func (t DeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("DeviceType(%d)", int32(t))
}

type Format int32

const (
	FormatUndefined                  Format = 0
	FormatR8G8B8A8UnsignedNormalized Format = 37
	FormatR8G8B8A8SRGB               Format = 43
	FormatB8G8R8A8UnsignedNormalized Format = 44
	FormatB8G8R8A8SRGB               Format = 50
)

var formatNames = map[Format]string{
	FormatUndefined:                  "Undefined",
	FormatR8G8B8A8UnsignedNormalized: "R8G8B8A8UnsignedNormalized",
	FormatR8G8B8A8SRGB:               "R8G8B8A8SRGB",
	FormatB8G8R8A8UnsignedNormalized: "B8G8R8A8UnsignedNormalized",
	FormatB8G8R8A8SRGB:               "B8G8R8A8SRGB",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int32(f))
}

type ColorSpace int32

const (
	ColorSpaceSRGBNonlinear ColorSpace = 0
)

func (c ColorSpace) String() string {
	if c == ColorSpaceSRGBNonlinear {
		return "SRGB Nonlinear"
	}
	return fmt.Sprintf("ColorSpace(%d)", int32(c))
}

type PresentMode int32

const (
	PresentModeImmediate PresentMode = iota
	PresentModeMailbox
	PresentModeFIFO
	PresentModeFIFORelaxed
)

var presentModeNames = map[PresentMode]string{
	PresentModeImmediate:   "Immediate",
	PresentModeMailbox:     "Mailbox",
	PresentModeFIFO:        "FIFO",
	PresentModeFIFORelaxed: "FIFO Relaxed",
}

func (m PresentMode) String() string {
	if name, ok := presentModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PresentMode(%d)", int32(m))
}

type SurfaceTransformFlags int32

const (
	TransformIdentity SurfaceTransformFlags = 1 << iota
	TransformRotate90
	TransformRotate180
	TransformRotate270
)

type CompositeAlphaFlags int32

const (
	CompositeAlphaOpaque CompositeAlphaFlags = 1 << iota
	CompositeAlphaPreMultiplied
	CompositeAlphaPostMultiplied
	CompositeAlphaInherit
)

type QueueFlags int32

const (
	QueueGraphics QueueFlags = 1 << iota
	QueueCompute
	QueueTransfer
	QueueSparseBinding
)

type SharingMode int32

const (
	SharingModeExclusive SharingMode = iota
	SharingModeConcurrent
)

type ImageUsageFlags int32

const (
	ImageUsageTransferSrc     ImageUsageFlags = 0x1
	ImageUsageTransferDst     ImageUsageFlags = 0x2
	ImageUsageColorAttachment ImageUsageFlags = 0x10
)

// UndefinedExtent is the current-extent width a surface reports when the
// swapchain extent is to be derived from the window.
const UndefinedExtent = -1

// SwapchainExtensionName is the device extension that makes a device able to
// present to a surface.
const SwapchainExtensionName = "VK_KHR_swapchain"

type Extent2D struct {
	Width  int
	Height int
}

type SurfaceFormat struct {
	Format     Format
	ColorSpace ColorSpace
}

type SurfaceCapabilities struct {
	MinImageCount int
	// MaxImageCount of 0 means there is no upper bound
	MaxImageCount int

	CurrentExtent  Extent2D
	MinImageExtent Extent2D
	MaxImageExtent Extent2D

	SupportedTransforms SurfaceTransformFlags
	CurrentTransform    SurfaceTransformFlags
}

type QueueFamily struct {
	QueueFlags QueueFlags
	QueueCount int
}

type DeviceLimits struct {
	MaxImageDimension2D int
}

type DeviceProperties struct {
	Name      string
	Type      DeviceType
	VendorID  uint32
	DeviceID  uint32
	CacheUUID uuid.UUID
	Limits    DeviceLimits
}

type DeviceFeatures struct {
	GeometryShader bool
}

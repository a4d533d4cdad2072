package gpu

type InstanceCreateInfo struct {
	ApplicationName string
	EngineName      string

	EnabledExtensionNames []string
	EnabledLayerNames     []string

	// EnumeratePortability lists portability-subset devices (MoltenVK and friends)
	EnumeratePortability bool

	// DebugCallback, when set, also captures messages emitted while the
	// instance itself is being created and destroyed
	DebugCallback DebugCallback
}

type DebugSeverity int32

const (
	DebugSeverityVerbose DebugSeverity = 0x1
	DebugSeverityInfo    DebugSeverity = 0x10
	DebugSeverityWarning DebugSeverity = 0x100
	DebugSeverityError   DebugSeverity = 0x1000
)

// DebugCallback receives validation output. The return value is handed back to
// the driver; returning true aborts the call that triggered the message.
type DebugCallback func(severity DebugSeverity, messageType string, message string) bool

type DeviceQueueCreateInfo struct {
	QueueFamilyIndex int
	QueuePriorities  []float32
}

type DeviceCreateInfo struct {
	QueueCreateInfos      []DeviceQueueCreateInfo
	EnabledFeatures       DeviceFeatures
	EnabledExtensionNames []string
}

type SwapchainCreateInfo struct {
	Surface Surface

	MinImageCount    int
	ImageFormat      Format
	ImageColorSpace  ColorSpace
	ImageExtent      Extent2D
	ImageArrayLayers int
	ImageUsage       ImageUsageFlags

	ImageSharingMode   SharingMode
	QueueFamilyIndices []int

	PreTransform   SurfaceTransformFlags
	CompositeAlpha CompositeAlphaFlags
	PresentMode    PresentMode
	Clipped        bool

	OldSwapchain Swapchain
}

type ImageViewType int32

const (
	ImageViewType1D ImageViewType = iota
	ImageViewType2D
	ImageViewType3D
	ImageViewTypeCube
)

type ComponentSwizzle int32

const (
	ComponentSwizzleIdentity ComponentSwizzle = iota
	ComponentSwizzleZero
	ComponentSwizzleOne
	ComponentSwizzleR
	ComponentSwizzleG
	ComponentSwizzleB
	ComponentSwizzleA
)

type ComponentMapping struct {
	R, G, B, A ComponentSwizzle
}

type ImageAspectFlags int32

const (
	ImageAspectColor ImageAspectFlags = 0x1
	ImageAspectDepth ImageAspectFlags = 0x2
)

type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlags
	BaseMipLevel   int
	LevelCount     int
	BaseArrayLayer int
	LayerCount     int
}

type ImageViewCreateInfo struct {
	Image            Image
	ViewType         ImageViewType
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

type SampleCount int32

const Samples1 SampleCount = 0x1

type AttachmentLoadOp int32

const (
	AttachmentLoadOpLoad AttachmentLoadOp = iota
	AttachmentLoadOpClear
	AttachmentLoadOpDontCare
)

type AttachmentStoreOp int32

const (
	AttachmentStoreOpStore AttachmentStoreOp = iota
	AttachmentStoreOpDontCare
)

type ImageLayout int32

const (
	ImageLayoutUndefined              ImageLayout = 0
	ImageLayoutColorAttachmentOptimal ImageLayout = 2
	ImageLayoutPresentSrc             ImageLayout = 1000001002
)

type AttachmentDescription struct {
	Format         Format
	Samples        SampleCount
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

type AttachmentReference struct {
	Attachment int
	Layout     ImageLayout
}

type PipelineBindPoint int32

const PipelineBindPointGraphics PipelineBindPoint = 0

type SubpassDescription struct {
	PipelineBindPoint PipelineBindPoint
	ColorAttachments  []AttachmentReference
}

type PipelineStageFlags int32

const PipelineStageColorAttachmentOutput PipelineStageFlags = 0x400

type AccessFlags int32

const AccessColorAttachmentWrite AccessFlags = 0x100

// SubpassExternal refers to operations outside the render pass in a
// dependency
const SubpassExternal = -1

type SubpassDependency struct {
	SrcSubpass    int
	DstSubpass    int
	SrcStageMask  PipelineStageFlags
	DstStageMask  PipelineStageFlags
	SrcAccessMask AccessFlags
	DstAccessMask AccessFlags
}

type RenderPassCreateInfo struct {
	Attachments         []AttachmentDescription
	Subpasses           []SubpassDescription
	SubpassDependencies []SubpassDependency
}

type ShaderStage int32

const (
	StageVertex   ShaderStage = 0x1
	StageFragment ShaderStage = 0x10
)

type PipelineShaderStageCreateInfo struct {
	Stage  ShaderStage
	Module ShaderModule
	Name   string
}

// VertexInputState declares no bindings or attributes: geometry is generated
// in the vertex shader.
type VertexInputState struct{}

type PrimitiveTopology int32

const (
	PrimitiveTopologyPointList PrimitiveTopology = iota
	PrimitiveTopologyLineList
	PrimitiveTopologyLineStrip
	PrimitiveTopologyTriangleList
)

type InputAssemblyState struct {
	Topology               PrimitiveTopology
	PrimitiveRestartEnable bool
}

type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

type Offset2D struct {
	X, Y int
}

type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

type ViewportState struct {
	Viewports []Viewport
	Scissors  []Rect2D
}

type PolygonMode int32

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
	PolygonModePoint
)

type CullModeFlags int32

const (
	CullModeNone  CullModeFlags = 0
	CullModeFront CullModeFlags = 0x1
	CullModeBack  CullModeFlags = 0x2
)

type FrontFace int32

const (
	FrontFaceCounterClockwise FrontFace = iota
	FrontFaceClockwise
)

type RasterizationState struct {
	DepthClampEnable        bool
	RasterizerDiscardEnable bool

	PolygonMode PolygonMode
	CullMode    CullModeFlags
	FrontFace   FrontFace

	DepthBiasEnable bool

	LineWidth float32
}

type MultisampleState struct {
	RasterizationSamples SampleCount
	SampleShadingEnable  bool
	MinSampleShading     float32
}

type ColorComponentFlags int32

const (
	ColorComponentRed ColorComponentFlags = 1 << iota
	ColorComponentGreen
	ColorComponentBlue
	ColorComponentAlpha
)

type ColorBlendAttachmentState struct {
	BlendEnabled   bool
	ColorWriteMask ColorComponentFlags
}

type LogicOp int32

const LogicOpCopy LogicOp = 3

type ColorBlendState struct {
	LogicOpEnabled bool
	LogicOp        LogicOp
	BlendConstants [4]float32
	Attachments    []ColorBlendAttachmentState
}

type GraphicsPipelineCreateInfo struct {
	Stages []PipelineShaderStageCreateInfo

	VertexInputState   *VertexInputState
	InputAssemblyState *InputAssemblyState
	ViewportState      *ViewportState
	RasterizationState *RasterizationState
	MultisampleState   *MultisampleState
	ColorBlendState    *ColorBlendState

	Layout     PipelineLayout
	RenderPass RenderPass
	Subpass    int
}

package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/gpu"
)

// PipelineResources are the device objects a frame is drawn with.
type PipelineResources struct {
	RenderPass     gpu.RenderPass
	PipelineLayout gpu.PipelineLayout
	Pipeline       gpu.Pipeline
}

// FixedFunction is the static state of the graphics pipeline. Geometry is
// generated in the vertex shader, so there is no vertex input.
type FixedFunction struct {
	VertexInput   gpu.VertexInputState
	InputAssembly gpu.InputAssemblyState
	Viewport      gpu.ViewportState
	Rasterization gpu.RasterizationState
	Multisample   gpu.MultisampleState
	ColorBlend    gpu.ColorBlendState
}

func FixedFunctionState(extent gpu.Extent2D) FixedFunction {
	return FixedFunction{
		VertexInput: gpu.VertexInputState{},

		InputAssembly: gpu.InputAssemblyState{
			Topology:               gpu.PrimitiveTopologyTriangleList,
			PrimitiveRestartEnable: false,
		},

		Viewport: gpu.ViewportState{
			Viewports: []gpu.Viewport{
				{
					X:        0,
					Y:        0,
					Width:    float32(extent.Width),
					Height:   float32(extent.Height),
					MinDepth: 0,
					MaxDepth: 1,
				},
			},
			Scissors: []gpu.Rect2D{
				{
					Offset: gpu.Offset2D{X: 0, Y: 0},
					Extent: extent,
				},
			},
		},

		Rasterization: gpu.RasterizationState{
			DepthClampEnable:        false,
			RasterizerDiscardEnable: false,

			PolygonMode: gpu.PolygonModeFill,
			CullMode:    gpu.CullModeBack,
			FrontFace:   gpu.FrontFaceClockwise,

			DepthBiasEnable: false,

			LineWidth: 1.0,
		},

		Multisample: gpu.MultisampleState{
			SampleShadingEnable:  false,
			RasterizationSamples: gpu.Samples1,
			MinSampleShading:     1.0,
		},

		ColorBlend: gpu.ColorBlendState{
			LogicOpEnabled: false,
			LogicOp:        gpu.LogicOpCopy,

			BlendConstants: [4]float32{0, 0, 0, 0},
			Attachments: []gpu.ColorBlendAttachmentState{
				{
					BlendEnabled:   false,
					ColorWriteMask: gpu.ColorComponentRed | gpu.ColorComponentGreen | gpu.ColorComponentBlue | gpu.ColorComponentAlpha,
				},
			},
		},
	}
}

func CreatePipelineLayout(device gpu.Device) (gpu.PipelineLayout, error) {
	layout, err := device.CreatePipelineLayout()
	if err != nil {
		return nil, markf(err, ErrPipelineLayout, "create pipeline layout")
	}
	return layout, nil
}

type ShaderPaths struct {
	Vertex   string
	Fragment string
}

// CreateGraphicsPipeline loads both shader stages and builds the pipeline
// against layout and renderPass. The shader modules are destroyed before it
// returns, whether or not the pipeline was created.
func CreateGraphicsPipeline(device gpu.Device, layout gpu.PipelineLayout, renderPass gpu.RenderPass, extent gpu.Extent2D, shaders ShaderPaths) (gpu.Pipeline, error) {
	vertShader, err := loadShaderModule(device, shaders.Vertex)
	if err != nil {
		return nil, err
	}
	defer vertShader.Destroy()

	fragShader, err := loadShaderModule(device, shaders.Fragment)
	if err != nil {
		return nil, err
	}
	defer fragShader.Destroy()

	state := FixedFunctionState(extent)

	pipeline, err := device.CreateGraphicsPipeline(gpu.GraphicsPipelineCreateInfo{
		Stages: []gpu.PipelineShaderStageCreateInfo{
			{
				Stage:  gpu.StageVertex,
				Module: vertShader,
				Name:   "main",
			},
			{
				Stage:  gpu.StageFragment,
				Module: fragShader,
				Name:   "main",
			},
		},
		VertexInputState:   &state.VertexInput,
		InputAssemblyState: &state.InputAssembly,
		ViewportState:      &state.Viewport,
		RasterizationState: &state.Rasterization,
		MultisampleState:   &state.Multisample,
		ColorBlendState:    &state.ColorBlend,

		Layout:     layout,
		RenderPass: renderPass,
		Subpass:    0,
	})
	if err != nil {
		return nil, markf(err, ErrPipelineCreation, "create graphics pipeline")
	}

	return pipeline, nil
}

package vkng

import (
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/core/v3/core1_0"
)

func fromExtent(extent core1_0.Extent2D) gpu.Extent2D {
	return gpu.Extent2D{Width: extent.Width, Height: extent.Height}
}

func toExtent(extent gpu.Extent2D) core1_0.Extent2D {
	return core1_0.Extent2D{Width: extent.Width, Height: extent.Height}
}

func subpassIndex(subpass int) int {
	if subpass == gpu.SubpassExternal {
		return core1_0.SubpassExternal
	}
	return subpass
}

func renderPassCreateInfo(info gpu.RenderPassCreateInfo) core1_0.RenderPassCreateInfo {
	var options core1_0.RenderPassCreateInfo

	for _, attachment := range info.Attachments {
		options.Attachments = append(options.Attachments, core1_0.AttachmentDescription{
			Format:         core1_0.Format(attachment.Format),
			Samples:        core1_0.SampleCountFlags(attachment.Samples),
			LoadOp:         core1_0.AttachmentLoadOp(attachment.LoadOp),
			StoreOp:        core1_0.AttachmentStoreOp(attachment.StoreOp),
			StencilLoadOp:  core1_0.AttachmentLoadOp(attachment.StencilLoadOp),
			StencilStoreOp: core1_0.AttachmentStoreOp(attachment.StencilStoreOp),
			InitialLayout:  core1_0.ImageLayout(attachment.InitialLayout),
			FinalLayout:    core1_0.ImageLayout(attachment.FinalLayout),
		})
	}

	for _, subpass := range info.Subpasses {
		var colorAttachments []core1_0.AttachmentReference
		for _, reference := range subpass.ColorAttachments {
			colorAttachments = append(colorAttachments, core1_0.AttachmentReference{
				Attachment: reference.Attachment,
				Layout:     core1_0.ImageLayout(reference.Layout),
			})
		}

		options.Subpasses = append(options.Subpasses, core1_0.SubpassDescription{
			PipelineBindPoint: core1_0.PipelineBindPoint(subpass.PipelineBindPoint),
			ColorAttachments:  colorAttachments,
		})
	}

	for _, dependency := range info.SubpassDependencies {
		options.SubpassDependencies = append(options.SubpassDependencies, core1_0.SubpassDependency{
			SrcSubpass: subpassIndex(dependency.SrcSubpass),
			DstSubpass: subpassIndex(dependency.DstSubpass),

			SrcStageMask:  core1_0.PipelineStageFlags(dependency.SrcStageMask),
			SrcAccessMask: core1_0.AccessFlags(dependency.SrcAccessMask),

			DstStageMask:  core1_0.PipelineStageFlags(dependency.DstStageMask),
			DstAccessMask: core1_0.AccessFlags(dependency.DstAccessMask),
		})
	}

	return options
}

func graphicsPipelineCreateInfo(info gpu.GraphicsPipelineCreateInfo) core1_0.GraphicsPipelineCreateInfo {
	options := core1_0.GraphicsPipelineCreateInfo{
		Layout:            info.Layout.(*PipelineLayout).handle,
		RenderPass:        info.RenderPass.(*RenderPass).handle,
		Subpass:           info.Subpass,
		BasePipelineIndex: -1,
	}

	for _, stage := range info.Stages {
		options.Stages = append(options.Stages, core1_0.PipelineShaderStageCreateInfo{
			Stage:  core1_0.ShaderStageFlags(stage.Stage),
			Module: stage.Module.(*ShaderModule).handle,
			Name:   stage.Name,
		})
	}

	if info.VertexInputState != nil {
		options.VertexInputState = &core1_0.PipelineVertexInputStateCreateInfo{}
	}

	if info.InputAssemblyState != nil {
		options.InputAssemblyState = &core1_0.PipelineInputAssemblyStateCreateInfo{
			Topology:               core1_0.PrimitiveTopology(info.InputAssemblyState.Topology),
			PrimitiveRestartEnable: info.InputAssemblyState.PrimitiveRestartEnable,
		}
	}

	if info.ViewportState != nil {
		viewportState := &core1_0.PipelineViewportStateCreateInfo{}
		for _, viewport := range info.ViewportState.Viewports {
			viewportState.Viewports = append(viewportState.Viewports, core1_0.Viewport{
				X:        viewport.X,
				Y:        viewport.Y,
				Width:    viewport.Width,
				Height:   viewport.Height,
				MinDepth: viewport.MinDepth,
				MaxDepth: viewport.MaxDepth,
			})
		}
		for _, scissor := range info.ViewportState.Scissors {
			viewportState.Scissors = append(viewportState.Scissors, core1_0.Rect2D{
				Offset: core1_0.Offset2D{X: scissor.Offset.X, Y: scissor.Offset.Y},
				Extent: toExtent(scissor.Extent),
			})
		}
		options.ViewportState = viewportState
	}

	if info.RasterizationState != nil {
		rasterization := info.RasterizationState
		options.RasterizationState = &core1_0.PipelineRasterizationStateCreateInfo{
			DepthClampEnable:        rasterization.DepthClampEnable,
			RasterizerDiscardEnable: rasterization.RasterizerDiscardEnable,

			PolygonMode: core1_0.PolygonMode(rasterization.PolygonMode),
			CullMode:    core1_0.CullModeFlags(rasterization.CullMode),
			FrontFace:   core1_0.FrontFace(rasterization.FrontFace),

			DepthBiasEnable: rasterization.DepthBiasEnable,

			LineWidth: rasterization.LineWidth,
		}
	}

	if info.MultisampleState != nil {
		options.MultisampleState = &core1_0.PipelineMultisampleStateCreateInfo{
			SampleShadingEnable:  info.MultisampleState.SampleShadingEnable,
			RasterizationSamples: core1_0.SampleCountFlags(info.MultisampleState.RasterizationSamples),
			MinSampleShading:     info.MultisampleState.MinSampleShading,
		}
	}

	if info.ColorBlendState != nil {
		colorBlend := &core1_0.PipelineColorBlendStateCreateInfo{
			LogicOpEnabled: info.ColorBlendState.LogicOpEnabled,
			LogicOp:        core1_0.LogicOp(info.ColorBlendState.LogicOp),
			BlendConstants: info.ColorBlendState.BlendConstants,
		}
		for _, attachment := range info.ColorBlendState.Attachments {
			colorBlend.Attachments = append(colorBlend.Attachments, core1_0.PipelineColorBlendAttachmentState{
				BlendEnabled:   attachment.BlendEnabled,
				ColorWriteMask: core1_0.ColorComponentFlags(attachment.ColorWriteMask),
			})
		}
		options.ColorBlendState = colorBlend
	}

	return options
}

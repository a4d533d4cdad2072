package bootstrap

import (
	"github.com/vkngwrapper/bootstrap/gpu"
)

// RenderPassInfo describes a single-subpass pass that clears one color
// attachment and leaves it ready for presentation.
func RenderPassInfo(format gpu.Format) gpu.RenderPassCreateInfo {
	return gpu.RenderPassCreateInfo{
		Attachments: []gpu.AttachmentDescription{
			{
				Format:         format,
				Samples:        gpu.Samples1,
				LoadOp:         gpu.AttachmentLoadOpClear,
				StoreOp:        gpu.AttachmentStoreOpStore,
				StencilLoadOp:  gpu.AttachmentLoadOpDontCare,
				StencilStoreOp: gpu.AttachmentStoreOpDontCare,
				InitialLayout:  gpu.ImageLayoutUndefined,
				FinalLayout:    gpu.ImageLayoutPresentSrc,
			},
		},
		Subpasses: []gpu.SubpassDescription{
			{
				PipelineBindPoint: gpu.PipelineBindPointGraphics,
				ColorAttachments: []gpu.AttachmentReference{
					{
						Attachment: 0,
						Layout:     gpu.ImageLayoutColorAttachmentOptimal,
					},
				},
			},
		},
		SubpassDependencies: []gpu.SubpassDependency{
			{
				SrcSubpass: gpu.SubpassExternal,
				DstSubpass: 0,

				SrcStageMask:  gpu.PipelineStageColorAttachmentOutput,
				SrcAccessMask: 0,

				DstStageMask:  gpu.PipelineStageColorAttachmentOutput,
				DstAccessMask: gpu.AccessColorAttachmentWrite,
			},
		},
	}
}

func CreateRenderPass(device gpu.Device, format gpu.Format) (gpu.RenderPass, error) {
	renderPass, err := device.CreateRenderPass(RenderPassInfo(format))
	if err != nil {
		return nil, markf(err, ErrRenderPassCreation, "create render pass for %s", format)
	}

	return renderPass, nil
}

package bootstrap

import (
	"log/slog"

	"github.com/vkngwrapper/bootstrap/gpu"
)

// Config holds everything the Context needs to know before it starts creating
// driver objects. The zero value is not usable; start from DefaultConfig.
type Config struct {
	ApplicationName string
	EngineName      string

	WindowTitle  string
	WindowWidth  int
	WindowHeight int

	// EnableValidation turns on the validation layers and a debug messenger
	// that forwards driver messages to Logger
	EnableValidation bool
	ValidationLayers []string

	// DeviceExtensions must all be supported for a device to be selected
	DeviceExtensions []string

	VertexShaderPath   string
	FragmentShaderPath string

	// ParallelProbe queries each physical device on its own goroutine. The
	// selection itself is always made in enumeration order.
	ParallelProbe bool

	// Logger receives lifecycle output. Nil disables logging.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		ApplicationName: "Hello Triangle",
		EngineName:      "No Engine",

		WindowTitle:  "Vulkan",
		WindowWidth:  800,
		WindowHeight: 600,

		EnableValidation: false,
		ValidationLayers: []string{"VK_LAYER_KHRONOS_validation"},

		DeviceExtensions: []string{gpu.SwapchainExtensionName},

		VertexShaderPath:   "shaders/vert.spv",
		FragmentShaderPath: "shaders/frag.spv",
	}
}

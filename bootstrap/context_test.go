package bootstrap

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/bootstrap/internal/fakegpu"
)

func newTestContext(t *testing.T, configure func(driver *fakegpu.Driver, config *Config)) (*Context, *fakegpu.Driver) {
	t.Helper()

	driver := fakegpu.NewDriver()
	driver.AddDevice(fakegpu.NewPhysicalDevice("gpu", gpu.DeviceTypeDiscreteGPU, 4096))

	dir := t.TempDir()
	config := DefaultConfig()
	config.VertexShaderPath = writeShader(t, dir, "vert.spv", spirvHeader)
	config.FragmentShaderPath = writeShader(t, dir, "frag.spv", spirvHeader)

	if configure != nil {
		configure(driver, &config)
	}

	return NewContext(driver, config), driver
}

func reversed(names []string) []string {
	var out []string
	for idx := len(names) - 1; idx >= 0; idx-- {
		out = append(out, names[idx])
	}
	return out
}

func TestInitializeCreatesInOrder(t *testing.T) {
	ctx, driver := newTestContext(t, nil)

	require.NoError(t, ctx.Initialize())
	require.Equal(t, PipelineReady, ctx.State())

	require.Equal(t, []string{
		"window/0",
		"instance/0",
		"surface/0",
		"device/0",
		"swapchain/0",
		"image-view/0",
		"image-view/1",
		"image-view/2",
		"render-pass/0",
		"pipeline-layout/0",
		"shader-module/0",
		"shader-module/1",
		"pipeline/0",
	}, driver.Created())
	require.Equal(t, []string{"shader-module/1", "shader-module/0"}, driver.Destroyed())

	chain := ctx.PresentationChain()
	require.Len(t, chain.Images, 3)
	require.Len(t, chain.ImageViews, 3)
	require.Equal(t, gpu.FormatB8G8R8A8SRGB, chain.Config.Format)
	require.Equal(t, gpu.Extent2D{Width: 800, Height: 600}, chain.Config.Extent)

	require.Equal(t, "gpu", ctx.PhysicalDevice().Properties.Name)
	require.NotNil(t, ctx.Device().GraphicsQueue)
	require.NotNil(t, ctx.Pipeline().Pipeline)

	info := driver.InstanceInfos[0]
	require.Equal(t, "Hello Triangle", info.ApplicationName)
	require.Equal(t, []string{"VK_KHR_surface"}, info.EnabledExtensionNames)
	require.Empty(t, info.EnabledLayerNames)
	require.Nil(t, info.DebugCallback)
	require.False(t, info.EnumeratePortability)
}

func TestDestroyReleasesInReverseOrder(t *testing.T) {
	ctx, driver := newTestContext(t, nil)
	require.NoError(t, ctx.Initialize())

	ctx.Destroy()
	require.Equal(t, Terminated, ctx.State())
	require.Empty(t, driver.Live())

	require.Equal(t, []string{
		"shader-module/1",
		"shader-module/0",
		"pipeline/0",
		"pipeline-layout/0",
		"render-pass/0",
		"image-view/2",
		"image-view/1",
		"image-view/0",
		"swapchain/0",
		"device/0",
		"surface/0",
		"instance/0",
		"window/0",
	}, driver.Destroyed())

	require.NotPanics(t, ctx.Destroy)
	require.Len(t, driver.Destroyed(), 13)
	require.Nil(t, ctx.Device())
}

func TestDestroyWithoutInitialize(t *testing.T) {
	ctx, driver := newTestContext(t, nil)

	ctx.Destroy()
	require.Equal(t, Terminated, ctx.State())
	require.Empty(t, driver.Journal())
}

func TestInitializeTwice(t *testing.T) {
	ctx, _ := newTestContext(t, nil)
	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	require.Error(t, ctx.Initialize())
}

func TestInitializeFailureTearsDownCreatedStages(t *testing.T) {
	boom := errors.New("driver failure")

	testCases := []struct {
		name    string
		op      fakegpu.Op
		call    int
		stage   State
		kind    error
		created []string
	}{
		{
			name:  "window",
			op:    fakegpu.OpOpenWindow,
			stage: WindowReady,
			kind:  ErrWindowCreation,
		},
		{
			name:    "instance",
			op:      fakegpu.OpCreateInstance,
			stage:   InstanceReady,
			kind:    ErrInstanceCreation,
			created: []string{"window/0"},
		},
		{
			name:    "loader",
			op:      fakegpu.OpLoad,
			stage:   InstanceReady,
			kind:    ErrInstanceCreation,
			created: []string{"window/0"},
		},
		{
			name:    "surface",
			op:      fakegpu.OpCreateSurface,
			stage:   SurfaceReady,
			kind:    ErrSurfaceCreation,
			created: []string{"window/0", "instance/0"},
		},
		{
			name:    "device enumeration",
			op:      fakegpu.OpPhysicalDevices,
			stage:   DeviceSelected,
			kind:    ErrNoDevice,
			created: []string{"window/0", "instance/0", "surface/0"},
		},
		{
			name:    "logical device",
			op:      fakegpu.OpCreateDevice,
			stage:   LogicalDeviceReady,
			kind:    ErrLogicalDeviceCreation,
			created: []string{"window/0", "instance/0", "surface/0"},
		},
		{
			name:    "swapchain",
			op:      fakegpu.OpCreateSwapchain,
			stage:   SwapchainReady,
			kind:    ErrSwapchainCreation,
			created: []string{"window/0", "instance/0", "surface/0", "device/0"},
		},
		{
			name:    "second image view",
			op:      fakegpu.OpCreateImageView,
			call:    1,
			stage:   ViewsReady,
			kind:    ErrImageViewCreation,
			created: []string{"window/0", "instance/0", "surface/0", "device/0", "swapchain/0", "image-view/0"},
		},
		{
			name:  "render pass",
			op:    fakegpu.OpCreateRenderPass,
			stage: RenderPassReady,
			kind:  ErrRenderPassCreation,
			created: []string{"window/0", "instance/0", "surface/0", "device/0", "swapchain/0",
				"image-view/0", "image-view/1", "image-view/2"},
		},
		{
			name:  "pipeline layout",
			op:    fakegpu.OpCreatePipelineLayout,
			stage: PipelineReady,
			kind:  ErrPipelineLayout,
			created: []string{"window/0", "instance/0", "surface/0", "device/0", "swapchain/0",
				"image-view/0", "image-view/1", "image-view/2", "render-pass/0"},
		},
		{
			name:  "fragment shader module",
			op:    fakegpu.OpCreateShaderModule,
			call:  1,
			stage: PipelineReady,
			kind:  ErrShaderModule,
			created: []string{"window/0", "instance/0", "surface/0", "device/0", "swapchain/0",
				"image-view/0", "image-view/1", "image-view/2", "render-pass/0", "pipeline-layout/0",
				"shader-module/0"},
		},
		{
			name:  "graphics pipeline",
			op:    fakegpu.OpCreateGraphicsPipeline,
			stage: PipelineReady,
			kind:  ErrPipelineCreation,
			created: []string{"window/0", "instance/0", "surface/0", "device/0", "swapchain/0",
				"image-view/0", "image-view/1", "image-view/2", "render-pass/0", "pipeline-layout/0",
				"shader-module/0", "shader-module/1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, driver := newTestContext(t, nil)
			driver.FailCall(tc.op, tc.call, boom)

			err := ctx.Initialize()
			require.Error(t, err)
			require.True(t, errors.Is(err, tc.kind))
			require.True(t, errors.Is(err, boom))

			var stageErr *StageError
			require.ErrorAs(t, err, &stageErr)
			require.Equal(t, tc.stage, stageErr.Stage)

			require.Equal(t, Terminated, ctx.State())
			require.Equal(t, tc.created, driver.Created())
			require.Equal(t, reversed(tc.created), driver.Destroyed())
			require.Empty(t, driver.Live())

			require.NotPanics(t, ctx.Destroy)
		})
	}
}

func TestInitializeNoDevices(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		driver.Devices = nil
	})

	err := ctx.Initialize()
	require.True(t, errors.Is(err, ErrNoDevice))
	require.Equal(t, []string{"surface/0", "instance/0", "window/0"}, driver.Destroyed())
}

func TestInitializeNoSuitableDevice(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		driver.Devices[0].Feats.GeometryShader = false
	})

	err := ctx.Initialize()
	require.True(t, errors.Is(err, ErrNoSuitableDevice))
	require.ErrorContains(t, err, "could not reach DeviceSelected")
	require.Empty(t, driver.Live())
}

func TestInitializeMissingInstanceExtension(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		driver.InstanceExtensions = map[string]struct{}{}
	})

	err := ctx.Initialize()
	require.True(t, errors.Is(err, ErrInstanceCreation))
	require.ErrorContains(t, err, "VK_KHR_surface")
	require.Equal(t, []string{"window/0"}, driver.Destroyed())
	require.Empty(t, driver.InstanceInfos)
}

func TestInitializeMissingValidationLayer(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		config.EnableValidation = true
		driver.Layers = map[string]struct{}{}
	})

	err := ctx.Initialize()
	require.True(t, errors.Is(err, ErrInstanceCreation))
	require.ErrorContains(t, err, "VK_LAYER_KHRONOS_validation")
	require.Empty(t, driver.Live())
}

func TestInitializeWithValidation(t *testing.T) {
	var logs bytes.Buffer
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		config.EnableValidation = true
		config.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	require.NoError(t, ctx.Initialize())
	require.Equal(t, []string{"window/0", "instance/0", "debug-messenger/0", "surface/0"}, driver.Created()[:4])

	info := driver.InstanceInfos[0]
	require.Equal(t, []string{"VK_KHR_surface", DebugUtilsExtensionName}, info.EnabledExtensionNames)
	require.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, info.EnabledLayerNames)
	require.NotNil(t, info.DebugCallback)

	require.NotNil(t, driver.DebugCallback)
	require.False(t, driver.DebugCallback(gpu.DebugSeverityError, "validation", "vkCreateFoo: bad handle"))
	require.Contains(t, logs.String(), "level=ERROR")
	require.Contains(t, logs.String(), "vkCreateFoo: bad handle")

	ctx.Destroy()
	destroyed := driver.Destroyed()
	require.Equal(t, []string{"surface/0", "debug-messenger/0", "instance/0", "window/0"}, destroyed[len(destroyed)-4:])
}

func TestInitializeDebugMessengerFailure(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		config.EnableValidation = true
	})
	driver.Fail(fakegpu.OpCreateDebugMessenger, errors.New("extension not present"))

	err := ctx.Initialize()
	require.True(t, errors.Is(err, ErrDebugMessenger))

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	require.Equal(t, InstanceReady, stageErr.Stage)
	require.Equal(t, []string{"instance/0", "window/0"}, driver.Destroyed())
}

func TestInitializeEnablesPortability(t *testing.T) {
	ctx, driver := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		driver.InstanceExtensions[PortabilityEnumerationExtensionName] = struct{}{}
		driver.Devices[0].DeviceExts[PortabilitySubsetExtensionName] = struct{}{}
	})

	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	require.True(t, driver.InstanceInfos[0].EnumeratePortability)
	require.Contains(t, driver.InstanceInfos[0].EnabledExtensionNames, PortabilityEnumerationExtensionName)
	require.Contains(t, driver.DeviceInfos[0].EnabledExtensionNames, PortabilitySubsetExtensionName)
}

func TestInitializeLogsSession(t *testing.T) {
	var logs bytes.Buffer
	ctx, _ := newTestContext(t, func(driver *fakegpu.Driver, config *Config) {
		config.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

		props := &driver.Devices[0].Props
		props.VendorID = 0x10de
		props.DeviceID = 0x2684
		props.CacheUUID = uuid.MustParse("6b3f2a10-4c1d-4e8a-9f21-0d7c5e9b8a41")
	})

	require.NoError(t, ctx.Initialize())
	ctx.Destroy()

	output := logs.String()
	require.Contains(t, output, "selected physical device")
	require.Contains(t, output, "vendorID=0x10de")
	require.Contains(t, output, "deviceID=0x2684")
	require.Contains(t, output, "pipelineCacheUUID=6b3f2a10-4c1d-4e8a-9f21-0d7c5e9b8a41")
	require.Contains(t, output, "session=")
	require.Contains(t, output, "stage=PipelineReady")
	require.Contains(t, output, "resource=window")
}

func undefinedExtent(driver *fakegpu.Driver, config *Config) {
	driver.Devices[0].SurfaceCaps.CurrentExtent = gpu.Extent2D{Width: gpu.UndefinedExtent, Height: gpu.UndefinedExtent}
}

func TestRecreateSwapchain(t *testing.T) {
	ctx, driver := newTestContext(t, undefinedExtent)
	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	driver.Window.Resize(1024, 768)
	require.NoError(t, ctx.RecreateSwapchain())
	require.Equal(t, PipelineReady, ctx.State())

	require.Equal(t, []string{
		"shader-module/1",
		"shader-module/0",
		"pipeline/0",
		"pipeline-layout/0",
		"render-pass/0",
		"image-view/2",
		"image-view/1",
		"image-view/0",
		"swapchain/0",
		"shader-module/3",
		"shader-module/2",
	}, driver.Destroyed())

	require.Len(t, driver.SwapchainInfos, 2)
	require.Equal(t, gpu.Extent2D{Width: 1024, Height: 768}, driver.SwapchainInfos[1].ImageExtent)
	require.Equal(t, gpu.Extent2D{Width: 1024, Height: 768}, ctx.PresentationChain().Config.Extent)
	require.Len(t, ctx.PresentationChain().ImageViews, 3)
	require.Equal(t, []gpu.Viewport{{Width: 1024, Height: 768, MaxDepth: 1}}, driver.Pipelines[1].ViewportState.Viewports)

	require.Equal(t, []string{
		"window/0", "instance/0", "surface/0", "device/0",
		"swapchain/1", "image-view/3", "image-view/4", "image-view/5",
		"render-pass/1", "pipeline-layout/1", "pipeline/1",
	}, driver.Live())
}

func TestRecreateSwapchainSkipsMinimizedWindow(t *testing.T) {
	ctx, driver := newTestContext(t, undefinedExtent)
	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	driver.Window.Resize(0, 0)
	require.NoError(t, ctx.RecreateSwapchain())
	require.Len(t, driver.SwapchainInfos, 1)
}

func TestRecreateSwapchainBeforeInitialize(t *testing.T) {
	ctx, _ := newTestContext(t, nil)
	require.Error(t, ctx.RecreateSwapchain())
}

func TestRecreateSwapchainFailureTearsDown(t *testing.T) {
	ctx, driver := newTestContext(t, undefinedExtent)
	require.NoError(t, ctx.Initialize())

	driver.FailCall(fakegpu.OpCreateSwapchain, 1, errors.New("surface lost"))
	driver.Window.Resize(1024, 768)

	err := ctx.RecreateSwapchain()
	require.True(t, errors.Is(err, ErrSwapchainCreation))
	require.Equal(t, Terminated, ctx.State())
	require.Empty(t, driver.Live())
}

func TestRun(t *testing.T) {
	ctx, driver := newTestContext(t, undefinedExtent)
	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	frames := 0
	err := ctx.Run(func(c *Context) error {
		frames++
		require.Equal(t, Running, c.State())

		switch frames {
		case 1:
			driver.Window.Resize(640, 480)
		case 2:
			driver.Window.Close()
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, frames)
	require.Equal(t, 3, driver.Window.Polls)
	require.Len(t, driver.SwapchainInfos, 2)
	require.Equal(t, gpu.Extent2D{Width: 640, Height: 480}, ctx.PresentationChain().Config.Extent)
}

func TestRunStopsOnFrameError(t *testing.T) {
	ctx, _ := newTestContext(t, nil)
	require.NoError(t, ctx.Initialize())
	defer ctx.Destroy()

	frameErr := errors.New("device lost")
	err := ctx.Run(func(c *Context) error {
		return frameErr
	})
	require.True(t, errors.Is(err, frameErr))
}

func TestRunRequiresInitialize(t *testing.T) {
	ctx, _ := newTestContext(t, nil)
	require.Error(t, ctx.Run(nil))
}

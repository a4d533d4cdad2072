// Package bootstrap brings up a rendering context: it opens a window, creates
// an instance and surface, selects the best physical device, negotiates a
// swapchain, and builds the render pass and graphics pipeline needed for a
// first frame.
//
// Every resource is registered with its release action as soon as it is
// created. When a stage fails, the resources created by earlier stages are
// released in exactly the reverse order of creation and the failure is
// returned as a *StageError.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/loov/hrtime"
	"github.com/vkngwrapper/bootstrap/gpu"
)

// Platform supplies the pieces of the environment the context does not own the
// construction of.
type Platform interface {
	OpenWindow(title string, width, height int) (gpu.Window, error)
	// Loader returns the driver entry point. It is called after the window is
	// open, since some platforms only load the driver once a window exists.
	Loader() (gpu.Loader, error)
}

type Context struct {
	config   Config
	platform Platform
	logger   *slog.Logger

	state         State
	releases      releaseStack
	swapchainMark int

	window         gpu.Window
	instance       gpu.Instance
	debugMessenger gpu.DebugMessenger
	surface        gpu.Surface
	candidate      *DeviceCandidate
	device         *LogicalDevice
	chain          *PresentationChain
	pipeline       *PipelineResources
}

func NewContext(platform Platform, config Config) *Context {
	logger := loggerOrNop(config.Logger)
	return &Context{
		config:   config,
		platform: platform,
		logger:   logger,
		releases: releaseStack{logger: logger},
	}
}

type stage struct {
	target State
	create func() error
}

func (c *Context) State() State                           { return c.state }
func (c *Context) Window() gpu.Window                     { return c.window }
func (c *Context) Instance() gpu.Instance                 { return c.instance }
func (c *Context) Surface() gpu.Surface                   { return c.surface }
func (c *Context) PhysicalDevice() *DeviceCandidate       { return c.candidate }
func (c *Context) Device() *LogicalDevice                 { return c.device }
func (c *Context) PresentationChain() *PresentationChain { return c.chain }
func (c *Context) Pipeline() *PipelineResources           { return c.pipeline }

func (c *Context) swapchainStages() []stage {
	return []stage{
		{SwapchainReady, c.createSwapchain},
		{ViewsReady, c.createImageViews},
		{RenderPassReady, c.createRenderPass},
		{PipelineReady, c.createGraphicsPipeline},
	}
}

// Initialize runs every creation stage in order. It can only be called once.
func (c *Context) Initialize() error {
	if c.state != Uninitialized {
		return errors.Newf("cannot initialize a context in state %s", c.state)
	}

	c.logger = c.logger.With(slog.String("session", uuid.New().String()))
	c.releases.logger = c.logger

	stages := []stage{
		{WindowReady, c.createWindow},
		{InstanceReady, c.createInstance},
		{SurfaceReady, c.createSurface},
		{DeviceSelected, c.pickPhysicalDevice},
		{LogicalDeviceReady, c.createLogicalDevice},
	}
	stages = append(stages, c.swapchainStages()...)

	return c.runStages(stages, true)
}

// runStages creates each stage in turn. On the first failure everything
// registered so far is released and the context is terminated.
func (c *Context) runStages(stages []stage, advance bool) error {
	for _, st := range stages {
		if st.target == SwapchainReady {
			c.swapchainMark = c.releases.mark()
		}

		start := hrtime.Now()
		err := st.create()
		if err != nil {
			c.logger.Error("stage failed", slog.String("stage", st.target.String()), slog.String("error", err.Error()))
			c.teardown()
			return &StageError{Stage: st.target, Err: err}
		}

		c.logger.Debug("stage complete",
			slog.String("stage", st.target.String()),
			slog.Duration("elapsed", hrtime.Since(start)))
		if advance {
			c.state = st.target
		}
	}

	return nil
}

func (c *Context) createWindow() error {
	window, err := c.platform.OpenWindow(c.config.WindowTitle, c.config.WindowWidth, c.config.WindowHeight)
	if err != nil {
		return markf(err, ErrWindowCreation, "open window %q", c.config.WindowTitle)
	}
	c.window = window
	c.releases.push("window", window.Destroy)

	return nil
}

func (c *Context) createSurface() error {
	surface, err := c.window.CreateSurface(c.instance)
	if err != nil {
		return markf(err, ErrSurfaceCreation, "create window surface")
	}
	c.surface = surface
	c.releases.push("surface", surface.Destroy)

	return nil
}

func (c *Context) pickPhysicalDevice() error {
	physicalDevices, err := c.instance.PhysicalDevices()
	if err != nil {
		return markf(err, ErrNoDevice, "enumerate physical devices")
	}

	candidate, err := SelectPhysicalDevice(physicalDevices, c.surface, SelectOptions{
		RequiredExtensions: c.config.DeviceExtensions,
		Parallel:           c.config.ParallelProbe,
		Logger:             c.logger,
	})
	if err != nil {
		return err
	}

	c.candidate = candidate
	c.logger.Info("selected physical device",
		slog.String("name", candidate.Properties.Name),
		slog.String("type", candidate.Properties.Type.String()),
		slog.String("vendorID", fmt.Sprintf("0x%04x", candidate.Properties.VendorID)),
		slog.String("deviceID", fmt.Sprintf("0x%04x", candidate.Properties.DeviceID)),
		slog.String("pipelineCacheUUID", candidate.Properties.CacheUUID.String()),
		slog.Int("score", candidate.Suitability()),
		slog.Int("graphicsFamily", *candidate.QueueFamilies.GraphicsFamily),
		slog.Int("presentFamily", *candidate.QueueFamilies.PresentFamily))

	return nil
}

func (c *Context) createLogicalDevice() error {
	device, err := CreateLogicalDevice(c.candidate, c.config.DeviceExtensions)
	if err != nil {
		return err
	}
	c.device = device
	c.releases.push("logical device", device.Device.Destroy)

	return nil
}

func (c *Context) createSwapchain() error {
	// Surface support is queried again rather than reused from selection:
	// the extent can change between selection and a later recreation.
	support, err := QuerySurfaceSupport(c.candidate.Device, c.surface)
	if err != nil {
		return errors.Mark(err, ErrSwapchainCreation)
	}

	width, height := c.window.DrawableSize()
	config, err := ResolveSwapchainConfig(support, width, height)
	if err != nil {
		return err
	}

	swapchain, err := CreateSwapchain(c.device.Device, c.surface, config, c.candidate.QueueFamilies)
	if err != nil {
		return err
	}
	c.chain = &PresentationChain{Swapchain: swapchain, Config: config}
	c.releases.push("swapchain", swapchain.Destroy)

	c.logger.Info("created swapchain",
		slog.String("format", config.Format.String()),
		slog.String("presentMode", config.PresentMode.String()),
		slog.Int("width", config.Extent.Width),
		slog.Int("height", config.Extent.Height),
		slog.Int("minImageCount", config.ImageCount))

	return nil
}

func (c *Context) createImageViews() error {
	images, views, err := CreateImageViews(c.device.Device, c.chain.Swapchain, c.chain.Config.Format)
	for _, view := range views {
		c.releases.push("image view", view.Destroy)
	}
	if err != nil {
		return err
	}

	c.chain.Images = images
	c.chain.ImageViews = views
	return nil
}

func (c *Context) createRenderPass() error {
	renderPass, err := CreateRenderPass(c.device.Device, c.chain.Config.Format)
	if err != nil {
		return err
	}
	c.pipeline = &PipelineResources{RenderPass: renderPass}
	c.releases.push("render pass", renderPass.Destroy)

	return nil
}

func (c *Context) createGraphicsPipeline() error {
	layout, err := CreatePipelineLayout(c.device.Device)
	if err != nil {
		return err
	}
	c.pipeline.PipelineLayout = layout
	c.releases.push("pipeline layout", layout.Destroy)

	pipeline, err := CreateGraphicsPipeline(c.device.Device, layout, c.pipeline.RenderPass, c.chain.Config.Extent, ShaderPaths{
		Vertex:   c.config.VertexShaderPath,
		Fragment: c.config.FragmentShaderPath,
	})
	if err != nil {
		return err
	}
	c.pipeline.Pipeline = pipeline
	c.releases.push("graphics pipeline", pipeline.Destroy)

	return nil
}

// RecreateSwapchain rebuilds the swapchain and everything that depends on its
// extent or format. A zero-sized drawable (a minimized window) is skipped.
func (c *Context) RecreateSwapchain() error {
	if c.state != PipelineReady && c.state != Running {
		return errors.Newf("cannot recreate the swapchain of a context in state %s", c.state)
	}

	width, height := c.window.DrawableSize()
	if width == 0 || height == 0 {
		return nil
	}

	err := c.device.Device.WaitIdle()
	if err != nil {
		return errors.Wrap(err, "wait for device idle")
	}

	c.releases.unwindTo(c.swapchainMark)
	c.chain = nil
	c.pipeline = nil

	return c.runStages(c.swapchainStages(), false)
}

// FrameFunc is called once per iteration of the run loop, after events have
// been polled.
type FrameFunc func(c *Context) error

// Run polls the window until it asks to close. frame may be nil.
func (c *Context) Run(frame FrameFunc) error {
	if c.state != PipelineReady {
		return errors.Newf("cannot run a context in state %s", c.state)
	}
	c.state = Running

	for {
		c.window.PollEvents()
		if c.window.ShouldClose() {
			return nil
		}

		if c.window.ConsumeResize() {
			err := c.RecreateSwapchain()
			if err != nil {
				return err
			}
		}

		if frame != nil {
			err := frame(c)
			if err != nil {
				return err
			}
		}
	}
}

func (c *Context) teardown() {
	c.state = TearingDown

	if c.device != nil && c.releases.len() > 0 {
		err := c.device.Device.WaitIdle()
		if err != nil {
			c.logger.Warn("device did not become idle before teardown", slog.String("error", err.Error()))
		}
	}

	c.releases.unwind()

	c.window = nil
	c.instance = nil
	c.debugMessenger = nil
	c.surface = nil
	c.candidate = nil
	c.device = nil
	c.chain = nil
	c.pipeline = nil

	c.state = Terminated
}

// Destroy releases every resource in reverse order of creation. It is safe to
// call more than once.
func (c *Context) Destroy() {
	if c.state == Terminated {
		return
	}
	c.teardown()
}

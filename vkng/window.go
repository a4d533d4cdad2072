package vkng

import (
	"github.com/cockroachdb/errors"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/vkngwrapper/bootstrap/gpu"
	"github.com/vkngwrapper/core/v3"
	vkng_sdl2 "github.com/vkngwrapper/integrations/sdl2/v3"
)

// Platform opens SDL2 windows and loads Vulkan through SDL. SDL must be driven
// from the main thread, so callers lock it with runtime.LockOSThread.
type Platform struct{}

func (Platform) OpenWindow(title string, width, height int) (gpu.Window, error) {
	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, errors.Wrap(err, "initialize sdl video")
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, int32(width), int32(height), sdl.WINDOW_SHOWN|sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, errors.Wrap(err, "create sdl window")
	}

	return &Window{window: window}, nil
}

// Loader is only available once SDL has loaded the Vulkan library, which
// happens when a Vulkan window is created.
func (Platform) Loader() (gpu.Loader, error) {
	globalDriver, err := core.CreateDriverFromProcAddr(sdl.VulkanGetVkGetInstanceProcAddr())
	if err != nil {
		return nil, errors.Wrap(err, "load vulkan through sdl")
	}

	return NewLoader(globalDriver), nil
}

type Window struct {
	window  *sdl.Window
	closed  bool
	resized bool
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	vkInstance := instance.(*Instance)

	surface, err := vkng_sdl2.CreateSurface(vkInstance.driver.Instance(), vkInstance.surface, w.window)
	if err != nil {
		return nil, err
	}

	return &Surface{instance: vkInstance, handle: surface}, nil
}

func (w *Window) DrawableSize() (int, int) {
	width, height := w.window.VulkanGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			w.closed = true
		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				w.resized = true
			case sdl.WINDOWEVENT_CLOSE:
				w.closed = true
			}
		}
	}
}

func (w *Window) ShouldClose() bool {
	return w.closed
}

func (w *Window) ConsumeResize() bool {
	resized := w.resized
	w.resized = false
	return resized
}

func (w *Window) Destroy() {
	w.window.Destroy()
	sdl.Quit()
}

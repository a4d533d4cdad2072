package fakegpu

import (
	"github.com/vkngwrapper/bootstrap/gpu"
)

// Window is a scripted window. Tests resize and close it from a frame
// callback.
type Window struct {
	*handle
	driver *Driver

	Title      string
	Extensions []string
	Width      int
	Height     int

	Polls   int
	resized bool
	closed  bool
}

func (w *Window) RequiredInstanceExtensions() []string {
	return w.Extensions
}

func (w *Window) CreateSurface(instance gpu.Instance) (gpu.Surface, error) {
	err := w.driver.check(OpCreateSurface)
	if err != nil {
		return nil, err
	}
	return &Surface{handle: w.driver.newHandle("surface")}, nil
}

func (w *Window) DrawableSize() (int, int) {
	return w.Width, w.Height
}

func (w *Window) PollEvents() {
	w.Polls++
}

func (w *Window) ShouldClose() bool {
	return w.closed
}

func (w *Window) ConsumeResize() bool {
	resized := w.resized
	w.resized = false
	return resized
}

// Resize changes the drawable size and queues a resize event.
func (w *Window) Resize(width, height int) {
	w.Width, w.Height = width, height
	w.resized = true
}

func (w *Window) Close() {
	w.closed = true
}

// Surface answers every query from the physical device it is asked about.
type Surface struct {
	*handle
}

func (s *Surface) SupportsPresent(device gpu.PhysicalDevice, queueFamilyIndex int) (bool, error) {
	p := device.(*PhysicalDevice)
	p.mu.Lock()
	p.presentQueries = append(p.presentQueries, queueFamilyIndex)
	p.mu.Unlock()

	return p.PresentFamily[queueFamilyIndex], nil
}

func (s *Surface) Capabilities(device gpu.PhysicalDevice) (*gpu.SurfaceCapabilities, error) {
	p := device.(*PhysicalDevice)
	p.mu.Lock()
	p.surfaceQueries++
	p.mu.Unlock()

	caps := p.SurfaceCaps
	return &caps, nil
}

func (s *Surface) Formats(device gpu.PhysicalDevice) ([]gpu.SurfaceFormat, error) {
	return device.(*PhysicalDevice).SurfaceFormats, nil
}

func (s *Surface) PresentModes(device gpu.PhysicalDevice) ([]gpu.PresentMode, error) {
	return device.(*PhysicalDevice).PresentModes, nil
}

// Package fakegpu is an in-memory driver for exercising the bootstrap without
// a GPU. Every create and destroy is recorded in an ordered journal, and any
// operation can be made to fail.
package fakegpu

import (
	"fmt"
	"strings"
	"sync"

	"github.com/vkngwrapper/bootstrap/gpu"
)

// Op names a driver operation that can be made to fail.
type Op string

const (
	OpOpenWindow             Op = "open window"
	OpLoad                   Op = "load"
	OpAvailableExtensions    Op = "available extensions"
	OpAvailableLayers        Op = "available layers"
	OpCreateInstance         Op = "create instance"
	OpPhysicalDevices        Op = "physical devices"
	OpCreateDebugMessenger   Op = "create debug messenger"
	OpCreateSurface          Op = "create surface"
	OpCreateDevice           Op = "create device"
	OpWaitIdle               Op = "wait idle"
	OpCreateSwapchain        Op = "create swapchain"
	OpSwapchainImages        Op = "swapchain images"
	OpCreateImageView        Op = "create image view"
	OpCreateRenderPass       Op = "create render pass"
	OpCreatePipelineLayout   Op = "create pipeline layout"
	OpCreateShaderModule     Op = "create shader module"
	OpCreateGraphicsPipeline Op = "create graphics pipeline"
)

type failure struct {
	// call is the zero-based call that fails, or -1 for every call
	call int
	err  error
}

// Driver implements gpu.Loader and the platform the bootstrap context opens
// its window from. Configure the exported fields before handing it over.
type Driver struct {
	InstanceExtensions map[string]struct{}
	Layers             map[string]struct{}
	Devices            []*PhysicalDevice

	// Window is the window handed out by OpenWindow
	Window *Window

	// Recorded create infos, most recent last
	InstanceInfos  []gpu.InstanceCreateInfo
	DeviceInfos    []gpu.DeviceCreateInfo
	SwapchainInfos []gpu.SwapchainCreateInfo
	ViewInfos      []gpu.ImageViewCreateInfo
	RenderPasses   []gpu.RenderPassCreateInfo
	Pipelines      []gpu.GraphicsPipelineCreateInfo
	ShaderCode     [][]uint32

	// DebugCallback is the callback the debug messenger was created with
	DebugCallback gpu.DebugCallback

	mu       sync.Mutex
	journal  []string
	failures map[Op]failure
	calls    map[Op]int
	counts   map[string]int
	live     map[string]bool
}

// NewDriver returns a driver whose loader offers the surface and debug utils
// extensions and the Khronos validation layer, with a 800x600 window and no
// devices.
func NewDriver() *Driver {
	d := &Driver{
		InstanceExtensions: set("VK_KHR_surface", "VK_EXT_debug_utils"),
		Layers:             set("VK_LAYER_KHRONOS_validation"),
		failures:           make(map[Op]failure),
		calls:              make(map[Op]int),
		counts:             make(map[string]int),
		live:               make(map[string]bool),
	}
	d.Window = &Window{
		driver:     d,
		Extensions: []string{"VK_KHR_surface"},
		Width:      800,
		Height:     600,
	}
	return d
}

func set(names ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// AddDevice registers device with the driver and returns it.
func (d *Driver) AddDevice(device *PhysicalDevice) *PhysicalDevice {
	device.driver = d
	d.Devices = append(d.Devices, device)
	return device
}

// Fail makes every call of op return err.
func (d *Driver) Fail(op Op, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = failure{call: -1, err: err}
}

// FailCall makes only the call'th (zero based) call of op return err.
func (d *Driver) FailCall(op Op, call int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = failure{call: call, err: err}
}

func (d *Driver) check(op Op) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	call := d.calls[op]
	d.calls[op] = call + 1

	f, ok := d.failures[op]
	if !ok || (f.call >= 0 && f.call != call) {
		return nil
	}
	return f.err
}

// Calls returns how many times op has been attempted.
func (d *Driver) Calls(op Op) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

func (d *Driver) record(event string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = append(d.journal, event)
}

// newHandle names a new object of kind, records its creation and marks it
// live.
func (d *Driver) newHandle(kind string) *handle {
	d.mu.Lock()
	n := d.counts[kind]
	d.counts[kind] = n + 1
	name := fmt.Sprintf("%s/%d", kind, n)
	d.live[name] = true
	d.mu.Unlock()

	d.record("create " + name)
	return &handle{driver: d, name: name}
}

// Journal returns every recorded create and destroy event in order.
func (d *Driver) Journal() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.journal...)
}

// Events returns the journal entries that start with prefix, with the prefix
// removed.
func (d *Driver) Events(prefix string) []string {
	var events []string
	for _, event := range d.Journal() {
		if strings.HasPrefix(event, prefix) {
			events = append(events, strings.TrimPrefix(event, prefix))
		}
	}
	return events
}

// Created returns the names of every object created, in creation order.
func (d *Driver) Created() []string {
	return d.Events("create ")
}

// Destroyed returns the names of every object destroyed, in destruction order.
func (d *Driver) Destroyed() []string {
	return d.Events("destroy ")
}

// Live returns the names of objects that were created and not yet destroyed.
func (d *Driver) Live() []string {
	var live []string
	for _, name := range d.Created() {
		d.mu.Lock()
		alive := d.live[name]
		d.mu.Unlock()
		if alive {
			live = append(live, name)
		}
	}
	return live
}

type handle struct {
	driver *Driver
	name   string
}

func (h *handle) Name() string {
	return h.name
}

// Destroy panics when called twice so a double release fails the test that
// caused it.
func (h *handle) Destroy() {
	h.driver.mu.Lock()
	alive := h.driver.live[h.name]
	h.driver.live[h.name] = false
	h.driver.mu.Unlock()

	if !alive {
		panic(fmt.Sprintf("fakegpu: %s destroyed twice", h.name))
	}
	h.driver.record("destroy " + h.name)
}

// OpenWindow hands out d.Window.
func (d *Driver) OpenWindow(title string, width, height int) (gpu.Window, error) {
	err := d.check(OpOpenWindow)
	if err != nil {
		return nil, err
	}

	d.Window.Title = title
	if d.Window.Width == 0 && d.Window.Height == 0 {
		d.Window.Width, d.Window.Height = width, height
	}
	d.Window.handle = d.newHandle("window")
	return d.Window, nil
}

func (d *Driver) Loader() (gpu.Loader, error) {
	err := d.check(OpLoad)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Driver) AvailableExtensions() (map[string]struct{}, error) {
	err := d.check(OpAvailableExtensions)
	if err != nil {
		return nil, err
	}
	return d.InstanceExtensions, nil
}

func (d *Driver) AvailableLayers() (map[string]struct{}, error) {
	err := d.check(OpAvailableLayers)
	if err != nil {
		return nil, err
	}
	return d.Layers, nil
}

func (d *Driver) CreateInstance(info gpu.InstanceCreateInfo) (gpu.Instance, error) {
	d.InstanceInfos = append(d.InstanceInfos, info)

	err := d.check(OpCreateInstance)
	if err != nil {
		return nil, err
	}
	return &Instance{handle: d.newHandle("instance")}, nil
}

type Instance struct {
	*handle
}

func (i *Instance) PhysicalDevices() ([]gpu.PhysicalDevice, error) {
	err := i.driver.check(OpPhysicalDevices)
	if err != nil {
		return nil, err
	}

	devices := make([]gpu.PhysicalDevice, 0, len(i.driver.Devices))
	for _, device := range i.driver.Devices {
		devices = append(devices, device)
	}
	return devices, nil
}

func (i *Instance) CreateDebugMessenger(severities gpu.DebugSeverity, callback gpu.DebugCallback) (gpu.DebugMessenger, error) {
	err := i.driver.check(OpCreateDebugMessenger)
	if err != nil {
		return nil, err
	}

	i.driver.DebugCallback = callback
	return i.driver.newHandle("debug-messenger"), nil
}

package bootstrap

import "fmt"

// State is a step of the Context lifecycle. On the happy path a Context moves
// through the states in declaration order.
type State int

const (
	Uninitialized State = iota
	WindowReady
	InstanceReady
	SurfaceReady
	DeviceSelected
	LogicalDeviceReady
	SwapchainReady
	ViewsReady
	RenderPassReady
	PipelineReady
	Running
	TearingDown
	Terminated
)

var stateNames = map[State]string{
	Uninitialized:      "Uninitialized",
	WindowReady:        "WindowReady",
	InstanceReady:      "InstanceReady",
	SurfaceReady:       "SurfaceReady",
	DeviceSelected:     "DeviceSelected",
	LogicalDeviceReady: "LogicalDeviceReady",
	SwapchainReady:     "SwapchainReady",
	ViewsReady:         "ViewsReady",
	RenderPassReady:    "RenderPassReady",
	PipelineReady:      "PipelineReady",
	Running:            "Running",
	TearingDown:        "TearingDown",
	Terminated:         "Terminated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

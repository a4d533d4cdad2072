package bootstrap

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Every failure returned from this package can be matched against one of these
// with errors.Is. Driver errors are kept in the chain below the mark.
var (
	ErrNoDevice              = errors.New("no vulkan-capable devices found")
	ErrNoSuitableDevice      = errors.New("failed to find a suitable GPU")
	ErrWindowCreation        = errors.New("window creation failed")
	ErrInstanceCreation      = errors.New("instance creation failed")
	ErrDebugMessenger        = errors.New("debug messenger creation failed")
	ErrSurfaceCreation       = errors.New("surface creation failed")
	ErrLogicalDeviceCreation = errors.New("logical device creation failed")
	ErrSwapchainCreation     = errors.New("swapchain creation failed")
	ErrImageViewCreation     = errors.New("image view creation failed")
	ErrRenderPassCreation    = errors.New("render pass creation failed")
	ErrPipelineLayout        = errors.New("pipeline layout creation failed")
	ErrShaderModule          = errors.New("shader module creation failed")
	ErrPipelineCreation      = errors.New("graphics pipeline creation failed")
	ErrFileRead              = errors.New("shader file read failed")
)

// markf wraps err with a message and marks it with kind.
func markf(err error, kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(err, format, args...), kind)
}

// StageError is returned by Context.Initialize when a stage fails. Everything
// created before Stage has already been released when it is returned.
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("could not reach %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

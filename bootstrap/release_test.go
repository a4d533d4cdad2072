package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReleaseStackUnwindsInReverse(t *testing.T) {
	var released []string
	stack := releaseStack{}
	for _, name := range []string{"instance", "surface", "device"} {
		name := name
		stack.push(name, func() { released = append(released, name) })
	}
	require.Equal(t, 3, stack.len())

	stack.unwind()
	require.Equal(t, []string{"device", "surface", "instance"}, released)
	require.Zero(t, stack.len())

	stack.unwind()
	require.Len(t, released, 3)
}

func TestReleaseStackUnwindToMark(t *testing.T) {
	var released []string
	record := func(name string) func() {
		return func() { released = append(released, name) }
	}

	stack := releaseStack{logger: loggerOrNop(nil)}
	stack.push("device", record("device"))
	mark := stack.mark()
	stack.push("swapchain", record("swapchain"))
	stack.push("image view", record("image view"))

	stack.unwindTo(mark)
	require.Equal(t, []string{"image view", "swapchain"}, released)
	require.Equal(t, 1, stack.len())

	stack.push("swapchain", record("swapchain"))
	stack.unwind()
	require.Equal(t, []string{"image view", "swapchain", "swapchain", "device"}, released)
}

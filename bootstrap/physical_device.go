package bootstrap

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
	"golang.org/x/sync/errgroup"
)

// Suitability is the 2D image limit of a suitable device. Unsuitable devices
// and devices without geometry shader support score 0 and are never selected.
func (c *DeviceCandidate) Suitability() int {
	if !c.IsSuitable() {
		return 0
	}
	if c.Features == nil || !c.Features.GeometryShader {
		return 0
	}

	return c.Properties.Limits.MaxImageDimension2D
}

func (c *DeviceCandidate) discrete() bool {
	return c.Properties.Type == gpu.DeviceTypeDiscreteGPU
}

// Outranks reports whether c is strictly preferred over other. A discrete GPU
// beats every other device class whatever the limits; within a class the
// larger Suitability wins. Both candidates must have a non-zero Suitability.
func (c *DeviceCandidate) Outranks(other *DeviceCandidate) bool {
	if c.discrete() != other.discrete() {
		return c.discrete()
	}
	return c.Suitability() > other.Suitability()
}

type SelectOptions struct {
	RequiredExtensions []string
	Parallel           bool
	Logger             *slog.Logger
}

// probeAll returns one candidate per device, index aligned with devices. A nil
// entry means the device could not be probed.
func probeAll(devices []gpu.PhysicalDevice, surface gpu.Surface, opts SelectOptions, logger *slog.Logger) []*DeviceCandidate {
	candidates := make([]*DeviceCandidate, len(devices))

	probe := func(idx int) {
		candidate, err := ProbeDevice(devices[idx], surface, opts.RequiredExtensions)
		if err != nil {
			logger.Warn("could not pull physical device capabilities",
				slog.Int("index", idx), slog.String("error", err.Error()))
			return
		}
		candidates[idx] = candidate
	}

	if !opts.Parallel {
		for idx := range devices {
			probe(idx)
		}
		return candidates
	}

	var group errgroup.Group
	for idx := range devices {
		idx := idx
		group.Go(func() error {
			probe(idx)
			return nil
		})
	}
	// probe never fails the group, failures are recorded as nil candidates
	_ = group.Wait()

	return candidates
}

// SelectPhysicalDevice probes every device and returns the highest ranked one.
// On equal rank the device enumerated first wins.
func SelectPhysicalDevice(devices []gpu.PhysicalDevice, surface gpu.Surface, opts SelectOptions) (*DeviceCandidate, error) {
	if len(devices) == 0 {
		return nil, ErrNoDevice
	}
	logger := loggerOrNop(opts.Logger)

	candidates := probeAll(devices, surface, opts, logger)

	var best *DeviceCandidate

	for idx, candidate := range candidates {
		if candidate == nil {
			continue
		}

		score := candidate.Suitability()
		logger.Debug("rated physical device",
			slog.Int("index", idx),
			slog.String("name", candidate.Properties.Name),
			slog.String("type", candidate.Properties.Type.String()),
			slog.Int("score", score),
			slog.Any("missingExtensions", candidate.MissingExtensions))

		if score == 0 {
			continue
		}
		if best == nil || candidate.Outranks(best) {
			best = candidate
		}
	}

	if best == nil {
		return nil, errors.Mark(errors.Newf("none of %d devices is suitable", len(devices)), ErrNoSuitableDevice)
	}

	return best, nil
}

package bootstrap

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/bootstrap/gpu"
)

const (
	DebugUtilsExtensionName             = "VK_EXT_debug_utils"
	PortabilityEnumerationExtensionName = "VK_KHR_portability_enumeration"
)

// instanceCreateInfo checks that every extension and layer the context needs is
// offered by the loader and builds the creation options from them.
func (c *Context) instanceCreateInfo(loader gpu.Loader) (gpu.InstanceCreateInfo, error) {
	info := gpu.InstanceCreateInfo{
		ApplicationName: c.config.ApplicationName,
		EngineName:      c.config.EngineName,
	}

	// Add extensions
	extensions, err := loader.AvailableExtensions()
	if err != nil {
		return info, markf(err, ErrInstanceCreation, "enumerate instance extensions")
	}

	var required []string
	required = append(required, c.window.RequiredInstanceExtensions()...)
	if c.config.EnableValidation {
		required = append(required, DebugUtilsExtensionName)
	}

	for _, ext := range required {
		_, hasExt := extensions[ext]
		if !hasExt {
			return info, errors.Mark(errors.Newf("missing instance extension %s", ext), ErrInstanceCreation)
		}
		info.EnabledExtensionNames = append(info.EnabledExtensionNames, ext)
	}

	_, enumerationSupported := extensions[PortabilityEnumerationExtensionName]
	if enumerationSupported {
		info.EnabledExtensionNames = append(info.EnabledExtensionNames, PortabilityEnumerationExtensionName)
		info.EnumeratePortability = true
	}

	if !c.config.EnableValidation {
		return info, nil
	}

	// Add layers
	layers, err := loader.AvailableLayers()
	if err != nil {
		return info, markf(err, ErrInstanceCreation, "enumerate instance layers")
	}

	for _, layer := range c.config.ValidationLayers {
		_, hasValidation := layers[layer]
		if !hasValidation {
			return info, errors.Mark(
				errors.Newf("cannot add validation: layer %s not available, install the LunarG Vulkan SDK", layer),
				ErrInstanceCreation)
		}
		info.EnabledLayerNames = append(info.EnabledLayerNames, layer)
	}

	info.DebugCallback = c.logDebug
	return info, nil
}

func (c *Context) createInstance() error {
	loader, err := c.platform.Loader()
	if err != nil {
		return markf(err, ErrInstanceCreation, "load vulkan driver")
	}

	info, err := c.instanceCreateInfo(loader)
	if err != nil {
		return err
	}

	instance, err := loader.CreateInstance(info)
	if err != nil {
		return markf(err, ErrInstanceCreation, "create instance")
	}
	c.instance = instance
	c.releases.push("instance", instance.Destroy)

	return c.setupDebugMessenger()
}

func (c *Context) setupDebugMessenger() error {
	if !c.config.EnableValidation {
		return nil
	}

	messenger, err := c.instance.CreateDebugMessenger(gpu.DebugSeverityError|gpu.DebugSeverityWarning, c.logDebug)
	if err != nil {
		return markf(err, ErrDebugMessenger, "create debug messenger")
	}
	c.debugMessenger = messenger
	c.releases.push("debug messenger", messenger.Destroy)

	return nil
}

func (c *Context) logDebug(severity gpu.DebugSeverity, messageType string, message string) bool {
	level := slog.LevelDebug
	switch {
	case severity&gpu.DebugSeverityError != 0:
		level = slog.LevelError
	case severity&gpu.DebugSeverityWarning != 0:
		level = slog.LevelWarn
	}

	c.logger.Log(context.Background(), level, message, slog.String("type", messageType))
	return false
}

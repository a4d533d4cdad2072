package main

//go:generate glslc ../../shaders/shader.vert -o ../../shaders/vert.spv
//go:generate glslc ../../shaders/shader.frag -o ../../shaders/frag.spv

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gobuffalo/envy"
	"github.com/vkngwrapper/bootstrap/bootstrap"
	"github.com/vkngwrapper/bootstrap/vkng"
)

func envBool(key string, value bool) (bool, error) {
	raw := envy.Get(key, strconv.FormatBool(value))
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return value, errors.Wrapf(err, "%s", key)
	}
	return parsed, nil
}

func envInt(key string, value int) (int, error) {
	raw := envy.Get(key, strconv.Itoa(value))
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return value, errors.Wrapf(err, "%s", key)
	}
	return parsed, nil
}

func loadConfig() (bootstrap.Config, error) {
	config := bootstrap.DefaultConfig()
	var err error

	var level slog.Level
	err = level.UnmarshalText([]byte(envy.Get("BOOTSTRAP_LOG_LEVEL", "INFO")))
	if err != nil {
		return config, errors.Wrap(err, "BOOTSTRAP_LOG_LEVEL")
	}
	config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	config.VertexShaderPath = envy.Get("BOOTSTRAP_VERT_SHADER", config.VertexShaderPath)
	config.FragmentShaderPath = envy.Get("BOOTSTRAP_FRAG_SHADER", config.FragmentShaderPath)

	config.EnableValidation, err = envBool("BOOTSTRAP_VALIDATION", config.EnableValidation)
	if err != nil {
		return config, err
	}

	config.ParallelProbe, err = envBool("BOOTSTRAP_PARALLEL_PROBE", config.ParallelProbe)
	if err != nil {
		return config, err
	}

	config.WindowWidth, err = envInt("BOOTSTRAP_WIDTH", config.WindowWidth)
	if err != nil {
		return config, err
	}

	config.WindowHeight, err = envInt("BOOTSTRAP_HEIGHT", config.WindowHeight)
	if err != nil {
		return config, err
	}

	return config, nil
}

func run(config bootstrap.Config) error {
	ctx := bootstrap.NewContext(vkng.Platform{}, config)
	defer ctx.Destroy()

	err := ctx.Initialize()
	if err != nil {
		return err
	}

	err = ctx.Run(nil)
	if err != nil {
		return err
	}

	return errors.Wrap(ctx.Device().Device.WaitIdle(), "wait for device idle")
}

func main() {
	runtime.LockOSThread()

	config, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = run(config)
	if err != nil {
		config.Logger.Error("hello triangle failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

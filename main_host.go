//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"tiny3d/app"
	"tiny3d/hal"
	"tiny3d/internal/config"
)

func main() {
	var (
		headless   hal.HeadlessConfig
		configPath string
		devices    string
	)
	flag.BoolVar(&headless.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&headless.Hz, "hz", 60, "Host loop rate in headless mode.")
	flag.Uint64Var(&headless.Ticks, "ticks", 0, "Stop after N host frames in headless mode (0 = run forever).")
	flag.StringVar(&configPath, "config", "", "YAML config file.")
	flag.StringVar(&devices, "device", "", "Comma-separated device presets (accelerometer, joystick); overrides the config devices.")
	flag.StringVar(&headless.Host.SerialPort, "serial", "", "Read analog samples from this serial port.")
	flag.IntVar(&headless.Host.Baud, "baud", 115200, "Serial baud rate.")
	flag.BoolVar(&headless.Host.Verbose, "v", false, "Debug logging.")
	flag.Parse()

	cfg, err := loadConfig(configPath, devices)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	headless.Host.Channels = channelCount(cfg)

	newApp := func(h hal.HAL) func() error {
		step, err := app.New(h, app.Config{Tilt: cfg})
		if err != nil {
			return func() error { return err }
		}
		return step
	}

	if headless.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, headless); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp, headless.Host); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path, devices string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if devices == "" {
		return cfg, nil
	}

	cfg.Devices = nil
	next := 0
	for _, name := range strings.Split(devices, ",") {
		d, ok := config.PresetDevice(strings.TrimSpace(name), next)
		if !ok {
			return config.Config{}, fmt.Errorf("unknown device %q", name)
		}
		cfg.Devices = append(cfg.Devices, d)
		next += d.Axes
	}
	return cfg, cfg.Validate()
}

// channelCount is one past the highest analog channel any device reads.
func channelCount(cfg config.Config) int {
	n := 0
	for _, d := range cfg.Devices {
		for _, ch := range d.Channels {
			if ch+1 > n {
				n = ch + 1
			}
		}
	}
	return n
}

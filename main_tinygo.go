//go:build tinygo

package main

import (
	"tiny3d/app"
	"tiny3d/hal"
	"tiny3d/internal/config"
)

func main() {
	app.Run(hal.New(), app.Config{Tilt: config.Default()})
}

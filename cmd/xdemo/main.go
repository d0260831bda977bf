package main

import (
	"fmt"
	"os"

	"xsurf/internal/app"
	"xsurf/internal/config"
	"xsurf/internal/logx"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdemo failed: %v\n", err)
		os.Exit(1)
	}
	log := logx.New(cfg.LogLevel, os.Stderr)
	application := app.New(cfg, log)
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "xdemo failed: %v\n", err)
		os.Exit(1)
	}
}

/*
sculpt applies deformation recipes to meshes from the assets directory
and writes the results back as OBJ. Recipes named after the flags are
applied alongside -recipe. With -watch it keeps running and
re-applies the recipe whenever the recipe or one of its inputs changes.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/sculpt/engine"
	"github.com/spaghettifunk/sculpt/engine/core"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML application config")
	assetsDir := flag.String("assets", "", "assets directory (overrides the config)")
	recipePath := flag.String("recipe", "", "recipe to apply, relative to the assets directory")
	watch := flag.Bool("watch", false, "re-apply the recipe when its inputs change")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	workers := flag.Int("workers", 0, "recipes applied at the same time (default: config or CPU count)")
	flag.Parse()

	cfg := engine.DefaultApplicationConfig()
	if *configPath != "" {
		loaded, err := engine.LoadApplicationConfig(*configPath)
		if err != nil {
			core.LogFatal("%s", err)
		}
		cfg = loaded
	}
	if *assetsDir != "" {
		cfg.AssetsDir = *assetsDir
	}
	if *recipePath != "" {
		cfg.Recipe = *recipePath
	}
	// extra arguments are more recipes
	cfg.Recipes = append(cfg.Recipes, flag.Args()...)
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *watch {
		cfg.Watch = true
	}
	if *logLevel != "" {
		cfg.LogLevel = core.ParseLogLevel(*logLevel)
	}

	e, err := engine.New(cfg)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		cancel()
	}()

	// run engine
	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}

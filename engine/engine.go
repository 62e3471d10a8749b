package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/spaghettifunk/sculpt/engine/assets"
	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/recipe"
	"github.com/spaghettifunk/sculpt/engine/resources"
	"github.com/spaghettifunk/sculpt/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

// WATCH_DEBOUNCE groups bursts of file events into a single re-run.
const WATCH_DEBOUNCE = 200 * time.Millisecond

type Engine struct {
	currentStage Stage
	config       *ApplicationConfig
	assetManager *assets.AssetManager
	jobSystem    *systems.JobSystem
	clock        *core.Clock

	// one runner per recipe, so a runner never serves two jobs at once
	runners map[string]*recipe.Runner

	mutex   sync.Mutex
	results map[string]*recipe.Result
}

func New(config *ApplicationConfig) (*Engine, error) {
	if config == nil {
		return nil, errors.New("missing application config")
	}
	core.SetLogLevel(config.LogLevel)

	am, err := assets.NewAssetManager()
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	workers := config.Workers
	if workers < 1 {
		workers = 1
	}
	js, err := systems.NewJobSystem(workers, workers)
	if err != nil {
		core.LogError("%s", err)
		return nil, err
	}

	return &Engine{
		currentStage: EngineStageUninitialized,
		config:       config,
		assetManager: am,
		jobSystem:    js,
		clock:        core.NewClock(),
		runners:      make(map[string]*recipe.Runner),
		results:      make(map[string]*recipe.Result),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	if err := e.assetManager.Initialize(e.config.AssetsDir); err != nil {
		return err
	}
	for _, name := range e.config.RecipeNames() {
		e.runners[name] = recipe.NewRunner(e.assetManager)
	}
	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) AssetManager() *assets.AssetManager {
	return e.assetManager
}

// Result returns the latest successful result of the named recipe.
func (e *Engine) Result(name string) *recipe.Result {
	e.mutex.Lock()
	defer e.mutex.Unlock()
	return e.results[name]
}

// Run applies every configured recipe once, concurrently. In watch mode it
// then re-applies a recipe on every change to it or its inputs until ctx
// is done.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine is not initialized")
	}
	names := e.config.RecipeNames()
	if len(names) == 0 {
		return fmt.Errorf("%w: no recipe configured", core.ErrInvalidRecipe)
	}
	e.currentStage = EngineStageRunning
	e.clock.Start()

	recipes, err := e.applyAll(ctx, names)
	if !e.config.Watch {
		return err
	}

	core.LogInfo("watching %s for changes", e.assetManager.Root())
	var pending <-chan time.Time
	dirty := map[string]bool{}
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-e.assetManager.Events():
			if !ok {
				return nil
			}
			for _, name := range names {
				if e.dependencies(name, recipes[name])[ev.Path] {
					core.LogDebug("%s changed, re-applying '%s'", ev.Path, name)
					dirty[name] = true
					pending = time.After(WATCH_DEBOUNCE)
				}
			}

		case <-pending:
			pending = nil
			batch := make([]string, 0, len(dirty))
			for name := range dirty {
				batch = append(batch, name)
			}
			sort.Strings(batch)
			dirty = map[string]bool{}

			updated, _ := e.applyAll(ctx, batch)
			for name, rcp := range updated {
				recipes[name] = rcp
			}
		}
	}
}

// applyAll runs each named recipe as a job and waits for all of them. The
// returned map holds every recipe that could be decoded.
func (e *Engine) applyAll(ctx context.Context, names []string) (map[string]*recipe.Recipe, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		errs    []error
		recipes = make(map[string]*recipe.Recipe, len(names))
	)
	for _, name := range names {
		name := name
		wg.Add(1)
		err := e.jobSystem.Submit(systems.JobTask{
			Name: name,
			OnStart: func() error {
				rcp, err := e.apply(ctx, name)
				mu.Lock()
				defer mu.Unlock()
				if rcp != nil {
					recipes[name] = rcp
				}
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", name, err))
				}
				return err
			},
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}
	wg.Wait()
	return recipes, errors.Join(errs...)
}

func (e *Engine) apply(ctx context.Context, name string) (*recipe.Recipe, error) {
	res, err := e.assetManager.LoadAsset(name, resources.ResourceTypeRecipe, nil)
	if err != nil {
		return nil, err
	}
	rcp, ok := res.Data.(*recipe.Recipe)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a recipe", core.ErrInvalidRecipe, name)
	}

	runner := e.runners[name]
	result, err := runner.Run(ctx, rcp)
	if err != nil {
		return rcp, err
	}

	e.mutex.Lock()
	e.results[name] = result
	e.mutex.Unlock()

	m := runner.Metrics()
	core.LogInfo("%s: '%s' done in %s (avg step %.3fms, %.0f verts/s)",
		e.config.Name, result.Recipe, result.Elapsed, m.AverageMS(), m.VerticesPerSecond())
	return rcp, nil
}

// dependencies lists the absolute paths whose change re-runs the named
// recipe. The output is left out so writing it does not trigger another run.
func (e *Engine) dependencies(name string, rcp *recipe.Recipe) map[string]bool {
	deps := map[string]bool{
		e.assetManager.Resolve(name): true,
	}
	if rcp == nil {
		return deps
	}
	deps[e.assetManager.Resolve(rcp.Source.Path)] = true
	for _, t := range rcp.Textures {
		deps[e.assetManager.Resolve(t.Path)] = true
	}
	for _, t := range rcp.Targets {
		deps[e.assetManager.Resolve(t.Path)] = true
	}
	if rcp.Output.Path != "" {
		delete(deps, e.assetManager.Resolve(rcp.Output.Path))
	}
	return deps
}

func (e *Engine) Shutdown() error {
	e.currentStage = EngineStageShuttingDown
	if err := e.jobSystem.Shutdown(); err != nil {
		return err
	}
	if err := e.assetManager.Shutdown(); err != nil {
		return err
	}
	e.clock.Update()
	core.LogInfo("%s shut down after %s", e.config.Name, e.clock.Elapsed().Round(time.Millisecond))
	return nil
}

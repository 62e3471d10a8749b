package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/sculpt/engine/assets/loaders"
	"github.com/spaghettifunk/sculpt/engine/core"
	"github.com/spaghettifunk/sculpt/engine/resources"
)

// EVENT_BUFFER is how many change notifications are kept when nobody reads them.
const EVENT_BUFFER int = 64

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetEvent reports a change to an indexed asset.
type AssetEvent struct {
	Path    string
	Type    resources.ResourceType
	Removed bool
}

// AssetManager indexes every known asset under a root directory, keeps the
// index current through fsnotify and loads or saves assets through the
// registered loaders.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done      chan struct{}
	fsnotify  *fsnotify.Watcher
	isClosed  bool
	closeOnce sync.Once
	events    chan AssetEvent
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
		events:   make(chan AssetEvent, EVENT_BUFFER),
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize(assetsDir string) error {
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	go am.start()

	if err := am.addRecursive(root); err != nil {
		return err
	}

	// Register loaders
	am.registerLoader(resources.ResourceTypeModel, &loaders.ModelLoader{})
	am.registerLoader(resources.ResourceTypeImage, &loaders.TextureLoader{})
	am.registerLoader(resources.ResourceTypeRecipe, &loaders.RecipeLoader{})

	core.LogInfo("asset manager indexed %d assets under %s", am.Count(), root)
	return nil
}

func (am *AssetManager) Root() string {
	return am.root
}

// Events delivers changes to indexed assets. Notifications are dropped when
// the buffer is full.
func (am *AssetManager) Events() <-chan AssetEvent {
	return am.events
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name, false)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// Resolve maps a name relative to the assets directory to an absolute path.
func (am *AssetManager) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(am.root, name)
}

// Lookup returns the index entry for name.
func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.Resolve(name)]
	return info, ok
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// Assets lists the indexed assets sorted by path.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	list := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	return list
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	path := am.Resolve(name)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if !exists {
		// files created since the last event may not be indexed yet
		if s, err := os.Stat(path); err == nil && !s.IsDir() {
			if t := determineAssetType(path); t != resources.ResourceTypeNone {
				asset = AssetInfo{Path: path, Type: t}
				exists = true
			}
		}
	}
	if !exists {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s", core.ErrAssetNotFound, name)
	}
	if asset.Type != resourceType {
		am.mutex.Unlock()
		return nil, fmt.Errorf("%w: %s is a %s asset, not %s", core.ErrUnknownAsset, name, asset.Type, resourceType)
	}
	// Load or reload asset from disk if necessary
	asset.LastLoaded = time.Now()
	am.assets[path] = asset // Update the loaded time
	am.mutex.Unlock()

	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	core.LogDebug("loaded %s asset '%s' (%d bytes)", res.ResourceType, name, res.DataSize)
	return res, nil
}

// SaveAsset writes resource under name, creating parent directories.
func (am *AssetManager) SaveAsset(name string, resource *resources.Resource) error {
	if resource == nil {
		return errors.New("nil resource")
	}
	path := am.Resolve(name)
	if t := determineAssetType(path); t != resource.ResourceType {
		return fmt.Errorf("%w: cannot save a %s resource as '%s'", core.ErrUnknownAsset, resource.ResourceType, name)
	}
	loader, ok := am.loaders[resource.ResourceType]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", resource.ResourceType)
	}
	saver, ok := loader.(Saver)
	if !ok {
		return fmt.Errorf("%s assets cannot be saved", resource.ResourceType)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := saver.Save(path, resource); err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	am.handleFileEvent(path)
	core.LogDebug("saved %s asset '%s'", resource.ResourceType, name)
	return nil
}

func (am *AssetManager) UnloadAsset(asset *resources.Resource) error {
	if asset == nil {
		return nil
	}
	loader, ok := am.loaders[asset.ResourceType]
	if !ok {
		return nil
	}
	return loader.Unload(asset)
}

// Shutdown stops the watcher and closes the event channel.
func (am *AssetManager) Shutdown() error {
	am.closeOnce.Do(func() {
		am.mutex.Lock()
		am.isClosed = true
		am.mutex.Unlock()
		close(am.done)
	})
	return nil
}

func (am *AssetManager) start() {
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, false); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err.Error())
					}
				}
				continue
			}
			assetType := determineAssetType(e.Name)
			if assetType == resources.ResourceTypeNone {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
				am.notify(AssetEvent{Path: e.Name, Type: assetType})
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				am.notify(AssetEvent{Path: e.Name, Type: assetType, Removed: true})
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)

		case <-am.done:
			am.fsnotify.Close()
			close(am.events)
			return
		}
	}
}

func (am *AssetManager) notify(e AssetEvent) {
	select {
	case am.events <- e:
	default:
		core.LogWarn("asset event buffer full, dropping change to %s", e.Path)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes every file it finds.
func (am *AssetManager) watchRecursive(path string, unWatch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if unWatch {
				return am.fsnotify.Remove(walkPath)
			}
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()

	am.assets[path] = AssetInfo{
		Path: path,
		Type: assetType,
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, path)
}

func determineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return resources.ResourceTypeModel
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return resources.ResourceTypeImage
	case ".toml", ".yaml", ".yml":
		return resources.ResourceTypeRecipe
	default:
		return resources.ResourceTypeNone
	}
}

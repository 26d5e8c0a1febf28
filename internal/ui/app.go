// Package ui  Setup for the Fynebox Application
package ui

import (
	"flag"
	"runtime"
	"sync"
	"time"

	// Image decoders for every format the manifest may reference.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"k8s.io/klog/v2"

	"fynebox/internal/cache"
	"fynebox/internal/catalog"
	"fynebox/internal/config"
	"fynebox/internal/fetch"
	"fynebox/internal/gallery"
	"fynebox/internal/history"
	"fynebox/internal/manifest"
	"fynebox/internal/preload"
	"fynebox/internal/slideshow"
	"fynebox/internal/viewer"
)

var (
	manifestFlag = flag.String("manifest", manifest.FileName, "manifest location, a local path or an http(s) URL")
	configFlag   = flag.String("config", "", "config file location, empty for the per-user default")
)

// UI groups the window-level widgets of the application.
type UI struct {
	MainWin    fyne.Window
	mainModKey fyne.KeyModifier
	content    *fyne.Container
}

// App represents the whole application with all its windows, widgets
// and functions
type App struct {
	app fyne.App
	UI  UI

	cfg config.Config

	fetcher      *fetch.Fetcher
	cacheStore   *cache.Store
	store        byteStore
	imageManager *ImageManager
	lightbox     *Lightbox

	controller *gallery.Controller
	vw         *viewer.Viewer
	router     *viewer.Router
	scheduler  *preload.Scheduler

	historyManager      *history.Manager
	isNavigatingHistory bool

	slideshowManager *slideshow.Manager
	statusManager    *StatusManager
}

// setContent swaps what the main area shows. UI thread only.
func (a *App) setContent(obj fyne.CanvasObject) {
	a.UI.content.Objects = []fyne.CanvasObject{obj}
	a.UI.content.Refresh()
}

// attachCatalog rebuilds the navigation stack around a freshly loaded
// catalog. UI thread only.
func (a *App) attachCatalog(cat *catalog.Catalog) {
	a.slideshowManager.Stop()
	a.historyManager.Clear()

	var preloader viewer.Preloader
	a.scheduler = nil
	if a.cfg.PreloadRadius > 0 {
		// The scheduler fills the same store the image manager reads,
		// otherwise preloaded bytes would never be seen again.
		locator := manifest.Locator{Base: manifest.BaseOf(a.manifestSrc())}
		a.scheduler = preload.NewScheduler(cat, locator.FullSize, a.fetcher.Fetch, a.store, a.cfg.PreloadRadius)
		preloader = a.scheduler
	}

	a.vw = viewer.New(cat, a.lightbox, preloader)
	a.vw.SetOnChange(a.recordHistory)
	a.router = viewer.NewRouter(a.vw, a.cfg.SwipeThresholdPx)
	a.lightbox.SetRouter(a.router)
}

func (a *App) manifestSrc() string {
	if flag.NArg() > 0 {
		return flag.Arg(0)
	}
	return *manifestFlag
}

func (a *App) recordHistory(index int, open bool) {
	if a.isNavigatingHistory || !open {
		return
	}
	a.historyManager.Record(index)
}

// showPreviouslyViewed reopens the photo viewed before the current one.
func (a *App) showPreviouslyViewed() {
	if a.vw == nil || !a.vw.IsOpen() {
		return
	}
	idx, ok := a.historyManager.Back()
	if !ok {
		return
	}
	a.isNavigatingHistory = true
	if err := a.vw.Open(idx); err != nil {
		klog.Warningf("ui: reopening %d from history: %v", idx, err)
	}
	a.isNavigatingHistory = false
}

// pauseSlideshowForUser stops the slideshow when the user navigates by
// hand, so the timer does not fight their input.
func (a *App) pauseSlideshowForUser() {
	if a.slideshowManager.IsRunning() {
		a.slideshowManager.Stop()
		a.statusManager.AddMessage("Slideshow stopped")
	}
}

func (a *App) toggleSlideshow() {
	if a.vw == nil || !a.vw.IsOpen() {
		return
	}
	if a.slideshowManager.Toggle() {
		a.statusManager.AddMessage("Slideshow started")
	} else {
		a.statusManager.AddMessage("Slideshow stopped")
	}
}

// slideshowAdvance is called from the slideshow ticker goroutine. It
// reports false when the show cannot continue, which stops the ticker.
func (a *App) slideshowAdvance() bool {
	advanced := false
	fyne.DoAndWait(func() {
		if a.vw == nil || !a.vw.IsOpen() {
			return
		}
		i, _ := a.vw.Current()
		if i >= a.controller.Catalog().Size()-1 {
			return
		}
		a.vw.Next()
		advanced = true
	})
	return advanced
}

func (a *App) buildMainUI() fyne.CanvasObject {
	a.UI.MainWin.SetMaster()
	// set main mod key to super on darwin hosts, else set it to ctrl
	if runtime.GOOS == "darwin" {
		a.UI.mainModKey = fyne.KeyModifierSuper
	} else {
		a.UI.mainModKey = fyne.KeyModifierControl
	}

	loading := container.NewVBox(widget.NewLabel("Loading gallery"), widget.NewProgressBarInfinite())
	a.UI.content = container.NewStack(container.NewCenter(loading))
	a.buildKeyboardShortcuts()
	a.lightbox.OnUserNav = a.pauseSlideshowForUser

	return container.NewBorder(nil, a.statusManager.Bar(), nil, nil, a.UI.content)
}

// CreateApplication wires the application together and runs it.
func CreateApplication() {
	klog.InitFlags(nil)
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		klog.Warningf("ui: %v, continuing with defaults", err)
		cfg = config.Default()
	}

	fyneApp := app.NewWithID("com.github.fynebox")
	fyneApp.Settings().SetTheme(NewGalleryTheme(fyneApp.Settings().Theme()))

	ui := &App{app: fyneApp, cfg: cfg}
	ui.fetcher = fetch.New()
	ui.cacheStore, err = cache.Open(cfg.CacheDir)
	if err != nil {
		klog.Warningf("ui: image cache unavailable: %v", err)
		ui.cacheStore = nil
	}
	if ui.cacheStore != nil {
		ui.store = ui.cacheStore
	} else {
		ui.store = newMemoryStore()
	}

	src := ui.manifestSrc()
	ui.imageManager = NewImageManager(ui.fetcher, ui.store, manifest.Locator{Base: manifest.BaseOf(src)})
	ui.statusManager = NewStatusManager(defaultMaxStatusMessages)
	ui.historyManager = history.NewManager(cfg.HistorySize)
	ui.slideshowManager = slideshow.NewManager(time.Duration(cfg.SlideshowIntervalSec)*time.Second, ui.slideshowAdvance)
	ui.controller = gallery.NewController(manifest.NewLoader(ui.fetcher), ui)

	ui.UI.MainWin = fyneApp.NewWindow("Fynebox")
	ui.lightbox = NewLightbox(ui.UI.MainWin, ui.imageManager)
	ui.UI.MainWin.SetCloseIntercept(func() {
		ui.slideshowManager.Stop()
		if ui.cacheStore != nil {
			if err := ui.cacheStore.Close(); err != nil {
				klog.Errorf("ui: closing image cache: %v", err)
			}
		}
		ui.UI.MainWin.Close()
	})
	ui.UI.MainWin.SetContent(ui.buildMainUI())

	go func() {
		if err := ui.controller.Load(src); err != nil {
			klog.Errorf("ui: initial load failed: %v", err)
		}
	}()

	ui.UI.MainWin.Resize(fyne.NewSize(1200, 800))
	ui.UI.MainWin.CenterOnScreen()
	ui.UI.MainWin.ShowAndRun()
}

// memoryStore backs the image manager and the preload scheduler when
// the persistent cache could not be opened.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (m *memoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	return data, ok
}

func (m *memoryStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok
}

func (m *memoryStore) Put(key string, data []byte) error {
	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

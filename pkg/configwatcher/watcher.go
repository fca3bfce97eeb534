package configwatcher

import (
	"log"
	"path/filepath"
	"schoolscan_backend/internal/config"
	"schoolscan_backend/pkg/logger"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads the configuration file on change and fans the new config
// out to subscribers. Subscription is an explicit lifecycle: components
// subscribe when they start and unsubscribe when they stop, so nothing
// receives callbacks after teardown.
type Watcher struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]func(*config.Config)
}

func New() *Watcher {
	return &Watcher{subscribers: make(map[int]func(*config.Config))}
}

// Subscribe registers a reload callback and returns the id to unsubscribe
// with.
func (w *Watcher) Subscribe(fn func(*config.Config)) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	w.subscribers[w.nextID] = fn
	return w.nextID
}

func (w *Watcher) Unsubscribe(id int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.subscribers, id)
}

func (w *Watcher) notify(cfg *config.Config) {
	w.mu.Lock()
	fns := make([]func(*config.Config), 0, len(w.subscribers))
	for _, fn := range w.subscribers {
		fns = append(fns, fn)
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(cfg)
	}
}

// Watch blocks, debouncing file events and reloading the config a second
// after the last write. Run it in its own goroutine.
func (w *Watcher) Watch(configPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal("Failed to create config watcher:", err)
	}
	defer watcher.Close()

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		log.Fatal("Failed to get absolute path:", err)
	}

	if err := watcher.Add(absPath); err != nil {
		log.Fatal("Failed to watch config file:", err)
	}

	timer := time.NewTimer(0)
	<-timer.C

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(1 * time.Second)
			}
		case <-timer.C:
			dirPath := filepath.Dir(configPath)
			newCfg, err := config.LoadConfig(dirPath)
			if err != nil {
				logger.Log.Error("Failed to reload config", zap.Error(err))
				continue
			}
			w.notify(newCfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("Config watcher error", zap.Error(err))
		}
	}
}

// Package collector registers profiles dropped as JSON files into an inbox
// directory.
package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"synastry-service/models"
	"synastry-service/service"
)

// errEmptyFile marks a file that was created but not written yet. Its Write
// event brings it back.
var errEmptyFile = errors.New("empty inbox file")

// Registrar creates profiles. *service.Service implements it.
type Registrar interface {
	CreateProfile(ctx context.Context, in service.ProfileInput) (models.Profile, error)
}

// Recorder counts processed files. metrics.Collector implements it.
type Recorder interface {
	InboxFile(ok bool)
}

// Result is one registered inbox file.
type Result struct {
	Path    string
	Profile models.Profile
}

// ProfileCollector watches a directory and registers every *.json file in it
// once. A file that fails to decode or register is retried on its next write.
type ProfileCollector struct {
	dir         string
	registrar   Registrar
	logger      *zap.Logger
	recorder    Recorder
	outputChan  chan Result
	errorChan   chan error
	fileTimeout time.Duration

	mu   sync.Mutex
	done map[string]bool
}

// NewProfileCollector creates a collector for dir
func NewProfileCollector(dir string, registrar Registrar, logger *zap.Logger) *ProfileCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileCollector{
		dir:         dir,
		registrar:   registrar,
		logger:      logger,
		outputChan:  make(chan Result, 100),
		errorChan:   make(chan error, 100),
		fileTimeout: 30 * time.Second,
		done:        make(map[string]bool),
	}
}

// SetFileTimeout changes the time allowed to register one file
func (pc *ProfileCollector) SetFileTimeout(timeout time.Duration) {
	pc.fileTimeout = timeout
}

// SetRecorder sets the file counter
func (pc *ProfileCollector) SetRecorder(r Recorder) {
	pc.recorder = r
}

// OutputChannel returns the channel that emits registered profiles
func (pc *ProfileCollector) OutputChannel() <-chan Result {
	return pc.outputChan
}

// ErrorChannel returns the channel that emits errors
func (pc *ProfileCollector) ErrorChannel() <-chan error {
	return pc.errorChan
}

// Start processes the files already in the inbox, then watches it for new
// ones. The returned function stops watching and waits for the in-flight
// file; both channels are closed afterwards.
func (pc *ProfileCollector) Start(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(pc.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create inbox %s: %w", pc.dir, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(pc.dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", pc.dir, err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(pc.outputChan)
		defer close(pc.errorChan)

		pc.scan(watchCtx)
		pc.watch(watchCtx, watcher)
	}()

	pc.logger.Info("watching inbox", zap.String("dir", pc.dir))

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
			watcher.Close()
		})
	}, nil
}

func (pc *ProfileCollector) scan(ctx context.Context) {
	entries, err := os.ReadDir(pc.dir)
	if err != nil {
		pc.fail(fmt.Errorf("failed to read inbox %s: %w", pc.dir, err))
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && isProfileFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		if ctx.Err() != nil {
			return
		}
		pc.processFile(ctx, filepath.Join(pc.dir, name))
	}
}

func (pc *ProfileCollector) watch(ctx context.Context, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isProfileFile(event.Name) {
				continue
			}
			switch {
			case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
				pc.processFile(ctx, event.Name)
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				pc.forget(event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			pc.fail(fmt.Errorf("inbox watcher: %w", err))
		}
	}
}

// processFile registers one file unless it already has been
func (pc *ProfileCollector) processFile(ctx context.Context, path string) {
	pc.mu.Lock()
	seen := pc.done[path]
	pc.mu.Unlock()
	if seen {
		return
	}

	fileCtx, cancel := context.WithTimeout(ctx, pc.fileTimeout)
	defer cancel()

	p, err := pc.register(fileCtx, path)
	if errors.Is(err, errEmptyFile) {
		pc.logger.Debug("inbox file still empty", zap.String("path", path))
		return
	}
	if pc.recorder != nil {
		pc.recorder.InboxFile(err == nil)
	}
	if err != nil {
		pc.logger.Warn("inbox file rejected", zap.String("path", path), zap.Error(err))
		pc.fail(fmt.Errorf("error registering %s: %w", path, err))
		return
	}

	pc.mu.Lock()
	pc.done[path] = true
	pc.mu.Unlock()

	pc.logger.Info("inbox profile registered", zap.String("path", path), zap.String("id", p.ID))
	select {
	case pc.outputChan <- Result{Path: path, Profile: p}:
	case <-ctx.Done():
	}
}

func (pc *ProfileCollector) register(ctx context.Context, path string) (models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Profile{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.Profile{}, errEmptyFile
	}
	var in service.ProfileInput
	if err := json.Unmarshal(data, &in); err != nil {
		return models.Profile{}, fmt.Errorf("failed to decode profile: %w", err)
	}
	return pc.registrar.CreateProfile(ctx, in)
}

func (pc *ProfileCollector) forget(path string) {
	pc.mu.Lock()
	delete(pc.done, path)
	pc.mu.Unlock()
}

func (pc *ProfileCollector) fail(err error) {
	select {
	case pc.errorChan <- err:
	default:
		// error channel full; the warning log still has it
	}
}

func isProfileFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

package internal

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/symbal/internal/types"
)

// settleDelay lets a burst of writes to one file land before it is checked.
const settleDelay = 100 * time.Millisecond

var (
	ErrAlreadyWatching = errors.New("already watching")
	ErrNotWatching     = errors.New("not watching")
)

// ReportFunc receives the issues found after a file changed.
type ReportFunc func(filename string, issues []tt.Issue)

// StartWatching re-checks files under dirs whenever they are written,
// passing the outcome to report. It returns once the watcher is set up.
func (e *Engine) StartWatching(dirs []string, report ReportFunc) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.isWatching {
		return ErrAlreadyWatching
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching = true
	go e.watchLoop(watcher, report)
	return nil
}

func (e *Engine) StopWatching() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isWatching {
		return ErrNotWatching
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop(watcher *fsnotify.Watcher, report ReportFunc) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event, report)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event, report ReportFunc) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !e.HasDesiredExtension(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(settleDelay)
	issues, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("Error checking file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	report(event.Name, issues)
}

// LogReport is a ReportFunc that writes outcomes to the engine's logger.
func (e *Engine) LogReport(filename string, issues []tt.Issue) {
	if len(issues) == 0 {
		e.logger.Info("No issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("Found issues", zap.String("file", filename), zap.Int("count", len(issues)))
	for _, issue := range issues {
		e.logger.Info(issue.Message,
			zap.String("rule", issue.Rule),
			zap.Int("line", issue.Start.Line),
			zap.Int("column", issue.Start.Column))
	}
}

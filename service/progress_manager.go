package service

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// ProgressManagerImpl implements domain.ProgressReporter. Bars render only
// when the writer is an interactive terminal; otherwise all calls are no-ops
// so piped and scripted runs stay clean.
type ProgressManagerImpl struct {
	mu          sync.Mutex
	writer      io.Writer
	progressBar *progressbar.ProgressBar
	interactive bool
}

// NewProgressManager creates a new progress manager writing to stderr.
func NewProgressManager() *ProgressManagerImpl {
	return &ProgressManagerImpl{
		writer:      os.Stderr,
		interactive: isInteractiveWriter(os.Stderr),
	}
}

// Start begins a new progress bar for the given phase.
func (pm *ProgressManagerImpl) Start(description string, total int) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if !pm.interactive {
		return
	}
	pm.progressBar = pm.createProgressBar(description, total)
}

// Increment advances the progress bar by one.
func (pm *ProgressManagerImpl) Increment() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Add(1)
	}
}

// Complete finishes and discards the current progress bar.
func (pm *ProgressManagerImpl) Complete() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.progressBar != nil {
		_ = pm.progressBar.Finish()
		pm.progressBar = nil
	}
}

// SetWriter sets the output writer for progress bars.
func (pm *ProgressManagerImpl) SetWriter(writer io.Writer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.writer = writer
	pm.interactive = isInteractiveWriter(writer)
}

// createProgressBar creates a new progress bar with consistent styling.
func (pm *ProgressManagerImpl) createProgressBar(description string, max int) *progressbar.ProgressBar {
	writer := pm.writer
	if writer == nil {
		writer = io.Discard
	}

	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}

// NoOpProgress is a ProgressReporter that does nothing. Used by tests and
// library callers that do not want terminal output.
type NoOpProgress struct{}

func (NoOpProgress) Start(description string, total int) {}
func (NoOpProgress) Increment()                          {}
func (NoOpProgress) Complete()                           {}
func (NoOpProgress) SetWriter(w io.Writer)               {}

func isInteractiveWriter(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

package processor

// ProgressReporter provides callbacks for reporting digest progress.
// Implementations can display progress bars, log messages, or remain silent.
// OnFileProcessed may be called from several goroutines at once.
type ProgressReporter interface {
	// OnDiscoveryComplete is called once the walk has found totalFiles files.
	OnDiscoveryComplete(totalFiles int)

	// OnFileProcessed is called after each file is processed.
	OnFileProcessed(path string)

	// OnComplete is called after all output has been written.
	OnComplete(stats Stats)
}

// NoOpProgressReporter is a progress reporter that does nothing.
// Used when progress reporting is disabled (e.g., --quiet flag).
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (NoOpProgressReporter) OnFileProcessed(path string)        {}
func (NoOpProgressReporter) OnComplete(stats Stats)             {}

package tui

// DirChangedMsg is sent when the watched directory changes
type DirChangedMsg struct{}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// TickMsg is sent periodically to update the clock in the header
type TickMsg struct {
	Time string
}

// WatcherStartedMsg is sent when the directory watcher starts
type WatcherStartedMsg struct{}

// WatcherFailedMsg is sent when the directory watcher fails
type WatcherFailedMsg struct {
	Err error
}

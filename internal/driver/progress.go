package driver

// FileStatus is the lifecycle of one file in a batch check.
type FileStatus uint8

const (
	StatusQueued FileStatus = iota
	StatusChecking
	StatusDone
	StatusFailed
	StatusCached
)

func (s FileStatus) String() string {
	switch s {
	case StatusQueued:
		return "queued"
	case StatusChecking:
		return "checking"
	case StatusDone:
		return "ok"
	case StatusFailed:
		return "error"
	case StatusCached:
		return "cached"
	}
	return ""
}

// Finished reports whether no further events follow for the file.
func (s FileStatus) Finished() bool { return s >= StatusDone }

// FileEvent reports a status change of one batch file.
type FileEvent struct {
	Path   string
	Status FileStatus
	Errors int
}

// ProgressSink receives batch events. Calls come from worker goroutines.
type ProgressSink interface {
	OnFile(FileEvent)
}

// ChannelSink forwards events to a channel, blocking when it is full.
type ChannelSink struct {
	Ch chan<- FileEvent
}

func (s ChannelSink) OnFile(ev FileEvent) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func notify(sink ProgressSink, ev FileEvent) {
	if sink != nil {
		sink.OnFile(ev)
	}
}

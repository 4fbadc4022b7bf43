package driver

import "time"

// Stage is the step a unit is in.
type Stage string

const (
	StageLoad  Stage = "load"
	StageCache Stage = "cache"
	StageScan  Stage = "scan"
)

// Status of a unit or of the batch.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusCached  Status = "cached"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole batch when File is empty.
type Event struct {
	File      string
	Stage     Stage
	Status    Status
	Err       error
	Elapsed   time.Duration
	Endpoints int
}

// ProgressSink consumes progress events. OnEvent is called from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

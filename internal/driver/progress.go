package driver

// Stage identifies which part of the pipeline a ProgressEvent reports on.
type Stage uint8

const (
	StageRead Stage = iota
	StageParse
	StageAnalyze
	StageLower
)

func (s Stage) String() string {
	switch s {
	case StageRead:
		return "reading"
	case StageParse:
		return "parsing"
	case StageAnalyze:
		return "analyzing"
	case StageLower:
		return "lowering"
	default:
		return "unknown"
	}
}

// Status is a ProgressEvent's outcome for its Stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// ProgressEvent reports one file's movement through the pipeline, or (when
// File is empty) a program-wide stage transition such as "lowering started".
// cmd/emberc's progress UI consumes a stream of these the same way the
// pipeline reports per-file status over a channel.
type ProgressEvent struct {
	File   string
	Stage  Stage
	Status Status
}

// emitProgress sends one event on ch, the CompileOptions.Progress channel;
// it does nothing when ch is nil (no UI is listening).
func emitProgress(ch chan<- ProgressEvent, file string, stage Stage, status Status) {
	if ch == nil {
		return
	}
	ch <- ProgressEvent{File: file, Stage: stage, Status: status}
}

package replay

import (
	"encoding/json"
	"fmt"
	"os"
)

// Replayer plays recorded pause input and menu commands back, one entry per
// game frame. Live menu clicks are ignored, except Quit.
type Replayer struct {
	data  ReplayData
	ctrl  Controller
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// Bind sets the controller recorded menu commands are sent to
func (r *Replayer) Bind(ctrl Controller) {
	r.ctrl = ctrl
}

// PausePressed returns the recorded pause edge for the current frame.
// Past the end of the recording it reports false.
func (r *Replayer) PausePressed() bool {
	if r.Finished() {
		return false
	}
	return r.data.Frames[r.frame].P
}

func (r *Replayer) Start()       {}
func (r *Replayer) TogglePause() {}
func (r *Replayer) Restart()     {}

// Quit passes a live quit through so a replay can be closed early.
func (r *Replayer) Quit() {
	apply(r.ctrl, ActionQuit)
}

// EndFrame sends the current frame's menu command and advances.
func (r *Replayer) EndFrame() {
	if r.Finished() {
		return
	}
	fi := r.data.Frames[r.frame]
	r.frame++
	apply(r.ctrl, fi.A)
}

// Finished reports whether every recorded frame has been played
func (r *Replayer) Finished() bool {
	return r.frame >= len(r.data.Frames)
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

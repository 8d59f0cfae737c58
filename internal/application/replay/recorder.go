package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// PauseSource is any per-frame pause input
type PauseSource interface {
	PausePressed() bool
}

// Recorder passes a pause source and the menu commands through to the game
// and records both, one entry per game frame.
type Recorder struct {
	source    PauseSource
	ctrl      Controller
	data      ReplayData
	current   FrameInput
	recording bool
	frame     int
}

// NewRecorder creates a new recorder wrapping source
func NewRecorder(source PauseSource, startLevel string) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:    Version,
			StartLevel: startLevel,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// Bind sets the controller menu commands are forwarded to
func (r *Recorder) Bind(ctrl Controller) {
	r.ctrl = ctrl
}

// PausePressed reads the wrapped source and marks the current frame
func (r *Recorder) PausePressed() bool {
	pressed := r.source.PausePressed()
	if pressed {
		r.current.P = true
	}
	return pressed
}

func (r *Recorder) Start()       { r.forward(ActionStart) }
func (r *Recorder) TogglePause() { r.forward(ActionToggle) }
func (r *Recorder) Restart()     { r.forward(ActionRestart) }
func (r *Recorder) Quit()        { r.forward(ActionQuit) }

func (r *Recorder) forward(a Action) {
	r.current.A = a
	apply(r.ctrl, a)
}

// EndFrame closes the current frame. Recording stops after the frame that quit.
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}

	fi := r.current
	fi.F = r.frame
	r.data.Frames = append(r.data.Frames, fi)
	r.current = FrameInput{}
	r.frame++

	if fi.A == ActionQuit {
		r.recording = false
	}
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}

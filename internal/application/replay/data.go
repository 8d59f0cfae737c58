package replay

// Action is a menu command recorded on the frame it was clicked
type Action string

const (
	ActionNone    Action = ""
	ActionStart   Action = "start"
	ActionToggle  Action = "toggle"
	ActionRestart Action = "restart"
	ActionQuit    Action = "quit"
)

// FrameInput records control input for a single game frame
type FrameInput struct {
	F int    `json:"f"`           // Frame number
	P bool   `json:"p,omitempty"` // PausePressed
	A Action `json:"a,omitempty"` // Menu action
}

// ReplayData contains all data needed to replay a session's control input
type ReplayData struct {
	Version    string       `json:"version"`
	StartLevel string       `json:"startLevel"`
	StartTime  string       `json:"startTime"`
	Frames     []FrameInput `json:"frames"`
}

// Version is written into every new recording
const Version = "3.0"

// Controller receives the menu commands a session records or replays
type Controller interface {
	Start()
	TogglePause()
	Restart()
	Quit()
}

func apply(ctrl Controller, a Action) {
	if ctrl == nil {
		return
	}
	switch a {
	case ActionStart:
		ctrl.Start()
	case ActionToggle:
		ctrl.TogglePause()
	case ActionRestart:
		ctrl.Restart()
	case ActionQuit:
		ctrl.Quit()
	}
}

package pong

import "fmt"

// Phase is the coarse match state.
type Phase int

const (
	Idle Phase = iota
	Playing
	Paused
	Finished
)

var phaseNames = map[Phase]string{
	Idle:     "idle",
	Playing:  "playing",
	Paused:   "paused",
	Finished: "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// MarshalText implements encoding.TextMarshaler.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Side identifies one end of the table.
type Side int

const (
	NoSide Side = iota
	PlayerSide
	AISide
)

func (s Side) String() string {
	switch s {
	case PlayerSide:
		return "player"
	case AISide:
		return "ai"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "player":
		*s = PlayerSide
	case "ai":
		*s = AISide
	case "none", "":
		*s = NoSide
	default:
		return fmt.Errorf("unknown side %q", text)
	}
	return nil
}

// State is the complete simulation state for one match. Positions are the
// top-left corners of the bounding boxes.
type State struct {
	PlayerY     float64 `json:"playerY"`
	AIY         float64 `json:"aiY"`
	BallX       float64 `json:"ballX"`
	BallY       float64 `json:"ballY"`
	BallVX      float64 `json:"ballVX"`
	BallVY      float64 `json:"ballVY"`
	PlayerScore int     `json:"playerScore"`
	AIScore     int     `json:"aiScore"`
	Phase       Phase   `json:"phase"`
	Winner      Side    `json:"winner"` // only meaningful when Phase is Finished
}

// Score returns the score for one side.
func (s State) Score(side Side) int {
	switch side {
	case PlayerSide:
		return s.PlayerScore
	case AISide:
		return s.AIScore
	}
	return 0
}

// Controls is the level-triggered paddle input read once per tick.
type Controls struct {
	Up   bool `json:"up"`
	Down bool `json:"down"`
}

// Snapshot is the read-only view handed to renderers and observers.
type Snapshot struct {
	MatchID string `json:"matchId"`
	Frame   uint64 `json:"frame"`
	State   State  `json:"state"`
	Layout  Layout `json:"layout"`
}

package input

import "strings"

// Key is a normalised key identifier as reported by the host.
type Key string

const (
	KeyUp    Key = "up"
	KeyDown  Key = "down"
	KeyW     Key = "w"
	KeyS     Key = "s"
	KeyPause Key = "space"
	KeyStart Key = "enter"
)

// Intent is what a key means to the game.
type Intent int

const (
	NoIntent Intent = iota
	MoveUp
	MoveDown
	TogglePause
	Start
)

var aliases = map[string]Key{
	"up":        KeyUp,
	"arrowup":   KeyUp,
	"down":      KeyDown,
	"arrowdown": KeyDown,
	"w":         KeyW,
	"s":         KeyS,
	" ":         KeyPause,
	"space":     KeyPause,
	"enter":     KeyStart,
	"return":    KeyStart,
}

// Normalize maps a raw host key name onto a Key. Unknown names are lowered and
// passed through so they can still be tracked and ignored consistently.
func Normalize(raw string) Key {
	if raw == " " {
		return KeyPause
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	if k, ok := aliases[lower]; ok {
		return k
	}
	return Key(lower)
}

// IntentOf returns the intent bound to a key.
func IntentOf(k Key) Intent {
	switch k {
	case KeyUp, KeyW:
		return MoveUp
	case KeyDown, KeyS:
		return MoveDown
	case KeyPause:
		return TogglePause
	case KeyStart:
		return Start
	}
	return NoIntent
}

// IsMovement reports whether a key drives the paddle.
func IsMovement(k Key) bool {
	i := IntentOf(k)
	return i == MoveUp || i == MoveDown
}

package session

import "github.com/charmbracelet/log"

// LogSubscriber writes match milestones to a logger. Frame events are only
// logged at debug level every 600 frames to keep log files readable.
type LogSubscriber struct {
	logger *log.Logger
}

// NewLogSubscriber creates a LogSubscriber
func NewLogSubscriber(logger *log.Logger) *LogSubscriber {
	return &LogSubscriber{logger: logger.WithPrefix("match")}
}

func (l *LogSubscriber) OnEvent(event Event) {
	switch e := event.(type) {
	case MatchStartEvent:
		l.logger.Info("Match started", "match", e.MatchID, "winScore", e.Layout.WinScore)
	case PointEvent:
		l.logger.Info("Point scored",
			"match", e.MatchID,
			"scorer", e.Scorer,
			"player", e.PlayerScore,
			"ai", e.AIScore,
			"frame", e.Frame)
	case PaddleHitEvent:
		l.logger.Debug("Paddle hit", "side", e.Side, "speed", e.Speed, "frame", e.Frame)
	case PauseEvent:
		l.logger.Info("Pause toggled", "paused", e.Paused, "frame", e.Frame)
	case MatchEndEvent:
		l.logger.Info("Match finished",
			"match", e.MatchID,
			"winner", e.Winner,
			"player", e.PlayerScore,
			"ai", e.AIScore,
			"frames", e.Frames)
	case FrameEvent:
		if e.Snapshot.Frame > 0 && e.Snapshot.Frame%600 == 0 {
			l.logger.Debug("Frame", "frame", e.Snapshot.Frame, "ball", [2]float64{e.Snapshot.State.BallX, e.Snapshot.State.BallY})
		}
	}
}

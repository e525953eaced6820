package random

import "go.uber.org/zap"

// Logged wraps a Source and logs every draw at debug level, giving a full
// audit trail of the values that shaped an enumeration.
type Logged struct {
	src    Source
	logger *zap.Logger
	draws  int
}

// NewLogged creates a Logged source drawing from src.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	return &Logged{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
func (l *Logged) Intn(n int) int {
	v := l.src.Intn(n)
	l.draws++
	l.logger.Debug("random draw",
		zap.String("kind", "intn"),
		zap.Int("n", n),
		zap.Int("value", v),
		zap.Int("draw", l.draws),
	)
	return v
}

// Float64 draws from the wrapped source and logs the result.
func (l *Logged) Float64() float64 {
	v := l.src.Float64()
	l.draws++
	l.logger.Debug("random draw",
		zap.String("kind", "float64"),
		zap.Float64("value", v),
		zap.Int("draw", l.draws),
	)
	return v
}

// Draws reports how many values have been drawn through l.
func (l *Logged) Draws() int { return l.draws }

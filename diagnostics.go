package osm2exits

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	ErrMismatchedCarriages = errors.New("mismatched number of carriages")
	ErrNotOnTrack          = errors.New("node is not part of a track")
	ErrTrackNotInRoute     = errors.New("track is not a member of the route")
)

// Diagnostics collects recoverable data problems found during a single run.
// None of them aborts the run: affected stop/route/track is skipped or marked ambiguous.
type Diagnostics struct {
	messages []string
	logger   *zap.Logger
}

func newDiagnostics(logger *zap.Logger) *Diagnostics {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Diagnostics{
		messages: []string{},
		logger:   logger,
	}
}

// Warnf appends formatted message to the warnings list
func (diag *Diagnostics) Warnf(format string, args ...interface{}) {
	if diag == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	diag.messages = append(diag.messages, msg)
	diag.logger.Warn(msg)
}

// Messages returns collected warnings in order of appearance
func (diag *Diagnostics) Messages() []string {
	if diag == nil {
		return nil
	}
	return diag.messages
}

package visualizer

import (
	"github.com/abhisek/algolab/internal/progress"
)

// changedMsg is sent when the controller reports a new view. The screen
// reads the latest snapshot itself, so missed notifications are harmless.
type changedMsg struct{}

// creditedMsg is sent once an autoplay completion has been credited to the
// ledger.
type creditedMsg struct {
	Change progress.Change
	Err    error
}

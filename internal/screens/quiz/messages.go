package quiz

import (
	"time"

	"github.com/abhisek/algolab/internal/badges"
	"github.com/abhisek/algolab/internal/quiz"
)

// attemptReadyMsg is sent when the questions have been assembled.
type attemptReadyMsg struct {
	Attempt *quiz.Attempt
}

// finishedMsg is sent once the attempt has been recorded.
type finishedMsg struct {
	Result quiz.Result
	Badges []badges.Badge // awarded while recording
	Err    error
}

// spinnerTickMsg is sent at short intervals to animate the loading spinner.
type spinnerTickMsg time.Time

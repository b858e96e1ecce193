package ai

import (
	"context"

	"github.com/pactician/pactician/capture"
)

// Player chooses the next action for the agent it was built for.
type Player interface {
	GetAction(ctx context.Context, s capture.State) capture.Direction
}

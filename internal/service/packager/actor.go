package packager

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/oshokin/houdini-package/internal/domain/houdini"
	"github.com/oshokin/houdini-package/internal/logger"
)

// detectActor gathers host and user information for the manifest.
func detectActor() (*houdini.Actor, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	return &houdini.Actor{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}

// actorOrNil logs and drops detection errors; the manifest is written without an actor.
func actorOrNil(ctx context.Context, detect func() (*houdini.Actor, error)) *houdini.Actor {
	actor, err := detect()
	if err != nil {
		logger.WarnKV(ctx, "Could not detect who is packaging", "error", err)
		return nil
	}

	return actor
}

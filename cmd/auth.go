package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"chartctl/internal/shared"
)

const authDefaultTTL = 24 * time.Hour

// AuthLogin stores a session token with its expiry.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	token := cmd.StringArg("token")
	if token == "" {
		return fmt.Errorf("%w: token", shared.ErrMissingArgument)
	}

	if err := r.connect(); err != nil {
		return err
	}

	expiresAt := time.Now().Add(cmd.Duration("ttl")).UTC()
	if err := r.store.Save(token, expiresAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Info("session stored", "expires_at", expiresAt.Format(time.RFC3339))
	return r.writePlain("✓ Signed in (session valid until %s)\n", expiresAt.Format(time.RFC3339))
}

// AuthStatus shows the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	if r.store.Token() == "" {
		return r.writePlain("✗ No session stored\n")
	}
	if !r.store.Valid() {
		return r.writePlain("✗ Session expired at %s\n", r.store.ExpiresAt().Format(time.RFC3339))
	}
	return r.writePlain("✓ Session valid until %s\n", r.store.ExpiresAt().Format(time.RFC3339))
}

// AuthLogout discards the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.connect(); err != nil {
		return err
	}

	r.store.Invalidate()
	r.logger.Info("session discarded")
	return r.writePlain("✓ Signed out\n")
}

package main

import (
	"context"
	"fmt"

	"github.com/duskfall/mstro/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthLogin authenticates with email and password and persists the session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Info("logging in", "email", email)

	if err := r.session.Login(ctx, email, password); err != nil {
		state := r.session.Snapshot()
		if state.Err != "" {
			r.writePlain("✗ %s\n", state.Err)
		}
		return err
	}

	state := r.session.Snapshot()
	if state.User != nil {
		return r.writePlain("✓ Logged in as %s\n", state.User.Email)
	}
	return r.writePlain("✓ Logged in\n")
}

// AuthLogout ends the session and clears stored credentials.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	r.logger.Info("logging out")

	if err := r.session.Logout(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports the current session state after revalidating the token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	state := r.session.Snapshot()
	if !state.Authenticated {
		return r.writePlain("✗ Not authenticated\nRun 'mstro auth login' to sign in\n")
	}

	r.logger.Info("validating stored session")

	if err := r.session.ValidateToken(ctx); err != nil {
		r.writePlain("✗ Stored session is no longer valid\n")
		return err
	}

	state = r.session.Snapshot()
	r.writePlain("✓ Authenticated\n")
	if state.User != nil {
		r.writePlain("Email: %s\n", state.User.Email)
		if state.User.Name != "" {
			r.writePlain("Name: %s\n", state.User.Name)
		}
	}
	return nil
}

// AuthImport adopts a browser session by extracting the bearer token from a
// DevTools "Copy as cURL" command, then validates it against the backend.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireSession(); err != nil {
		return err
	}

	curlCmd := cmd.String("curl")
	curlFile := cmd.String("curl-file")

	if curlCmd == "" && curlFile == "" {
		return fmt.Errorf("%w: either --curl or --curl-file must be provided", shared.ErrMissingArgument)
	}
	if curlCmd != "" && curlFile != "" {
		return fmt.Errorf("%w: cannot specify both --curl and --curl-file", shared.ErrInvalidArgument)
	}

	var curlHeaders *shared.CurlHeaders
	var err error

	if curlFile != "" {
		curlHeaders, err = shared.ParseCurlFile(curlFile)
		if err != nil {
			return fmt.Errorf("failed to parse cURL file: %w", err)
		}
		r.logger.Info("parsed cURL from file", "file", curlFile)
	} else {
		curlHeaders, err = shared.ParseCurlCommand([]byte(curlCmd))
		if err != nil {
			return fmt.Errorf("failed to parse cURL command: %w", err)
		}
		r.logger.Info("parsed cURL command")
	}

	token, err := curlHeaders.BearerToken()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	r.logger.Info("extracted bearer token, validating against backend")

	if err := r.session.Adopt(ctx, token); err != nil {
		return fmt.Errorf("%w: imported token rejected: %v", shared.ErrAuthFailed, err)
	}

	state := r.session.Snapshot()
	if state.User != nil {
		return r.writePlain("✓ Session imported for %s\n", state.User.Email)
	}
	return r.writePlain("✓ Session imported\n")
}

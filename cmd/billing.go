package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Billing prints the account plan and credit balance.
func (r *Runner) Billing(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireStudio(); err != nil {
		return err
	}

	info, err := r.studio.Billing.Info(ctx)
	if err != nil {
		return err
	}

	r.writePlainHeader("Billing")
	r.writePlain("Plan: %s\n", info.Plan)
	r.writePlain("Credits remaining: %d\n", info.CreditsRemaining)
	r.writePlain("Credits used: %d\n", info.CreditsUsed)
	return nil
}

package cli

import (
	"context"
	"fmt"
)

func (a *App) Unlock(ctx context.Context) error {
	code, err := GetSecret(a.reader, "Enter the secret code 🔑", a.out)
	if err != nil {
		return a.report(ctx, "unlock", err)
	}

	if err := a.access.Unlock(ctx, code); err != nil {
		return a.report(ctx, "unlock", err)
	}

	a.println("Welcome to your diary! 🎀✨")
	if !a.hasProfile() {
		a.println("Type 'register' to create your profile.")
	}
	return nil
}

func (a *App) Admin(ctx context.Context) error {
	code, err := GetSecret(a.reader, "Enter Secret Admin Code 🎀", a.out)
	if err != nil {
		return a.report(ctx, "admin", err)
	}

	if err := a.access.AdminUnlock(ctx, code); err != nil {
		return a.report(ctx, "admin", err)
	}

	a.println("Admin mode on ★ Try 'users'.")
	return nil
}

func (a *App) Invite(_ context.Context) error {
	a.printf("Share this link with a friend 💌\n%s\n", a.access.InviteLink(InviteBase))
	return nil
}

// Reset wipes every stored key and starts the session from scratch.
func (a *App) Reset(ctx context.Context) error {
	if !GetConfirm(a.reader, "This erases all local diary data. Continue?", a.out) {
		a.println("Cancelled.")
		return nil
	}

	if err := a.store.ClearAll(ctx); err != nil {
		return a.report(ctx, "reset", fmt.Errorf("failed to clear storage: %w", err))
	}

	a.wire(ctx)
	a.println("Everything is cleared. Type 'unlock' to start over.")
	return nil
}

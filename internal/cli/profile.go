package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/models"
)

func (a *App) Register(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Choose your name", a.out)
	if err != nil {
		return a.report(ctx, "register", err)
	}
	avatar, err := GetSimpleText(a.reader, "Avatar URL (Enter for a generated one)", a.out)
	if err != nil {
		return a.report(ctx, "register", err)
	}

	p, err := a.profiles.Register(ctx, name, avatar)
	if err != nil {
		return a.report(ctx, "register", err)
	}

	a.printf("Hi %s! Your diary is ready 🎀\n", p.Username)
	return nil
}

// Login makes an existing user active again, by username or id.
func (a *App) Login(ctx context.Context, user string) error {
	p, err := a.profiles.SwitchTo(ctx, user)
	if err != nil {
		return a.report(ctx, "login", err)
	}

	a.printf("Welcome back, %s! 💖\n", p.Username)
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	me, _ := a.profiles.Current()
	a.println(formatUser(me))
	a.println("Avatar:", me.Avatar)

	name, err := GetSimpleText(a.reader, fmt.Sprintf("New name (Enter to keep %q)", me.Username), a.out)
	if err != nil {
		return a.report(ctx, "profile", err)
	}
	avatar, err := GetSimpleText(a.reader, "New avatar URL (Enter to keep)", a.out)
	if err != nil {
		return a.report(ctx, "profile", err)
	}

	p, err := a.profiles.Update(ctx, name, avatar)
	if err != nil {
		return a.report(ctx, "profile", err)
	}

	a.printf("Saved! You are %s now ✨\n", p.Username)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if err := a.profiles.SignOut(ctx); err != nil {
		return a.report(ctx, "signout", err)
	}
	a.println("Signed out. See you soon! 💖")
	return nil
}

// Users is the admin dashboard: every registered user with their activity.
func (a *App) Users(ctx context.Context) error {
	me, _ := a.profiles.Current()
	if !me.IsAdmin {
		return a.report(ctx, "users", common.ErrForbidden)
	}

	users := a.profiles.Users()
	a.printf("Admin Hub ★ %d users\n", len(users))
	for _, u := range users {
		a.println(" ", formatUser(u), "·", len(a.entries.Mine(u.ID)), "entries")
	}
	return nil
}

func (a *App) Kick(ctx context.Context, userID string) error {
	me, _ := a.profiles.Current()
	switch {
	case !me.IsAdmin:
		return a.report(ctx, "kick", common.ErrForbidden)
	case me.ID == userID:
		return a.report(ctx, "kick", common.ErrSelfRemoval)
	}
	u, ok := a.profiles.User(userID)
	if !ok {
		return a.report(ctx, "kick", common.ErrNotFound)
	}
	if !GetConfirm(a.reader, fmt.Sprintf("Remove %s and all their entries?", u.Username), a.out) {
		return a.report(ctx, "kick", common.ErrNotConfirmed)
	}

	if err := a.social.RemoveUser(ctx, userID); err != nil {
		return a.report(ctx, "kick", err)
	}

	a.printf("%s was removed.\n", u.Username)
	return nil
}

// resolveUser accepts either a user id or a username.
func (a *App) resolveUser(s string) (models.UserProfile, bool) {
	if u, ok := a.profiles.User(s); ok {
		return u, true
	}
	return a.profiles.FindByName(s)
}

package cli

import (
	"context"

	"github.com/dmitrijs2005/melodydiary/internal/common"
)

func (a *App) Friends(_ context.Context) error {
	friends := a.social.Friends()
	a.printf("Besties 💖 (%d)\n", len(friends))
	for _, u := range friends {
		a.println(" ", formatUser(u))
	}

	pending := a.social.Pending()
	if len(pending) > 0 {
		a.printf("Waiting for you 💌 (%d), use 'accept <user-id>'\n", len(pending))
		for _, u := range pending {
			a.println(" ", formatUser(u))
		}
	}
	return nil
}

func (a *App) Request(ctx context.Context, username string) error {
	if err := a.social.SendFriendRequest(ctx, username); err != nil {
		return a.report(ctx, "request", err)
	}
	a.printf("🎀 Friend request sent to %s! Wait for them to say yes! ✨\n", username)
	return nil
}

func (a *App) Accept(ctx context.Context, userID string) error {
	if err := a.social.AcceptFriendRequest(ctx, userID); err != nil {
		return a.report(ctx, "accept", err)
	}
	a.println("Yay! You have a new bestie! 💖")
	return nil
}

func (a *App) Groups(_ context.Context) error {
	me, _ := a.profiles.Current()
	groups := a.social.MyGroups(me.ID)
	a.printf("My groups ☁️ (%d)\n", len(groups))
	for _, g := range groups {
		a.println(" ", formatGroup(g))
	}
	return nil
}

func (a *App) Discover(_ context.Context, query string) error {
	me, _ := a.profiles.Current()
	groups := a.social.Discover(me.ID, query)
	if len(groups) == 0 {
		a.println("No groups to discover right now.")
		return nil
	}
	for _, g := range groups {
		a.println(" ", formatGroup(g))
	}
	a.println("Use 'join <group-id>' to join one.")
	return nil
}

func (a *App) NewGroup(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Group name", a.out)
	if err != nil {
		return a.report(ctx, "newgroup", err)
	}
	public := GetConfirm(a.reader, "Public group?", a.out)

	g, err := a.social.CreateGroup(ctx, name, public)
	if err != nil {
		return a.report(ctx, "newgroup", err)
	}

	a.printf("New group %q created! ☁️✨ [%s]\n", g.Name, g.ID)
	return nil
}

func (a *App) Join(ctx context.Context, groupID string) error {
	if err := a.social.JoinGroup(ctx, groupID); err != nil {
		return a.report(ctx, "join", err)
	}
	a.printf("You've joined %s! 🎀✨ Start chatting!\n", a.groupName(groupID))
	return nil
}

// AddMember takes the user as an id or a username.
func (a *App) AddMember(ctx context.Context, groupID, user string) error {
	u, ok := a.resolveUser(user)
	if !ok {
		return a.report(ctx, "addmember", common.ErrNotFound)
	}

	if err := a.social.AddMember(ctx, groupID, u.ID); err != nil {
		return a.report(ctx, "addmember", err)
	}
	a.printf("%s added to the group! 🎀\n", u.Username)
	return nil
}

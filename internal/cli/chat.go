package cli

import (
	"context"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/models"
)

// Chat prints the session's messages for a room. No id means the global room.
func (a *App) Chat(_ context.Context, groupID string) error {
	if groupID == "" {
		groupID = models.GlobalChatID
	}

	messages := a.chat.Messages(groupID)
	a.printf("#%s (%d)\n", a.roomName(groupID), len(messages))
	for _, m := range messages {
		a.println(" ", formatMessage(m))
	}
	return nil
}

// Say posts to the global room or to a group the active user belongs to.
func (a *App) Say(ctx context.Context, groupID, text string) error {
	if groupID != models.GlobalChatID {
		g, ok := a.social.Group(groupID)
		if !ok {
			return a.report(ctx, "say", common.ErrNotFound)
		}
		me, _ := a.profiles.Current()
		if !g.HasMember(me.ID) {
			return a.report(ctx, "say", common.ErrForbidden)
		}
	}

	m, err := a.chat.Send(ctx, groupID, text)
	if err != nil {
		return a.report(ctx, "say", err)
	}
	a.println(formatMessage(*m))
	return nil
}

func (a *App) roomName(groupID string) string {
	if groupID == models.GlobalChatID {
		return groupID
	}
	return a.groupName(groupID)
}

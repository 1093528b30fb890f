package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/config"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, db, err := storage.Open(context.Background(), ":memory:", logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store
}

// world wires every container over one store, the way the CLI does.
type world struct {
	store    *storage.Store
	invite   config.InvitePolicy
	profiles ProfileService
	entries  *entryService
	social   SocialService
	chat     ChatService
	access   AccessService
}

func newWorld(t *testing.T, policy config.InvitePolicy) *world {
	t.Helper()
	return openWorld(t, newTestStore(t), policy)
}

func openWorld(t *testing.T, store *storage.Store, policy config.InvitePolicy) *world {
	t.Helper()
	ctx := context.Background()
	log := logging.NewNopLogger()

	w := &world{store: store, invite: policy}
	w.profiles = NewProfileService(ctx, store, log)
	w.entries = newEntryService(ctx, store, w.profiles, log, fixedClock)
	w.social = NewSocialService(ctx, store, w.profiles, w.entries, policy, log)
	w.chat = NewChatService(w.profiles)
	w.access = NewAccessService(ctx, store, w.profiles, Codes{Access: "2010", Admin: "1803"}, log)
	return w
}

func (w *world) register(t *testing.T, name string) string {
	t.Helper()
	p, err := w.profiles.Register(context.Background(), name, "")
	require.NoError(t, err)
	return p.ID
}

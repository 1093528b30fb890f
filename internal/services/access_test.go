package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/config"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlock_GrantsAndPersistsAccess(t *testing.T) {
	store := newTestStore(t)
	w := openWorld(t, store, config.InviteOwnerOnly)
	ctx := context.Background()

	require.False(t, w.access.Unlocked())
	require.NoError(t, w.access.Unlock(ctx, "2010"))
	assert.True(t, w.access.Unlocked())

	// A later session starts unlocked without any code.
	later := openWorld(t, store, config.InviteOwnerOnly)
	assert.True(t, later.access.Unlocked())
}

func TestUnlock_WrongCodeStaysLocked(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	for _, code := range []string{"", "2011", "20100", "melody"} {
		require.ErrorIs(t, w.access.Unlock(ctx, code), common.ErrWrongCode, code)
	}
	assert.False(t, w.access.Unlocked())
	assert.False(t, storage.Load(ctx, w.store, storage.KeyAccessFlag, false))

	// No lockout: the right code still works after failures.
	require.NoError(t, w.access.Unlock(ctx, " 2010 "))
}

func TestUnlock_IgnoresCase(t *testing.T) {
	store := newTestStore(t)
	profiles := NewProfileService(context.Background(), store, logging.NewNopLogger())
	gate := NewAccessService(context.Background(), store, profiles, Codes{Access: "PinkCloud", Admin: "x"}, logging.NewNopLogger())

	require.NoError(t, gate.Unlock(context.Background(), "pinkcloud"))
	assert.True(t, gate.Unlocked())
}

func TestUnlock_EmptyConfiguredCodeNeverMatches(t *testing.T) {
	store := newTestStore(t)
	profiles := NewProfileService(context.Background(), store, logging.NewNopLogger())
	gate := NewAccessService(context.Background(), store, profiles, Codes{}, logging.NewNopLogger())

	require.ErrorIs(t, gate.Unlock(context.Background(), ""), common.ErrWrongCode)
}

func TestUnlockFromInvite(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		unlocked bool
		err      error
	}{
		{name: "full url", link: "https://diary.example/?key=2010", unlocked: true},
		{name: "query only", link: "?key=2010", unlocked: true},
		{name: "bare pair", link: "key=2010", unlocked: true},
		{name: "other params around", link: "https://diary.example/app?ref=x&key=2010#top", unlocked: true},
		{name: "wrong key", link: "https://diary.example/?key=1234", err: common.ErrWrongCode},
		{name: "no key param", link: "https://diary.example/?ref=x"},
		{name: "empty", link: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t, config.InviteOwnerOnly)

			ok, err := w.access.UnlockFromInvite(context.Background(), tt.link)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.unlocked, ok)
			assert.Equal(t, tt.unlocked, w.access.Unlocked())
		})
	}
}

func TestAdminUnlock(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	require.ErrorIs(t, w.access.AdminUnlock(ctx, "1803"), common.ErrNoProfile)

	id := w.register(t, "Mel")
	require.ErrorIs(t, w.access.AdminUnlock(ctx, "2010"), common.ErrWrongCode)
	me, _ := w.profiles.Current()
	assert.False(t, me.IsAdmin)

	require.NoError(t, w.access.AdminUnlock(ctx, "1803"))
	require.NoError(t, w.access.AdminUnlock(ctx, "1803"))

	me, _ = w.profiles.Current()
	assert.True(t, me.IsAdmin)
	u, _ := w.profiles.User(id)
	assert.True(t, u.IsAdmin)

	reopened := NewProfileService(ctx, w.store, logging.NewNopLogger())
	me, _ = reopened.Current()
	assert.True(t, me.IsAdmin)
}

func TestInviteLink(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)

	assert.Equal(t, "https://diary.example/?key=2010", w.access.InviteLink("https://diary.example/"))
	assert.Equal(t, "https://diary.example/?key=2010&ref=mel", w.access.InviteLink("https://diary.example/?ref=mel"))

	ok, err := w.access.UnlockFromInvite(context.Background(), w.access.InviteLink("https://diary.example/"))
	require.NoError(t, err)
	assert.True(t, ok)
}

package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/config"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRequest_AcceptMakesBidirectionalEdge(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	kuromi := w.register(t, "Kuromi")
	mel := w.register(t, "Mel")

	// Mel asks Kuromi.
	require.NoError(t, w.social.SendFriendRequest(ctx, "kuromi"))
	require.NoError(t, w.social.SendFriendRequest(ctx, "Kuromi"))
	k, _ := w.profiles.User(kuromi)
	assert.Equal(t, []string{mel}, k.PendingRequests)

	// Kuromi takes over the session and accepts.
	w.becomeUser(t, kuromi)

	pending := w.social.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "Mel", pending[0].Username)

	require.NoError(t, w.social.AcceptFriendRequest(ctx, mel))

	me, _ := w.profiles.Current()
	assert.Empty(t, me.PendingRequests)
	assert.Equal(t, []string{mel}, me.Friends)

	m, _ := w.profiles.User(mel)
	assert.Equal(t, []string{kuromi}, m.Friends)

	friends := w.social.Friends()
	require.Len(t, friends, 1)
	assert.Equal(t, mel, friends[0].ID)
}

func TestAcceptFriendRequest_SecondCallIsNoOp(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	require.NoError(t, SeedDemo(ctx, w.profiles, w.entries, w.social))
	w.register(t, "Mel")
	me, _ := w.profiles.Current()
	me.PendingRequests = []string{"user1"}
	require.NoError(t, w.profiles.SaveUser(ctx, me))

	require.NoError(t, w.social.AcceptFriendRequest(ctx, "user1"))
	first, _ := w.profiles.Current()
	firstOther, _ := w.profiles.User("user1")

	require.NoError(t, w.social.AcceptFriendRequest(ctx, "user1"))
	second, _ := w.profiles.Current()
	secondOther, _ := w.profiles.User("user1")

	assert.Equal(t, first, second)
	assert.Equal(t, firstOther, secondOther)
	assert.Equal(t, []string{"user1"}, second.Friends)
	assert.Equal(t, []string{me.ID}, secondOther.Friends)
}

func TestAcceptFriendRequest_UnknownRequesterStillBefriended(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()
	w.register(t, "Mel")

	me, _ := w.profiles.Current()
	me.PendingRequests = []string{"req1"}
	require.NoError(t, w.profiles.SaveUser(ctx, me))

	require.NoError(t, w.social.AcceptFriendRequest(ctx, "req1"))
	me, _ = w.profiles.Current()
	assert.Equal(t, []string{"req1"}, me.Friends)
	assert.Equal(t, "req1", w.social.Friends()[0].Username)
}

func TestSendFriendRequest_Errors(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	require.ErrorIs(t, w.social.SendFriendRequest(ctx, "x"), common.ErrNoProfile)

	w.register(t, "Mel")
	require.ErrorIs(t, w.social.SendFriendRequest(ctx, " "), common.ErrEmptyInput)
	require.ErrorIs(t, w.social.SendFriendRequest(ctx, "ghost"), common.ErrNotFound)

	require.NoError(t, w.social.SendFriendRequest(ctx, "mel"))
	me, _ := w.profiles.Current()
	assert.Empty(t, me.PendingRequests)
}

func TestCreateGroup(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	_, err := w.social.CreateGroup(ctx, "Besties", true)
	require.ErrorIs(t, err, common.ErrNoProfile)

	a := w.register(t, "A")
	_, err = w.social.CreateGroup(ctx, "  ", true)
	require.ErrorIs(t, err, common.ErrEmptyInput)
	assert.Empty(t, w.social.Groups())

	g, err := w.social.CreateGroup(ctx, " Besties ", false)
	require.NoError(t, err)
	assert.Equal(t, "Besties", g.Name)
	assert.Equal(t, []string{a}, g.Members)
	assert.Equal(t, a, g.OwnerID)
	assert.False(t, g.IsPublic)
}

func TestJoinGroup_IsIdempotent(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	a := w.register(t, "A")
	g, err := w.social.CreateGroup(ctx, "Besties", true)
	require.NoError(t, err)

	b := w.register(t, "B")
	require.NoError(t, w.social.JoinGroup(ctx, g.ID))
	got, _ := w.social.Group(g.ID)
	assert.Equal(t, []string{a, b}, got.Members)

	require.NoError(t, w.social.JoinGroup(ctx, g.ID))
	got, _ = w.social.Group(g.ID)
	assert.Equal(t, []string{a, b}, got.Members)

	require.ErrorIs(t, w.social.JoinGroup(ctx, "nope"), common.ErrNotFound)
}

func TestAddMember_OwnerOnlyPolicy(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	a := w.register(t, "A")
	g, err := w.social.CreateGroup(ctx, "Besties", true)
	require.NoError(t, err)

	b := w.register(t, "B")
	require.NoError(t, w.social.JoinGroup(ctx, g.ID))
	require.ErrorIs(t, w.social.AddMember(ctx, g.ID, "user3"), common.ErrForbidden)

	w.becomeUser(t, a)
	require.NoError(t, w.social.AddMember(ctx, g.ID, "user3"))
	require.NoError(t, w.social.AddMember(ctx, g.ID, "user3"))

	got, _ := w.social.Group(g.ID)
	assert.Equal(t, []string{a, b, "user3"}, got.Members)

	require.ErrorIs(t, w.social.AddMember(ctx, "missing", "user3"), common.ErrNotFound)
	require.ErrorIs(t, w.social.AddMember(ctx, g.ID, ""), common.ErrEmptyInput)
}

func TestAddMember_AnyMemberPolicy(t *testing.T) {
	w := newWorld(t, config.InviteAnyMember)
	ctx := context.Background()

	a := w.register(t, "A")
	g, err := w.social.CreateGroup(ctx, "Besties", true)
	require.NoError(t, err)

	b := w.register(t, "B")
	require.ErrorIs(t, w.social.AddMember(ctx, g.ID, "user3"), common.ErrForbidden)

	require.NoError(t, w.social.JoinGroup(ctx, g.ID))
	require.NoError(t, w.social.AddMember(ctx, g.ID, "user3"))

	got, _ := w.social.Group(g.ID)
	assert.Equal(t, []string{a, b, "user3"}, got.Members)
}

func TestGroups_MineAndDiscover(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	require.NoError(t, SeedDemo(ctx, w.profiles, w.entries, w.social))
	require.NoError(t, w.social.SeedGroups(ctx, []models.Group{
		{ID: "hidden", Name: "Hidden Cloud", Members: []string{"user3"}, OwnerID: "user3"},
	}))
	me := w.register(t, "Mel")
	own, err := w.social.CreateGroup(ctx, "Melody Fans", true)
	require.NoError(t, err)

	mine := w.social.MyGroups(me)
	require.Len(t, mine, 1)
	assert.Equal(t, own.ID, mine[0].ID)
	assert.Equal(t, []string{own.ID}, w.social.GroupIDs(me))

	names := func(gs []models.Group) []string {
		out := []string{}
		for _, g := range gs {
			out = append(out, g.ID)
		}
		return out
	}

	// Hidden Cloud is private, Melody Fans already joined.
	assert.Equal(t, []string{"besties", "cloud_lovers", "sweet_secrets"}, names(w.social.Discover(me, "")))
	assert.Equal(t, []string{"cloud_lovers"}, names(w.social.Discover(me, "CLOUD")))
	assert.Equal(t, []string{"sweet_secrets"}, names(w.social.Discover(me, "secrets")))
	assert.Empty(t, w.social.Discover(me, "hidden"))
}

func TestGroups_SurviveReload(t *testing.T) {
	store := newTestStore(t)
	w := openWorld(t, store, config.InviteOwnerOnly)
	ctx := context.Background()
	w.register(t, "Mel")

	g, err := w.social.CreateGroup(ctx, "Besties", true)
	require.NoError(t, err)

	reloaded := NewSocialService(ctx, store, w.profiles, w.entries, config.InviteOwnerOnly, logging.NewNopLogger())
	got, ok := reloaded.Group(g.ID)
	require.True(t, ok)
	assert.Equal(t, *g, got)
}

func TestRemoveUser_CascadesEntries(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	u := w.register(t, "U")
	for _, text := range []string{"one", "two", "three"} {
		_, err := w.entries.Post(ctx, PostInput{Text: text, Visibility: models.VisibilityPublic})
		require.NoError(t, err)
	}
	g, err := w.social.CreateGroup(ctx, "U's club", true)
	require.NoError(t, err)

	admin := w.register(t, "Admin")
	me, _ := w.profiles.Current()
	me.Friends = []string{u}
	me.PendingRequests = []string{u}
	require.NoError(t, w.profiles.SaveUser(ctx, me))
	require.NoError(t, w.social.JoinGroup(ctx, g.ID))
	kept, err := w.entries.Post(ctx, PostInput{Text: "admin's", Visibility: models.VisibilityPublic})
	require.NoError(t, err)
	require.NoError(t, w.profiles.SetAdmin(ctx))

	require.NoError(t, w.social.RemoveUser(ctx, u))

	_, ok := w.profiles.User(u)
	assert.False(t, ok)
	all := w.entries.All()
	require.Len(t, all, 1)
	assert.Equal(t, kept.ID, all[0].ID)

	me, _ = w.profiles.Current()
	assert.Empty(t, me.Friends)
	assert.Empty(t, me.PendingRequests)

	got, _ := w.social.Group(g.ID)
	assert.Equal(t, []string{admin}, got.Members)
}

func TestRemoveUser_CleansUpEntriesOfUnregisteredOwner(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	gone := w.register(t, "Gone")
	for _, text := range []string{"left", "behind"} {
		_, err := w.entries.Post(ctx, PostInput{Text: text, Visibility: models.VisibilityPublic})
		require.NoError(t, err)
	}
	w.register(t, "Admin")
	require.NoError(t, w.profiles.SetAdmin(ctx))
	require.NoError(t, w.profiles.DeleteUser(ctx, gone))

	require.NoError(t, w.social.RemoveUser(ctx, gone))
	assert.Empty(t, w.entries.Mine(gone))

	require.ErrorIs(t, w.social.RemoveUser(ctx, gone), common.ErrNotFound)
}

func TestRemoveUser_Refusals(t *testing.T) {
	w := newWorld(t, config.InviteOwnerOnly)
	ctx := context.Background()

	require.ErrorIs(t, w.social.RemoveUser(ctx, "x"), common.ErrNoProfile)

	victim := w.register(t, "Victim")
	me := w.register(t, "Mel")
	require.ErrorIs(t, w.social.RemoveUser(ctx, victim), common.ErrForbidden)

	require.NoError(t, w.profiles.SetAdmin(ctx))
	require.ErrorIs(t, w.social.RemoveUser(ctx, me), common.ErrSelfRemoval)
	_, ok := w.profiles.User(me)
	assert.True(t, ok)

	require.ErrorIs(t, w.social.RemoveUser(ctx, "ghost"), common.ErrNotFound)
}

// becomeUser switches the active profile to a registered user, the way a
// second person would on the same device.
func (w *world) becomeUser(t *testing.T, id string) {
	t.Helper()
	_, err := w.profiles.SwitchTo(context.Background(), id)
	require.NoError(t, err)
}

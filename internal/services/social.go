package services

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/config"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/models"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
)

// SocialService owns friendships and groups, and carries out admin removals
// that span the registry and the entry store.
type SocialService interface {
	SendFriendRequest(ctx context.Context, targetUsername string) error
	AcceptFriendRequest(ctx context.Context, requesterID string) error
	Friends() []models.UserProfile
	Pending() []models.UserProfile

	CreateGroup(ctx context.Context, name string, isPublic bool) (*models.Group, error)
	JoinGroup(ctx context.Context, groupID string) error
	AddMember(ctx context.Context, groupID, userID string) error
	Group(groupID string) (models.Group, bool)
	Groups() []models.Group
	MyGroups(userID string) []models.Group
	GroupIDs(userID string) []string
	Discover(userID, query string) []models.Group
	SeedGroups(ctx context.Context, groups []models.Group) error

	RemoveUser(ctx context.Context, userID string) error
}

type socialService struct {
	mu       sync.Mutex
	store    *storage.Store
	profiles ProfileService
	entries  EntryService
	policy   config.InvitePolicy
	logger   logging.Logger

	groups []models.Group
}

func NewSocialService(ctx context.Context, store *storage.Store, profiles ProfileService, entries EntryService, policy config.InvitePolicy, logger logging.Logger) SocialService {
	if policy == "" {
		policy = config.InviteOwnerOnly
	}
	return &socialService{
		store:    store,
		profiles: profiles,
		entries:  entries,
		policy:   policy,
		logger:   logger.With("component", "social"),
		groups:   storage.Load(ctx, store, storage.KeyGroups, []models.Group{}),
	}
}

// SendFriendRequest records the active user as a pending requester on the
// target's profile. Requests to yourself or to an existing friend are
// ignored.
func (s *socialService) SendFriendRequest(ctx context.Context, targetUsername string) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}
	if strings.TrimSpace(targetUsername) == "" {
		return common.ErrEmptyInput
	}

	target, ok := s.profiles.FindByName(targetUsername)
	if !ok {
		return common.ErrNotFound
	}
	if target.ID == me.ID || me.IsFriend(target.ID) || target.HasPending(me.ID) {
		return nil
	}

	target.PendingRequests = models.AddID(target.PendingRequests, me.ID)
	if err := s.profiles.SaveUser(ctx, target); err != nil {
		return err
	}
	s.logger.Info(ctx, "friend request sent", "to", target.ID)
	return nil
}

// AcceptFriendRequest turns a pending request into a friendship on both
// sides. Accepting a request that is no longer pending does nothing.
func (s *socialService) AcceptFriendRequest(ctx context.Context, requesterID string) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}
	if !me.HasPending(requesterID) {
		return nil
	}

	me.PendingRequests = models.RemoveID(me.PendingRequests, requesterID)
	me.Friends = models.AddID(me.Friends, requesterID)
	if err := s.profiles.SaveUser(ctx, me); err != nil {
		return err
	}

	requester, ok := s.profiles.User(requesterID)
	if !ok {
		s.logger.Warn(ctx, "accepted request from unknown user", "requester", requesterID)
		return nil
	}
	requester.Friends = models.AddID(requester.Friends, me.ID)
	requester.PendingRequests = models.RemoveID(requester.PendingRequests, me.ID)
	return s.profiles.SaveUser(ctx, requester)
}

func (s *socialService) Friends() []models.UserProfile {
	me, ok := s.profiles.Current()
	if !ok {
		return nil
	}
	return s.lookup(me.Friends)
}

func (s *socialService) Pending() []models.UserProfile {
	me, ok := s.profiles.Current()
	if !ok {
		return nil
	}
	return s.lookup(me.PendingRequests)
}

func (s *socialService) lookup(ids []string) []models.UserProfile {
	out := make([]models.UserProfile, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.profiles.User(id); ok {
			out = append(out, u)
		} else {
			out = append(out, models.UserProfile{ID: id, Username: id})
		}
	}
	return out
}

// CreateGroup starts a group owned by the active user, who is its only
// member.
func (s *socialService) CreateGroup(ctx context.Context, name string, isPublic bool) (*models.Group, error) {
	me, ok := s.profiles.Current()
	if !ok {
		return nil, common.ErrNoProfile
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyInput
	}

	g := models.Group{
		ID:       models.NewID(),
		Name:     name,
		Members:  []string{me.ID},
		OwnerID:  me.ID,
		IsPublic: isPublic,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = append(s.groups, g)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	out := g.Clone()
	return &out, nil
}

// JoinGroup adds the active user to a group. Joining twice is harmless.
func (s *socialService) JoinGroup(ctx context.Context, groupID string) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(groupID)
	if i < 0 {
		return common.ErrNotFound
	}
	if s.groups[i].HasMember(me.ID) {
		return nil
	}
	s.groups[i].Members = append(s.groups[i].Members, me.ID)
	return s.persist(ctx)
}

// AddMember puts userID into a group on behalf of the active user. Who may
// do so is decided by the invite policy.
func (s *socialService) AddMember(ctx context.Context, groupID, userID string) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}
	if strings.TrimSpace(userID) == "" {
		return common.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(groupID)
	if i < 0 {
		return common.ErrNotFound
	}
	g := &s.groups[i]

	switch s.policy {
	case config.InviteAnyMember:
		if !g.HasMember(me.ID) {
			return common.ErrForbidden
		}
	default:
		if g.OwnerID != me.ID {
			return common.ErrForbidden
		}
	}

	if g.HasMember(userID) {
		return nil
	}
	g.Members = append(g.Members, userID)
	return s.persist(ctx)
}

func (s *socialService) Group(groupID string) (models.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(groupID); i >= 0 {
		return s.groups[i].Clone(), true
	}
	return models.Group{}, false
}

func (s *socialService) Groups() []models.Group {
	return s.filterGroups(func(models.Group) bool { return true })
}

func (s *socialService) MyGroups(userID string) []models.Group {
	return s.filterGroups(func(g models.Group) bool { return g.HasMember(userID) })
}

// GroupIDs lists the ids of the groups userID belongs to, for visibility
// checks.
func (s *socialService) GroupIDs(userID string) []string {
	groups := s.MyGroups(userID)
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	return ids
}

// Discover lists public groups userID is not in whose name contains query,
// ignoring case. An empty query matches every such group.
func (s *socialService) Discover(userID, query string) []models.Group {
	query = strings.ToLower(strings.TrimSpace(query))
	return s.filterGroups(func(g models.Group) bool {
		return g.IsPublic && !g.HasMember(userID) && strings.Contains(strings.ToLower(g.Name), query)
	})
}

// SeedGroups adds groups whose ids are not yet known.
func (s *socialService) SeedGroups(ctx context.Context, groups []models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, g := range groups {
		if g.ID == "" || s.indexOf(g.ID) >= 0 {
			continue
		}
		s.groups = append(s.groups, g.Clone())
		added++
	}
	if added == 0 {
		return nil
	}
	return s.persist(ctx)
}

// RemoveUser deletes a user and everything they wrote. Only admins may do
// it, and never to themselves. The user is also dropped from friend lists,
// pending requests and group memberships.
func (s *socialService) RemoveUser(ctx context.Context, userID string) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}
	if !me.IsAdmin {
		return common.ErrForbidden
	}
	if userID == me.ID {
		return common.ErrSelfRemoval
	}

	// A user already gone from the registry may still own entries and
	// appear in lists; those are cleaned up all the same.
	err := s.profiles.DeleteUser(ctx, userID)
	registered := !errors.Is(err, common.ErrNotFound)
	if err != nil && registered {
		return err
	}

	removed, err := s.entries.RemoveByOwner(ctx, userID)
	if err != nil {
		return err
	}

	for _, u := range s.profiles.Users() {
		if !u.IsFriend(userID) && !u.HasPending(userID) {
			continue
		}
		u.Friends = models.RemoveID(u.Friends, userID)
		u.PendingRequests = models.RemoveID(u.PendingRequests, userID)
		if err := s.profiles.SaveUser(ctx, u); err != nil {
			return err
		}
	}

	if err := s.dropMember(ctx, userID); err != nil {
		return err
	}

	if !registered && removed == 0 {
		return common.ErrNotFound
	}

	s.logger.Info(ctx, "user removed", "user", userID, "entries", removed)
	return nil
}

func (s *socialService) dropMember(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for i := range s.groups {
		if s.groups[i].HasMember(userID) {
			s.groups[i].Members = models.RemoveID(s.groups[i].Members, userID)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist(ctx)
}

func (s *socialService) filterGroups(keep func(models.Group) bool) []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Group, 0, len(s.groups))
	for _, g := range s.groups {
		if keep(g) {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (s *socialService) indexOf(id string) int {
	return slices.IndexFunc(s.groups, func(g models.Group) bool { return g.ID == id })
}

func (s *socialService) persist(ctx context.Context) error {
	return s.store.Save(ctx, storage.KeyGroups, s.groups)
}

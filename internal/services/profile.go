package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/models"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
)

// ProfileReader exposes the active profile to containers that only need to
// know who is acting.
type ProfileReader interface {
	Current() (models.UserProfile, bool)
}

// ProfileService owns "my profile" and the registry of all known users.
type ProfileService interface {
	ProfileReader
	Register(ctx context.Context, name, avatar string) (*models.UserProfile, error)
	Update(ctx context.Context, name, avatar string) (*models.UserProfile, error)
	SetAdmin(ctx context.Context) error
	SignOut(ctx context.Context) error
	SwitchTo(ctx context.Context, user string) (*models.UserProfile, error)

	Users() []models.UserProfile
	User(id string) (models.UserProfile, bool)
	FindByName(name string) (models.UserProfile, bool)
	SaveUser(ctx context.Context, u models.UserProfile) error
	DeleteUser(ctx context.Context, id string) error
	Seed(ctx context.Context, users []models.UserProfile) error
}

type profileService struct {
	mu     sync.Mutex
	store  *storage.Store
	logger logging.Logger

	me       *models.UserProfile
	registry []models.UserProfile
}

// NewProfileService loads the active profile and the registry from store.
func NewProfileService(ctx context.Context, store *storage.Store, logger logging.Logger) ProfileService {
	s := &profileService{
		store:  store,
		logger: logger.With("component", "profiles"),
	}
	s.me = storage.Load[*models.UserProfile](ctx, store, storage.KeyProfile, nil)
	s.registry = storage.Load(ctx, store, storage.KeyAllUsers, []models.UserProfile{})
	if s.me != nil && s.me.ID == "" {
		s.logger.Warn(ctx, "stored profile has no id, ignoring it")
		s.me = nil
	}
	return s
}

func (s *profileService) Current() (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.me == nil {
		return models.UserProfile{}, false
	}
	return s.me.Clone(), true
}

func (s *profileService) Register(ctx context.Context, name, avatar string) (*models.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.ErrEmptyInput
	}
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		avatar = models.DefaultAvatar(name)
	}

	p := models.UserProfile{
		ID:              models.NewID(),
		Username:        name,
		Avatar:          avatar,
		Friends:         []string{},
		PendingRequests: []string{},
		LastActive:      models.DefaultLastActive,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfName(name) >= 0 {
		return nil, common.ErrNameTaken
	}

	s.me = &p
	if s.indexOf(p.ID) < 0 {
		s.registry = append(s.registry, p.Clone())
	}
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "profile registered", "id", p.ID, "username", p.Username)
	out := p.Clone()
	return &out, nil
}

// Update edits the username and avatar of the active profile. A blank name
// keeps the current one. Existing entry and comment snapshots are left as
// they were.
func (s *profileService) Update(ctx context.Context, name, avatar string) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.me == nil {
		return nil, common.ErrNoProfile
	}

	if name = strings.TrimSpace(name); name != "" {
		if i := s.indexOfName(name); i >= 0 && s.registry[i].ID != s.me.ID {
			return nil, common.ErrNameTaken
		}
		s.me.Username = name
	}
	if avatar = strings.TrimSpace(avatar); avatar != "" {
		s.me.Avatar = avatar
	}
	s.syncRegistry()

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	out := s.me.Clone()
	return &out, nil
}

// SetAdmin marks the active profile as an admin. There is no way back.
func (s *profileService) SetAdmin(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.me == nil {
		return common.ErrNoProfile
	}
	s.me.IsAdmin = true
	s.syncRegistry()
	return s.persist(ctx)
}

// SignOut forgets the active profile. The registry keeps the user.
func (s *profileService) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.me = nil
	return s.store.Clear(ctx, storage.KeyProfile)
}

// SwitchTo makes a registered user the active profile. user is an id or a
// username (case-insensitive). It is how several people share one diary.
func (s *profileService) SwitchTo(ctx context.Context, user string) (*models.UserProfile, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, common.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(user)
	if i < 0 {
		i = s.indexOfName(user)
	}
	if i < 0 {
		return nil, common.ErrNotFound
	}

	me := s.registry[i].Clone()
	s.me = &me
	if err := s.store.Save(ctx, storage.KeyProfile, s.me); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "switched profile", "id", me.ID, "username", me.Username)
	out := me.Clone()
	return &out, nil
}

func (s *profileService) Users() []models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.UserProfile, len(s.registry))
	for i, u := range s.registry {
		out[i] = u.Clone()
	}
	return out
}

func (s *profileService) User(id string) (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.registry[i].Clone(), true
	}
	return models.UserProfile{}, false
}

// FindByName looks a user up by username, ignoring case.
func (s *profileService) FindByName(name string) (models.UserProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOfName(name); i >= 0 {
		return s.registry[i].Clone(), true
	}
	return models.UserProfile{}, false
}

// SaveUser upserts u into the registry. When u is the active user the
// active profile is replaced as well.
func (s *profileService) SaveUser(ctx context.Context, u models.UserProfile) error {
	if u.ID == "" {
		return common.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(u.ID); i >= 0 {
		s.registry[i] = u.Clone()
	} else {
		s.registry = append(s.registry, u.Clone())
	}
	if s.me != nil && s.me.ID == u.ID {
		me := u.Clone()
		s.me = &me
	}
	return s.persist(ctx)
}

func (s *profileService) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return common.ErrNotFound
	}
	s.registry = slices.Delete(s.registry, i, i+1)
	return s.store.Save(ctx, storage.KeyAllUsers, s.registry)
}

// Seed adds users that are not yet registered. Existing ids are left alone.
func (s *profileService) Seed(ctx context.Context, users []models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, u := range users {
		if u.ID == "" || s.indexOf(u.ID) >= 0 {
			continue
		}
		s.registry = append(s.registry, u.Clone())
		added++
	}
	if added == 0 {
		return nil
	}
	return s.store.Save(ctx, storage.KeyAllUsers, s.registry)
}

func (s *profileService) indexOf(id string) int {
	return slices.IndexFunc(s.registry, func(u models.UserProfile) bool { return u.ID == id })
}

func (s *profileService) indexOfName(name string) int {
	name = strings.TrimSpace(name)
	return slices.IndexFunc(s.registry, func(u models.UserProfile) bool { return strings.EqualFold(u.Username, name) })
}

// syncRegistry copies the active profile over its registry entry.
func (s *profileService) syncRegistry() {
	if s.me == nil {
		return
	}
	if i := s.indexOf(s.me.ID); i >= 0 {
		s.registry[i] = s.me.Clone()
	} else {
		s.registry = append(s.registry, s.me.Clone())
	}
}

func (s *profileService) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, storage.KeyProfile, s.me); err != nil {
		return err
	}
	return s.store.Save(ctx, storage.KeyAllUsers, s.registry)
}

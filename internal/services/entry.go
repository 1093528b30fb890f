package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/models"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
)

// PostInput is what the editor hands over when an entry is published.
type PostInput struct {
	Text        string
	Visibility  models.Visibility
	ImageURL    string
	Decorations []models.Decoration
	GroupID     string
}

// ConfirmFunc asks the user to confirm an irreversible action on e.
type ConfirmFunc func(e models.DiaryEntry) bool

// EntryService owns the diary entries, most recent first.
type EntryService interface {
	Post(ctx context.Context, in PostInput) (*models.DiaryEntry, error)
	Remove(ctx context.Context, entryID string, confirm ConfirmFunc) error
	ToggleLike(ctx context.Context, entryID, userID string) (bool, error)
	AddComment(ctx context.Context, entryID, text string) (*models.Comment, error)
	RemoveByOwner(ctx context.Context, ownerID string) (int, error)
	SeedWelcome(ctx context.Context, e models.DiaryEntry) (bool, error)

	Get(entryID string) (models.DiaryEntry, bool)
	All() []models.DiaryEntry
	Feed(viewerID string, viewerGroups []string) []models.DiaryEntry
	Mine(ownerID string) []models.DiaryEntry
}

type entryService struct {
	mu       sync.Mutex
	store    *storage.Store
	profiles ProfileReader
	logger   logging.Logger
	now      Clock

	entries []models.DiaryEntry
}

func NewEntryService(ctx context.Context, store *storage.Store, profiles ProfileReader, logger logging.Logger) EntryService {
	return newEntryService(ctx, store, profiles, logger, time.Now)
}

func newEntryService(ctx context.Context, store *storage.Store, profiles ProfileReader, logger logging.Logger, now Clock) *entryService {
	return &entryService{
		store:    store,
		profiles: profiles,
		logger:   logger.With("component", "entries"),
		now:      now,
		entries:  storage.Load(ctx, store, storage.KeyEntries, []models.DiaryEntry{}),
	}
}

// Post publishes a new entry for the active profile and puts it at the top
// of the list. An entry needs text or an image.
func (s *entryService) Post(ctx context.Context, in PostInput) (*models.DiaryEntry, error) {
	me, ok := s.profiles.Current()
	if !ok {
		return nil, common.ErrNoProfile
	}

	text := strings.TrimSpace(in.Text)
	image := strings.TrimSpace(in.ImageURL)
	if text == "" && image == "" {
		return nil, common.ErrEmptyInput
	}

	visibility, err := models.ParseVisibility(string(in.Visibility))
	if err != nil {
		return nil, err
	}

	groupID := strings.TrimSpace(in.GroupID)
	switch {
	case visibility == models.VisibilityGroup && groupID == "":
		return nil, common.ErrGroupRequired
	case visibility != models.VisibilityGroup:
		groupID = ""
	}

	decorations := make([]models.Decoration, 0, len(in.Decorations))
	for _, d := range in.Decorations {
		decorations = append(decorations, d.Normalize())
	}

	e := models.DiaryEntry{
		ID:          models.NewID(),
		UserID:      me.ID,
		UserName:    me.Username,
		UserAvatar:  me.Avatar,
		Text:        text,
		ImageURL:    image,
		Visibility:  visibility,
		GroupID:     groupID,
		Timestamp:   models.Millis(s.now()),
		Decorations: decorations,
		Likes:       []string{},
		Comments:    []models.Comment{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = slices.Insert(s.entries, 0, e)
	if err := s.persist(ctx); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "entry posted", "id", e.ID, "visibility", e.Visibility)
	out := e.Clone()
	return &out, nil
}

// Remove deletes an entry owned by the active user, or any entry when the
// active user is an admin. confirm must approve the deletion.
func (s *entryService) Remove(ctx context.Context, entryID string, confirm ConfirmFunc) error {
	me, ok := s.profiles.Current()
	if !ok {
		return common.ErrNoProfile
	}

	s.mu.Lock()
	i := s.indexOf(entryID)
	if i < 0 {
		s.mu.Unlock()
		return common.ErrNotFound
	}
	e := s.entries[i].Clone()
	s.mu.Unlock()

	if e.UserID != me.ID && !me.IsAdmin {
		return common.ErrForbidden
	}
	if confirm == nil || !confirm(e) {
		return common.ErrNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The list may have changed while the user was deciding.
	if i = s.indexOf(entryID); i < 0 {
		return nil
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return s.persist(ctx)
}

// ToggleLike flips userID's like on the entry and reports whether it is now
// liked.
func (s *entryService) ToggleLike(ctx context.Context, entryID, userID string) (bool, error) {
	if _, ok := s.profiles.Current(); !ok {
		return false, common.ErrNoProfile
	}
	if userID == "" {
		return false, common.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(entryID)
	if i < 0 {
		return false, common.ErrNotFound
	}

	e := &s.entries[i]
	liked := !e.LikedBy(userID)
	if liked {
		e.Likes = models.AddID(e.Likes, userID)
	} else {
		e.Likes = models.RemoveID(e.Likes, userID)
	}

	if err := s.persist(ctx); err != nil {
		return false, err
	}
	return liked, nil
}

// AddComment appends a comment by the active user.
func (s *entryService) AddComment(ctx context.Context, entryID, text string) (*models.Comment, error) {
	me, ok := s.profiles.Current()
	if !ok {
		return nil, common.ErrNoProfile
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(entryID)
	if i < 0 {
		return nil, common.ErrNotFound
	}

	c := models.Comment{
		ID:         models.NewID(),
		UserName:   me.Username,
		UserAvatar: me.Avatar,
		Text:       text,
		Timestamp:  models.Millis(s.now()),
	}
	s.entries[i].Comments = append(s.entries[i].Comments, c)

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

// RemoveByOwner deletes every entry owned by ownerID and returns how many
// were removed.
func (s *entryService) RemoveByOwner(ctx context.Context, ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e models.DiaryEntry) bool { return e.UserID == ownerID })
	removed := before - len(s.entries)
	if removed == 0 {
		return 0, nil
	}
	if err := s.persist(ctx); err != nil {
		return removed, err
	}
	return removed, nil
}

// SeedWelcome adds e only when there are no entries at all, and reports
// whether it did. A zero timestamp is set to now.
func (s *entryService) SeedWelcome(ctx context.Context, e models.DiaryEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) > 0 {
		return false, nil
	}

	e = e.Clone()
	if e.ID == "" {
		e.ID = models.NewID()
	}
	if e.Timestamp == 0 {
		e.Timestamp = models.Millis(s.now())
	}
	if e.Decorations == nil {
		e.Decorations = []models.Decoration{}
	}
	if e.Likes == nil {
		e.Likes = []string{}
	}
	if e.Comments == nil {
		e.Comments = []models.Comment{}
	}

	s.entries = append(s.entries, e)
	if err := s.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

func (s *entryService) Get(entryID string) (models.DiaryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(entryID); i >= 0 {
		return s.entries[i].Clone(), true
	}
	return models.DiaryEntry{}, false
}

func (s *entryService) All() []models.DiaryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEntries(s.entries)
}

// Feed is what viewerID sees on the shared timeline.
func (s *entryService) Feed(viewerID string, viewerGroups []string) []models.DiaryEntry {
	return FilterVisible(s.All(), viewerID, viewerGroups)
}

// Mine lists every entry written by ownerID, whatever its visibility.
func (s *entryService) Mine(ownerID string) []models.DiaryEntry {
	all := s.All()
	return slices.DeleteFunc(all, func(e models.DiaryEntry) bool { return e.UserID != ownerID })
}

// FilterVisible keeps the entries viewerID is allowed to see, in their
// original order. Public entries are visible to all, private ones only to
// their owner, group ones only to members of that group.
func FilterVisible(entries []models.DiaryEntry, viewerID string, viewerGroups []string) []models.DiaryEntry {
	out := make([]models.DiaryEntry, 0, len(entries))
	for _, e := range entries {
		if e.VisibleTo(viewerID, viewerGroups) {
			out = append(out, e)
		}
	}
	return out
}

func (s *entryService) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e models.DiaryEntry) bool { return e.ID == id })
}

func (s *entryService) persist(ctx context.Context) error {
	return s.store.Save(ctx, storage.KeyEntries, s.entries)
}

func cloneEntries(entries []models.DiaryEntry) []models.DiaryEntry {
	out := make([]models.DiaryEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

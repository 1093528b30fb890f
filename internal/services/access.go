package services

import (
	"context"
	"crypto/subtle"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/logging"
	"github.com/dmitrijs2005/melodydiary/internal/storage"
)

// InviteParam is the query parameter that carries the access code in an
// invite link.
const InviteParam = "key"

// AccessService is the gate in front of the diary. Unlocking is one-way and
// persisted, so later sessions start unlocked.
type AccessService interface {
	Unlocked() bool
	Unlock(ctx context.Context, code string) error
	UnlockFromInvite(ctx context.Context, link string) (bool, error)
	AdminUnlock(ctx context.Context, code string) error
	InviteLink(base string) string
}

// Codes are the two shared secrets guarding the diary.
type Codes struct {
	Access string
	Admin  string
}

type accessService struct {
	mu       sync.Mutex
	store    *storage.Store
	profiles ProfileService
	codes    Codes
	logger   logging.Logger
	unlocked bool
}

func NewAccessService(ctx context.Context, store *storage.Store, profiles ProfileService, codes Codes, logger logging.Logger) AccessService {
	return &accessService{
		store:    store,
		profiles: profiles,
		codes:    codes,
		logger:   logger.With("component", "access"),
		unlocked: storage.Load(ctx, store, storage.KeyAccessFlag, false),
	}
}

func (s *accessService) Unlocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked
}

// Unlock compares code to the access code, ignoring case and surrounding
// space. A wrong code returns common.ErrWrongCode and may be retried freely.
func (s *accessService) Unlock(ctx context.Context, code string) error {
	if !matchCode(code, s.codes.Access) {
		s.logger.Info(ctx, "wrong access code entered")
		return common.ErrWrongCode
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.unlocked = true
	if err := s.store.Save(ctx, storage.KeyAccessFlag, true); err != nil {
		return err
	}
	s.logger.Info(ctx, "diary unlocked")
	return nil
}

// UnlockFromInvite runs the Unlock check against the key parameter of an
// invite link. link may be a full URL or just its query ("?key=2010").
// A link without the parameter reports (false, nil).
func (s *accessService) UnlockFromInvite(ctx context.Context, link string) (bool, error) {
	key, ok := inviteKey(link)
	if !ok {
		return false, nil
	}
	if err := s.Unlock(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

// AdminUnlock elevates the active profile to admin when code matches. It can
// be repeated; there is no de-elevation.
func (s *accessService) AdminUnlock(ctx context.Context, code string) error {
	if _, ok := s.profiles.Current(); !ok {
		return common.ErrNoProfile
	}
	if !matchCode(code, s.codes.Admin) {
		s.logger.Info(ctx, "wrong admin code entered")
		return common.ErrWrongCode
	}
	if err := s.profiles.SetAdmin(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "admin mode enabled")
	return nil
}

// InviteLink appends the access code to base as the key parameter.
func (s *accessService) InviteLink(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + "?" + InviteParam + "=" + url.QueryEscape(s.codes.Access)
	}
	q := u.Query()
	q.Set(InviteParam, s.codes.Access)
	u.RawQuery = q.Encode()
	return u.String()
}

func inviteKey(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}

	var query string
	if u, err := url.Parse(link); err == nil && (u.Scheme != "" || u.RawQuery != "") {
		query = u.RawQuery
	} else if _, q, found := strings.Cut(link, "?"); found {
		query = q
	} else {
		query = link
	}

	values, err := url.ParseQuery(query)
	if err != nil || !values.Has(InviteParam) {
		return "", false
	}
	return values.Get(InviteParam), true
}

func matchCode(got, want string) bool {
	g := []byte(strings.ToLower(strings.TrimSpace(got)))
	w := []byte(strings.ToLower(strings.TrimSpace(want)))
	if len(w) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(g, w) == 1
}

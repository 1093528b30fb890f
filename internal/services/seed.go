package services

import (
	"context"

	"github.com/dmitrijs2005/melodydiary/internal/models"
)

// Demo users and groups give a fresh diary somebody to talk to. Their ids
// are fixed so seeding is idempotent.
var (
	DemoUsers = []models.UserProfile{
		{ID: "user1", Username: "CloudCuddle", Email: "cloud@friend.com", Avatar: "https://picsum.photos/seed/user1/200", LastActive: "2m ago"},
		{ID: "user2", Username: "PinkBow", Email: "bow@friend.com", Avatar: "https://picsum.photos/seed/user2/200", LastActive: "10m ago"},
		{ID: "user3", Username: "BerryBunny", Email: "berry@friend.com", Avatar: "https://picsum.photos/seed/berry/100", LastActive: "Offline"},
	}

	DemoGroups = []models.Group{
		{ID: "besties", Name: "Pink Besties 🎀", Members: []string{"user1", "user2"}, OwnerID: "user1", IsPublic: true},
		{ID: "cloud_lovers", Name: "Cloud Lovers ☁️", Members: []string{"user1", "user3"}, OwnerID: "user1", IsPublic: true},
		{ID: "sweet_secrets", Name: "Sweet Secrets 🍭", Members: []string{"user2"}, OwnerID: "user2", IsPublic: true},
	}

	// WelcomeEntry greets a diary that has no entries yet.
	WelcomeEntry = models.DiaryEntry{
		ID:         "welcome",
		UserID:     "user1",
		UserName:   "CloudCuddle",
		UserAvatar: "https://picsum.photos/seed/user1/200",
		Text:       "Welcome to our pink dream world! 🎀✨ Start writing your first secret above!",
		Visibility: models.VisibilityPublic,
	}
)

// SeedDemo registers the demo users and groups that are not present yet,
// and posts the welcome entry into an empty diary.
func SeedDemo(ctx context.Context, profiles ProfileService, entries EntryService, social SocialService) error {
	users := make([]models.UserProfile, len(DemoUsers))
	for i, u := range DemoUsers {
		u = u.Clone()
		if u.Friends == nil {
			u.Friends = []string{}
		}
		if u.PendingRequests == nil {
			u.PendingRequests = []string{}
		}
		users[i] = u
	}
	if err := profiles.Seed(ctx, users); err != nil {
		return err
	}
	if err := social.SeedGroups(ctx, DemoGroups); err != nil {
		return err
	}
	_, err := entries.SeedWelcome(ctx, WelcomeEntry)
	return err
}

package models

import (
	"net/url"
	"slices"
)

// DefaultLastActive is the label given to freshly registered profiles.
const DefaultLastActive = "Just now"

// UserProfile is a diary user. LastActive is a display label only.
type UserProfile struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Email           string   `json:"email,omitempty"`
	Avatar          string   `json:"pfp"`
	Friends         []string `json:"friends"`
	PendingRequests []string `json:"pendingRequests"`
	LastActive      string   `json:"lastActive,omitempty"`
	IsAdmin         bool     `json:"isAdmin,omitempty"`
}

// DefaultAvatar returns the generated avatar used when none was supplied.
func DefaultAvatar(name string) string {
	return "https://api.dicebear.com/7.x/adventurer/svg?seed=" + url.QueryEscape(name)
}

// Clone returns a copy that shares no slices with p.
func (p UserProfile) Clone() UserProfile {
	p.Friends = slices.Clone(p.Friends)
	p.PendingRequests = slices.Clone(p.PendingRequests)
	return p
}

func (p UserProfile) IsFriend(id string) bool {
	return slices.Contains(p.Friends, id)
}

func (p UserProfile) HasPending(id string) bool {
	return slices.Contains(p.PendingRequests, id)
}

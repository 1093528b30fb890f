package models

import "slices"

// GlobalChatID is the chat room every user can talk in.
const GlobalChatID = "global"

// Group is a named set of users. OwnerID never changes after creation.
type Group struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Members  []string `json:"members"`
	OwnerID  string   `json:"ownerId"`
	IsPublic bool     `json:"isPublic"`
}

func (g Group) Clone() Group {
	g.Members = slices.Clone(g.Members)
	return g
}

func (g Group) HasMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// ChatMessage is a session-only message scoped to a group id.
type ChatMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	GroupID   string `json:"groupId"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

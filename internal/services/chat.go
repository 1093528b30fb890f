package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/melodydiary/internal/common"
	"github.com/dmitrijs2005/melodydiary/internal/models"
)

// ChatService keeps the session's chat messages in memory. Nothing is
// persisted: a new session starts with an empty history.
type ChatService interface {
	Send(ctx context.Context, groupID, text string) (*models.ChatMessage, error)
	Messages(groupID string) []models.ChatMessage
}

type chatService struct {
	mu       sync.Mutex
	profiles ProfileReader
	now      Clock

	messages []models.ChatMessage
}

func NewChatService(profiles ProfileReader) ChatService {
	return &chatService{profiles: profiles, now: time.Now}
}

// Send appends a message from the active user. An empty groupID posts to
// the global room.
func (s *chatService) Send(_ context.Context, groupID, text string) (*models.ChatMessage, error) {
	me, ok := s.profiles.Current()
	if !ok {
		return nil, common.ErrNoProfile
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.ErrEmptyInput
	}
	if groupID = strings.TrimSpace(groupID); groupID == "" {
		groupID = models.GlobalChatID
	}

	m := models.ChatMessage{
		ID:        models.NewID(),
		UserID:    me.ID,
		UserName:  me.Username,
		GroupID:   groupID,
		Text:      text,
		Timestamp: models.Millis(s.now()),
	}

	s.mu.Lock()
	s.messages = append(s.messages, m)
	s.mu.Unlock()

	return &m, nil
}

func (s *chatService) Messages(groupID string) []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilterByGroup(s.messages, groupID)
}

// FilterByGroup keeps the messages of one room in arrival order.
func FilterByGroup(messages []models.ChatMessage, groupID string) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, len(messages))
	for _, m := range messages {
		if m.GroupID == groupID {
			out = append(out, m)
		}
	}
	return out
}

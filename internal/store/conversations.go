// internal/store/conversations.go
package store

import (
	"context"
	"fmt"

	"github.com/user/finassist/internal/types"
)

// Conversations returns the user's conversation records in store order.
func (s *Store) Conversations(userID string) []types.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []types.Conversation
	for _, c := range s.conversations {
		if c.UserID == userID {
			matched = append(matched, c)
		}
	}
	return matched
}

// SaveConversationMessage appends a message to the user's conversation for
// the current calendar day, starting a new conversation when the most
// recent one is from an earlier day. The conversation collection is
// persisted before returning.
func (s *Store) SaveConversationMessage(_ context.Context, userID, role, content string, actions []types.ActionTrace, dataShown *types.DataShown, explanation *types.Explanation) (types.MessageID, error) {
	user, _ := s.UserByID(userID)
	stamp := s.stamp()
	today := s.now().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	// Today's conversation is the user's most recently updated one, matched
	// by the date prefix of last_updated.
	conv := -1
	for i := range s.conversations {
		c := &s.conversations[i]
		if c.UserID != userID {
			continue
		}
		if conv == -1 || c.LastUpdated > s.conversations[conv].LastUpdated {
			conv = i
		}
	}
	if conv != -1 && !dateMatches(s.conversations[conv].LastUpdated, today) {
		conv = -1
	}

	if conv == -1 {
		s.conversations = append(s.conversations, types.Conversation{
			ID:          types.NewConversationID(),
			UserID:      userID,
			WorkspaceID: user.WorkspaceID,
			StartedDate: stamp,
			LastUpdated: stamp,
			Status:      "active",
			Messages:    []types.Message{},
		})
		conv = len(s.conversations) - 1
	}

	msg := types.Message{
		ID:               types.NewMessageID(),
		Timestamp:        stamp,
		Role:             role,
		Content:          content,
		ActionsPerformed: actions,
		DataShown:        dataShown,
		Explanation:      explanation,
	}
	s.conversations[conv].Messages = append(s.conversations[conv].Messages, msg)
	s.conversations[conv].LastUpdated = stamp

	if err := s.saveCollection("conversations.json", conversationsFile{Conversations: s.conversations}); err != nil {
		return "", fmt.Errorf("persist conversation message: %w", err)
	}
	return msg.ID, nil
}

func dateMatches(stamp, date string) bool {
	return len(stamp) >= len(date) && stamp[:len(date)] == date
}

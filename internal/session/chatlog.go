package session

import (
	"time"

	"socketCanvas/internal/models"
)

// ChatLog is the append-only ordered chat history, replayed in full to new
// joiners. Entries denormalize the author's name and color at posting time.
//
// Mutated only from the dispatcher goroutine.
type ChatLog struct {
	entries []models.ChatEntry
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

func (l *ChatLog) Append(author *models.User, text string) models.ChatEntry {
	entry := models.ChatEntry{
		ID:    author.ID,
		Name:  author.Name,
		Color: author.Color,
		Time:  time.Now().UnixMilli(),
		Value: text,
	}
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns the log in append order. The returned slice is a copy; the
// log itself is never truncated.
func (l *ChatLog) Entries() []models.ChatEntry {
	out := make([]models.ChatEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

package entity

import (
	"sync/atomic"
	"time"

	"tajwid-pintar-be/pkg/conversation"
)

// ChatSession is one visitor conversation. It lives only in memory.
type ChatSession struct {
	Id        string
	History   *conversation.Window
	CreatedAt time.Time

	inFlight atomic.Bool
}

func NewChatSession(id string, createdAt time.Time) *ChatSession {
	return &ChatSession{Id: id, History: conversation.NewWindow(), CreatedAt: createdAt}
}

// TryBeginTurn claims the session for one turn. It returns false while a
// previous turn is still outstanding.
func (s *ChatSession) TryBeginTurn() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

func (s *ChatSession) EndTurn() {
	s.inFlight.Store(false)
}

func (s *ChatSession) TurnInProgress() bool {
	return s.inFlight.Load()
}

package session

import (
	"time"

	"shopassist/app/store"
)

const historySize = 10

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
}

// State holds everything remembered about one conversation. It is only
// touched through Store methods while the owning entry is locked.
type State struct {
	history              []Message
	lastDiscussedProduct *store.Product
	lastSearchKeyword    string
	lastSearchResults    []store.Product
	currentIntent        string
}

func (s *State) addMessage(role, content string) {
	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}

	if len(s.history) >= historySize {
		s.history = append(s.history[1:], msg)
	} else {
		s.history = append(s.history, msg)
	}
}

func (s *State) SetLastDiscussedProduct(p store.Product) {
	s.lastDiscussedProduct = &p
}

func (s *State) SetLastSearchKeyword(keyword string) {
	s.lastSearchKeyword = keyword
}

func (s *State) SetLastSearchResults(products []store.Product) {
	s.lastSearchResults = append([]store.Product(nil), products...)
}

func (s *State) SetIntent(intent string) {
	s.currentIntent = intent
}

// Snapshot is a copy of the context fields a turn needs, safe to read
// after the entry lock is released.
type Snapshot struct {
	History              []Message
	LastDiscussedProduct *store.Product
	LastSearchKeyword    string
	LastSearchResults    []store.Product
	CurrentIntent        string
}

func (s *State) snapshot() Snapshot {
	snap := Snapshot{
		History:           append([]Message(nil), s.history...),
		LastSearchKeyword: s.lastSearchKeyword,
		LastSearchResults: append([]store.Product(nil), s.lastSearchResults...),
		CurrentIntent:     s.currentIntent,
	}

	if s.lastDiscussedProduct != nil {
		p := *s.lastDiscussedProduct
		snap.LastDiscussedProduct = &p
	}

	return snap
}

package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"shopassist/app/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginTurn_AppendsAndSnapshots(t *testing.T) {
	s := NewStore(time.Minute)

	snap := s.BeginTurn("s1", "hello")

	require.Len(t, snap.History, 1)
	assert.Equal(t, RoleUser, snap.History[0].Role)
	assert.Equal(t, "hello", snap.History[0].Content)
	assert.Nil(t, snap.LastDiscussedProduct)
}

func TestCommitTurn_AppliesMutation(t *testing.T) {
	s := NewStore(time.Minute)

	s.BeginTurn("s1", "tìm laptop")
	s.CommitTurn("s1", "đây ạ", func(state *State) {
		state.SetLastDiscussedProduct(store.Product{ID: 7, Name: "Laptop A"})
		state.SetLastSearchKeyword("laptop")
		state.SetIntent("product_search")
	})

	snap := s.BeginTurn("s1", "ram bao nhiêu")

	require.Len(t, snap.History, 3)
	assert.Equal(t, RoleAssistant, snap.History[1].Role)
	require.NotNil(t, snap.LastDiscussedProduct)
	assert.Equal(t, int64(7), snap.LastDiscussedProduct.ID)
	assert.Equal(t, "laptop", snap.LastSearchKeyword)
	assert.Equal(t, "product_search", snap.CurrentIntent)
}

func TestHistoryCap(t *testing.T) {
	s := NewStore(time.Minute)

	for i := 0; i < 20; i++ {
		s.BeginTurn("s1", fmt.Sprintf("msg-%d", i))
	}

	snap := s.BeginTurn("s1", "msg-20")

	require.Len(t, snap.History, historySize)
	// Oldest entries fall off the front.
	assert.Equal(t, "msg-11", snap.History[0].Content)
	assert.Equal(t, "msg-20", snap.History[historySize-1].Content)
}

func TestSnapshotIsolation(t *testing.T) {
	s := NewStore(time.Minute)

	s.BeginTurn("s1", "first")
	s.CommitTurn("s1", "reply", func(state *State) {
		state.SetLastSearchResults([]store.Product{{ID: 1, Name: "A"}})
		state.SetLastDiscussedProduct(store.Product{ID: 1, Name: "A"})
	})

	snap := s.BeginTurn("s1", "second")
	snap.LastSearchResults[0].Name = "mutated"
	snap.LastDiscussedProduct.Name = "mutated"

	fresh := s.BeginTurn("s1", "third")
	assert.Equal(t, "A", fresh.LastSearchResults[0].Name)
	assert.Equal(t, "A", fresh.LastDiscussedProduct.Name)
}

func TestClear(t *testing.T) {
	s := NewStore(time.Minute)

	s.BeginTurn("s1", "hello")
	require.Equal(t, 1, s.Len())

	s.Clear("s1")
	assert.Equal(t, 0, s.Len())

	snap := s.BeginTurn("s1", "again")
	assert.Len(t, snap.History, 1)
}

func TestEvictIdle(t *testing.T) {
	s := NewStore(50 * time.Millisecond)

	s.BeginTurn("old", "hello")
	time.Sleep(120 * time.Millisecond)
	s.BeginTurn("fresh", "hello")

	s.evictIdle()

	assert.Equal(t, 1, s.Len())

	snap := s.BeginTurn("old", "back again")
	assert.Len(t, snap.History, 1)
}

func TestConcurrentSessions(t *testing.T) {
	s := NewStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			id := fmt.Sprintf("s%d", n%4)
			for j := 0; j < 50; j++ {
				s.BeginTurn(id, "msg")
				s.CommitTurn(id, "reply", nil)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 4, s.Len())
}

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deweydb/dewey/internal/model"
)

func TestStore_SetAndCurrent(t *testing.T) {
	s := NewStore()

	_, ok := s.Current()
	require.False(t, ok)
	assert.Empty(t, s.UserID())

	s.Set(model.User{ID: "u1", Email: "a@b.c"})

	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "u1", s.UserID())
}

func TestStore_SubscribeOrderAndUnsubscribe(t *testing.T) {
	s := NewStore()
	var calls []string

	unsubA := s.Subscribe(func(u *model.User) {
		if u == nil {
			calls = append(calls, "a:nil")
			return
		}
		calls = append(calls, "a:"+u.ID)
	})
	s.Subscribe(func(u *model.User) {
		if u == nil {
			calls = append(calls, "b:nil")
			return
		}
		calls = append(calls, "b:"+u.ID)
	})

	s.Set(model.User{ID: "u1"})
	unsubA()
	s.Clear()
	s.Clear()

	assert.Equal(t, []string{"a:u1", "b:u1", "b:nil"}, calls)
}

func TestStore_ListenerCannotMutateStoredUser(t *testing.T) {
	s := NewStore()
	s.Subscribe(func(u *model.User) { u.ID = "hijacked" })

	s.Set(model.User{ID: "u1"})

	assert.Equal(t, "u1", s.UserID())
}

func TestStore_ReturnTo(t *testing.T) {
	s := NewStore()
	s.SetReturnTo("/project/7")
	assert.Equal(t, "/project/7", s.ReturnTo())

	s.Clear()
	assert.Equal(t, "/project/7", s.ReturnTo())

	s.ClearReturnTo()
	assert.Empty(t, s.ReturnTo())
}

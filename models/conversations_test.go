package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	f1, s1 := CanonicalPair(a, b)
	f2, s2 := CanonicalPair(b, a)

	assert.Equal(t, f1, f2)
	assert.Equal(t, s1, s2)
	assert.True(t, f1.String() < s1.String())
}

func TestConversationPerspectives(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	first, second := CanonicalPair(a, b)
	conv := &Conversation{
		ID:             uuid.New(),
		ParticipantAID: first,
		ParticipantBID: second,
		UnreadA:        2,
		UnreadB:        5,
	}

	assert.True(t, conv.HasParticipant(a))
	assert.True(t, conv.HasParticipant(b))
	assert.False(t, conv.HasParticipant(uuid.New()))

	other, ok := conv.Other(first)
	assert.True(t, ok)
	assert.Equal(t, second, other)
	_, ok = conv.Other(uuid.New())
	assert.False(t, ok)

	// each side sees only its own counter
	assert.Equal(t, 2, conv.UnreadFor(first))
	assert.Equal(t, 5, conv.UnreadFor(second))
	assert.Equal(t, 0, conv.UnreadFor(uuid.New()))

	resp := conv.ResponseFor(second)
	assert.Equal(t, 5, resp.UnreadCount)
	assert.Equal(t, []uuid.UUID{first, second}, resp.Participants)
}

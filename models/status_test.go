package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplicationStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ApplicationStatus
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusAccepted, StatusRejected, false},
		{StatusAccepted, StatusAccepted, false},
		{StatusRejected, StatusAccepted, false},
		{StatusRejected, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestParseApplicationStatus(t *testing.T) {
	st, err := ParseApplicationStatus("accepted")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, st)

	_, err = ParseApplicationStatus("ACCEPTED")
	assert.Error(t, err)
	_, err = ParseApplicationStatus("")
	assert.Error(t, err)
}

func TestMessageParticipants(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	m := Message{SenderID: a, ReceiverID: b}

	assert.True(t, m.Involves(a))
	assert.True(t, m.Involves(b))
	assert.False(t, m.Involves(c))
	assert.Equal(t, b, m.Partner(a))
	assert.Equal(t, a, m.Partner(b))
	assert.True(t, m.Between(b, a))
	assert.False(t, m.Between(a, c))
}

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unmarshalConv(t *testing.T, payload string) Conversation {
	t.Helper()
	var c Conversation
	require.NoError(t, json.Unmarshal([]byte(payload), &c))
	return c
}

func TestConversation_CounterpartPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int64
	}{
		{"nested other_user wins over everything", `{"id":1,"other_user":{"id":5},"other_user_id":6,"user_id":7}`, 5},
		{"other_user_id wins over user_id", `{"id":1,"other_user_id":6,"user_id":7,"receiver_id":8}`, 6},
		{"user_id wins over receiver_id", `{"id":1,"user_id":7,"receiver_id":8,"sender_id":9}`, 7},
		{"receiver_id wins over sender_id", `{"id":1,"receiver_id":8,"sender_id":9}`, 8},
		{"sender_id as last scalar", `{"id":1,"sender_id":9}`, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := unmarshalConv(t, tc.payload)
			got, ok := c.Counterpart()
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConversation_EarlierFieldShadowsLaterMatch(t *testing.T) {
	// other_user.id is present, so a later field equal to the probe id must
	// not produce a scalar match. Participants remain the only fallback.
	c := unmarshalConv(t, `{"id":1,"other_user":{"id":5},"user_id":42}`)

	assert.False(t, c.MatchesPeer(42))
	assert.True(t, c.MatchesPeer(5))
}

func TestConversation_ParticipantsFallback(t *testing.T) {
	c := unmarshalConv(t, `{"id":3,"participants":[11,42]}`)
	assert.True(t, c.MatchesPeer(42))
	assert.False(t, c.MatchesPeer(99))
}

func TestConversation_ParticipantObjects(t *testing.T) {
	c := unmarshalConv(t, `{"id":3,"participants":[{"user_id":11},{"id":42},"13"]}`)
	assert.ElementsMatch(t, []int64{11, 42, 13}, c.Participants)
}

func TestConversation_FlexibleID(t *testing.T) {
	num := unmarshalConv(t, `{"id":7,"other_user_id":1}`)
	assert.Equal(t, "7", num.ID)

	str := unmarshalConv(t, `{"id":"c-7","other_user_id":1}`)
	assert.Equal(t, "c-7", str.ID)
}

func TestConversation_NoCounterpart(t *testing.T) {
	c := unmarshalConv(t, `{"id":1}`)
	_, ok := c.Counterpart()
	assert.False(t, ok)
	assert.False(t, c.MatchesPeer(1))
}

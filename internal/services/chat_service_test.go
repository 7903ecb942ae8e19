package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/pkg/utils"
)

func TestChatReply(t *testing.T) {
	svc := NewChatService()

	cases := map[string]string{
		"When is my next vaccine?":           "vaccination",
		"I have a FEVER since yesterday":     "symptoms",
		"Where are the nearest clinics":      "clinics",
		"Is there a health center in Surat?": "clinics",
		"show my lab report":                 "records",
		"namaste":                            "greeting",
		"this is thin":                       "fallback",
		"what's the weather":                 "fallback",
	}
	for msg, topic := range cases {
		resp, err := svc.Reply(msg)
		require.NoError(t, err, msg)
		assert.Equal(t, topic, resp.Topic, msg)
		assert.NotEmpty(t, resp.Reply)
	}
}

func TestChatReply_Empty(t *testing.T) {
	_, err := NewChatService().Reply("   ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

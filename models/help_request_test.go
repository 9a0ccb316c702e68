package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpRequestBeforeCreateDefaults(t *testing.T) {
	request := &HelpRequest{RequesterID: 1, Type: "Medical"}

	err := request.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, HelpRequestStatusPending, request.Status)
	assert.False(t, request.Timestamp.IsZero())
}

func TestHelpRequestBeforeCreateKeepsExistingValues(t *testing.T) {
	ts := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	request := &HelpRequest{
		RequesterID: 1,
		Status:      HelpRequestStatusAidProvided,
		Timestamp:   ts,
	}

	err := request.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, HelpRequestStatusAidProvided, request.Status)
	assert.Equal(t, ts, request.Timestamp)
}

func TestHelpRequestIsClosed(t *testing.T) {
	cases := []struct {
		status string
		closed bool
	}{
		{HelpRequestStatusPending, false},
		{HelpRequestStatusAidProvided, false},
		{HelpRequestStatusResolved, true},
		{HelpRequestStatusCancelled, true},
		{"Waiting For Transport", false},
	}

	for _, tc := range cases {
		request := &HelpRequest{Status: tc.status}
		assert.Equal(t, tc.closed, request.IsClosed(), "status=%s", tc.status)
	}
}

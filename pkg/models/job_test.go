//go:build unit || !integration

package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStateFromString(t *testing.T) {
	testCases := []struct {
		input    string
		expected JobStateType
	}{
		{"RUNNING", JobStateRunning},
		{"running", JobStateRunning},
		{"PENDING", JobStatePending},
		{"COMPLETED", JobStateCompleted},
		{"CANCELLED", JobStateCancelled},
		{"CANCELLED by jdoe", JobStateCancelled},
		{"NODE_FAIL", JobStateNodeFail},
		{"", JobStateUnknown},
		{"SOMETHING_NEW", JobStateUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, JobStateFromString(tc.input))
		})
	}
}

func TestJobStateLifecycle(t *testing.T) {
	require.True(t, JobStateCompleted.IsTerminal())
	require.True(t, JobStateTimeout.IsTerminal())
	require.False(t, JobStateRunning.IsTerminal())
	require.False(t, JobStatePending.IsTerminal())

	require.True(t, JobStateRunning.HasUsageData())
	require.True(t, JobStateFailed.HasUsageData())
	require.False(t, JobStatePending.HasUsageData())
	require.False(t, JobStateUnknown.HasUsageData())
}

func TestBaseErrorCodes(t *testing.T) {
	err := NewBaseError("row %d is short", 3).
		WithCode(MalformedRow).
		WithHint("check the column count")

	require.True(t, HasCode(err, MalformedRow))
	require.False(t, HasCode(err, NotFound))
	require.Contains(t, err.Error(), "row 3 is short")
	require.Equal(t, "check the column count", err.Hint())
}

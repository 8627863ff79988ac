package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 10)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-10"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-03-10"`), &back))
	assert.True(t, back.Equal(d.Time))
}

func TestDateJSON_Empty(t *testing.T) {
	var d Date
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())
}

func TestDateJSON_RejectsRFC3339(t *testing.T) {
	var d Date
	// Контракт фиксирует только "2006-01-02", полный timestamp не принимаем
	err := json.Unmarshal([]byte(`"2024-03-10T12:00:00Z"`), &d)
	assert.Error(t, err)
}

func TestClaimStatusValid(t *testing.T) {
	for _, s := range []ClaimStatus{ClaimPending, ClaimApproved, ClaimRejected, ClaimSettled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, ClaimStatus("ESCALATED").Valid())
	assert.False(t, ClaimStatus("").Valid())
}

package rede

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedPolicy(cutoff, now time.Time) DeprecationPolicy {
	return DeprecationPolicy{Cutoff: cutoff, Now: func() time.Time { return now }}
}

func TestThreeDSecureDefaults(t *testing.T) {
	tds := NewThreeDSecure(true, "", "")

	assert.True(t, tds.Embedded)
	assert.Equal(t, OnFailureDecline, tds.OnFailure)
	assert.Equal(t, "1", tds.ThreeDIndicator())
	assert.Contains(t, tds.UserAgent, "eRede/")
	assert.Nil(t, tds.ChallengePreference)
}

func TestSetThreeDIndicator(t *testing.T) {
	cutoff := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("v1 before cutoff is a warning", func(t *testing.T) {
		tds := NewThreeDSecure(true, OnFailureContinue, "ua")
		tds.SetDeprecationPolicy(fixedPolicy(cutoff, cutoff.Add(-time.Hour)))

		err := tds.SetThreeDIndicator("1")

		require.Error(t, err)
		assert.True(t, IsDeprecationWarning(err))
		assert.True(t, errors.Is(err, ErrThreeDSv1Deprecated))
		assert.False(t, errors.Is(err, ErrThreeDSv1Discontinued))
		assert.Equal(t, "1", tds.ThreeDIndicator())
	})

	t.Run("v1 after cutoff is fatal", func(t *testing.T) {
		tds := NewThreeDSecure(true, OnFailureContinue, "ua")
		tds.SetDeprecationPolicy(fixedPolicy(cutoff, cutoff.Add(time.Hour)))
		require.NoError(t, tds.SetThreeDIndicator("2"))

		err := tds.SetThreeDIndicator("1")

		assert.ErrorIs(t, err, ErrThreeDSv1Discontinued)
		assert.False(t, IsDeprecationWarning(err))
		assert.Equal(t, "2", tds.ThreeDIndicator())
	})

	t.Run("v2 has no signal", func(t *testing.T) {
		tds := NewThreeDSecure(true, OnFailureContinue, "ua")
		tds.SetDeprecationPolicy(fixedPolicy(cutoff, cutoff.Add(time.Hour)))

		assert.NoError(t, tds.SetThreeDIndicator("2"))
		assert.NoError(t, tds.SetThreeDIndicator("2.2"))
		assert.Equal(t, "2.2", tds.ThreeDIndicator())
	})

	t.Run("empty indicator counts as v1", func(t *testing.T) {
		tds := NewThreeDSecure(true, OnFailureContinue, "ua")
		tds.SetDeprecationPolicy(fixedPolicy(cutoff, cutoff.Add(time.Hour)))
		require.NoError(t, tds.SetThreeDIndicator("2"))

		for _, indicator := range []string{"", "   "} {
			assert.ErrorIs(t, tds.SetThreeDIndicator(indicator), ErrThreeDSv1Discontinued)
		}
		assert.Equal(t, "2", tds.ThreeDIndicator())

		body, err := json.Marshal(tds)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"threeDIndicator":"2"`)
	})

	t.Run("default policy rejects v1", func(t *testing.T) {
		tds := NewThreeDSecure(true, OnFailureContinue, "ua")
		assert.ErrorIs(t, tds.SetThreeDIndicator("1"), ErrThreeDSv1Discontinued)
	})
}

func TestThreeDSecureJSON(t *testing.T) {
	tds := NewThreeDSecure(false, OnFailureContinue, "Mozilla/5.0")
	require.NoError(t, tds.SetThreeDIndicator("2"))
	tds.DirectoryServerTransactionID = "ds-123"
	tds.Eci = "05"
	tds.SetChallengePreference("NO_PREFERENCE")

	data, err := json.Marshal(tds)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"embedded": false,
		"onFailure": "continue",
		"userAgent": "Mozilla/5.0",
		"threeDIndicator": "2",
		"DirectoryServerTransactionId": "ds-123",
		"eci": "05",
		"challengePreference": "NO_PREFERENCE"
	}`, string(data))
}

func TestThreeDSecureUnmarshalResponse(t *testing.T) {
	var tds ThreeDSecure
	err := json.Unmarshal([]byte(`{"embedded":true,"url":"https://3ds.local/challenge","returnCode":"220","returnMessage":"Redirect"}`), &tds)
	require.NoError(t, err)

	assert.True(t, tds.Embedded)
	assert.Equal(t, "https://3ds.local/challenge", tds.URL)
	assert.Equal(t, "220", tds.ReturnCode)
}

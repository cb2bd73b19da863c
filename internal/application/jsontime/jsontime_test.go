package jsontime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeUnmarshal(t *testing.T) {
	t.Run("bare date", func(t *testing.T) {
		var v Time
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-10"`), &v))
		assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), v.Time)
	})

	t.Run("rfc3339", func(t *testing.T) {
		var v Time
		require.NoError(t, json.Unmarshal([]byte(`"2024-01-10T15:04:05Z"`), &v))
		assert.Equal(t, time.Date(2024, 1, 10, 15, 4, 5, 0, time.UTC), v.Time)
	})

	t.Run("null leaves zero", func(t *testing.T) {
		var v Time
		require.NoError(t, json.Unmarshal([]byte(`null`), &v))
		assert.True(t, v.IsZero())
		assert.Nil(t, v.Ptr())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var v Time
		assert.Error(t, json.Unmarshal([]byte(`"10.01.2024"`), &v))
	})
}

func TestTimeMarshal(t *testing.T) {
	v := Time{Time: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-10T00:00:00Z"`, string(out))

	out, err = json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2025, time.March, 4)
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-04"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-04T18:30:00+05:30"`), &back))
	assert.Equal(t, "2025-03-04", back.String())

	var ptr *Date
	require.NoError(t, json.Unmarshal([]byte(`null`), &ptr))
	assert.Nil(t, ptr)

	assert.Error(t, json.Unmarshal([]byte(`"04/03/2025"`), &back))
}

func TestDateScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-01-05 00:00:00+00:00"))
	assert.Equal(t, "2025-01-05", d.String())

	require.NoError(t, d.Scan(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)))
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-12-31", v)

	require.NoError(t, d.Scan(nil))
	v, err = d.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClockToday(t *testing.T) {
	c := FixedClock(time.Date(2025, 3, 10, 22, 15, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-10", c.Today().String())
	assert.True(t, c.Today().Equal(NewDate(2025, 3, 10)))
}

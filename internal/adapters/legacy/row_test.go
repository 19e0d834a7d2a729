package legacy

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatAcceptsDriverAndSnapshotValues(t *testing.T) {
	row := Row{
		"a": int64(3),
		"b": 40.7,
		"c": json.Number("-74.0"),
		"d": "12.5",
		"e": nil,
		"f": "",
	}
	expected := map[string]float64{"a": 3, "b": 40.7, "c": -74.0, "d": 12.5, "e": 0, "f": 0, "missing": 0}
	for col, want := range expected {
		got, err := Float(row, col)
		require.NoError(t, err, col)
		assert.Equal(t, want, got, col)
	}

	_, err := Float(Row{"x": "north"}, "x")
	assert.Error(t, err)

	for _, v := range []any{"NaN", "inf", "-Infinity"} {
		_, err := Float(Row{"x": v}, "x")
		assert.Error(t, err, v)
	}
}

func TestInt(t *testing.T) {
	n, ok, err := Int(Row{"age": json.Number("42")}, "age")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	_, ok, err = Int(Row{"age": nil}, "age")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Int(Row{"age": "forty"}, "age")
	assert.Error(t, err)

	_, _, err = Int(Row{"age": 4.5}, "age")
	assert.Error(t, err)
}

func TestBool(t *testing.T) {
	assert.True(t, Bool(Row{"v": int64(1)}, "v"))
	assert.False(t, Bool(Row{"v": int64(0)}, "v"))
	assert.True(t, Bool(Row{"v": json.Number("1")}, "v"))
	assert.True(t, Bool(Row{"v": true}, "v"))
	assert.True(t, Bool(Row{"v": "true"}, "v"))
	assert.False(t, Bool(Row{"v": nil}, "v"))
	assert.False(t, Bool(Row{}, "v"))
}

func TestTime(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{name: "date only", value: "2024-03-15", want: want},
		{name: "sqlite timestamp", value: "2024-03-15 00:00:00", want: want},
		{name: "rfc3339", value: "2024-03-15T00:00:00Z", want: want},
		{name: "unix millis", value: int64(want.UnixMilli()), want: want},
		{name: "unix millis text", value: "1710460800000", want: want},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := Time(Row{"date": tt.value}, "date")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	_, ok, err := Time(Row{"date": nil}, "date")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = Time(Row{"date": "next tuesday"}, "date")
	assert.Error(t, err)
}

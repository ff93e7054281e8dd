package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notePatch struct {
	Notes Nullable[string] `json:"notes"`
	Count Nullable[int]    `json:"count"`
}

func TestNullableTracksPresence(t *testing.T) {
	cases := []struct {
		name     string
		body     string
		set      bool
		expected *string
	}{
		{name: "omitted", body: `{}`, set: false},
		{name: "null", body: `{"notes":null}`, set: true},
		{name: "value", body: `{"notes":"draft"}`, set: true, expected: strPtr("draft")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p notePatch
			require.NoError(t, json.Unmarshal([]byte(tc.body), &p))
			assert.Equal(t, tc.set, p.Notes.Set)
			assert.Equal(t, tc.expected, p.Notes.Value)
			assert.False(t, p.Count.Set)
		})
	}
}

func TestNullableRejectsWrongType(t *testing.T) {
	var p notePatch
	err := json.Unmarshal([]byte(`{"count":"many"}`), &p)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestMissionPatchClearsNotes(t *testing.T) {
	m := Mission{Notes: strPtr("old"), CurrentValue: strPtr("50%")}
	MissionPatch{Notes: Null[string]()}.Apply(&m)

	assert.Nil(t, m.Notes)
	assert.Equal(t, "50%", *m.CurrentValue)
}

func strPtr(s string) *string {
	return &s
}

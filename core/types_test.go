package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Age Number `json:"age"`
	}

	tests := []struct {
		name    string
		body    string
		set     bool
		raw     string
		wantInt int
		intErr  bool
	}{
		{name: "number", body: `{"age": 20}`, set: true, raw: "20", wantInt: 20},
		{name: "quoted number", body: `{"age": "20"}`, set: true, raw: "20", wantInt: 20},
		{name: "absent", body: `{}`},
		{name: "null", body: `{"age": null}`},
		{name: "text", body: `{"age": "twenty"}`, set: true, raw: "twenty", intErr: true},
		{name: "float", body: `{"age": 3.5}`, set: true, raw: "3.5", intErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.set, p.Age.IsSet())
			assert.Equal(t, tt.raw, p.Age.String())

			n, err := p.Age.Int()
			if tt.intErr {
				assert.Error(t, err)
				return
			}
			if tt.set {
				require.NoError(t, err)
				assert.Equal(t, tt.wantInt, n)
			}
		})
	}
}

func TestNumber_Float64(t *testing.T) {
	var n Number
	require.NoError(t, json.Unmarshal([]byte(`3.75`), &n))

	f, err := n.Float64()
	require.NoError(t, err)
	assert.Equal(t, 3.75, f)
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Jane Doe", CleanString("  Jane Doe "))
	assert.Equal(t, "jane@test.cd", CleanString(" Jane@Test.cd ", true))
}

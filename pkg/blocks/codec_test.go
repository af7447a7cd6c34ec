package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalDocument(t *testing.T) {
	d := docOf(t, "Title", "").SetStyle(0, H1).SetStyle(1, Enumerate).UpdatePoint(1, 0, "one")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"serial":1,"style":"h1","content":"Title"},
		{"serial":2,"style":"enumerate","points":["one"]}
	]`, string(data))
}

func TestMarshalEmptyContentIsKept(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"serial":1,"style":"text","content":""}]`, string(data))
}

func TestUnmarshalOrdersBySerial(t *testing.T) {
	var d Document
	err := json.Unmarshal([]byte(`[
		{"serial":3,"style":"text","content":"c"},
		{"serial":1,"style":"quote","content":"a","points":["stray"]},
		{"serial":2,"style":"bullet"}
	]`), &d)
	require.NoError(t, err)

	assert.Equal(t, []Block{
		{Serial: 1, Style: Quote, Content: "a"},
		{Serial: 2, Style: Bullet, Points: []string{""}},
		{Serial: 3, Style: Text, Content: "c"},
	}, d.Blocks())
}

func TestUnmarshalWithoutSerialsKeepsOrder(t *testing.T) {
	var d Document
	err := json.Unmarshal([]byte(`[
		{"style":"text","content":"first"},
		{"serial":1,"style":"text","content":"second"}
	]`), &d)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, contents(d))
	assertSerials(t, d)
}

func TestUnmarshalRejectsUnknownStyle(t *testing.T) {
	var d Document
	err := json.Unmarshal([]byte(`[
		{"serial":1,"style":"text","content":"ok"},
		{"serial":2,"style":"table","content":"?"}
	]`), &d)
	require.ErrorIs(t, err, ErrUnknownStyle)
	assert.Contains(t, err.Error(), "block 1")
}

func TestRecordsRoundTrip(t *testing.T) {
	d := docOf(t, "a", "").SetStyle(1, Bullet).UpdatePoint(1, 0, "p")

	records := d.Records()
	assert.Equal(t, map[string]interface{}{"serial": 1, "style": "text", "content": "a"}, records[0])
	assert.Equal(t, map[string]interface{}{"serial": 2, "style": "bullet", "points": []string{"p"}}, records[1])

	generic := []interface{}{
		map[string]interface{}{"serial": int64(1), "style": "text", "content": "a"},
		map[string]interface{}{"serial": int64(2), "style": "bullet", "points": []interface{}{"p"}},
	}
	back, err := DecodeRecords(generic)
	require.NoError(t, err)
	assert.Equal(t, d.Blocks(), back.Blocks())
}

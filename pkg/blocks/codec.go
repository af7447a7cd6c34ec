package blocks

import (
	"encoding/json"
	"fmt"
	"sort"
)

// record is the wire shape of a block: content for non-list styles, points
// for list styles.
type record struct {
	Serial  int      `json:"serial"`
	Style   string   `json:"style"`
	Content *string  `json:"content,omitempty"`
	Points  []string `json:"points,omitempty"`
}

func (b Block) record() record {
	r := record{Serial: b.Serial, Style: string(b.Style)}
	if b.Style.IsList() {
		r.Points = b.Points
	} else {
		content := b.Content
		r.Content = &content
	}
	return r
}

func (r record) block() (Block, error) {
	style, err := ParseStyle(r.Style)
	if err != nil {
		return Block{}, err
	}
	b := Block{Serial: r.Serial, Style: style, Points: r.Points}
	if r.Content != nil {
		b.Content = *r.Content
	}
	return b.normalize(), nil
}

func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.record())
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := r.block()
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make([]record, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = b.record()
	}
	return json.Marshal(out)
}

// UnmarshalJSON loads a saved sequence. A record with an unknown style fails
// the whole load. Records are ordered by serial when every record carries
// one, and renumbered either way.
func (d *Document) UnmarshalJSON(data []byte) error {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	if serialized(records) {
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Serial < records[j].Serial
		})
	}
	bs := make([]Block, len(records))
	for i, r := range records {
		b, err := r.block()
		if err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
		bs[i] = b
	}
	*d = Document{blocks: renumber(bs)}
	return nil
}

// Records returns the sequence as plain maps, for YAML and TOML encoders.
func (d Document) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(d.blocks))
	for i, b := range d.blocks {
		m := map[string]interface{}{
			"serial": b.Serial,
			"style":  string(b.Style),
		}
		if b.Style.IsList() {
			m["points"] = append([]string(nil), b.Points...)
		} else {
			m["content"] = b.Content
		}
		out[i] = m
	}
	return out
}

// DecodeRecords loads a sequence from generically decoded data, such as the
// value of a front matter key.
func DecodeRecords(v interface{}) (Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Document{}, err
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, err
	}
	return d, nil
}

func serialized(records []record) bool {
	for _, r := range records {
		if r.Serial <= 0 {
			return false
		}
	}
	return true
}

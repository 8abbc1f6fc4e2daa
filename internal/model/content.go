package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FlexID is an identifier that upstream serializes sometimes as a JSON string
// and sometimes as a number. It always compares as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex id: expected string or number, got %s", s)
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// ContentKind tags the wire shape a message body arrived in.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentText
	ContentParts
	ContentObject
)

// Content is a message body in any of the shapes the platform emits: a plain
// string, a list of structured parts, or an arbitrary JSON object. Decoding
// it once into a tagged variant keeps shape-sniffing out of the resolvers.
type Content struct {
	Kind  ContentKind
	Text  string
	Parts []ContentPart
	// Raw retains the original bytes for exact-substring matching against
	// file ids regardless of shape.
	Raw json.RawMessage
}

// ContentPart is one element of a multi-part message body.
type ContentPart struct {
	Type string    `json:"type,omitempty"`
	Text string    `json:"text,omitempty"`
	ID   FlexID    `json:"id,omitempty"`
	URL  string    `json:"url,omitempty"`
	File *PartFile `json:"file,omitempty"`

	raw json.RawMessage
}

// PartFile is the nested file reference some part shapes carry.
type PartFile struct {
	ID  FlexID `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// Raw returns the original JSON bytes of the part.
func (p ContentPart) Raw() json.RawMessage { return p.raw }

func (c *Content) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*c = Content{}
		return nil
	}
	c.Raw = append(json.RawMessage(nil), data...)
	switch trimmed[0] {
	case '"':
		c.Kind = ContentText
		return json.Unmarshal(data, &c.Text)
	case '[':
		c.Kind = ContentParts
		var raws []json.RawMessage
		if err := json.Unmarshal(data, &raws); err != nil {
			return err
		}
		c.Parts = make([]ContentPart, 0, len(raws))
		for _, r := range raws {
			var p ContentPart
			// Non-object elements (bare strings, numbers) still count as
			// parts; only their raw form participates in matching.
			_ = json.Unmarshal(r, &p)
			p.raw = r
			c.Parts = append(c.Parts, p)
		}
		return nil
	default:
		c.Kind = ContentObject
		return nil
	}
}

func (c Content) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentEmpty:
		return []byte(`""`), nil
	case ContentText:
		return json.Marshal(c.Text)
	default:
		if len(c.Raw) > 0 {
			return c.Raw, nil
		}
		return []byte(`""`), nil
	}
}

// Flatten renders the body as plain text: the string itself, the
// concatenated text of all parts, or the serialized object. This is the
// single normalization point for prompt matching and extraction.
func (c Content) Flatten() string {
	switch c.Kind {
	case ContentText:
		return c.Text
	case ContentParts:
		var b strings.Builder
		for _, p := range c.Parts {
			if p.Text != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(p.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
		return string(c.Raw)
	case ContentObject:
		return string(c.Raw)
	default:
		return ""
	}
}

package types

import (
	"encoding/json"
	"fmt"
)

// MarkedString is the deprecated hover content form: either a plain string
// or a {language, value} pair.
type MarkedString struct {
	Language string `json:"language,omitempty"`
	Value    string `json:"value"`
}

// Hover is the result of a textDocument/hover request.
type Hover struct {
	Contents HoverContents `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// HoverContents normalises the three shapes a server may send
// (MarkupContent, MarkedString, MarkedString[]) into a list of parts.
type HoverContents struct {
	Parts []MarkupContent
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (h *HoverContents) UnmarshalJSON(data []byte) error {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			part, err := decodeHoverPart(item)
			if err != nil {
				return err
			}
			h.Parts = append(h.Parts, part)
		}
		return nil
	}

	part, err := decodeHoverPart(data)
	if err != nil {
		return err
	}
	h.Parts = []MarkupContent{part}
	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (h HoverContents) MarshalJSON() ([]byte, error) {
	if len(h.Parts) == 1 {
		return json.Marshal(h.Parts[0])
	}
	return json.Marshal(h.Parts)
}

func decodeHoverPart(data json.RawMessage) (MarkupContent, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		// a bare MarkedString is markdown
		return MarkupContent{Kind: Markdown, Value: s}, nil
	}

	var obj struct {
		Kind     MarkupKind `json:"kind"`
		Language string     `json:"language"`
		Value    string     `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return MarkupContent{}, fmt.Errorf("failed to unmarshal hover contents: %s", string(data))
	}
	switch {
	case obj.Kind != "":
		return MarkupContent{Kind: obj.Kind, Value: obj.Value}, nil
	case obj.Language != "":
		// a MarkedString with a language is a code block
		return MarkupContent{Kind: Markdown, Value: "```" + obj.Language + "\n" + obj.Value + "\n```"}, nil
	default:
		return MarkupContent{Kind: Markdown, Value: obj.Value}, nil
	}
}

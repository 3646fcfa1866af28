// Package metadata fetches and normalizes per-token metadata documents.
// The de-facto json schema for these documents is loose: attributes appear
// as an array of trait objects or as a flat map, values are strings or
// numbers, and most fields are optional. Everything is normalized into
// TokenMetadata so consumers never touch the raw shapes.
package metadata

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Attribute is one normalized trait of a token. Numeric and date display
// variants are flattened to their string rendering; ordering follows the
// source document.
type Attribute struct {
	Trait string `json:"trait_type"`
	Value string `json:"value"`
}

// TokenMetadata is the normalized, immutable record for one token. Once
// constructed, ownership transfers to the collection that accumulates it.
type TokenMetadata struct {
	ID          uint64
	Name        string
	Description string
	// Image is resolved to an absolute, fetchable url.
	Image           string
	ExternalURL     string
	AnimationURL    string
	YoutubeURL      string
	BackgroundColor string
	CreatedBy       string
	Attributes      []Attribute
	// Raw preserves the original document for consumers that want fields
	// we don't normalize.
	Raw json.RawMessage
}

type document struct {
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Image           string        `json:"image"`
	ExternalURL     string        `json:"external_url"`
	Attributes      attributeList `json:"attributes"`
	BackgroundColor string        `json:"background_color"`
	CreatedBy       string        `json:"created_by"`
	AnimationURL    string        `json:"animation_url"`
	YoutubeURL      string        `json:"youtube_url"`
}

// Normalize parses raw as a metadata document for tokenID. base, when non
// nil, is the url the document was fetched from and anchors relative image
// and animation references. Missing optional fields map to zero values, not
// errors; only undecodable json fails.
func Normalize(tokenID uint64, raw []byte, base *url.URL) (*TokenMetadata, error) {
	doc := document{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document doesn't decode as token metadata: %w", err)
	}
	name := doc.Name
	if name == "" {
		name = fmt.Sprintf("#%d", tokenID)
	}
	result := &TokenMetadata{
		ID:              tokenID,
		Name:            name,
		Description:     doc.Description,
		Image:           resolveRelative(base, doc.Image),
		ExternalURL:     doc.ExternalURL,
		AnimationURL:    resolveRelative(base, doc.AnimationURL),
		YoutubeURL:      doc.YoutubeURL,
		BackgroundColor: doc.BackgroundColor,
		CreatedBy:       doc.CreatedBy,
		Attributes:      doc.Attributes,
		Raw:             json.RawMessage(raw),
	}
	if result.Attributes == nil {
		result.Attributes = []Attribute{}
	}
	return result, nil
}

type attributeList []Attribute

// UnmarshalJSON accepts both attribute shapes found in the wild: the
// opensea-style array of {trait_type, value, display_type} objects and the
// older flat {"trait": "value"} map. Source order is preserved in both
// cases, which is why the map form is walked with a token decoder instead
// of an unordered map.
func (al *attributeList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*al = nil
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return al.unmarshalArray(data)
	}
	if strings.HasPrefix(trimmed, "{") {
		return al.unmarshalMap(data)
	}
	return fmt.Errorf("attributes is neither an array nor a map")
}

type rawAttribute struct {
	DisplayType string          `json:"display_type"`
	TraitType   string          `json:"trait_type"`
	Value       json.RawMessage `json:"value"`
}

func (al *attributeList) unmarshalArray(data []byte) error {
	raw := []rawAttribute{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make([]Attribute, 0, len(raw))
	for _, a := range raw {
		result = append(result, Attribute{
			Trait: a.TraitType,
			Value: stringifyValue(a.Value),
		})
	}
	*al = result
	return nil
}

func (al *attributeList) unmarshalMap(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	if _, err := dec.Token(); err != nil { // consume '{'
		return err
	}
	result := []Attribute{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("attribute map key is not a string")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		result = append(result, Attribute{
			Trait: key,
			Value: stringifyValue(value),
		})
	}
	*al = result
	return nil
}

// stringifyValue renders a json scalar as display text: strings unquoted,
// numbers and booleans as written.
func stringifyValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func resolveRelative(base *url.URL, ref string) string {
	if ref == "" || base == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if parsed.IsAbs() {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

package metadata_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tranvictor/nftmeta/metadata"
)

func TestNormalizeOpenseaStyle(t *testing.T) {
	raw := []byte(`{
		"name": "Azuki #1",
		"description": "A brand for the metaverse.",
		"image": "ipfs://QmYDvPAXtiJg7s8JdRBSLWdgSphQdac8j1YuQNNxcGE1hg/1.png",
		"attributes": [
			{"trait_type": "Type", "value": "Human"},
			{"trait_type": "Hair", "value": "Pink Hairband"},
			{"display_type": "number", "trait_type": "Generation", "value": 1},
			{"display_type": "boost_percentage", "trait_type": "Power", "value": 7.5}
		]
	}`)
	token, err := metadata.Normalize(1, raw, nil)
	require.NoError(t, err)
	require.Equal(t, "Azuki #1", token.Name)
	require.Equal(t, "A brand for the metaverse.", token.Description)
	require.Equal(t, []metadata.Attribute{
		{Trait: "Type", Value: "Human"},
		{Trait: "Hair", Value: "Pink Hairband"},
		{Trait: "Generation", Value: "1"},
		{Trait: "Power", Value: "7.5"},
	}, token.Attributes)
	require.JSONEq(t, string(raw), string(token.Raw))
}

func TestNormalizeFlatAttributeMap(t *testing.T) {
	raw := []byte(`{
		"name": "Toad",
		"attributes": {"Background": "Blue", "Size": 2, "Animated": true}
	}`)
	token, err := metadata.Normalize(7, raw, nil)
	require.NoError(t, err)
	// source order must survive the map form
	require.Equal(t, []metadata.Attribute{
		{Trait: "Background", Value: "Blue"},
		{Trait: "Size", Value: "2"},
		{Trait: "Animated", Value: "true"},
	}, token.Attributes)
}

func TestNormalizeDefaults(t *testing.T) {
	token, err := metadata.Normalize(42, []byte(`{}`), nil)
	require.NoError(t, err)
	require.Equal(t, "#42", token.Name, "missing name falls back to the token id")
	require.NotNil(t, token.Attributes)
	require.Empty(t, token.Attributes)
}

func TestNormalizeNullAttributes(t *testing.T) {
	token, err := metadata.Normalize(1, []byte(`{"name":"x","attributes":null}`), nil)
	require.NoError(t, err)
	require.NotNil(t, token.Attributes)
	require.Empty(t, token.Attributes)
}

func TestNormalizeRelativeImage(t *testing.T) {
	base, err := url.Parse("https://api.example.com/tokens/15")
	require.NoError(t, err)
	token, err := metadata.Normalize(15, []byte(`{"image":"../images/15.png"}`), base)
	require.NoError(t, err)
	require.Equal(t, "https://api.example.com/images/15.png", token.Image)

	token, err = metadata.Normalize(15, []byte(`{"image":"https://cdn.example.com/15.png"}`), base)
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/15.png", token.Image, "absolute urls pass through")
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	_, err := metadata.Normalize(1, []byte(`<html>not json</html>`), nil)
	require.Error(t, err)

	_, err = metadata.Normalize(1, []byte(`{"attributes": "nope"}`), nil)
	require.Error(t, err)
}

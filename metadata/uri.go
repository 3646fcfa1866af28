package metadata

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const dataURIPrefix = "data:"

// IsDataURI reports whether uri carries its payload inline instead of
// pointing at a host. Inline documents never touch the network.
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, dataURIPrefix)
}

// DecodeDataURI extracts the payload of a data: uri. Both the base64 form
// (data:application/json;base64,...) and the plain escaped form are
// supported, since contracts emit both.
func DecodeDataURI(uri string) ([]byte, error) {
	rest, found := strings.CutPrefix(uri, dataURIPrefix)
	if !found {
		return nil, fmt.Errorf("'%s' is not a data uri", uri)
	}
	meta, payload, found := strings.Cut(rest, ",")
	if !found {
		return nil, fmt.Errorf("data uri has no payload separator")
	}
	if strings.HasSuffix(meta, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("data uri payload doesn't decode as base64: %w", err)
		}
		return decoded, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("data uri payload doesn't unescape: %w", err)
	}
	return []byte(unescaped), nil
}

// RewriteGateway turns content-addressed uris into fetchable https urls via
// the configured gateway. Both ipfs://CID/path and the doubled
// ipfs://ipfs/CID form seen in the wild are handled; anything else passes
// through untouched.
func RewriteGateway(uri, gateway string) string {
	rest, found := strings.CutPrefix(uri, "ipfs://")
	if !found {
		return uri
	}
	rest = strings.TrimPrefix(rest, "ipfs/")
	return fmt.Sprintf("%s/ipfs/%s", strings.TrimSuffix(gateway, "/"), rest)
}

// SubstituteIDIfTemplated expands {id} when the uri embeds the multi-token
// placeholder and returns the uri unchanged otherwise. Used on values
// returned by uri(uint256) calls, which already name a concrete token and
// must not get an id appended.
func SubstituteIDIfTemplated(uri string, tokenID uint64) string {
	if strings.Contains(uri, "{id}") {
		return strings.ReplaceAll(uri, "{id}", fmt.Sprintf("%064x", tokenID))
	}
	return uri
}

// SubstituteID expands a uri template for a concrete token id. Templates
// containing {id} get the 64-digit lowercase hex substitution the
// multi-token standard prescribes; plain base urls get the decimal id
// appended.
func SubstituteID(template string, tokenID uint64) string {
	if strings.Contains(template, "{id}") {
		return strings.ReplaceAll(template, "{id}", fmt.Sprintf("%064x", tokenID))
	}
	if strings.HasSuffix(template, "/") || strings.HasSuffix(template, "=") {
		return template + strconv.FormatUint(tokenID, 10)
	}
	return template + "/" + strconv.FormatUint(tokenID, 10)
}

package metadata

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"
	"go.uber.org/zap"

	"github.com/tranvictor/nftmeta/codec"
	"github.com/tranvictor/nftmeta/common"
	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/httpclient"
	"github.com/tranvictor/nftmeta/reader"
	"github.com/tranvictor/nftmeta/resolver"
)

// FailKind classifies a per-token fetch failure. None of these abort a
// session; they decide only whether the token is skipped quietly or worth
// retrying first.
type FailKind int

const (
	// FailNotFound: the token id has no metadata (burned, out of range,
	// empty document). Skip, count as failed.
	FailNotFound FailKind = iota
	// FailMalformed: a document exists but doesn't normalize. Skip.
	FailMalformed
	// FailTransient: network trouble. Retried a bounded number of times
	// before being downgraded to a skip.
	FailTransient
)

func (k FailKind) String() string {
	switch k {
	case FailNotFound:
		return "not found"
	case FailMalformed:
		return "malformed"
	default:
		return "transient"
	}
}

type FetchError struct {
	Kind    FailKind
	TokenID uint64
	URI     string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("token %d: %s", e.TokenID, e.Kind)
	}
	return fmt.Sprintf("token %d: %s: %s", e.TokenID, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher resolves one token id to its normalized metadata record: uri
// discovery (contract call or template), gateway rewriting, retrieval and
// normalization.
type Fetcher struct {
	reader  *reader.EthReader
	client  *httpclient.Client
	gateway string
	retries int
	logger  *zap.Logger
}

// NewFetcher builds a fetcher backed by r for contract calls. r may be nil
// for purely url-template sources.
func NewFetcher(r *reader.EthReader) *Fetcher {
	return &Fetcher{
		reader:  r,
		client:  httpclient.NewClient(config.FetchTimeout),
		gateway: config.IPFSGateway,
		retries: config.TransientRetries,
		logger:  common.Logger(),
	}
}

// FetchContractToken fetches the metadata of tokenID from a contract
// described by iface.
func (f *Fetcher) FetchContractToken(ctx context.Context, iface *resolver.ContractIface, tokenID uint64) (*TokenMetadata, error) {
	uri, err := f.tokenURI(ctx, iface, tokenID)
	if err != nil {
		return nil, err
	}
	return f.fetchDocument(ctx, uri, tokenID)
}

// FetchTemplateToken fetches the metadata of tokenID from a direct url
// template source.
func (f *Fetcher) FetchTemplateToken(ctx context.Context, template string, tokenID uint64) (*TokenMetadata, error) {
	return f.fetchDocument(ctx, SubstituteID(template, tokenID), tokenID)
}

func (f *Fetcher) tokenURI(ctx context.Context, iface *resolver.ContractIface, tokenID uint64) (string, error) {
	if iface.URIMethod == "" {
		return SubstituteID(iface.BaseURI, tokenID), nil
	}
	data, err := codec.EncodeTokenCall(iface.URIMethod, tokenID)
	if err != nil {
		return "", &FetchError{Kind: FailMalformed, TokenID: tokenID, Err: err}
	}
	out, err := f.reader.EthCall(ctx, iface.Address, data)
	if err != nil {
		// A revert means the token doesn't exist; anything else is the
		// node misbehaving.
		if isRevert(err) {
			return "", &FetchError{Kind: FailNotFound, TokenID: tokenID, Err: err}
		}
		return "", &FetchError{Kind: FailTransient, TokenID: tokenID, Err: err}
	}
	uri, err := codec.DecodeReturnString(iface.URIMethod, out)
	if err != nil {
		return "", &FetchError{Kind: FailMalformed, TokenID: tokenID, Err: err}
	}
	if uri == "" {
		return "", &FetchError{Kind: FailNotFound, TokenID: tokenID}
	}
	if iface.HasURI() {
		uri = SubstituteIDIfTemplated(uri, tokenID)
	}
	return uri, nil
}

func isRevert(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "revert") || strings.Contains(msg, "invalid opcode")
}

// fetchDocument retrieves and normalizes the document at uri. Inline data
// uris are decoded in process, no network involved; everything else is
// fetched over http after gateway rewriting.
func (f *Fetcher) fetchDocument(ctx context.Context, uri string, tokenID uint64) (*TokenMetadata, error) {
	if IsDataURI(uri) {
		raw, err := DecodeDataURI(uri)
		if err != nil {
			return nil, &FetchError{Kind: FailMalformed, TokenID: tokenID, URI: uri, Err: err}
		}
		return f.normalize(tokenID, raw, nil, uri)
	}

	fetchURL := RewriteGateway(uri, f.gateway)
	raw, err := f.get(ctx, fetchURL, tokenID)
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(fetchURL)
	return f.normalize(tokenID, raw, base, fetchURL)
}

func (f *Fetcher) normalize(tokenID uint64, raw []byte, base *url.URL, uri string) (*TokenMetadata, error) {
	token, err := Normalize(tokenID, raw, base)
	if err != nil {
		return nil, &FetchError{Kind: FailMalformed, TokenID: tokenID, URI: uri, Err: err}
	}
	token.Image = RewriteGateway(token.Image, f.gateway)
	token.AnimationURL = RewriteGateway(token.AnimationURL, f.gateway)
	return token, nil
}

// get issues the document GET, retrying transient failures with backoff up
// to the configured retry count. NotFound and malformed statuses are
// permanent and return immediately.
func (f *Fetcher) get(ctx context.Context, fetchURL string, tokenID uint64) ([]byte, error) {
	var body []byte
	operation := func() error {
		raw, status, err := f.client.Get(ctx, fetchURL)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(&FetchError{Kind: FailTransient, TokenID: tokenID, URI: fetchURL, Err: ctx.Err()})
			}
			return &FetchError{Kind: FailTransient, TokenID: tokenID, URI: fetchURL, Err: err}
		}
		switch {
		case status == 404:
			return backoff.Permanent(&FetchError{Kind: FailNotFound, TokenID: tokenID, URI: fetchURL})
		case status == 429 || status >= 500:
			return &FetchError{Kind: FailTransient, TokenID: tokenID, URI: fetchURL,
				Err: fmt.Errorf("status %d", status)}
		case status >= 400:
			return backoff.Permanent(&FetchError{Kind: FailMalformed, TokenID: tokenID, URI: fetchURL,
				Err: fmt.Errorf("status %d", status)})
		}
		if len(raw) == 0 {
			// some gateways answer 200 with an empty body for missing paths
			return backoff.Permanent(&FetchError{Kind: FailNotFound, TokenID: tokenID, URI: fetchURL})
		}
		body = raw
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 500 * time.Millisecond
	policy.MaxInterval = 8 * time.Second
	limited := backoff.WithMaxRetries(policy, uint64(f.retries))
	if err := backoff.Retry(operation, backoff.WithContext(limited, ctx)); err != nil {
		f.logger.Debug("token fetch failed",
			zap.Uint64("token", tokenID),
			zap.String("url", fetchURL),
			zap.Error(err))
		return nil, err
	}
	return body, nil
}

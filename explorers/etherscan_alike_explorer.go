package explorers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v3"

	"github.com/tranvictor/nftmeta/config"
	"github.com/tranvictor/nftmeta/httpclient"
)

// ErrABINotAvailable is returned when the explorer answers but has no
// verified ABI for the address. It is an expected condition, not a failure:
// callers fall back to probing the contract directly.
var ErrABINotAvailable = errors.New("no verified ABI available")

type EtherscanLikeExplorer struct {
	ChainID uint64
	Domain  string
	APIKey  string

	client *httpclient.Client
}

func NewEtherscanLikeExplorer(chainID uint64, domain, apiKey string) *EtherscanLikeExplorer {
	return &EtherscanLikeExplorer{
		ChainID: chainID,
		Domain:  domain,
		APIKey:  apiKey,
		client:  httpclient.NewClient(config.FetchTimeout),
	}
}

func (ee *EtherscanLikeExplorer) GetABIStringAPIURL(address string) string {
	return fmt.Sprintf(
		"%s/api?chainid=%d&module=contract&action=getabi&address=%s&apikey=%s",
		ee.Domain,
		ee.ChainID,
		address,
		ee.APIKey,
	)
}

func (ee *EtherscanLikeExplorer) GetSourceCodeAPIURL(address string) string {
	return fmt.Sprintf(
		"%s/api?chainid=%d&module=contract&action=getsourcecode&address=%s&apikey=%s",
		ee.Domain,
		ee.ChainID,
		address,
		ee.APIKey,
	)
}

type abiresponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

func (ar *abiresponse) IsOK() bool {
	return ar.Status == "1"
}

// rate limited responses come back with status "0" and an explanatory
// result string, eg. "Max rate limit reached". They are worth retrying,
// unlike "not verified" which is definitive.
func (ar *abiresponse) IsRateLimited() bool {
	return strings.Contains(strings.ToLower(ar.Result), "rate limit")
}

func (ee *EtherscanLikeExplorer) getJSON(ctx context.Context, url string, result interface{}) error {
	body, status, err := ee.client.Get(ctx, url)
	if err != nil {
		return err
	}
	if status != 200 {
		return fmt.Errorf("explorer returned status %d", status)
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("couldn't unmarshal explorer response %s: %w", string(body), err)
	}
	return nil
}

// GetABIString queries the explorer for the verified ABI of address.
// Transport errors and rate limits are retried with exponential backoff up
// to config.ExplorerRetries times; a definitive "not verified" answer
// returns ErrABINotAvailable immediately.
func (ee *EtherscanLikeExplorer) GetABIString(ctx context.Context, address string) (string, error) {
	url := ee.GetABIStringAPIURL(address)
	var result string
	operation := func() error {
		resp := abiresponse{}
		if err := ee.getJSON(ctx, url, &resp); err != nil {
			return err
		}
		if resp.IsOK() {
			result = resp.Result
			return nil
		}
		if resp.IsRateLimited() {
			return fmt.Errorf("explorer rate limited: %s", resp.Result)
		}
		return backoff.Permanent(ErrABINotAvailable)
	}
	if err := retryWithBackoff(ctx, operation); err != nil {
		return "", err
	}
	return result, nil
}

type sourcecoderesponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  []struct {
		ContractName string `json:"ContractName"`
		ABI          string `json:"ABI"`
	} `json:"result"`
}

// GetContractName returns the verified name of the contract at address, or
// "" when the contract is unverified. Failures here never block resolution,
// the name is display sugar only.
func (ee *EtherscanLikeExplorer) GetContractName(ctx context.Context, address string) (string, error) {
	url := ee.GetSourceCodeAPIURL(address)
	resp := sourcecoderesponse{}
	if err := ee.getJSON(ctx, url, &resp); err != nil {
		return "", err
	}
	if resp.Status != "1" || len(resp.Result) == 0 {
		return "", nil
	}
	return resp.Result[0].ContractName, nil
}

func retryWithBackoff(ctx context.Context, operation func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Second
	policy.MaxInterval = 10 * time.Second
	limited := backoff.WithMaxRetries(policy, uint64(config.ExplorerRetries))
	return backoff.Retry(operation, backoff.WithContext(limited, ctx))
}

package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

var Network string

// Knobs of the resolution pipeline. The defaults are deliberately
// conservative: public gateways and RPC providers rate limit aggressively
// and a browsing session degrades badly once they start returning 429s.
var (
	IPFSGateway      string = "https://ipfs.io"
	FetchConcurrency int    = 8
	FetchTimeout            = 20 * time.Second
	TransientRetries int    = 3
	ExplorerRetries  int    = 4
	// OpenEndedCap bounds enumeration when a contract exposes no totalSupply.
	OpenEndedCap uint64 = 10000
	// MissCutoff ends an open-ended enumeration after this many consecutive
	// not-found tokens.
	MissCutoff int = 20

	Verbose bool
	RawJSON bool
	Limit   uint64
)

type fileConfig struct {
	Network          string `yaml:"network"`
	IPFSGateway      string `yaml:"ipfs_gateway"`
	FetchConcurrency int    `yaml:"fetch_concurrency"`
	TransientRetries int    `yaml:"transient_retries"`
	ExplorerRetries  int    `yaml:"explorer_retries"`
	OpenEndedCap     uint64 `yaml:"open_ended_cap"`
	MissCutoff       int    `yaml:"miss_cutoff"`
}

func configPath() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".nftmeta", "config.yaml"), nil
}

// LoadFile overlays ~/.nftmeta/config.yaml on top of the built-in defaults.
// A missing file is not an error.
func LoadFile() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if fc.Network != "" && Network == "" {
		Network = fc.Network
	}
	if fc.IPFSGateway != "" {
		IPFSGateway = fc.IPFSGateway
	}
	if fc.FetchConcurrency > 0 {
		FetchConcurrency = fc.FetchConcurrency
	}
	if fc.TransientRetries > 0 {
		TransientRetries = fc.TransientRetries
	}
	if fc.ExplorerRetries > 0 {
		ExplorerRetries = fc.ExplorerRetries
	}
	if fc.OpenEndedCap > 0 {
		OpenEndedCap = fc.OpenEndedCap
	}
	if fc.MissCutoff > 0 {
		MissCutoff = fc.MissCutoff
	}
	if gw := os.Getenv("NFTMETA_IPFS_GATEWAY"); gw != "" {
		IPFSGateway = gw
	}
	return nil
}

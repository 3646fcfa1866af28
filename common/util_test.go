package common_test

import (
	"testing"

	"github.com/tranvictor/nftmeta/common"
)

func TestIsAddress(t *testing.T) {
	valid := []string{
		"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		"0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D",
		"  0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d  ",
	}
	for _, v := range valid {
		if !common.IsAddress(v) {
			t.Errorf("expected %q to be an address", v)
		}
	}
	invalid := []string{
		"",
		"bc4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13",
		"0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13dd",
		"0xzz4ca0eda7647a8ab7c2061c2e118a18a936f13d",
		"azuki",
	}
	for _, v := range invalid {
		if common.IsAddress(v) {
			t.Errorf("expected %q to not be an address", v)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	got, err := common.NormalizeAddress("0xbc4ca0eda7647a8ab7c2061c2e118a18a936f13d")
	if err != nil {
		t.Fatalf("normalize: %s", err)
	}
	if got != "0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D" {
		t.Errorf("wrong checksum form: %s", got)
	}
	if _, err = common.NormalizeAddress("not-an-address"); err == nil {
		t.Errorf("expected error for invalid address")
	}
}

func TestShortAddress(t *testing.T) {
	got := common.ShortAddress("0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D")
	if got != "0xBC4C…f13D" {
		t.Errorf("got %q", got)
	}
	if common.ShortAddress("0xabc") != "0xabc" {
		t.Errorf("short input should pass through")
	}
}

func TestTruncate(t *testing.T) {
	if got := common.Truncate("hello world", 5); got != "hell…" {
		t.Errorf("got %q", got)
	}
	if got := common.Truncate("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := common.Truncate("hello", 0); got != "" {
		t.Errorf("got %q", got)
	}
}

package db_test

import (
	"strings"
	"testing"

	"github.com/tranvictor/nftmeta/db"
)

func TestDefaultCollectionsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range db.DefaultCollections {
		if c.Name == "" {
			t.Errorf("collection with empty name: %+v", c)
		}
		if c.Address != "" && !strings.HasPrefix(c.Address, "0x") {
			t.Errorf("%s: malformed address %q", c.Name, c.Address)
		}
		key := strings.ToLower(c.Name)
		if seen[key] {
			t.Errorf("duplicate collection name %q", c.Name)
		}
		seen[key] = true
	}
}

func TestGetCollection(t *testing.T) {
	desc, err := db.GetCollection("azuki")
	if err != nil {
		t.Fatalf("lookup: %s", err)
	}
	if desc.Address != "0xed5af388653567af2f388e6224dc7c4b3241c544" {
		t.Errorf("azuki resolved to %s", desc.Address)
	}
	if desc.Supply != 10000 {
		t.Errorf("azuki supply: got %d", desc.Supply)
	}
}

func TestGetCollectionFuzzy(t *testing.T) {
	desc, err := db.GetCollection("bored ape yacht")
	if err != nil {
		t.Fatalf("lookup: %s", err)
	}
	if desc.Name != "Bored Ape Yacht Club" {
		t.Errorf("got %q", desc.Name)
	}
}

func TestGetCollectionByAddressFragment(t *testing.T) {
	matches, _ := db.GetCollections("0xed5af388")
	if len(matches) == 0 {
		t.Fatalf("expected a match on the address fragment")
	}
	if matches[0].Name != "Azuki" {
		t.Errorf("got %q", matches[0].Name)
	}
}

func TestGetCollectionNoMatch(t *testing.T) {
	if _, err := db.GetCollection("zzzzqqqqxxxx"); err == nil {
		t.Errorf("expected an error for a hopeless query")
	}
}

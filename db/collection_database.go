package db

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// CollectionDesc is one entry of the collection book: enough to start a
// resolution session without asking the chain first. Supply 0 means
// unknown; BaseURI may be empty when only the contract address is known.
type CollectionDesc struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	BaseURI    string `json:"base_uri"`
	Supply     uint64 `json:"supply"`
	StartToken uint64 `json:"start_token"`
}

// AllCollections merges the built-in book with the user's own entries from
// ~/.nftmeta/collections.json. User entries win on name collisions.
func AllCollections() []CollectionDesc {
	result := append([]CollectionDesc{}, DefaultCollections...)
	byName := map[string]int{}
	for i, c := range result {
		byName[strings.ToLower(c.Name)] = i
	}
	for _, c := range loadUserCollections() {
		if i, found := byName[strings.ToLower(c.Name)]; found {
			result[i] = c
			continue
		}
		result = append(result, c)
	}
	return result
}

func loadUserCollections() []CollectionDesc {
	usr, err := user.Current()
	if err != nil {
		return nil
	}
	file := filepath.Join(usr.HomeDir, ".nftmeta", "collections.json")
	content, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	result := []CollectionDesc{}
	if err := json.Unmarshal(content, &result); err != nil {
		fmt.Printf("reading collections from %s failed: %s. Ignored.\n", file, err)
		return nil
	}
	return result
}

type FuzzySource []CollectionDesc

func (fs FuzzySource) Len() int {
	return len(fs)
}

func (fs FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", strings.Replace(fs[i].Name, " ", "_", -1), fs[i].Address)
}

func NewFuzzySource() FuzzySource {
	return FuzzySource(AllCollections())
}

func getCollectionMatches(input string, source FuzzySource) ([]CollectionDesc, []int) {
	matches := fuzzy.FindFrom(strings.Replace(input, " ", "_", -1), source)
	result := []CollectionDesc{}
	scores := []int{}
	for i := 0; i < 10 && i < len(matches); i++ {
		result = append(result, source[matches[i].Index])
		scores = append(scores, matches[i].Score)
	}
	return result, scores
}

func GetCollections(input string) ([]CollectionDesc, []int) {
	return getCollectionMatches(input, NewFuzzySource())
}

func GetCollection(input string) (CollectionDesc, error) {
	matches, _ := getCollectionMatches(input, NewFuzzySource())
	if len(matches) == 0 {
		return CollectionDesc{}, fmt.Errorf("no collection is found with '%s'", input)
	}
	return matches[0], nil
}

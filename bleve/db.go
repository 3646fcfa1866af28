package bleve

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/lang/en"
	"github.com/blevesearch/bleve/mapping"

	"github.com/tranvictor/nftmeta/db"
)

var (
	BLEVE_PATH      string = filepath.Join(getHomeDir(), ".nftmeta", "db.bleve")
	BLEVE_DATA_PATH string = filepath.Join(getHomeDir(), ".nftmeta", "bleve.data")
	bleveDB         *BleveDB
	once            sync.Once
)

func getHomeDir() string {
	usr, err := user.Current()
	if err != nil {
		log.Fatal(err)
	}
	return usr.HomeDir
}

// getCollectionData returns all searchable collections keyed by address
// plus a hash that changes whenever the user's book file does, so the
// index is rebuilt only on change.
func getCollectionData() (result map[string]db.CollectionDesc, hash string) {
	result = map[string]db.CollectionDesc{}
	all := db.AllCollections()
	for _, c := range all {
		result[strings.ToLower(c.Address)] = c
	}

	var timestamp int64
	file := filepath.Join(getHomeDir(), ".nftmeta", "collections.json")
	info, err := os.Stat(file)
	if err == nil {
		timestamp = info.ModTime().UnixNano()
	}
	return result, fmt.Sprintf("%d-%d", len(all), timestamp)
}

type BleveDB struct {
	index bleve.Index
	Hash  string
}

type collectionDoc struct {
	Address string `json:"address"`
	Desc    string `json:"desc"`
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = en.AnalyzerName

	defaultMapping := bleve.NewDocumentMapping()
	defaultMapping.AddFieldMappingsAt("desc",
		textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", defaultMapping)

	indexMapping.TypeField = "type"
	indexMapping.DefaultAnalyzer = "en"

	return indexMapping
}

func loadIndex(cdb *BleveDB) error {
	index, err := bleve.Open(BLEVE_DATA_PATH)
	if err != nil && err != bleve.ErrorIndexPathDoesNotExist {
		return err
	}

	if err == nil {
		cdb.index = index
	}

	collections, h := getCollectionData()

	if err == bleve.ErrorIndexPathDoesNotExist {
		// here index file doesn't exist, create one
		indexMapping := buildIndexMapping()
		index, err = bleve.New(BLEVE_DATA_PATH, indexMapping)
		if err != nil {
			return err
		}
		cdb.index = index
		cdb.Hash = ""
	}

	if cdb.Hash != h {
		err = indexCollections(cdb.index, collections)
		if err != nil {
			return err
		}
		cdb.Hash = h
		return cdb.Persist()
	}
	return nil
}

func loadBleveDB() (*BleveDB, error) {
	result := &BleveDB{}
	content, err := os.ReadFile(BLEVE_PATH)
	if err != nil {
		return result, nil
	}
	err = json.Unmarshal(content, result)
	if err != nil {
		return result, nil
	}

	return result, nil
}

func NewBleveDB() (*BleveDB, error) {
	var resError error
	once.Do(func() {
		bleveDB, resError = loadBleveDB()
		if resError != nil {
			return
		}
		resError = loadIndex(bleveDB)
	})
	return bleveDB, resError
}

func (bleveDB *BleveDB) Persist() error {
	jsonData, err := json.MarshalIndent(bleveDB, "", "  ")
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(BLEVE_PATH), 0755); err != nil {
		return err
	}
	return os.WriteFile(BLEVE_PATH, jsonData, 0644)
}

func (bleveDB *BleveDB) Search(input string) ([]db.CollectionDesc, []int) {
	matchQuery := bleve.NewMatchPhraseQuery(input)
	fuzzyQuery := bleve.NewFuzzyQuery(input)
	fuzzyQuery.Fuzziness = 1
	query := bleve.NewDisjunctionQuery(matchQuery, fuzzyQuery)
	request := bleve.NewSearchRequest(query)
	searchResults, err := bleveDB.index.Search(request)
	if err != nil {
		fmt.Printf("Collection db search failed: %s\n", err)
		return []db.CollectionDesc{}, []int{}
	}

	byAddress, _ := getCollectionData()

	results := []db.CollectionDesc{}
	resultScores := []int{}
	for _, searchResult := range searchResults.Hits {
		desc, found := byAddress[searchResult.ID]
		if !found {
			continue
		}
		resultScores = append(resultScores, int(searchResult.Score*1000000))
		results = append(results, desc)
	}
	return results, resultScores
}

func indexCollections(i bleve.Index, collections map[string]db.CollectionDesc) error {
	startTime := time.Now().UnixNano()
	batch := i.NewBatch()
	batchCount := 0
	fmt.Printf("indexing %d collections\n", len(collections))
	for addr, desc := range collections {
		batch.Index(addr, collectionDoc{
			Address: addr,
			Desc:    desc.Name,
		})
		batchCount++

		if batchCount >= 1000 {
			err := i.Batch(batch)
			if err != nil {
				return err
			}
			batch = i.NewBatch()
			batchCount = 0
		}
	}
	// flush the last batch
	if batchCount > 0 {
		err := i.Batch(batch)
		if err != nil {
			return err
		}
	}
	endTime := time.Now().UnixNano()
	fmt.Printf("Total index time: %d ms\n", (endTime-startTime)/1000000)
	return nil
}

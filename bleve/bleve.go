package bleve

import (
	"fmt"

	"github.com/tranvictor/nftmeta/db"
)

func GetCollection(input string) (db.CollectionDesc, error) {
	results, _ := GetCollections(input)
	if len(results) == 0 {
		return db.CollectionDesc{}, fmt.Errorf("couldn't find collection for: %s", input)
	}
	return results[0], nil
}

func GetCollections(input string) ([]db.CollectionDesc, []int) {
	cdb, err := NewBleveDB()
	if err != nil {
		fmt.Printf("Getting collection db failed: %s\n", err)
		return []db.CollectionDesc{}, []int{}
	}
	return cdb.Search(input)
}

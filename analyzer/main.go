package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	esm "github.com/WindResource/Energy-System-Modeling"
)

// Aggregates the global totals files of one or more runs into a CSV table on
// stdout, one row per stage result.
func main() {
	if len(os.Args) < 2 {
		log.Printf("No arguments passed!")
		return
	}
	dirName := os.Args[1]
	dir, err := os.ReadDir(dirName)
	if err != nil {
		log.Printf("Couldn't open directory %s: %s\n", os.Args[1], err.Error())
		return
	}

	classes := []string{"wf", "eh", "onss", "ec1", "ec2", "ec3", "onc", "overall"}

	fmt.Printf("Name")
	for _, c := range classes {
		fmt.Printf(",%s_capacity,%s_cost", c, c)
	}
	fmt.Printf("\n")

	for _, f := range dir {
		if !strings.Contains(f.Name(), "_global_") || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		fileName := dirName + "/" + f.Name()
		data, err := os.ReadFile(fileName)
		if err != nil {
			log.Printf("Couldn't read %s: %s\n", f.Name(), err.Error())
			return
		}
		var totals []esm.TotalRecord
		if err := json.Unmarshal(data, &totals); err != nil {
			log.Printf("Couldn't parse %s: %s\n", f.Name(), err.Error())
			return
		}

		byClass := make(map[string]esm.TotalRecord, len(totals))
		for _, t := range totals {
			byClass[t.Component] = t
		}

		fmt.Printf("%s", strings.TrimSuffix(f.Name(), ".json"))
		for _, c := range classes {
			t := byClass[c]
			fmt.Printf(",%.6f,%.6f", t.Capacity, t.Cost)
		}
		fmt.Printf("\n")
	}
}

// seed_sites.go — standalone script to parse a CSV of candidate sites and
// submit them for evaluation via the siterank API.
//
// Usage:
//
//	go run scripts/seed_sites.go -sites sites.csv -api http://localhost:8700 -client seed
//
// CSV format: name,latitude,longitude (header row optional).
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

type evaluationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type site struct {
	name string
	lat  float64
	lon  float64
}

func main() {
	sitesPath := flag.String("sites", "sites.csv", "path to sites CSV file")
	apiURL := flag.String("api", "http://localhost:8700", "siterank API base URL")
	clientID := flag.String("client", "seed", "X-Client-ID header value")
	dryRun := flag.Bool("dry-run", false, "print sites without posting")
	flag.Parse()

	f, err := os.Open(*sitesPath)
	if err != nil {
		log.Fatalf("open sites file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 3
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("parse sites file: %v", err)
	}

	var sites []site
	for i, rec := range records {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if errLat != nil || errLon != nil {
			if i == 0 {
				continue // header row
			}
			log.Printf("skip line %d: bad coordinate", i+1)
			continue
		}
		sites = append(sites, site{name: strings.TrimSpace(rec[0]), lat: lat, lon: lon})
	}

	log.Printf("parsed %d sites from %s", len(sites), *sitesPath)

	if *dryRun {
		for i, s := range sites {
			fmt.Printf("[%d] %s (%.4f, %.4f)\n", i+1, s.name, s.lat, s.lon)
		}
		return
	}

	client := &http.Client{}
	created, skipped := 0, 0
	for _, s := range sites {
		body, _ := json.Marshal(evaluationRequest{Latitude: s.lat, Longitude: s.lon})
		req, err := http.NewRequest("POST", *apiURL+"/api/v1/evaluations", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", s.name, err)
			skipped++
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Client-ID", *clientID)

		resp, err := client.Do(req)
		if err != nil {
			log.Printf("skip %q: %v", s.name, err)
			skipped++
			continue
		}

		if resp.StatusCode == http.StatusCreated {
			var result struct {
				Score         float64 `json:"score"`
				CategoryLabel string  `json:"category_label"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
				log.Printf("%s: score %.3f (%s)", s.name, result.Score, result.CategoryLabel)
			}
			created++
		} else {
			log.Printf("skip %q: status %d", s.name, resp.StatusCode)
			skipped++
		}
		resp.Body.Close()
	}

	log.Printf("done: %d evaluated, %d skipped", created, skipped)
}

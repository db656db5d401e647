package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Smoke-tests a running instance: pulls the roster, then requests a
// handful of predictions so the history and analytics endpoints have
// something to show.
func main() {
	apiURL := flag.String("url", "http://localhost:8080/api/v1", "API base URL")
	count := flag.Int("count", 5, "number of predictions to request")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	fighters, err := fetchFighters(client, *apiURL)
	if err != nil {
		log.Fatalf("failed to fetch fighters: %v", err)
	}
	if len(fighters) < 2 {
		log.Fatalf("need at least 2 fighters, got %d", len(fighters))
	}
	log.Printf("roster has %d fighters", len(fighters))

	for i := 0; i < *count; i++ {
		red := fighters[(i*2)%len(fighters)]
		blue := fighters[(i*2+1)%len(fighters)]
		if red == blue {
			continue
		}

		pred, err := requestPrediction(client, *apiURL, red, blue)
		if err != nil {
			log.Printf("prediction %s vs %s failed: %v", red, blue, err)
			continue
		}
		log.Printf("%s vs %s -> %s (%.1f%%)", red, blue, pred["winner"], pred["confidence"])
	}
}

func fetchFighters(client *http.Client, base string) ([]string, error) {
	resp, err := client.Get(base + "/fighters")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	var fighters []string
	if err := json.NewDecoder(resp.Body).Decode(&fighters); err != nil {
		return nil, err
	}
	return fighters, nil
}

func requestPrediction(client *http.Client, base, red, blue string) (map[string]any, error) {
	payload, err := json.Marshal(map[string]string{
		"red_fighter":  red,
		"blue_fighter": blue,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.Post(base+"/predict", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}

	var pred map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, err
	}
	return pred, nil
}

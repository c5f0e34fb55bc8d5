package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("KNETLABEL_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	fmt.Println("1. Health check...")
	if _, ok := sendRequest(baseURL, "GET", "/healthz", nil); !ok {
		fmt.Println("FAILED: Health check")
		os.Exit(1)
	}
	fmt.Println("PASSED: Health check")

	conceptID := fmt.Sprintf("smoke-%d", time.Now().Unix())
	concept := map[string]interface{}{
		"id":   conceptID,
		"type": "Gene",
		"pid":  "AT5G10140",
		"names": []map[string]interface{}{
			{"name": "AT5G10140", "preferred": true},
			{"name": "FLC"},
		},
		"accessions": []map[string]interface{}{
			{"accession": "AT5G10140", "source": "TAIR"},
		},
	}

	fmt.Println("2. Resolving labels...")
	body, ok := sendRequest(baseURL, "POST", "/labels", map[string]interface{}{
		"concepts":          []interface{}{concept},
		"filter_accessions": true,
	})
	if !ok || !bytes.Contains(body, []byte(`"label":"FLC"`)) {
		fmt.Println("FAILED: Resolve labels")
		os.Exit(1)
	}
	fmt.Println("PASSED: Resolve labels")

	fmt.Println("3. Storing concept...")
	if _, ok := sendRequest(baseURL, "POST", "/concepts", map[string]interface{}{"concept": concept}); !ok {
		fmt.Println("FAILED: Store concept")
		os.Exit(1)
	}
	fmt.Println("PASSED: Store concept")

	fmt.Println("4. Labelling stored concept...")
	if _, ok := sendRequest(baseURL, "GET", "/concepts/"+conceptID+"/label", nil); !ok {
		fmt.Println("FAILED: Label stored concept")
		os.Exit(1)
	}
	fmt.Println("PASSED: Label stored concept")

	fmt.Println("5. Relabelling genes...")
	if _, ok := sendRequest(baseURL, "POST", "/concepts/relabel", map[string]string{"type": "Gene"}); !ok {
		fmt.Println("FAILED: Relabel")
		os.Exit(1)
	}
	fmt.Println("PASSED: Relabel")
}

func sendRequest(baseURL, method, endpoint string, payload interface{}) ([]byte, bool) {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return nil, false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return nil, false
	}
	fmt.Printf("Response: %s\n", string(respBody))

	return respBody, true
}

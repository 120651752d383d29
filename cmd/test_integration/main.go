// Command test_integration smoke-tests a running server.
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
	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server to start
	time.Sleep(2 * time.Second)

	fmt.Println("Starting Integration Test...")

	steps := []struct {
		name     string
		method   string
		endpoint string
		payload  interface{}
	}{
		{"Health", "GET", "/healthz", nil},
		{"Search (too short)", "POST", "/institutions/search", map[string]string{"query": "co"}},
		{"Search", "POST", "/institutions/search", map[string]string{"query": "gimnasio moderno"}},
		{"Validate (local)", "POST", "/institutions/validate", map[string]string{"name": "Gimnasio Moderno"}},
		{"Validate (remote)", "POST", "/institutions/validate", map[string]string{"name": "Colegio Boyacá", "municipality": "Tunja"}},
		{"Validate batch", "POST", "/institutions/validate/batch", map[string]interface{}{
			"items": []map[string]string{
				{"name": "INEM Medellín"},
				{"name": "Colegio Santa Librada", "municipality": "Cali"},
			},
		}},
	}

	for i, step := range steps {
		fmt.Printf("%d. %s...\n", i+1, step.name)
		if !sendRequest(baseURL, step.method, step.endpoint, step.payload) {
			fmt.Printf("FAILED: %s\n", step.name)
			os.Exit(1)
		}
		fmt.Printf("PASSED: %s\n", step.name)
	}
}

func sendRequest(baseURL, method, endpoint string, payload interface{}) bool {
	var body io.Reader
	if payload != nil {
		jsonBytes, _ := json.Marshal(payload)
		body = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		return false
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed with status %d: %s\n", resp.StatusCode, string(respBody))
		return false
	}

	fmt.Printf("Response: %s\n", string(respBody))
	return true
}

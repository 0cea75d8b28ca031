package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

var client = &http.Client{Timeout: 30 * time.Second}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the synastry service")
	flag.Parse()

	fmt.Println("Synastry API Client Example")
	fmt.Println("===========================")

	fmt.Println("\nSearching locations for \"lon\"...")
	var search map[string]interface{}
	get(*baseURL+"/api/locations/search?q="+url.QueryEscape("lon"), &search)
	fmt.Printf("Suggestions: %v\n", search["locations"])

	suffix := time.Now().Format("150405")
	first := createProfile(*baseURL, map[string]interface{}{
		"username":      "ada" + suffix,
		"dateOfBirth":   "1985-09-14",
		"timeOfBirth":   "17:24",
		"placeOfBirth":  "Los Angeles, CA",
		"timeZone":      "America/Los_Angeles",
		"gender":        "woman",
		"lookingForMen": true,
	})
	second := createProfile(*baseURL, map[string]interface{}{
		"username":        "ben" + suffix,
		"dateOfBirth":     "1982-03-02",
		"timeOfBirth":     "08:15",
		"placeOfBirth":    "London, UK",
		"timeZone":        "Europe/London",
		"gender":          "man",
		"lookingForWomen": true,
	})

	fmt.Printf("\nNatal report for %s:\n", first)
	fmt.Println(getText(*baseURL + "/api/profiles/" + first + "/report"))

	fmt.Println("Synastry report:")
	fmt.Println(getText(*baseURL + "/api/profiles/" + first + "/synastry/" + second + "?format=text"))

	var matches map[string]interface{}
	get(*baseURL+"/api/profiles/"+first+"/matches?minAge=18", &matches)
	prettyJSON, _ := json.MarshalIndent(matches, "", "  ")
	fmt.Printf("Matches:\n%s\n", string(prettyJSON))
}

func createProfile(baseURL string, body map[string]interface{}) string {
	payload, _ := json.Marshal(body)
	resp, err := client.Post(baseURL+"/api/profiles", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error creating profile: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Error creating profile (%d): %s\n", resp.StatusCode, data)
		os.Exit(1)
	}
	var profile map[string]interface{}
	json.Unmarshal(data, &profile)
	fmt.Printf("Created profile %v (%v)\n", profile["username"], profile["id"])
	return profile["id"].(string)
}

func get(target string, v interface{}) {
	resp, err := client.Get(target)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", target, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	json.Unmarshal(data, v)
}

func getText(target string) string {
	resp, err := client.Get(target)
	if err != nil {
		fmt.Printf("Error fetching %s: %v\n", target, err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return string(data)
}

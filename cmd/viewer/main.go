// Viewer fetches the global feed from a running server and prints it as a
// table. Read-only companion binary for local poking.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"chirp-lab/domain"
)

type viewerConfig struct {
	ServerURL string `env:"SERVER_URL,default=http://localhost:8080"`
}

func main() {
	// 1. Load config
	_ = godotenv.Load()
	var config viewerConfig
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// 2. Fetch the feed
	resp, err := http.Get(config.ServerURL + "/posts")
	if err != nil {
		log.Fatalf("Failed to reach server: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Server answered %d", resp.StatusCode)
	}

	var feed []domain.EnrichedPost
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		log.Fatalf("Failed to decode feed: %v", err)
	}

	// 3. Render
	fmt.Printf("🐦 %d post(s) from %s\n\n", len(feed), config.ServerURL)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"When", "Author", "Content"})
	table.SetAutoWrapText(false)

	for _, post := range feed {
		author := "somebody"
		if post.AuthorName != nil {
			author = *post.AuthorName
		}
		table.Append([]string{
			post.CreatedAt.Local().Format(time.RFC822),
			color.Green.Sprint("@" + author),
			post.Content,
		})
	}
	table.Render()
}

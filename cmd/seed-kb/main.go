// Command seed-kb loads knowledge-base articles into Redis, either from a
// JSON file or from the built-in default set.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/ctisdesk/autopilot/internal/config"
	"github.com/ctisdesk/autopilot/internal/systems"
	"github.com/ctisdesk/autopilot/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	articles := systems.DefaultArticles()
	if len(os.Args) >= 2 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("read articles file: %v", err)
		}
		articles = nil
		if err := json.Unmarshal(raw, &articles); err != nil {
			log.Fatalf("parse articles file: %v", err)
		}
	}

	opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
	if cfg.RedisTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)
	defer client.Close()

	kb := systems.NewRedisKnowledgeBase(client, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := kb.SeedArticles(ctx, articles); err != nil {
		log.Fatalf("seed articles: %v", err)
	}
	fmt.Printf("seeded %d articles into %s\n", len(articles), cfg.RedisAddr)
}

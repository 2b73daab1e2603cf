// cmd/server/main.go
package main

import (
	"log"
	"log/slog"

	"github.com/sozercan/markdown-analyzer/internal/analyzer"
	"github.com/sozercan/markdown-analyzer/internal/config"
	"github.com/sozercan/markdown-analyzer/internal/llm"
	"github.com/sozercan/markdown-analyzer/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	llmProvider, err := llm.NewOpenAI(&cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	analyzer := analyzer.New(llmProvider)

	srv := server.New(*cfg, analyzer)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

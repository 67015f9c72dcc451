package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Gitanjali1909/pdf-chat/internal/chunker"
	"github.com/Gitanjali1909/pdf-chat/internal/config"
	"github.com/Gitanjali1909/pdf-chat/internal/domain"
	"github.com/Gitanjali1909/pdf-chat/internal/embedding/openai"
	"github.com/Gitanjali1909/pdf-chat/internal/embedding/tfidf"
	"github.com/Gitanjali1909/pdf-chat/internal/llm"
	"github.com/Gitanjali1909/pdf-chat/internal/registry"
	"github.com/Gitanjali1909/pdf-chat/internal/service"
	"github.com/Gitanjali1909/pdf-chat/internal/summarizer"
	"github.com/Gitanjali1909/pdf-chat/internal/tui"
	"github.com/Gitanjali1909/pdf-chat/internal/vectorstore/chromem"
	"github.com/Gitanjali1909/pdf-chat/internal/vectorstore/memory"
	"github.com/Gitanjali1909/pdf-chat/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pdf-chat/config.yaml if not provided)")
	flag.Parse()
	inputs := flag.Args()
	if len(inputs) == 0 {
		fmt.Println("Usage: pdf-chat [--config=config.yaml] file1.pdf [file2.txt ...]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "tfidf", "":
		emb = tfidf.NewEmbedder()
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
			BatchSize: cfg.Embedder.OpenAI.BatchSize,
		})
		if err != nil {
			log.Fatalf("openai embedder init failed: %v", err)
		}
		emb = client
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var st domain.Store
	switch cfg.VectorStore.Type {
	case "memory", "":
		st = memory.NewStore()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		st = qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	case "chromem":
		if cfg.VectorStore.Chromem == nil {
			log.Fatalf("chromem config missing")
		}
		store, err := chromem.NewStore(chromem.Config{
			Path:       cfg.VectorStore.Chromem.Path,
			Collection: cfg.VectorStore.Chromem.Collection,
			Compress:   cfg.VectorStore.Chromem.Compress,
		})
		if err != nil {
			log.Fatalf("chromem store init failed: %v", err)
		}
		st = store
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	reg, err := registry.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("document registry init failed: %v", err)
	}
	defer reg.Close()

	var completer domain.Completer
	client, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKeyEnv:   cfg.LLM.APIKeyEnv,
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		log.Printf("completions disabled: %v", err)
	} else {
		completer = client
	}

	windower, err := chunker.New(cfg.Window.Size, *cfg.Window.Overlap)
	if err != nil {
		log.Fatalf("invalid window config: %v", err)
	}

	svc := service.New(windower, emb, st, service.Options{
		Registry:   reg,
		Completer:  completer,
		Summarizer: summarizer.NewFrequencySummarizer(),
		TopK:       cfg.Retrieval.TopK,
		Bullets:    cfg.Summary.Bullets,
	})

	results, err := svc.IngestFiles(context.Background(), inputs)
	if err != nil {
		log.Fatalf("ingest failed: %v", err)
	}
	var last domain.IngestResult
	indexed := false
	for _, res := range results {
		if res.NoText {
			log.Printf("%s: no extractable text (scanned PDF?)", res.Filename)
			continue
		}
		log.Printf("%s: %d pages, %d chunks indexed", res.Filename, res.Pages, res.ChunksIndexed)
		last = res
		indexed = true
	}
	if !indexed {
		log.Fatalf("no document produced any text to chat with")
	}

	m := tui.New(svc, last.DocumentID, last.Filename, last.Summary, cfg.Retrieval.TopK)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}

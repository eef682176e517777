// Command junior sends one prompt to the best available LLM provider
// and prints the response.
//
// Usage:
//
//	junior -prompt "Summarize the release notes" [-category code] \
//	       [-model openai/gpt-4o] [-settings junior.toml] [-verbose]
//
// Credentials come from the settings file, with ${VAR} values expanded
// from the environment. A .env file in the working directory is loaded
// first when present.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/puntorigen/junior/brain"
	"github.com/puntorigen/junior/docker"
	"github.com/puntorigen/junior/model"
	"github.com/puntorigen/junior/settings"

	_ "github.com/puntorigen/junior/providers"
)

func main() {
	var (
		prompt       = flag.String("prompt", "", "prompt text (required)")
		system       = flag.String("system", "", "system prompt")
		modelID      = flag.String("model", "", "explicit provider/model identifier")
		category     = flag.String("category", "", "task category for model selection")
		settingsPath = flag.String("settings", "junior.toml", "path to the settings file")
		catalogPath  = flag.String("catalog", "", "path to the model catalogue (overrides settings)")
		showUsage    = flag.Bool("usage", false, "log per-model token usage after the call")
		verbose      = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *prompt == "" {
		fmt.Fprintln(os.Stderr, "junior: -prompt is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env")
	}

	if err := run(*prompt, *system, *modelID, *category, *settingsPath, *catalogPath, *showUsage); err != nil {
		slog.Error("junior failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(prompt, system, modelID, category, settingsPath, catalogPath string, showUsage bool) error {
	ctx := context.Background()

	s, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}
	if catalogPath == "" {
		catalogPath = s.Catalog
	}

	catalog, err := model.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	var opts []brain.Option
	if s.HasLocalModels() && catalog.HasLocal() {
		opts = append(opts, brain.WithRuntime(docker.NewManager(s.LocalContainer)))
	}

	b, err := brain.New(ctx, s, catalog, opts...)
	if err != nil {
		return err
	}
	defer b.Close()

	res := b.Prompt(ctx, brain.Query{
		Prompt:   prompt,
		System:   system,
		Model:    modelID,
		Category: category,
	})

	if showUsage {
		for id, u := range b.Usage() {
			slog.Info("usage",
				slog.String("model", id),
				slog.Int("tokens", u.Tokens),
				slog.Int("requests", u.Requests))
		}
	}

	if !res.OK() {
		return fmt.Errorf("no result (%s)", res.Outcome)
	}

	fmt.Println(res.Raw)
	return nil
}

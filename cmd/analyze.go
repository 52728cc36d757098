package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sentiment-trading/internal/repository"
	"sentiment-trading/internal/service"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var analyzeSymbols []string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot analysis batch and print the results",
	Long:  "Analyzes the given symbols (or every symbol in the sentiment store when none are given) and prints the resulting patterns as JSON.",
	Run:   Analyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeSymbols, "symbols", "s", nil, "symbols to analyze, e.g. -s GME,AMC")
}

func Analyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services, err := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache, appDep.notifier)
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	symbols := analyzeSymbols
	if len(symbols) == 0 {
		symbols, err = repo.SentimentRepo.DistinctSymbols(ctx)
		if err != nil {
			log.Fatalf("Failed to list symbols: %v", err)
		}
	}
	if len(symbols) == 0 {
		fmt.Println("No symbols to analyze")
		return
	}

	results := services.PatternService.AnalyzeMany(ctx, symbols, time.Now(), 0)

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal results: %v", err)
	}
	fmt.Println(string(out))
}

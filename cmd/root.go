package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/skyward-group/netscout/internal/airclub"
	"github.com/skyward-group/netscout/internal/config"
	"github.com/skyward-group/netscout/internal/network"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "netscout",
	Short: "Airline Club route-expansion planner",
	Long:  "Ranks candidate airports for expanding an airline network: filters by country openness and distance from HQ, aggregates route competition, scores by Base Opportunity Score.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// buildPlanner wires the Airline Club client and planner from config.
func buildPlanner() (*network.Planner, *airclub.Client) {
	client := airclub.NewClient(airclub.Options{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Cookie:    cfg.API.Cookie,
		Timeout:   time.Duration(cfg.API.TimeoutSecs) * time.Second,
		CacheTTL:  time.Duration(cfg.API.CacheTTLSecs) * time.Second,
		RateLimit: rate.Limit(cfg.API.RateLimit),
		RateBurst: cfg.API.RateBurst,
	})
	planner := network.NewPlanner(client, network.PlannerOptions{
		Concurrency: cfg.Network.Concurrency,
		TopN:        cfg.Network.TopN,
	})
	return planner, client
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

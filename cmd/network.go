package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skyward-group/netscout/internal/airclub"
	"github.com/skyward-group/netscout/internal/network"
)

var (
	runHQCode      string
	runMinOpenness int
	runMaxDistance float64
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Route network planning",
}

var networkRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Find optimal airports for your airline network",
	RunE: func(cmd *cobra.Command, args []string) error {
		planner, _ := buildPlanner()

		maxDistance := runMaxDistance
		if maxDistance <= 0 {
			maxDistance = cfg.Network.DefaultMaxDistanceKm
		}

		res, err := planner.Run(cmd.Context(), network.Params{
			HQCode:        runHQCode,
			MinOpenness:   runMinOpenness,
			MaxDistanceKm: maxDistance,
		})
		switch {
		case eris.Is(err, network.ErrAirportNotFound):
			return eris.Errorf("airport with IATA code %q not found", airclub.NormalizeIATA(runHQCode))
		case eris.Is(err, airclub.ErrUpstream):
			zap.L().Error("upstream fetch failed", zap.Error(err))
			return eris.New("failed to fetch data from the Airline Club API, please try again later")
		case err != nil:
			return err
		}

		fmt.Println(network.FormatTable(res))
		if res.FailedFetches > 0 {
			fmt.Printf("\n(%d competition fetches failed and were scored with zero seats)\n", res.FailedFetches)
		}
		return nil
	},
}

func init() {
	networkRunCmd.Flags().StringVar(&runHQCode, "hq", "", "IATA code of your headquarters airport (e.g. LAX, JFK)")
	networkRunCmd.Flags().IntVar(&runMinOpenness, "min-openness", 0, "minimum country openness (0-10)")
	networkRunCmd.Flags().Float64Var(&runMaxDistance, "max-distance", 0, "maximum distance from HQ in km (default from config)")
	_ = networkRunCmd.MarkFlagRequired("hq")

	networkCmd.AddCommand(networkRunCmd)
	rootCmd.AddCommand(networkCmd)
}

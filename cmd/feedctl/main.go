// Command feedctl prints normalized goalserve feeds and warms the caches.
//
// Usage:
//
//	feedctl fixtures 1204 --season 2023-2024
//	feedctl heatmap 1204 3838001
//	feedctl live --league 1204
//	feedctl today
//	feedctl warm --catalog configs/leagues.yaml --workers 4
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/goalserve-heatmap/internal/app"
	"github.com/riskibarqy/goalserve-heatmap/internal/config"
	"github.com/riskibarqy/goalserve-heatmap/internal/platform/logging"
	"github.com/riskibarqy/goalserve-heatmap/internal/usecase"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type cli struct {
	out      io.Writer
	verbose  bool
	services *app.Services
	cfg      config.Config
	logger   *logging.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "feedctl",
		Short:         "Inspect normalized goalserve feeds",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init()
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log upstream requests to stderr")

	root.AddCommand(c.fixturesCmd())
	root.AddCommand(c.heatmapCmd())
	root.AddCommand(c.feedCmd("live", "Print the live matches feed"))
	root.AddCommand(c.feedCmd("today", "Print today's matches feed"))
	root.AddCommand(c.warmCmd())
	return root
}

func (c *cli) init() error {
	if c.services != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logging.LevelWarn
	if c.verbose {
		level = logging.LevelDebug
	}
	c.logger = logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Output: os.Stderr})
	logging.SetDefault(c.logger)

	services, err := app.NewServices(cfg, c.logger)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.services = services
	return nil
}

func (c *cli) print(payload any) error {
	encoded, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(c.out, string(encoded))
	return err
}

func (c *cli) fixturesCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "fixtures <league-id>",
		Short: "Print a league's fixtures sorted by date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := c.services.Fixtures.Get(cmd.Context(), args[0], season)
			if err != nil {
				return err
			}
			return c.print(list)
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Past season such as 2023-2024; empty reads the current season")
	return cmd
}

func (c *cli) heatmapCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "heatmap <league-id> <match-id>",
		Short: "Print a match's per player heatmap",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.services.Heatmaps.Get(cmd.Context(), args[1], args[0], season)
			if err != nil {
				return err
			}
			return c.print(out)
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Past season such as 2023-2024")
	return cmd
}

func (c *cli) feedCmd(name, short string) *cobra.Command {
	var leagueID string
	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service := c.services.LiveFeed
			if name == "today" {
				service = c.services.TodayFeed
			}

			var (
				out usecase.MatchFeedView
				err error
			)
			if leagueID == "" {
				out, err = service.Get(cmd.Context())
			} else {
				out, err = service.GetByLeague(cmd.Context(), leagueID)
			}
			if err != nil {
				return err
			}
			return c.print(out)
		},
	}
	cmd.Flags().StringVar(&leagueID, "league", "", "Only matches of this league id")
	return cmd
}

func (c *cli) warmCmd() *cobra.Command {
	var (
		catalogPath string
		workers     int
	)
	cmd := &cobra.Command{
		Use:   "warm",
		Short: "Load rosters and fixtures for every catalog league",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			leagues := c.cfg.WarmupLeagues
			if catalogPath != "" {
				catalog, err := config.LoadCatalog(catalogPath)
				if err != nil {
					return err
				}
				leagues = catalog.Targets()
			}
			if len(leagues) == 0 {
				return fmt.Errorf("nothing to warm: pass --catalog or set WARMUP_LEAGUES")
			}

			targets := make([]usecase.WarmupTarget, 0, len(leagues))
			for _, league := range leagues {
				targets = append(targets, usecase.WarmupTarget{LeagueID: league.LeagueID, Season: league.Season})
			}

			warmup := c.services.Warmup
			if workers > 0 {
				warmup = usecase.NewWarmupService(c.services.Rosters, c.services.Fixtures, workers, c.logger)
			}
			result, err := warmup.Warm(cmd.Context(), targets)
			if err != nil {
				return err
			}
			if err := c.print(result); err != nil {
				return err
			}
			if result.FailedCount > 0 {
				return fmt.Errorf("%d of %d targets failed", result.FailedCount, len(result.Tasks))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "YAML league catalog")
	cmd.Flags().IntVar(&workers, "workers", 0, "Worker pool size; 0 uses WARMUP_WORKERS")
	return cmd
}

package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/freecell/internal/config"
	"github.com/robalobadob/freecell/internal/db"
	"github.com/robalobadob/freecell/internal/game"
	"github.com/robalobadob/freecell/internal/httpserver"
	"github.com/robalobadob/freecell/internal/store"
)

var (
	dealSeed int64
	showHint bool

	rootCmd = &cobra.Command{
		Use:   "freecell",
		Short: "Freecell game server and tools",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if lvl, err := zerolog.ParseLevel(config.Load().LogLevel); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
		},
		RunE: runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP game server",
		RunE:  runServe,
	}

	dealCmd = &cobra.Command{
		Use:   "deal",
		Short: "Print the layout dealt for a seed",
		RunE:  runDeal,
	}
)

func init() {
	dealCmd.Flags().Int64Var(&dealSeed, "seed", 1, "deal seed")
	dealCmd.Flags().BoolVar(&showHint, "hint", false, "also print a suggested first move")
	rootCmd.AddCommand(serveCmd, dealCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	conn, err := db.OpenMigrated(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer conn.Close()

	srv := httpserver.New(store.NewMemoryStore(), conn, cfg)
	go srv.Janitor(cmd.Context(), time.Minute, cfg.SessionIdle)
	log.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("starting freecell server")
	return srv.Start(":" + cfg.Port)
}

func runDeal(cmd *cobra.Command, args []string) error {
	g := game.New(dealSeed)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "seed %d\n%s", dealSeed, g.Board.String())
	if showHint {
		if m, ok := g.Hint(); ok {
			fmt.Fprintf(out, "hint: %s -> %s\n", m.From, m.To)
		} else {
			fmt.Fprintln(out, "hint: none")
		}
	}
	return nil
}

// Command empiresim runs the grand-strategy simulation headless: it
// generates a world, advances the calendar day by day, and logs yearly
// summaries. History goes to a SQLite chronicle when -db is set.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LDCODES12/EconGame/internal/chronicle"
	"github.com/LDCODES12/EconGame/internal/game"
	"github.com/LDCODES12/EconGame/internal/world"
)

func main() {
	var (
		seed    = flag.Int64("seed", 0, "world seed (0 picks a random seed)")
		years   = flag.Int("years", 50, "years to simulate")
		width   = flag.Int("width", 30, "map width in hexes")
		height  = flag.Int("height", 20, "map height in hexes")
		nations = flag.Int("nations", 10, "number of nations")
		dbPath  = flag.String("db", "", "chronicle database path (empty disables recording)")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg := game.DefaultConfig()
	cfg.Seed = *seed
	cfg.Nations = *nations
	cfg.MapGen = world.DefaultGenConfig()
	cfg.MapGen.Width = *width
	cfg.MapGen.Height = *height

	state, err := game.New(cfg)
	if err != nil {
		slog.Error("world generation failed", "error", err)
		os.Exit(1)
	}

	if *dbPath != "" {
		hist, err := chronicle.Open(*dbPath, state.Rng().Seed())
		if err != nil {
			slog.Error("failed to open chronicle", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
		state.Historian = hist
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Simulating %d years from %s with %d nations (seed %d).\n",
		*years, state.DateString(), len(state.Nations), state.Rng().Seed())

	events := game.NewEventGenerator()

	totalDays := *years * len(game.MonthNames) * game.DaysPerMonth
	interrupted := false
	for day := 0; day < totalDays; day++ {
		select {
		case sig := <-stop:
			slog.Info("received signal, stopping", "signal", sig)
			interrupted = true
		default:
		}
		if interrupted {
			break
		}

		state.Advance()

		// Headless stand-in for the player: monthly event roll with a
		// random choice.
		if state.Day == 1 && state.Rng().Chance(0.1) {
			if ev := events.Generate(state); ev != nil {
				choice := state.Rng().Intn(len(ev.Options))
				ev.Choose(choice, state)
				slog.Debug("event resolved", "title", ev.Title, "choice", ev.Options[choice].Text)
			}
		}

		if state.Day == 1 && state.Month == 0 {
			slog.Info("new year", "date", state.DateString(),
				"wars", state.Stats.WarsFought,
				"battles", state.Stats.BattlesFought,
				"successions", state.Stats.Successions)
		}
	}

	fmt.Printf("\nFinal state at %s:\n%s", state.DateString(), state.WorldSummary())
	fmt.Printf("Wars: %d  Treaties: %d  Marriages: %d  Battles: %d  Successions: %d\n",
		state.Stats.WarsFought, state.Stats.TreatiesSigned, state.Stats.RoyalMarriages,
		state.Stats.BattlesFought, state.Stats.Successions)
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/iburimskiy/wand-fireworks/internal/audio"
	"github.com/iburimskiy/wand-fireworks/internal/config"
	"github.com/iburimskiy/wand-fireworks/internal/game"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg := config.Default()
	root := buildCLI(&cfg)
	return root.ParseAndRun(context.Background(), args)
}

func buildCLI(cfg *config.Config) *ffcli.Command {
	fs := flag.NewFlagSet("wand-fireworks", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.String("config", "", "config file (flag value pairs, one per line)")

	return &ffcli.Command{
		Name:       "wand-fireworks",
		ShortUsage: "wand-fireworks [flags]",
		ShortHelp:  "Countdown, magic wand and fireworks",
		LongHelp: "Waits for the target time, then unlocks the wand.\n" +
			"Click the wand (or press Space) to cast the spell.\n\n" +
			"Every flag can also be set as WAND_<FLAG> in the environment.",
		FlagSet: fs,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("WAND"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		},
		Exec: func(context.Context, []string) error {
			return execShow(*cfg)
		},
	}
}

func execShow(cfg config.Config) error {
	setupLogging(cfg.LogLevel)

	if cfg.Spell.PickSound {
		path, err := audio.PickSound(cfg.Spell.SoundPath)
		if err != nil {
			slog.Warn("sound dialog failed, keeping default", "err", err)
		} else {
			cfg.Spell.SoundPath = path
		}
	}
	player := audio.NewPlayer(cfg.Spell.SoundPath)
	slog.Debug("spell sound", "path", player.Path())

	g, err := game.New(cfg, player)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func setupLogging(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}

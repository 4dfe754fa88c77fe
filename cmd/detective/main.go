package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/kumarlokesh/detective-quest/internal/casefile"
	"github.com/kumarlokesh/detective-quest/internal/config"
	"github.com/kumarlokesh/detective-quest/internal/console"
	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/logging"
)

const version = "v0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to config file")
	casePath := flag.String("case", "", "Path to a TOML case file (default: built-in mansion)")
	tier := flag.String("tier", "", "Game tier: novice, adventurer or master")
	help := flag.Bool("help", false, "Show help message")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *help {
		showHelp()
		os.Exit(0)
	}
	if *showVersion {
		fmt.Printf("Detective Quest %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *tier != "" {
		cfg.Game.Tier = *tier
	}
	if *casePath != "" {
		cfg.Game.CaseFile = *casePath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log)

	c, err := loadCase(cfg.Game.CaseFile, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load case")
	}

	command := "play"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	switch command {
	case "play":
		handlePlay(cfg, c, logger)
	case "map":
		handleMap(c, logger)
	case "suspects":
		handleSuspects(c, logger)
	case "config":
		handleConfig(cfg)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	helpText := `Detective Quest

Usage:
  detective [flags] [command]

Flags:
  --config string   Path to config file
  --case string     Path to a TOML case file
  --tier string     novice, adventurer or master
  --help            Show this help message
  --version         Show version information

Commands:
  play              Explore the mansion and accuse a suspect (default)
  map               Print the mansion map
  suspects          Print the suspects and the clues against them
  config            Show current configuration
`
	fmt.Print(helpText)
}

func loadCase(path string, logger zerolog.Logger) (*casefile.Case, error) {
	if path == "" {
		logger.Debug().Msg("Using built-in case")
		return casefile.Default(), nil
	}
	c, err := casefile.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("path", path).Str("title", c.Title).Int("rooms", len(c.Rooms)).Msg("Loaded case file")
	return c, nil
}

func handlePlay(cfg *config.Config, c *casefile.Case, logger zerolog.Logger) {
	tree, table, err := c.Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build case")
	}

	s := game.NewSession(tree,
		game.WithTier(cfg.Tier()),
		game.WithThreshold(cfg.Game.MinClues),
		game.WithLogger(logger),
	)

	con := console.New(os.Stdin, os.Stdout, logger)
	if _, err := con.Play(s, console.Case{Table: table, Roster: c.Roster()}); err != nil {
		logger.Fatal().Err(err).Msg("Game aborted")
	}
}

func handleMap(c *casefile.Case, logger zerolog.Logger) {
	tree, _, err := c.Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build case")
	}
	console.PrintMap(os.Stdout, tree)
}

func handleSuspects(c *casefile.Case, logger zerolog.Logger) {
	_, table, err := c.Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build case")
	}
	console.PrintSuspects(os.Stdout, c.Roster(), table)
}

func handleConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Printf("Tier: %s\n", cfg.Game.Tier)
	if cfg.Game.CaseFile != "" {
		fmt.Printf("Case file: %s\n", cfg.Game.CaseFile)
	} else {
		fmt.Println("Case file: [built-in]")
	}
	fmt.Printf("Clues needed to convict: %d\n", cfg.Game.MinClues)
	fmt.Printf("Log: %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Printf("Server: %s\n", cfg.Server.Addr())
	fmt.Printf("Session backend: %s (ttl %s)\n", cfg.Session.Backend, cfg.Session.TTL)
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/flashfiber/ftthmap/internal/config"
	"github.com/flashfiber/ftthmap/internal/kml"
	"github.com/flashfiber/ftthmap/internal/logger"
	"github.com/flashfiber/ftthmap/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config"  env:"CONFIG_FILE" description:"Path to configuration file (default: kml2geojson.yaml in the repository root)"`
	Lenient    bool   `short:"l" long:"lenient" env:"LENIENT"     description:"Skip placemarks with non-numeric coordinates instead of failing"`

	Args struct {
		Input string `positional-arg-name:"kml-file" description:"KML file to convert (default: MUZU.kml in the repository root, then ~/Desktop/MUZU.kml)"`
	} `positional-args:"yes"`
}

func main() {
	envErr := godotenv.Load()

	root, err := config.RepoRoot()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to locate repository root")
	}

	code := run(os.Args[1:], os.Stdout, root)
	if envErr != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}

	os.Exit(code)
}

// run converts the KML selected by args for the repository at root and
// returns the process exit status. The summary line or the not-found
// guidance goes to stdout.
func run(args []string, stdout io.Writer, root string) int {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile, root)
	if err != nil {
		return failed(err, "Failed to load configuration")
	}

	input, err := cfg.ResolveInput(opts.Args.Input)
	if err != nil {
		if eris.Is(err, config.ErrInputNotFound) {
			log.Debug().Strs("candidates", cfg.Inputs).Msg("No default input found")
			fmt.Fprintln(stdout, "MUZU.kml not found. Usage: kml2geojson <path/MUZU.kml>")
			return 1
		}
		return failed(err, "Failed to resolve input")
	}

	count, err := processor.ConvertKML(input, cfg.Output, kml.Options{
		Unnamed: cfg.Unnamed,
		Lenient: opts.Lenient,
	})
	if err != nil {
		return failed(err, "Conversion failed")
	}

	fmt.Fprintf(stdout, "OK: %d features -> %s\n", count, cfg.Output)

	return 0
}

// failed logs err with its stack trace and returns exit status 1.
func failed(err error, msg string) int {
	log.Error().
		Err(err).
		Str("trace", eris.ToString(err, true)).
		Msg(msg)

	return 1
}

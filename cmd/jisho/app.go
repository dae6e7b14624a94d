// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-jisho/client"
	"github.com/ianlewis/go-jisho/internal/cache"
	"github.com/ianlewis/go-jisho/internal/config"
	"github.com/ianlewis/go-jisho/internal/prompt"
	"github.com/ianlewis/go-jisho/internal/render"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error or
	// when usage is printed.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError

	// ExitCodeLookupError is the exit code when a lookup fails.
	ExitCodeLookupError
)

// ErrJisho is a parent error for all command errors.
var ErrJisho = errors.New("jisho")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrJisho)

// ErrUsage indicates that usage was printed instead of running a lookup.
var ErrUsage = fmt.Errorf("%w: usage", ErrJisho)

// ErrLookup indicates that looking up a term failed.
var ErrLookup = fmt.Errorf("%w: lookup", ErrJisho)

var copyrightNames = []string{
	"2026 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// but we don't use commands.
	//
	// This is done because `jisho --help foo` will display a
	// "command foo not found" error instead of the help.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse), errors.Is(err, ErrUsage):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrLookup):
		return ExitCodeLookupError
	default:
		return ExitCodeUnknownError
	}
}

func newJishoApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Look up a term, English or Japanese, on jisho.org.",
		UsageText: strings.Join([]string{
			"jisho [OPTIONS] TERM",
			"jisho [OPTIONS] -i [TERM]",
		}, "\n"),
		Description: strings.Join([]string{
			"jisho.org client written in Go.",
			"http://github.com/ianlewis/go-jisho",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:               "interactive",
				Usage:              "run interactively, faster when looking up multiple terms",
				Aliases:            []string{"i"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "reverse",
				Usage:              "show results top to bottom",
				Aliases:            []string{"r"},
				DisableDefaultText: true,
			},
			&cli.StringFlag{
				Name:    "color",
				Usage:   "enable or disable color output: auto, always or never. auto enables color for TTYs",
				Aliases: []string{"c"},
				Value:   "auto",
			},
			&cli.StringFlag{
				Name:    "format",
				Usage:   "output format: text or table",
				Aliases: []string{"f"},
				Value:   "text",
			},
			&cli.StringFlag{
				Name:      "config",
				Usage:     "read configuration from `FILE`",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "cache",
				Usage:     "cache search results in the sqlite database `FILE`",
				TakesFile: true,
			},
			&cli.DurationFlag{
				Name:  "cache-ttl",
				Usage: "use cached results for `DURATION`",
				Value: config.Default().CacheTTL,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "give up on a lookup after `DURATION`",
				Value: config.Default().Timeout,
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "dictionary site `URL`",
				Value: config.Default().BaseURL,
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug logs",
				Aliases:            []string{"v"},
				DisableDefaultText: true,
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		// Errors are converted to exit codes by main.
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			// An invalid color is reported before usage.
			if c.IsSet("color") {
				if _, err := colorEnabled(c.String("color"), false); err != nil {
					return err
				}
			}

			term := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if c.Bool("help") || (!c.Bool("interactive") && term == "") {
				check(cli.ShowAppHelp(c))
				return ErrUsage
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			return runLookup(c, cfg, term)
		},
	}
}

// loadConfig loads the config file and applies flags that were set
// explicitly.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJisho, err)
	}

	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}
	if c.IsSet("reverse") {
		cfg.Reverse = c.Bool("reverse")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("timeout") {
		cfg.Timeout = c.Duration("timeout")
	}
	if c.IsSet("cache") {
		cfg.Cache = c.String("cache")
	}
	if c.IsSet("cache-ttl") {
		cfg.CacheTTL = c.Duration("cache-ttl")
	}

	return cfg, nil
}

func runLookup(c *cli.Context, cfg *config.Config, term string) error {
	stdout := c.App.Writer
	stderr := c.App.ErrWriter

	tty := isTerminal(stdout)
	useColor, err := colorEnabled(cfg.Color, tty)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	level := slog.LevelWarn
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := &client.Options{
		BaseURL:   cfg.BaseURL,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}

	if cfg.Cache != "" {
		pages, err := cache.Open(cfg.Cache, cfg.CacheTTL)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrJisho, err)
		}
		defer pages.Close()

		if n, err := pages.Purge(c.Context); err != nil {
			logger.Warn("purging cache", slog.String("error", err.Error()))
		} else if n > 0 {
			logger.Debug("purged cache", slog.Int64("pages", n))
		}
		opts.Cache = pages
	}

	jc, err := client.New(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}

	l := &lookup{
		client: jc,
		renderer: render.New(stdout, &render.Options{
			Color:   useColor,
			Reverse: cfg.Reverse,
			Format:  format,
		}),
		prompter:    prompt.New(c.App.Reader, stdout),
		stdout:      stdout,
		stderr:      stderr,
		tty:         tty,
		color:       useColor,
		timeout:     cfg.Timeout,
		interactive: c.Bool("interactive"),
		signals:     []os.Signal{os.Interrupt},
	}
	return l.run(c.Context, term)
}

// colorEnabled returns whether color output should be used for the color
// option value.
func colorEnabled(opt string, tty bool) (bool, error) {
	switch opt {
	case "auto":
		_, noColor := os.LookupEnv("NO_COLOR")
		return tty && !noColor, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("%w: invalid value for color: %q", ErrFlagParse, opt)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\n%s\n\n%s\n",
		c.App.Name,
		versionInfo.GitVersion,
		c.App.Copyright,
		versionInfo.String(),
	)
	if err != nil {
		return fmt.Errorf("%w: printing version: %w", ErrJisho, err)
	}
	return nil
}

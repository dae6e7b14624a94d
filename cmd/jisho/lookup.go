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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ianlewis/go-jisho/client"
	"github.com/ianlewis/go-jisho/internal/prompt"
	"github.com/ianlewis/go-jisho/internal/render"
)

const promptLabel = "Search term: "

// clearLine erases the current terminal line and returns the cursor to
// the first column.
const clearLine = "\x1b[2K\r"

type lookup struct {
	client   *client.Client
	renderer *render.Renderer
	prompter prompt.Prompter

	stdout io.Writer
	stderr io.Writer

	// tty is true if stdout is a terminal.
	tty   bool
	color bool

	timeout     time.Duration
	interactive bool

	// signals interrupt the current search only. Outside of a search they
	// keep their default behavior.
	signals []os.Signal
}

// run looks up term, or terms read from the prompter, until an empty term
// is entered or input ends. Only the first term is looked up unless running
// interactively.
func (l *lookup) run(ctx context.Context, term string) error {
	needInput := term == ""

	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrJisho, err)
		}

		raw := term
		if needInput {
			var err error
			raw, err = l.prompter.Prompt(promptLabel)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("%w: %w", ErrJisho, err)
			}
		}

		current := strings.TrimSpace(raw)
		if current == "" {
			break
		}
		needInput = true

		if err := l.search(ctx, current); err != nil {
			lastErr = err
			fmt.Fprintln(l.stderr, "An error occurred fetching the results.")
			fmt.Fprintln(l.stderr, err)
		}

		if !l.interactive {
			break
		}
	}

	if lastErr != nil && !l.interactive {
		return fmt.Errorf("%w: %w", ErrLookup, lastErr)
	}
	return nil
}

func (l *lookup) search(ctx context.Context, term string) error {
	if l.tty {
		searching := color.New(color.FgYellow)
		if l.color {
			searching.EnableColor()
		} else {
			searching.DisableColor()
		}
		searching.Fprint(l.stdout, "Searching...")
	}

	if len(l.signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, l.signals...)
		defer stop()
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	entries, err := l.client.Lookup(ctx, term)

	if l.tty {
		fmt.Fprint(l.stdout, clearLine)
	}
	if err != nil {
		return err
	}

	return l.renderer.Render(entries)
}

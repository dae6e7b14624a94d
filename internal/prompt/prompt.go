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

// Package prompt reads search terms from the user.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Prompter prompts for a line of input.
type Prompter interface {
	// Prompt writes label and returns the line entered by the user. It
	// returns io.EOF when there is no more input.
	Prompt(label string) (string, error)
}

// New returns a Prompter reading from in and writing to out. A line editor
// is used if in is a terminal.
func New(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return &termPrompter{in: in, out: out}
	}
	return &linePrompter{
		s:   bufio.NewScanner(in),
		out: out,
	}
}

// linePrompter reads lines from a non-interactive reader.
type linePrompter struct {
	s   *bufio.Scanner
	out io.Writer
}

func (p *linePrompter) Prompt(label string) (string, error) {
	if _, err := io.WriteString(p.out, label); err != nil {
		return "", err
	}
	if !p.s.Scan() {
		if err := p.s.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		_, _ = io.WriteString(p.out, "\n")
		return "", io.EOF
	}
	if _, err := io.WriteString(p.out, "\n"); err != nil {
		return "", err
	}
	return p.s.Text(), nil
}

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

// termPrompter reads lines using a terminal line editor.
type termPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p *termPrompter) Prompt(label string) (string, error) {
	prog := tea.NewProgram(newModel(label),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	m, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	res, _ := m.(model)
	if res.eof {
		return "", io.EOF
	}
	return res.input.Value(), nil
}

type model struct {
	input textinput.Model
	done  bool
	eof   bool
}

func newModel(label string) model {
	ti := textinput.New()
	ti.Prompt = label
	ti.PromptStyle = labelStyle
	ti.Focus()
	return model{input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.eof = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.done || m.eof {
		// Leave the entered line on screen.
		return m.input.Prompt + m.input.Value() + "\n"
	}
	return m.input.View()
}

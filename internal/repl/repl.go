// Package repl implements the interactive line-command mode the CLI enters
// when invoked without arguments.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hubscout/hubscout/internal/export"
	"github.com/hubscout/hubscout/internal/fetcher"
	"github.com/hubscout/hubscout/internal/ui"
)

const prompt = "🔍 > "

// Loop reads line commands, runs the matching preset search and prints the
// results. After every non-empty result set it offers a CSV export.
type Loop struct {
	Searcher *fetcher.ModelSearcher
	In       io.Reader
	Out      io.Writer

	// confirmExport and exportCSV are swapped out in tests; the defaults
	// render a huh prompt and write a real file.
	confirmExport func(filename string) (bool, error)
	exportCSV     func(out io.Writer, records []fetcher.Record, path string) error
}

// New creates a Loop bound to stdin/stdout.
func New(searcher *fetcher.ModelSearcher) *Loop {
	return &Loop{
		Searcher:      searcher,
		In:            os.Stdin,
		Out:           os.Stdout,
		confirmExport: confirmExport,
		exportCSV:     export.CSV,
	}
}

// Run executes the loop until the user quits, closes stdin or interrupts.
// All three ends are deliberate, so Run returns nil for them.
func (l *Loop) Run(ctx context.Context) error {
	l.printWelcome()

	// The reader hands over one line per request. Keeping it demand-driven
	// leaves stdin free between commands, which the export confirmation
	// prompt needs.
	requests := make(chan struct{})
	lines := make(chan string)
	go l.readLines(requests, lines)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	for {
		fmt.Fprint(l.Out, prompt)
		requests <- struct{}{}

		select {
		case <-interrupts:
			fmt.Fprintf(l.Out, "\n%s\n", goodbye())
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(l.Out)
				return nil
			}
			if done := l.handle(ctx, line); done {
				return nil
			}
		}
	}
}

// readLines reads one line from In per request and closes lines on EOF.
func (l *Loop) readLines(requests <-chan struct{}, lines chan<- string) {
	scanner := bufio.NewScanner(l.In)
	for range requests {
		if !scanner.Scan() {
			close(lines)
			return
		}
		lines <- scanner.Text()
	}
}

// handle processes one command line and reports whether the loop should end.
func (l *Loop) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	lower := strings.ToLower(line)

	if line == "" || lower == "quit" || lower == "exit" || lower == "q" {
		return true
	}
	if lower == "help" || lower == "h" {
		l.printHelp()
		return false
	}

	fields := strings.Fields(line)
	command := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = fields[1]
	}

	var records []fetcher.Record
	switch {
	case command == "search" && arg != "":
		records = l.Searcher.SearchByName(ctx, arg)
	case command == "task" && arg != "":
		records = l.Searcher.SearchByTask(ctx, arg, false)
	case command == "org" && arg != "":
		records = l.Searcher.SearchByOrg(ctx, arg)
	case command == "popular":
		records = l.Searcher.Popular(ctx, arg)
	case command == "recent":
		records = l.Searcher.Recent(ctx, arg)
	default:
		fmt.Fprintf(l.Out, "%s Unknown command. Type 'help' for available commands.\n", ui.GetCrossMark())
		return false
	}

	fmt.Fprint(l.Out, ui.RenderResults(records, ui.TableOptions{}))
	if len(records) == 0 {
		return false
	}

	done := l.offerExport(command, arg, records)
	fmt.Fprintln(l.Out)
	return done
}

// offerExport asks whether to save the results and writes the CSV on a yes.
// Aborting the prompt ends the session, the same as interrupting at the
// command prompt.
func (l *Loop) offerExport(command, arg string, records []fetcher.Record) bool {
	filename := exportFilename(command, arg)

	confirmed, err := l.confirmExport(filename)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintf(l.Out, "\n%s\n", goodbye())
			return true
		}
		fmt.Fprintf(l.Out, "%s Export prompt failed: %v\n", ui.GetCrossMark(), err)
		return false
	}
	if !confirmed {
		return false
	}

	if err := l.exportCSV(l.Out, records, filename); err != nil {
		fmt.Fprintf(l.Out, "%s Export failed: %v\n", ui.GetCrossMark(), err)
	}
	return false
}

// exportFilename names the offered CSV after the command that produced the
// results; commands run without an argument get "all".
func exportFilename(command, arg string) string {
	if arg == "" {
		arg = "all"
	}
	return fmt.Sprintf("hubscout_%s_%s.csv", command, arg)
}

func confirmExport(filename string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("💾 Export to CSV?").
				Description(fmt.Sprintf("Results will be written to %s.", filename)).
				Value(&confirmed).
				Affirmative("Yes").
				Negative("No"),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}

func goodbye() string {
	return "👋 Goodbye!"
}

func (l *Loop) printWelcome() {
	fmt.Fprintln(l.Out, ui.Title.Render("🔍 Hugging Face Model Search Tool"))
	fmt.Fprintln(l.Out, ui.Dim.Render(strings.Repeat("=", 50)))
	fmt.Fprintln(l.Out, "Commands:")
	fmt.Fprintln(l.Out, "  search <name>     - Search by model name")
	fmt.Fprintln(l.Out, "  task <task>       - Search by task type")
	fmt.Fprintln(l.Out, "  org <org>         - Search by organization")
	fmt.Fprintln(l.Out, "  popular [task]    - Get popular models")
	fmt.Fprintln(l.Out, "  recent [task]     - Get recent models")
	fmt.Fprintln(l.Out, "  help              - Show this help")
	fmt.Fprintln(l.Out, "  quit              - Exit")
	fmt.Fprintln(l.Out)
}

func (l *Loop) printHelp() {
	fmt.Fprintln(l.Out, "\nAvailable commands:")
	fmt.Fprintln(l.Out, "  search bert            # Search for BERT models")
	fmt.Fprintln(l.Out, "  task text-generation   # Get text generation models")
	fmt.Fprintln(l.Out, "  org microsoft          # Get Microsoft models")
	fmt.Fprintln(l.Out, "  popular                # Most downloaded models")
	fmt.Fprintln(l.Out, "  recent                 # Recent models")
}

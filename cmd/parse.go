package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbeiter/tw2002-client/internal/database"
	"github.com/rbeiter/tw2002-client/internal/parser"
	"github.com/rbeiter/tw2002-client/internal/queue"
)

var parseCmd = &cobra.Command{
	Use:   "parse <logfile>...",
	Short: "Parse game transcripts into the database",
	Long: `Reads one or more session transcript files, in the order given, and
records every port, warp, planet, fighter deployment and plotted route
they contain. Transcripts may contain raw ANSI terminal output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(viper.GetString("database"), args, viper.GetInt("verbose"))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(dbPath string, filenames []string, verbosity int) error {
	// refuse to start on an unreadable input rather than discover it after
	// a partial ingest
	files := make([]*os.File, 0, len(filenames))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, name := range filenames {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		files = append(files, f)
	}

	store, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	q := queue.Start(store, queue.WithSettleHook(flashTerminal))
	session := parser.NewSession(q, parser.WithTrace(verbosity >= 3))

	var scanErr error
	for _, f := range files {
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			session.ProcessLine(scanner.Bytes())
		}
		if err := scanner.Err(); err != nil {
			scanErr = fmt.Errorf("error reading %s: %w", f.Name(), err)
			break
		}
	}

	if pending := q.Close(); pending > 0 {
		fmt.Println("Parsing complete.\nWaiting for database writes to finish...")
	}
	if err := q.Wait(); err != nil {
		return err
	}

	return scanErr
}

// flashTerminal briefly inverts the screen so the operator can see the
// write queue has caught up. Suppressed when stdout is not a terminal.
func flashTerminal() {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\x1b[?5h\x1b[?5l")
	}
}

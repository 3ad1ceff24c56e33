package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbeiter/tw2002-client/internal/database"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize what the database knows about the universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(viper.GetString("database"), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(dbPath string, w io.Writer) error {
	store, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Counts()
	if err != nil {
		return err
	}

	header := color.New(color.Bold)
	fmt.Fprintln(w, header.Sprint("Universe knowledge:"))
	fmt.Fprintf(w, "  Known sectors:    %6d\n", stats.KnownSectors)
	fmt.Fprintf(w, "  Explored sectors: %6d\n", stats.Explored)
	fmt.Fprintf(w, "  Warps:            %6d\n", stats.Warps)
	fmt.Fprintf(w, "  Ports:            %6d\n", stats.Ports)
	fmt.Fprintf(w, "  Planets:          %6d\n", stats.Planets)
	fmt.Fprintf(w, "  Fighter sectors:  %6d\n", stats.Fighters)

	if stats.KnownSectors > 0 {
		pct := 100 * float64(stats.Explored) / float64(stats.KnownSectors)
		fmt.Fprintf(w, "  Explored:         %5.1f%% of known sectors\n", pct)
	}
	return nil
}

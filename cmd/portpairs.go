package cmd

import (
	"fmt"
	"io"
	"regexp"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbeiter/tw2002-client/internal/database"
	"github.com/rbeiter/tw2002-client/internal/graph"
	"github.com/rbeiter/tw2002-client/internal/trade"
)

var patternRe = regexp.MustCompile(`^[BbSs?]{3}$`)

var portPairsCmd = &cobra.Command{
	Use:   "portpairs",
	Short: "Find pairs of adjacent ports with complementary trade stances",
	Long: `Finds pairs of adjacent ports where one port matches the requested
buy/sell pattern and its neighbor matches the opposite. The pattern lists
the desired stance per commodity in the order Ore, Org, Equ: B to sell to
a port that buys, S to buy from a port that sells, ? for don't care.
For example "?S?" finds ports selling Organics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, _ := cmd.Flags().GetString("port-type")
		if err := validatePattern(pattern); err != nil {
			return err
		}
		return runPortPairs(viper.GetString("database"), pattern, cmd.OutOrStdout())
	},
}

func init() {
	portPairsCmd.Flags().StringP("port-type", "p", "?BS",
		`desired port pattern over {B,S,?}, one letter per commodity (Ore, Org, Equ)`)
	rootCmd.AddCommand(portPairsCmd)
}

func validatePattern(pattern string) error {
	if !patternRe.MatchString(pattern) {
		return fmt.Errorf(`invalid port type %q: enter a 3 character code consisting only of "?", "B", or "S", e.g., "S?B" for a port that sells Fuel Ore and buys Equipment`, pattern)
	}
	return nil
}

func runPortPairs(dbPath, pattern string, w io.Writer) error {
	store, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	pairs, err := trade.FindPairs(store, pattern)
	if err != nil {
		return err
	}

	planner, err := graph.Load(store)
	if err != nil {
		return err
	}
	reporter, err := trade.NewReporter(store, planner)
	if err != nil {
		return err
	}

	return reporter.Write(w, pairs)
}

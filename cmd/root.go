package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rbeiter/tw2002-client/internal/log"
)

const defaultDatabase = "tw2002.db"

var rootCmd = &cobra.Command{
	Use:   "tw2002",
	Short: "TW2002 log parsing and trade analysis utility",
	Long: `Parses Trade Wars 2002 session transcripts into a SQLite database of
ports, warps, planets and fighter deployments, and answers navigational
and trading questions against it.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(viper.GetInt("verbose"), viper.GetString("log-file"))
	},
}

// Execute runs the command tree. Called once from main.
func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("database", "d", defaultDatabase,
		fmt.Sprintf("SQLite database file to use; default %q", defaultDatabase))
	rootCmd.PersistentFlags().IntP("verbose", "v", 0, "verbosity level for diagnostic output (0-3)")
	rootCmd.PersistentFlags().String("log-file", "", "write diagnostics to a rotated file instead of stderr")

	viper.SetEnvPrefix("TW2002")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, flag := range []string{"database", "verbose", "log-file"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

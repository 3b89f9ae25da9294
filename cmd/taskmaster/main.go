// Package main implements the taskmaster CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code.
func run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:          "taskmaster",
	Short:        "TaskMaster - a terminal task dashboard",
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDashboard,
}

var (
	configPath string
	dbPath     string
	logPath    string
)

func init() {
	addPathFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(exportCmd, clearCmd)
}

// addPathFlags registers the file locations shared by every command.
func addPathFlags(fs *pflag.FlagSet) {
	fs.StringVar(&configPath, "config", "", "config file (default ~/.config/taskmaster/config.yaml)")
	fs.StringVar(&dbPath, "db", "", "SQLite database file (overrides storage.path)")
	fs.StringVar(&logPath, "log-file", "", "log file (default taskmaster.log next to the database)")
}

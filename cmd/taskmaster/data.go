package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the saved tasks as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		return e.persistence.Export(cmd.Context(), cmd.OutOrStdout())
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved tasks and the dark-mode setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !clearYes {
			return fmt.Errorf("refusing to clear without --yes")
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.persistence.Clear(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cleared saved data.")
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip the safety check")
}

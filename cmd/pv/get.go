package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(deleteCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a paper from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a paper from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	rec, err := db.GetByID(args[0])
	if err != nil {
		exitWithError(ExitError, "getting paper: %v", err)
	}
	if rec == nil {
		exitWithError(ExitDataError, "paper not found: %s", args[0])
	}

	if humanOutput {
		printRecordHuman(*rec)
		return nil
	}
	return outputJSON(rec)
}

func runDelete(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenLibrary(cfg)
	defer db.Close()

	deleted, err := db.Delete(args[0])
	if err != nil {
		exitWithError(ExitError, "deleting paper: %v", err)
	}
	if !deleted {
		exitWithError(ExitDataError, "paper not found: %s", args[0])
	}

	if humanOutput {
		success("Deleted %s", args[0])
		return nil
	}
	return outputJSON(StatusResponse{Status: "deleted", ID: args[0]})
}

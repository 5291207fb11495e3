package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SaschaSchweitzer/persons/cmd/persons/internal"
	"github.com/SaschaSchweitzer/persons/exporter"
	"github.com/SaschaSchweitzer/persons/store"
	"github.com/SaschaSchweitzer/persons/tabular"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage stored runs",
	Long:  "List stored disambiguation runs and export their results.",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show [run id]",
	Short: "Print a stored run as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.PersistentFlags().String("store", "sqlite", "Store backend (sqlite/badger/postgres)")
	runsCmd.PersistentFlags().String("store-path", "", "Path of the run store")
	runsCmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
}

// GetRunsCommand returns the runs command.
func GetRunsCommand() *cobra.Command {
	return runsCmd
}

func openRunsStore(cmd *cobra.Command) (store.Store, error) {
	config, err := internal.LoadConfig("")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	internal.InitColor(config.Output.Color)

	backend, _ := cmd.Flags().GetString("store")
	return openStore(cmd, config, backend)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	s, err := openRunsStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	infos, err := s.ListRuns(cmd.Context())
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		internal.PrintInfo("ℹ No stored runs\n")
		return nil
	}
	for _, info := range infos {
		internal.Printf("%s  %s  %d rows\n",
			info.ID, info.CreatedAt.Format("2006-01-02 15:04:05"), info.RowCount)
	}
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	s, err := openRunsStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.LoadRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	result := &tabular.ResultTable{Columns: run.Columns, Rows: run.Rows}
	content, err := exporter.NewCSVExporter().ExportToString(result)
	if err != nil {
		return err
	}
	fmt.Print(content)
	return nil
}

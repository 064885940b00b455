package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"adclip/internal/config"
	"adclip/internal/store"
)

var reportCmd = &cobra.Command{
	Use:       "report [ontology|playbook]",
	Short:     "Print the ontology or playbook report from the snapshot store",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"ontology", "playbook"},
	RunE:      runReport,
}

var reportStorePath string

func init() {
	reportCmd.Flags().StringVar(&reportStorePath, "store", config.Default().StorePath, "path to the knowledge snapshot database")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(reportStorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	kind := ""
	if len(args) == 1 {
		kind = args[0]
	}

	if kind == "" || kind == "ontology" {
		master, err := st.LoadOntology()
		if err != nil {
			return err
		}
		fmt.Println(master.Report())
	}

	if kind == "" || kind == "playbook" {
		pb, err := st.LoadPlaybook()
		if err != nil {
			return err
		}
		fmt.Println(pb.Report())
	}

	return nil
}

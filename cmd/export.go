package cmd

import (
	"fmt"
	"os"

	"github.com/mkraj/apiprobe/internal/export"
	"github.com/mkraj/apiprobe/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Flatten captured snapshots into CSV tables",
	Long: `Export reads every snapshot from the log directory (or the SQLite
archive) and flattens them into radios.csv and devices.csv. Use --stdout to
print the tables instead of writing files, or --xlsx to also emit a
spreadsheet report.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringP("log-dir", "d", "./logs", "Snapshot directory")
	exportCmd.Flags().String("database", "", "Read snapshots from a SQLite archive instead")
	exportCmd.Flags().Bool("stdout", false, "Print tables to stdout instead of writing files")
	exportCmd.Flags().String("xlsx", "", "Also write an XLSX report to this path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	logDir, _ := cmd.Flags().GetString("log-dir")
	database, _ := cmd.Flags().GetString("database")
	toStdout, _ := cmd.Flags().GetBool("stdout")
	xlsxPath, _ := cmd.Flags().GetString("xlsx")

	var tables *export.Tables
	if database != "" {
		s, err := store.Open(cmd.Context(), database)
		if err != nil {
			return err
		}
		defer s.Close()

		snaps, err := s.List(cmd.Context())
		if err != nil {
			return err
		}
		tables = export.FromStore(snaps, logger)
	} else {
		var err error
		tables, err = export.FromDir(logDir, logger)
		if err != nil {
			return err
		}
	}

	if toStdout {
		if err := export.WriteCSV(os.Stdout, export.RadioHeaders, tables.Radios); err != nil {
			return err
		}
		if err := export.WriteCSV(os.Stdout, export.DeviceHeaders, tables.Devices); err != nil {
			return err
		}
	} else {
		if err := export.WriteCSVFile("radios.csv", export.RadioHeaders, tables.Radios); err != nil {
			return err
		}
		if err := export.WriteCSVFile("devices.csv", export.DeviceHeaders, tables.Devices); err != nil {
			return err
		}
	}

	if xlsxPath != "" {
		if err := export.WriteXLSX(xlsxPath, tables); err != nil {
			return err
		}
	}

	fmt.Println("Done!")
	return nil
}

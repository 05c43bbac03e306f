package commands

import (
	"fmt"
	"io"
	"os"

	"employee_management/services"

	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var (
		reportType, month, output string
		year                      int
	)

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Writes the salary or attendance report as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}

			filter := services.ReportFilter{Month: month, Year: year}
			return app.Services.Reports.WriteCSV(cmd.Context(), w, services.ReportType(reportType), filter)
		},
	}

	reportCmd.Flags().StringVar(&reportType, "type", string(services.ReportSalary), "report type: salary or attendance")
	reportCmd.Flags().StringVar(&month, "month", "", "only include this month, e.g. March")
	reportCmd.Flags().IntVar(&year, "year", 0, "only include this year")
	reportCmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")

	return reportCmd
}

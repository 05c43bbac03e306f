package commands

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"employee_management/services"
	"employee_management/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importColumns are the CSV headers the importer understands. Unknown headers are ignored.
var importColumns = []string{
	"full_name", "email", "contact_number", "account_number", "parent_name",
	"parent_contact", "esic_number", "pf_number", "department", "position", "basic_salary",
}

type importJob struct {
	line int
	row  []string
	in   services.ImportEmployeeInput
}

type importFailure struct {
	job *importJob
	err error
}

func newImportCmd(app *App) *cobra.Command {
	var (
		csvFilePath, csvErrFilePath, password string
		numOfWorkers                         int
		approve                              bool
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Registers employees from a CSV file",
		Long:  "Registers employees from a CSV file with the headers: " + strings.Join(importColumns, ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			file, err := os.Open(csvFilePath)
			if err != nil {
				return fmt.Errorf("couldn't open the csv file: %w", err)
			}
			defer file.Close()

			errFile, err := os.Create(csvErrFilePath)
			if err != nil {
				return fmt.Errorf("couldn't create the error file: %w", err)
			}
			defer errFile.Close()

			imported, failed, err := importEmployees(cmd.Context(), app.Services.Employees, file, errFile, importOptions{
				password: password,
				workers:  numOfWorkers,
				approve:  approve,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d employees, %d rows failed\n", imported, failed)
			return nil
		},
	}

	importCmd.Flags().StringVar(&csvFilePath, "csvFilePath", "csv/employees.csv", "csv file path")
	importCmd.Flags().StringVar(&csvErrFilePath, "csvErrFilePath", "csv/errors.csv", "rejected rows are written here")
	importCmd.Flags().StringVar(&password, "password", "", "initial password for every imported employee")
	importCmd.Flags().IntVar(&numOfWorkers, "numOfWorkers", 1, "number of workers")
	importCmd.Flags().BoolVar(&approve, "approve", false, "approve employees right after registering them")

	return importCmd
}

type importOptions struct {
	password string
	workers  int
	approve  bool
}

func importEmployees(ctx context.Context, employees *services.EmployeeService, src io.Reader, errDst io.Writer, opts importOptions) (int, int, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read headers: %w", err)
	}
	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	errWriter := csv.NewWriter(errDst)
	if err := errWriter.Write(append(append([]string{}, headers...), "error")); err != nil {
		return 0, 0, err
	}

	if opts.workers < 1 {
		opts.workers = 1
	}

	jobs := make(chan *importJob)
	failures := make(chan importFailure)

	var (
		wgWorkers   sync.WaitGroup
		wgCollector sync.WaitGroup
		mu          sync.Mutex
		imported    int
		failed      int
	)

	for i := 0; i < opts.workers; i++ {
		wgWorkers.Add(1)
		go func() {
			defer wgWorkers.Done()
			for job := range jobs {
				if _, err := employees.Import(ctx, job.in); err != nil {
					failures <- importFailure{job: job, err: err}
					continue
				}
				mu.Lock()
				imported++
				mu.Unlock()
			}
		}()
	}

	wgCollector.Add(1)
	go func() {
		defer wgCollector.Done()
		for f := range failures {
			failed++
			utils.Logger.Warn("Import row failed", zap.Int("line", f.job.line), zap.Error(f.err))
			_ = errWriter.Write(append(append([]string{}, f.job.row...), f.err.Error()))
		}
	}()

	readErr := sendImportJobs(r, index, opts.password, opts.approve, jobs, failures)

	wgWorkers.Wait()
	close(failures)
	wgCollector.Wait()

	errWriter.Flush()
	if err := errWriter.Error(); err != nil {
		return imported, failed, err
	}
	return imported, failed, readErr
}

func sendImportJobs(r *csv.Reader, index map[string]int, password string, approve bool, jobs chan<- *importJob, failures chan<- importFailure) error {
	defer close(jobs)

	line := 1
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				failures <- importFailure{job: &importJob{line: line, row: row}, err: err}
				continue
			}
			return err
		}

		job := &importJob{line: line, row: row}
		field := func(name string) string {
			if i, ok := index[name]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		job.in.SignupInput = services.SignupInput{
			FullName:      field("full_name"),
			Email:         field("email"),
			Password:      password,
			ContactNumber: field("contact_number"),
			AccountNumber: field("account_number"),
			ParentName:    field("parent_name"),
			ParentContact: field("parent_contact"),
			ESICNumber:    field("esic_number"),
			PFNumber:      field("pf_number"),
			Department:    field("department"),
			Position:      field("position"),
		}
		if raw := field("basic_salary"); raw != "" {
			amount, err := strconv.ParseFloat(raw, 64)
			if err != nil || amount < 0 {
				failures <- importFailure{job: job, err: fmt.Errorf("invalid basic_salary %q", raw)}
				continue
			}
			job.in.BasicSalary = &amount
		}
		job.in.Approve = approve

		jobs <- job
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNoMeetings = 2
)

// ErrNoMeetings is returned when a page or saved schedule holds no class meetings.
var ErrNoMeetings = errors.New("no schedule data found; make sure the page is your schedule page")

var (
	flagConfig      string
	flagFormat      string
	flagSemester    string
	flagOutDir      string
	flagStdout      bool
	flagRender      bool
	flagSort        string
	flagMetricsFile string
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "testudo-ics [page.html|-]",
		Short: "Export a Testudo class schedule to an iCalendar file",
		Long: `A CLI tool to turn a saved Testudo schedule page into an .ics calendar.
Each class meeting becomes a weekly recurring event for the semester.

Without a subcommand it behaves like "export".`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runExport,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: testudo-ics.yaml in . or ~/.config/testudo-ics)")
	pf.StringVar(&flagFormat, "format", "text", "Summary format: text or json")
	pf.StringVar(&flagSemester, "semester", "", "Semester label to use instead of the detected one (e.g. \"Spring 2025\")")
	pf.StringVar(&flagOutDir, "out", "", "Directory to write files to (default: output.dir from config)")
	pf.StringVar(&flagSort, "sort", "", "Meeting order: course, day or time (default: page order)")
	pf.StringVar(&flagMetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	addPageFlags(cmd)
	cmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the calendar to stdout instead of a file")

	cmd.AddCommand(newExportCmd(), newExtractCmd(), newGenerateCmd())
	return cmd
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagRender, "render", false, "Render the page in headless Chrome before extracting")
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [page.html|-]",
		Short: "Extract the schedule from a page and write the calendar",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	addPageFlags(cmd)
	cmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the calendar to stdout instead of a file")
	return cmd
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [page.html|-]",
		Short: "Extract the schedule from a page as JSON",
		Long: `Extract the class meetings from a page and print them as JSON.
With --out the JSON is saved as umd_schedule_<semester>.json instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}
	addPageFlags(cmd)
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <schedule.json|->",
		Short: "Write the calendar for a schedule saved by extract",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	cmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the calendar to stdout instead of a file")
	return cmd
}

// runExport extracts a page and writes its calendar
func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.finish()

	data, err := a.extract(cmd.Context(), pageArg(args))
	if err != nil {
		return err
	}
	return a.export(data)
}

// runExtract extracts a page and prints or saves the schedule JSON
func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.finish()

	data, err := a.extract(cmd.Context(), pageArg(args))
	if err != nil {
		return err
	}
	if data.Empty() {
		return ErrNoMeetings
	}
	return a.saveSchedule(data)
}

// runGenerate writes the calendar for a saved schedule
func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.finish()

	data, err := a.loadSchedule(args[0])
	if err != nil {
		return err
	}
	return a.export(data)
}

func pageArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// ExitCode maps a command error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoMeetings):
		return ExitNoMeetings
	default:
		return ExitError
	}
}

// Run executes the CLI with the given arguments and streams and returns the exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitCode(err)
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/skillguard/skillguard/internal/domain"
	"github.com/skillguard/skillguard/internal/rules"
	"github.com/skillguard/skillguard/internal/store"
)

// ErrVersionRequested indicates the user requested the CLI version and no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// ErrFindingsAtThreshold indicates the scan found something at or above the
// fail threshold. The host process maps it to a non-zero exit code.
var ErrFindingsAtThreshold = errors.New("findings at or above fail threshold")

// ScanRequest carries the resolved inputs of the scan command.
type ScanRequest struct {
	Path          string
	OutputDir     string
	Format        string
	Severity      string
	RulePacks     []string
	BaselinePath  string
	WriteBaseline string
	Include       []string
	Exclude       []string
	MaxFileSizeKB int
	NoColor       bool
	GitRef        string
	UseGit        bool
}

// Scanner defines the dependency required to run the scan command.
type Scanner interface {
	Scan(ctx context.Context, req ScanRequest) (domain.Report, error)
}

// RuleLister defines the dependency required to run the rules command.
type RuleLister interface {
	Rules(ctx context.Context, packs []string) ([]rules.Rule, error)
}

// RunLister defines the dependency required to run the runs command.
type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]store.Run, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Defaults holds flag defaults resolved from configuration.
type Defaults struct {
	Output        string
	Format        string
	Severity      string
	FailOn        string
	Baseline      string
	RulePacks     []string
	Include       []string
	Exclude       []string
	MaxFileSizeKB int
	GitEnabled    bool
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Scanner  Scanner
	Rules    RuleLister
	Runs     RunLister // Optional: nil when the history store is disabled
	Args     Arguments
	Defaults Defaults
	Version  string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "sg",
		Short: "Dangerous-pattern scanner for skill and source trees",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(scanCommand(deps.Scanner, deps.Defaults))
	root.AddCommand(rulesCommand(deps.Rules, deps.Defaults))
	root.AddCommand(runsCommand(deps.Runs))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.PreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func scanCommand(scanner Scanner, defaults Defaults) *cobra.Command {
	var outputDir string
	var format string
	var severity string
	var failOn string
	var rulePacks []string
	var baselinePath string
	var writeBaseline string
	var include []string
	var exclude []string
	var maxFileSizeKB int
	var noColor bool
	var gitRef string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory for dangerous code patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			failSeverity, err := domain.ParseSeverity(failOn)
			if err != nil {
				return fmt.Errorf("invalid --fail-on: %w", err)
			}
			if _, err := domain.ParseSeverity(severity); err != nil {
				return fmt.Errorf("invalid --severity: %w", err)
			}

			useGit := defaults.GitEnabled && !noGit
			if gitRef != "" && !useGit {
				return fmt.Errorf("--git-ref requires git support; remove --no-git")
			}

			report, err := scanner.Scan(cmd.Context(), ScanRequest{
				Path:          path,
				OutputDir:     outputDir,
				Format:        format,
				Severity:      severity,
				RulePacks:     rulePacks,
				BaselinePath:  baselinePath,
				WriteBaseline: writeBaseline,
				Include:       include,
				Exclude:       exclude,
				MaxFileSizeKB: maxFileSizeKB,
				NoColor:       noColor,
				GitRef:        gitRef,
				UseGit:        useGit,
			})
			if err != nil {
				return err
			}

			if highest := report.HighestSeverity(); highest != "" && highest.AtLeast(failSeverity) {
				return ErrFindingsAtThreshold
			}
			return nil
		},
	}

	if defaults.Output == "" {
		defaults.Output = "out"
	}
	if defaults.Format == "" {
		defaults.Format = "text"
	}
	if defaults.Severity == "" {
		defaults.Severity = string(domain.SeverityLow)
	}
	if defaults.FailOn == "" {
		defaults.FailOn = string(domain.SeverityCritical)
	}

	cmd.Flags().StringVar(&outputDir, "output", defaults.Output, "Directory to write report files")
	cmd.Flags().StringVar(&format, "format", defaults.Format, "Report format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&severity, "severity", defaults.Severity, "Drop findings below this severity (critical, high, medium, low)")
	cmd.Flags().StringVar(&failOn, "fail-on", defaults.FailOn, "Exit non-zero when a finding at or above this severity survives filtering")
	cmd.Flags().StringSliceVar(&rulePacks, "rules", defaults.RulePacks, "YAML rule packs loaded on top of the builtins")
	cmd.Flags().StringVar(&baselinePath, "baseline", defaults.Baseline, "JSON baseline of finding IDs to suppress")
	cmd.Flags().StringVar(&writeBaseline, "write-baseline", "", "Write the surviving finding IDs to this baseline file")
	cmd.Flags().StringSliceVar(&include, "include", defaults.Include, "Restrict the scan to paths matching these globs")
	cmd.Flags().StringSliceVar(&exclude, "exclude", defaults.Exclude, "Drop paths matching these globs")
	cmd.Flags().IntVar(&maxFileSizeKB, "max-file-size", defaults.MaxFileSizeKB, "Skip files larger than this many kilobytes")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored text output")
	cmd.Flags().StringVar(&gitRef, "git-ref", "", "Scan the files tracked at this git ref instead of the working tree")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "Skip git metadata and tracked-file detection")

	return cmd
}

func rulesCommand(lister RuleLister, defaults Defaults) *cobra.Command {
	var rulePacks []string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the builtin and loaded detection rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := lister.Rules(cmd.Context(), rulePacks)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tLANGUAGE\tSEVERITY\tCATEGORY\tDESCRIPTION")
			for _, rule := range all {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
					rule.ID, rule.Language, rule.Severity, rule.Category, rule.Description)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&rulePacks, "rules", defaults.RulePacks, "YAML rule packs loaded on top of the builtins")
	return cmd
}

func runsCommand(lister RunLister) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent scan runs from the history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lister == nil {
				return fmt.Errorf("scan history store is disabled; enable store in sg.yaml")
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be a positive integer")
			}

			runs, err := lister.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "RUN\tTIME\tROOT\tFILES\tFINDINGS\tSUPPRESSED\tDURATION")
			for _, run := range runs {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%d\t%d\t%dms\n",
					run.RunID,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Root,
					run.FilesScanned,
					run.FindingsTotal,
					run.Suppressed,
					run.DurationMS,
				)
			}
			return writer.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/internal/aggregate"
	"github.com/ledgerlens/ledgerlens/internal/batch"
	"github.com/ledgerlens/ledgerlens/internal/gitops"
	"github.com/ledgerlens/ledgerlens/internal/importer"
	"github.com/ledgerlens/ledgerlens/internal/importlog"
	"github.com/ledgerlens/ledgerlens/internal/report"
)

// reportsDir holds one CSV summary per imported file.
const reportsDir = "reports"

type summarizeOptions struct {
	repoDir string
	column  string
	rules   string
	format  string
	commit  bool
	limit   int
}

func newSummarizeCommand() *cobra.Command {
	var opts summarizeOptions

	cmd := &cobra.Command{
		Use:   "summarize [files...]",
		Short: "Summarize trial-balance exports by statement category",
		Long: `Summarize classifies every account row of each export and totals the
selected balance column per category. Without arguments it processes the
files waiting in import/ and moves them to import/processed/ afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarize(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.repoDir, "repo", ".", "workspace directory")
	cmd.Flags().StringVar(&opts.column, "column", "", "balance column: "+columnNames())
	cmd.Flags().StringVar(&opts.rules, "rules", "", "rule table (.yaml or .csv), overrides the workspace table")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text or csv")
	cmd.Flags().BoolVar(&opts.commit, "commit", false, "commit reports and the import log (default from git.auto_commit)")
	cmd.Flags().IntVar(&opts.limit, "limit", batch.DefaultLimit, "files parsed concurrently")

	return cmd
}

func columnNames() string {
	names := make([]string, len(aggregate.Columns))
	for i, c := range aggregate.Columns {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func runSummarize(cmd *cobra.Command, args []string, opts summarizeOptions) error {
	if opts.format != "text" && opts.format != "csv" {
		return fmt.Errorf("unknown format %q (want text or csv)", opts.format)
	}

	ws, err := openWorkspace(opts.repoDir)
	if err != nil {
		return err
	}
	defer ws.close()
	logger := ws.logger

	colName := opts.column
	if colName == "" {
		colName = ws.cfg.Import.Column
	}
	col, err := aggregate.ParseColumn(colName)
	if err != nil {
		return err
	}

	svc, err := ws.loadRules(opts.rules)
	if err != nil {
		return err
	}
	for _, v := range svc.Validate() {
		logger.Warn("rule table problem", zap.String("problem", v.Error()))
	}

	files, scanned, err := summarizeInputs(ws.root, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(files) == 0 {
		fmt.Fprintln(out, "No files to summarize.")
		return nil
	}

	results, err := batch.SummarizeFiles(cmd.Context(), files, importer.DefaultRegistry(), svc.Classifier(), batch.Options{
		Aggregate: aggregate.Options{Column: col},
		Limit:     opts.limit,
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	failures := len(batch.Failed(results))
	reports := make(map[string]string)
	var (
		entries []importlog.Entry
		written []string
		done    []string
	)
	for _, r := range results {
		name := r.Name()
		if r.Err != nil {
			logger.Error("summarize failed", zap.String("file", name), zap.Error(r.Err))
			continue
		}
		s := r.Summary

		rel := reportPath(name)
		if prev, taken := reports[rel]; taken {
			logger.Error("report name already used in this run", zap.String("file", r.File),
				zap.String("report", rel), zap.String("first", prev))
			failures++
			continue
		}
		reports[rel] = r.File

		if err := saveReport(ws.root, rel, s); err != nil {
			logger.Error("saving report failed", zap.String("file", name), zap.Error(err))
			failures++
			continue
		}
		written = append(written, rel)

		if len(entries) > 0 {
			fmt.Fprintln(out)
		}
		if err := writeSummary(out, opts.format, name, s); err != nil {
			logger.Error("writing summary failed", zap.String("file", name), zap.Error(err))
			failures++
			continue
		}

		entry := importlog.FromSummary(name, s, now)
		entries = append(entries, entry)
		done = append(done, name)

		fields := []zap.Field{
			zap.String("file", name),
			zap.String("summary_id", s.ID()),
			zap.Int("rows", s.Rows()),
			zap.Int("discarded", s.Discarded()),
			zap.Int("malformed", s.Malformed()),
			zap.Int("unclassified", s.Unclassified()),
		}
		if entry.NeedsReview() {
			logger.Warn("rows need review", fields...)
		} else {
			logger.Info("summarized", fields...)
		}
		if !s.Reconciles() {
			logger.Error("category totals do not reconcile", zap.String("file", name),
				zap.String("grand_total", s.GrandTotal().String()),
				zap.String("input_total", s.InputTotal().String()))
		}
	}

	// Exports leave import/ only once their log entries are on disk, so a
	// failed run can be repeated without losing track of anything.
	if len(entries) > 0 {
		if err := importlog.Append(ws.root, entries); err != nil {
			return fmt.Errorf("writing import log: %w", err)
		}
		written = append(written, importlog.Path)
	}
	if scanned {
		for _, name := range done {
			if err := importer.MarkProcessed(ws.root, name); err != nil {
				logger.Error("moving export failed", zap.String("file", name), zap.Error(err))
				failures++
			}
		}
	}

	commit := opts.commit || (!cmd.Flags().Changed("commit") && ws.cfg.Git.AutoCommit && gitops.IsRepo(ws.root))
	if commit && len(entries) > 0 {
		author := gitops.Author{Name: ws.cfg.Git.AuthorName, Email: ws.cfg.Git.AuthorEmail}
		msg := fmt.Sprintf("summarize: %d file(s)", len(entries))
		hash, err := gitops.CommitFiles(cmd.Context(), ws.root, written, msg, author)
		switch {
		case errors.Is(err, gitops.ErrNothingToCommit):
		case err != nil:
			return fmt.Errorf("committing reports: %w", err)
		default:
			logger.Info("committed reports", zap.String("commit", hash))
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files could not be summarized", failures, len(results))
	}
	return nil
}

// summarizeInputs returns absolute paths for args, or the files waiting in
// import/ when args is empty.
func summarizeInputs(root string, args []string) ([]string, bool, error) {
	if len(args) > 0 {
		files := make([]string, len(args))
		for i, a := range args {
			abs, err := filepath.Abs(a)
			if err != nil {
				return nil, false, fmt.Errorf("resolving %s: %w", a, err)
			}
			files[i] = abs
		}
		return files, false, nil
	}

	infos, err := importer.Scan(root)
	if err != nil {
		return nil, false, err
	}
	files := make([]string, len(infos))
	for i, fi := range infos {
		files[i] = fi.Path
	}
	return files, true, nil
}

func writeSummary(w io.Writer, format, name string, s *aggregate.Summary) error {
	if format == "csv" {
		return report.WriteCSV(w, s)
	}
	return report.WriteText(w, name, s)
}

// reportPath returns the workspace-relative report path for an export. The
// source extension is kept in the name so enero.csv and enero.xlsx do not
// overwrite each other.
func reportPath(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	if ext != "" {
		base += "-" + strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return filepath.Join(reportsDir, base+".csv")
}

// saveReport writes the CSV summary to rel inside the workspace.
func saveReport(root, rel string, s *aggregate.Summary) error {
	path := filepath.Join(root, rel)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating reports dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	if err := report.WriteCSV(f, s); err != nil {
		f.Close()
		return fmt.Errorf("writing report %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing report %s: %w", rel, err)
	}
	return nil
}

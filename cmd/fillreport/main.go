package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"utreport/internal/cndate"
	"utreport/internal/config"
	"utreport/internal/document"
	"utreport/internal/files"
	"utreport/internal/grid"
	"utreport/internal/infrastructure"
	"utreport/internal/report"
	"utreport/pkg/contracts"
	"utreport/pkg/contracts/domain"
)

func main() {
	docPath := flag.String("doc", "", "path to the .docx inspection report (prompted for when empty)")
	dataPath := flag.String("data", "", "path to the measurement dataset .xlsx (prompted for when empty)")
	templatePath := flag.String("template", "", "path to the report template .xlsx (prompted for when empty)")
	outDir := flag.String("out", "filled", "output directory for filled report copies")
	batch := flag.Bool("batch", false, "fill every day without pausing between days")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetVersionInfo())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())
	logger = infrastructure.LoggerWithContext(ctx)

	stdin := bufio.NewReader(os.Stdin)
	*docPath = resolvePath(stdin, *docPath, "inspection report (.docx)", ".docx")
	*dataPath = resolvePath(stdin, *dataPath, "measurement dataset (.xlsx)", ".xlsx", ".xls")
	*templatePath = resolvePath(stdin, *templatePath, "report template (.xlsx)", ".xlsx")

	logger.Info("Starting report fill",
		slog.String("doc", *docPath),
		slog.String("data", *dataPath),
		slog.String("template", *templatePath),
		slog.String("out_dir", *outDir))

	var (
		doc    *document.Document
		dataWb *grid.Workbook
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = document.Open(*docPath)
		return err
	})
	g.Go(func() error {
		var err error
		dataWb, err = grid.Open(*dataPath)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to open input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dataWb.Close()

	dataSheet, err := dataWb.Sheet(nil, 0)
	if err != nil {
		logger.Error("Failed to resolve dataset sheet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	extractor := report.NewFieldExtractor(logger, cfg.Report.Rules)
	fields := extractor.Extract(doc)
	fmt.Printf("Extracted %d fields from %s\n", len(fields), filepath.Base(*docPath))

	yearHint := report.InferYearHint(fields, time.Now().Year())
	segmenter := report.NewDaySegmenter(logger, cfg.Report.Rules)
	segments := segmenter.Segment(dataSheet, yearHint)

	selector := report.NewProbeSelector(logger, cfg.Report.Rules)
	assembler := report.NewAssembler(logger, cfg.Report)

	if err := files.EnsureDir(*outDir); err != nil {
		logger.Error("Failed to create output directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if len(segments) == 0 {
		// No markers: the whole sheet is one unspecified-date block and
		// the date, if any, comes from the document.
		logger.Info("No date markers found, filling a single report", slog.Int("year_hint", yearHint))
		date, _ := cndate.ParseDate(fields.Get(domain.FieldInspectionDate))
		probes := selector.Select(dataSheet, nil)
		outPath := outputPath(*outDir, *templatePath, date)
		if err := fillOne(cfg.Report, assembler, *templatePath, outPath, dataSheet, fields, date, probes, nil); err != nil {
			logger.Error("Fill failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("Done: %s\n", outPath)
		return
	}

	fmt.Printf("Found %d inspection days\n", len(segments))
	for i, seg := range segments {
		if i > 0 && !*batch {
			if !confirmContinue(stdin, seg.Date) {
				fmt.Println("Stopped by operator.")
				return
			}
		}
		probes := selector.Select(dataSheet, seg.Ranges)
		outPath := outputPath(*outDir, *templatePath, seg.Date)
		if err := fillOne(cfg.Report, assembler, *templatePath, outPath, dataSheet, fields, seg.Date, probes, seg.Ranges); err != nil {
			logger.Error("Fill failed",
				slog.String("date", seg.Date.String()),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		fmt.Printf("[%d/%d] %s -> %s\n", i+1, len(segments), cndate.Format(seg.Date), outPath)
	}
	fmt.Println("All days filled.")
}

// fillOne copies the template, fills both sheets for one day and saves.
func fillOne(cfg config.ReportConfig, assembler *report.Assembler, templatePath, outPath string,
	dataSheet *grid.Sheet, fields domain.FieldMap, date domain.Date, probes []string, ranges []domain.RowRange) error {

	if err := files.Copy(templatePath, outPath); err != nil {
		return fmt.Errorf("failed to copy template: %w", err)
	}

	wb, err := grid.Open(outPath)
	if err != nil {
		return err
	}
	defer wb.Close()

	basic, err := wb.Sheet(cfg.Layout.BasicSheetNames, 0)
	if err != nil {
		return err
	}
	data, err := wb.Sheet(cfg.Layout.DataSheetNames, 1)
	if err != nil {
		return err
	}

	if err := assembler.FillBasicSheet(basic, fields, date, probes); err != nil {
		return err
	}
	if err := assembler.FillDataSheet(data, dataSheet, ranges); err != nil {
		return err
	}
	return wb.Save()
}

// outputPath names the filled copy after the template stem and the day.
func outputPath(outDir, templatePath string, date domain.Date) string {
	stem := strings.TrimSuffix(filepath.Base(templatePath), filepath.Ext(templatePath))
	suffix := "report"
	if !date.IsZero() {
		suffix = date.String()
	}
	return filepath.Join(outDir, fmt.Sprintf("%s_%s.xlsx", stem, suffix))
}

// resolvePath returns path when set, otherwise prompts until the operator
// supplies an existing file with an allowed suffix ("q" quits). A directory
// path resolves to its newest matching file.
func resolvePath(stdin *bufio.Reader, path, label string, suffixes ...string) string {
	for {
		if path == "" {
			fmt.Printf("Path to %s (q to quit): ", label)
			line, err := stdin.ReadString('\n')
			if err != nil {
				fmt.Fprintln(os.Stderr, "stdin closed, exiting")
				os.Exit(1)
			}
			path = strings.Trim(strings.TrimSpace(line), `"`)
			if strings.EqualFold(path, "q") {
				fmt.Println("Exited.")
				os.Exit(0)
			}
		}
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			newest, err := files.Newest(path, suffixes...)
			if err != nil {
				fmt.Printf("No %s found in %s\n", label, path)
				path = ""
				continue
			}
			fmt.Printf("Using newest %s: %s\n", label, newest)
			return newest
		}
		if !hasSuffix(path, suffixes) {
			fmt.Printf("Unsupported file type %q, expected one of %v\n", filepath.Ext(path), suffixes)
			path = ""
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("File not found: %s\n", path)
			path = ""
			continue
		}
		return path
	}
}

func hasSuffix(path string, suffixes []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range suffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// confirmContinue pauses before the next day so the operator can check
// the previous output ("q" stops the run).
func confirmContinue(stdin *bufio.Reader, next domain.Date) bool {
	fmt.Printf("Next day: %s. Press Enter to continue (q to stop): ", cndate.Format(next))
	line, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	return !strings.EqualFold(strings.TrimSpace(line), "q")
}

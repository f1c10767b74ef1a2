package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/farxc/tuition_status/internal/env"
	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition"
	"github.com/farxc/tuition_status/internal/tuition/export"
	"github.com/farxc/tuition_status/internal/tuition/files"
)

type config struct {
	input       string
	outDir      string
	periods     []string
	departments []string
	read        files.ReadOptions
	opts        tuition.Options
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func parseFlags(args []string, opts tuition.Options) (config, string, error) {
	fs := flag.NewFlagSet("etl", flag.ContinueOnError)

	inputPtr := fs.String("input", env.GetString("INPUT_FILE", ""), "Spreadsheet to process (.xlsx, .csv or .zip), a path or an http(s) URL")
	sheetPtr := fs.String("sheet", "", "Sheet name for xlsx input, first sheet when empty")
	periodsPtr := fs.String("periods", env.GetString("PERIODS", ""), "Comma-separated academic periods to evaluate")
	departmentsPtr := fs.String("departments", "", "Comma-separated departments to keep in the rollup, all when empty")
	thresholdPtr := fs.Float64("threshold", opts.PaidThreshold, "Amount every selected period must exceed to count as paid")
	outPtr := fs.String("out", env.GetString("OUTPUT_DIR", "output"), "Directory for the xlsx exports")
	logLevelPtr := fs.String("loglevel", env.GetString("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	delimiterPtr := fs.String("delimiter", "", "CSV delimiter, sniffed from the header when empty")
	encodingPtr := fs.String("encoding", "utf-8", "CSV encoding: utf-8, windows-1252, iso-8859-1")

	if err := fs.Parse(args); err != nil {
		return config{}, "", err
	}
	if *inputPtr == "" {
		return config{}, "", errors.New("-input is required")
	}

	var delimiter rune
	if *delimiterPtr != "" {
		if *delimiterPtr == `\t` {
			delimiter = '\t'
		} else if utf8.RuneCountInString(*delimiterPtr) != 1 {
			return config{}, "", fmt.Errorf("-delimiter must be a single character, got %q", *delimiterPtr)
		} else {
			delimiter, _ = utf8.DecodeRuneInString(*delimiterPtr)
		}
	}

	opts.PaidThreshold = *thresholdPtr
	cfg := config{
		input:       *inputPtr,
		outDir:      *outPtr,
		periods:     splitList(*periodsPtr),
		departments: splitList(*departmentsPtr),
		read: files.ReadOptions{
			Sheet:     *sheetPtr,
			Delimiter: delimiter,
			Encoding:  *encodingPtr,
		},
		opts: opts,
	}
	return cfg, *logLevelPtr, nil
}

// run processes one local or http(s) file and writes the exports. The
// department rollup is printed to stdout.
func run(ctx context.Context, cfg config, stdout io.Writer, appLogger *logger.Logger) error {
	const component = "Main"

	var (
		records [][]string
		err     error
	)
	if files.IsURL(cfg.input) {
		records, err = files.Download(ctx, cfg.input, cfg.read, appLogger)
	} else {
		records, err = files.OpenFile(cfg.input, cfg.read, appLogger)
	}
	if err != nil {
		return err
	}

	res, err := tuition.Run(records, tuition.Selection{Periods: cfg.periods, Departments: cfg.departments}, cfg.opts, appLogger)
	if err != nil {
		var selErr *tuition.EmptySelectionError
		if errors.As(err, &selErr) {
			return fmt.Errorf("%w; pass -periods with any of: %s", err, strings.Join(selErr.Available, ", "))
		}
		return err
	}

	for _, w := range res.Warnings {
		appLogger.Warn(component, "%s", w)
	}

	path, err := export.SaveXLSX(cfg.outDir, export.StudentFileName, res.StudentTable())
	if err != nil {
		return err
	}
	appLogger.Info(component, "Student status written: path=%s students=%d", path, len(res.Students))

	if !res.HasDepartment {
		appLogger.Warn(component, "No department column, rollup skipped")
		return nil
	}

	path, err = export.SaveXLSX(cfg.outDir, export.DepartmentFileName, res.DepartmentTable())
	if err != nil {
		return err
	}
	appLogger.Info(component, "Department rollup written: path=%s departments=%d", path, len(res.Departments))

	export.RenderTable(stdout, res.DepartmentTable())
	return nil
}

func main() {
	const component = "Main"

	// Configure log output format
	log.SetFlags(0) // Remove default timestamp since we add our own

	if err := env.Load(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	appLogger := &logger.Logger{MinLevel: logger.LevelInfo}

	cfg, level, err := parseFlags(os.Args[1:], tuition.OptionsFromEnv())
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		appLogger.Fatal(component, "Invalid arguments: error=%v", err)
	}
	appLogger.SetLogLevel(logger.ParseLevel(level))

	monitor := newResourceMonitor()
	monitor.Start(400*time.Millisecond, appLogger)

	startingTime := time.Now()
	appLogger.Info(component, "Application started: input=%s periods=%v logLevel=%s", cfg.input, cfg.periods, level)

	if err := run(context.Background(), cfg, os.Stdout, appLogger); err != nil {
		appLogger.Fatal(component, "Processing failed: error=%v", err)
	}

	stats := monitor.Stop(appLogger)
	appLogger.Info(component, "Application completed successfully: duration=%.2f seconds peakHeapMB=%d",
		time.Since(startingTime).Seconds(), stats.PeakHeapMB)
}

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition"
	"github.com/farxc/tuition_status/internal/tuition/export"
)

const sampleCSV = `NIM;Nama Mahasiswa;Jurusan;Jenis Tagihan;Tahun Akademik;Nominal
A001;budi;Agronomy;SPP;2023;1.000.000
A001;budi;Agronomy;SPP;2024;950.000
B002;andi;Agronomy;SPP;2023;1.000.000
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tagihan.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestParseFlags(t *testing.T) {
	cfg, level, err := parseFlags([]string{
		"-input", "x.csv", "-periods", "2023,2024", "-delimiter", `\t`, "-threshold", "0", "-loglevel", "debug",
	}, tuition.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.input != "x.csv" || len(cfg.periods) != 2 || cfg.read.Delimiter != '\t' || cfg.opts.PaidThreshold != 0 || level != "debug" {
		t.Fatalf("cfg = %+v level=%s", cfg, level)
	}

	if _, _, err := parseFlags([]string{"-periods", "2024"}, tuition.DefaultOptions()); err == nil {
		t.Fatalf("expected error without -input")
	}
	if _, _, err := parseFlags([]string{"-input", "x.csv", "-delimiter", ";;"}, tuition.DefaultOptions()); err == nil {
		t.Fatalf("expected error for long delimiter")
	}
}

func TestRunWritesExports(t *testing.T) {
	out := t.TempDir()
	cfg, _, err := parseFlags([]string{"-input", writeSample(t), "-periods", "2023,2024", "-out", out}, tuition.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), cfg, &stdout, logger.Discard()); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, name := range []string{export.StudentFileName, export.DepartmentFileName} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing export %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "Agronomy") || !strings.Contains(stdout.String(), "50.00") {
		t.Fatalf("rollup output:\n%s", stdout.String())
	}
}

func TestRunWithoutPeriodsListsAvailable(t *testing.T) {
	cfg, _, err := parseFlags([]string{"-input", writeSample(t), "-out", t.TempDir()}, tuition.DefaultOptions())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	err = run(context.Background(), cfg, &bytes.Buffer{}, logger.Discard())
	var selErr *tuition.EmptySelectionError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected EmptySelectionError, got %v", err)
	}
	if !strings.Contains(err.Error(), "2023, 2024") {
		t.Fatalf("error should list periods: %v", err)
	}
}

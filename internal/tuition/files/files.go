package files

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrUnsupportedFormat = errors.New("unsupported file format")

// ReadOptions controls how an upload is decoded. The zero value reads the first
// sheet of an xlsx file, or a UTF-8 csv with a sniffed delimiter.
type ReadOptions struct {
	Sheet     string
	Delimiter rune
	Encoding  string
}

// Read decodes an uploaded spreadsheet into raw records. The format is chosen
// from the file extension; the first record is the header row.
func Read(r io.Reader, filename string, opts ReadOptions, appLogger *logger.Logger) ([][]string, error) {
	const component = "FileDecoder"

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".xlsx", ".xlsm":
		records, err = ReadXLSX(r, opts.Sheet)
	case ".csv", ".txt":
		records, err = ReadCSV(r, opts.Delimiter, opts.Encoding)
	case ".zip":
		records, err = ReadZip(r, opts, appLogger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		appLogger.Error(component, "Failed to decode upload: file=%s error=%v", filename, err)
		return nil, err
	}

	appLogger.Info(component, "Upload decoded: file=%s records=%d", filename, len(records))
	return records, nil
}

// OpenFile reads a spreadsheet from disk.
func OpenFile(path string, opts ReadOptions, appLogger *logger.Logger) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return Read(file, filepath.Base(path), opts, appLogger)
}

// ReadZip decodes the first spreadsheet found in a zip archive. Other entries
// are skipped.
func ReadZip(r io.Reader, opts ReadOptions, appLogger *logger.Logger) ([][]string, error) {
	const component = "Unzipper"

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	skipped := 0
	for _, f := range archive.File {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if f.FileInfo().IsDir() || !isSpreadsheet(ext) {
			skipped++
			appLogger.Debug(component, "Skipping archive entry: file=%s", f.Name)
			continue
		}

		entry, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer entry.Close()

		appLogger.Info(component, "Archive entry selected: file=%s skippedFiles=%d", f.Name, skipped)
		return Read(entry, f.Name, opts, appLogger)
	}
	return nil, fmt.Errorf("%w: archive holds no spreadsheet", ErrUnsupportedFormat)
}

func isSpreadsheet(ext string) bool {
	switch ext {
	case ".xlsx", ".xlsm", ".csv", ".txt":
		return true
	}
	return false
}

// ReadXLSX returns the rows of the named sheet, or of the first sheet when
// sheet is empty. Cells are read unformatted so numeric IDs and amounts keep
// their stored value.
func ReadXLSX(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found, available: %v", sheet, f.GetSheetList())
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// ReadCSV decodes a delimited text file. A zero delimiter is sniffed from the
// header line.
func ReadCSV(r io.Reader, delimiter rune, enc string) ([][]string, error) {
	decoder, err := textDecoder(enc)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(transform.NewReader(r, decoder.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode csv: %w", err)
	}

	if delimiter == 0 {
		delimiter = sniffDelimiter(raw)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return records, nil
}

func textDecoder(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "windows-1252", "windows1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// sniffDelimiter picks the most frequent of ; , and tab on the first line.
func sniffDelimiter(raw []byte) rune {
	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{';', ',', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

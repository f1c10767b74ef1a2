package tuition

import (
	"math"

	"github.com/farxc/tuition_status/internal/logger"
)

var testLogger = logger.Discard()

var paymentHeader = []string{"NIM", "Nama Mahasiswa", "Jurusan", "Jenis Tagihan", "Tahun Akademik", "Nominal"}

// uploadRecords prepends the standard header to rows.
func uploadRecords(rows ...[]string) [][]string {
	return append([][]string{paymentHeader}, rows...)
}

func row(id, name, dept, category, period, amount string) []string {
	return []string{id, name, dept, category, period, amount}
}

func mustNormalize(records [][]string) *NormalizedTable {
	t, err := Normalize(records, DefaultColumnAliases, testLogger)
	if err != nil {
		panic(err)
	}
	return t
}

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

package tuition

import (
	"fmt"
	"sort"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition/types"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// keySep joins student ID and period into one group key. The separator keeps
// the key non-numeric so gota's type detection cannot strip leading zeros.
const keySep = "\x1f"

type pairKey struct {
	studentID string
	period    string
}

// Reduce collapses filtered tuition rows to one amount per (student, period):
// the largest positive amount, or 0 when no row is positive.
func Reduce(df dataframe.DataFrame, appLogger *logger.Logger) ([]types.ReducedRecord, error) {
	const component = "Reducer"

	grouped, err := aggregatePositive(df, dataframe.Aggregation_MAX)
	if err != nil {
		return nil, err
	}

	out := make([]types.ReducedRecord, 0, len(grouped))
	for key, amount := range grouped {
		out = append(out, types.ReducedRecord{StudentID: key.studentID, Period: key.period, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StudentID != out[j].StudentID {
			return out[i].StudentID < out[j].StudentID
		}
		return out[i].Period < out[j].Period
	})

	appLogger.Info(component, "Rows reduced: inputRows=%d reducedRows=%d", df.Nrow(), len(out))
	return out, nil
}

// SumPositive adds up the positive amounts of each student across all rows.
func SumPositive(df dataframe.DataFrame) (map[string]float64, error) {
	grouped, err := aggregatePositive(df, dataframe.Aggregation_SUM)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]float64)
	for key, amount := range grouped {
		totals[key.studentID] += amount
	}
	return totals, nil
}

// aggregatePositive clamps negative amounts to zero, groups rows by
// (student, period) and applies agg to the clamped amounts.
func aggregatePositive(df dataframe.DataFrame, agg dataframe.AggregationType) (map[pairKey]float64, error) {
	result := make(map[pairKey]float64)
	if df.Nrow() == 0 {
		return result, nil
	}

	ids := df.Col(ColStudentID).Records()
	periods := df.Col(ColPeriod).Records()
	raw := df.Col(ColAmount).Float()

	keys := make([]string, len(ids))
	lookup := make(map[string]pairKey, len(ids))
	clamped := make([]float64, len(raw))
	for i := range ids {
		keys[i] = ids[i] + keySep + periods[i]
		lookup[keys[i]] = pairKey{studentID: ids[i], period: periods[i]}
		if raw[i] > 0 {
			clamped[i] = raw[i]
		}
	}

	work := dataframe.New(
		series.New(keys, series.String, colReduceKey),
		series.New(clamped, series.Float, ColAmount),
	)

	groups := work.GroupBy(colReduceKey)
	if groups.Err != nil {
		return nil, fmt.Errorf("group rows: %w", groups.Err)
	}
	aggregated := groups.Aggregation([]dataframe.AggregationType{agg}, []string{ColAmount})
	if aggregated.Error() != nil {
		return nil, fmt.Errorf("aggregate rows: %w", aggregated.Error())
	}

	valueCol := fmt.Sprintf("%s_%s", ColAmount, agg)
	groupKeys := aggregated.Col(colReduceKey).Records()
	values := aggregated.Col(valueCol).Float()
	for i, k := range groupKeys {
		pk, ok := lookup[k]
		if !ok {
			return nil, fmt.Errorf("aggregate rows: unknown group key %q", k)
		}
		if _, dup := result[pk]; dup {
			return nil, fmt.Errorf("aggregate rows: duplicate group for student=%s period=%s", pk.studentID, pk.period)
		}
		result[pk] = values[i]
	}
	return result, nil
}

package tuition

import (
	"fmt"
	"strings"

	"github.com/farxc/tuition_status/internal/logger"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Classifier tags rows by category label.
type Classifier struct {
	tuition map[string]bool
	leave   map[string]bool
}

func NewClassifier(tuitionLabels, leaveLabels []string) *Classifier {
	return &Classifier{
		tuition: labelSet(tuitionLabels),
		leave:   labelSet(leaveLabels),
	}
}

// Kind classifies a single category label.
func (c *Classifier) Kind(category string) RowKind {
	key := strings.ToLower(strings.TrimSpace(category))
	switch {
	case key == "":
		return KindNone
	case c.tuition[key]:
		return KindTuition
	case c.leave[key]:
		return KindLeave
	default:
		return KindOther
	}
}

// Tag returns df with a row_kind column holding each row's RowKind name.
func (c *Classifier) Tag(df dataframe.DataFrame, appLogger *logger.Logger) dataframe.DataFrame {
	const component = "RowClassifier"

	categories := df.Col(ColCategory).Records()
	kinds := make([]string, len(categories))
	counts := make(map[RowKind]int)
	for i, cat := range categories {
		k := c.Kind(cat)
		kinds[i] = k.String()
		counts[k]++
	}

	appLogger.Debug(component, "Rows classified: tuition=%d other=%d leave=%d none=%d",
		counts[KindTuition], counts[KindOther], counts[KindLeave], counts[KindNone])

	return df.Mutate(series.New(kinds, series.String, colRowKind))
}

// FilterRows keeps rows of the given kind whose period is one of periods. The
// frame must already be tagged.
func FilterRows(df dataframe.DataFrame, kind RowKind, periods []string) (dataframe.DataFrame, error) {
	if df.Nrow() == 0 {
		return df, nil
	}

	byKind := df.Filter(dataframe.F{
		Colname:    colRowKind,
		Comparator: series.Eq,
		Comparando: kind.String(),
	})
	if byKind.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter %s rows: %w", kind, byKind.Error())
	}
	if byKind.Nrow() == 0 {
		return byKind, nil
	}

	byPeriod := byKind.Filter(dataframe.F{
		Colname:    ColPeriod,
		Comparator: series.In,
		Comparando: periods,
	})
	if byPeriod.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("filter %s rows by period: %w", kind, byPeriod.Error())
	}
	return byPeriod, nil
}

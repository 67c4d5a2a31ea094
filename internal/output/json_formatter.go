package output

import (
	"errors"

	"github.com/goccy/go-json"

	"github.com/rpgo/projection-engine/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON with amounts rounded to cents.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, errors.New("report is nil")
	}
	return json.MarshalIndent(report.Rounded(), "", "  ")
}

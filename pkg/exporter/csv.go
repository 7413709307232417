package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	surveyDB "github.com/sebasbeleno/nexus-backend/pkg/db/survey"
	surveyTypes "github.com/sebasbeleno/nexus-backend/pkg/survey/types"
)

// Values of multi-select answers are joined into one cell with this
// separator.
const MULTI_VALUE_SEPARATOR = ";"

var metaColumns = []string{"responseId", "surveyId", "surveyVersion", "surveyorId", "propertyId", "submittedAt"}

// ResponseCSVExporter streams response records as CSV rows. The column set is
// fixed at construction from the survey structure: one column per question
// id, in section order, after the record metadata columns. Answers for
// questions that no longer exist in the structure are dropped.
type ResponseCSVExporter struct {
	writer      *csv.Writer
	questionIDs []string
}

func NewResponseCSVExporter(structure surveyTypes.SurveyStructure, w io.Writer) (*ResponseCSVExporter, error) {
	exporter := &ResponseCSVExporter{
		writer:      csv.NewWriter(w),
		questionIDs: structure.QuestionIDs(),
	}

	// Flush right away so the header reaches the destination even when no
	// responses follow, and so writer errors surface at construction.
	header := append(append([]string{}, metaColumns...), exporter.questionIDs...)
	if err := exporter.writer.Write(header); err != nil {
		return nil, err
	}
	exporter.writer.Flush()
	if err := exporter.writer.Error(); err != nil {
		return nil, err
	}
	return exporter, nil
}

func (e *ResponseCSVExporter) WriteResponse(record surveyDB.ResponseRecord) error {
	row := make([]string, 0, len(metaColumns)+len(e.questionIDs))
	row = append(row,
		record.ID.Hex(),
		record.SurveyID,
		strconv.Itoa(record.SurveyVersion),
		record.SurveyorID,
		record.PropertyID,
		strconv.FormatInt(record.SubmittedAt, 10),
	)
	for _, questionID := range e.questionIDs {
		row = append(row, answerCell(record.Answers[questionID]))
	}
	return e.writer.Write(row)
}

// Finish flushes buffered rows and reports any deferred write error.
func (e *ResponseCSVExporter) Finish() error {
	e.writer.Flush()
	return e.writer.Error()
}

func answerCell(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, MULTI_VALUE_SEPARATOR)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = answerCell(item)
		}
		return strings.Join(parts, MULTI_VALUE_SEPARATOR)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

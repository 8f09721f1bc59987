// Package report exports the reconciled state as CSV for spreadsheet
// review.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"

	"mduarte/cca-audit/internal/logging"
	"mduarte/cca-audit/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the output field separator, configurable via CSV_DELIMITER.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger replaces the package logger.
func SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	log = logger
}

// MovementRow is one exported CSV row: a movement operation flattened
// together with its review verdicts and cross-links.
type MovementRow struct {
	MovementID   string `csv:"MovementID"`
	Date         string `csv:"Date"`
	Description  string `csv:"Description"`
	Amount       string `csv:"Amount"`
	SourceFile   string `csv:"SourceFile"`
	OperationID  string `csv:"OperationID"`
	OpAmount     string `csv:"OperationAmount"`
	InReview     bool   `csv:"IncludeInReview"`
	Documental   string `csv:"Documental"`
	Banrep       string `csv:"Banrep"`
	Dian         string `csv:"Dian"`
	Comments     string `csv:"Comments"`
	XMLLinks     string `csv:"XmlLinks"`
	Declarations string `csv:"LinkedDeclarations"`
}

// BuildRows flattens movements into export rows, one per operation. A
// movement without operations still produces one row so nothing drops out
// of the export.
func BuildRows(movements []models.Movement) []MovementRow {
	var rows []MovementRow
	for i := range movements {
		m := &movements[i]

		var xmlLabels []string
		for _, l := range m.LinkedXMLs {
			xmlLabels = append(xmlLabels, l.Label)
		}
		var declNames []string
		for _, l := range m.LinkedDeclarations {
			declNames = append(declNames, l.TargetFileName)
		}

		base := MovementRow{
			MovementID:   m.ID,
			Date:         m.Date,
			Description:  m.Description,
			Amount:       m.Amount.StringFixed(2),
			SourceFile:   m.SourceFile,
			XMLLinks:     strings.Join(xmlLabels, "; "),
			Declarations: strings.Join(declNames, "; "),
		}

		if len(m.Operations) == 0 {
			rows = append(rows, base)
			continue
		}
		for j := range m.Operations {
			op := &m.Operations[j]
			row := base
			row.OperationID = op.ID
			row.OpAmount = op.Amount.StringFixed(2)
			row.InReview = op.IncludeInReview
			row.Documental = op.ReviewData.Documental.Status
			row.Banrep = op.ReviewData.Banrep.Status
			row.Dian = op.ReviewData.Dian.Status
			row.Comments = op.ReviewData.Comments
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteMovementsCSV writes the flattened movement rows to a CSV file.
func WriteMovementsCSV(movements []models.Movement, csvFile string) error {
	if movements == nil {
		return fmt.Errorf("cannot write nil movements to CSV")
	}

	log.Info("Writing movements to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(movements)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := BuildRows(movements)

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal movements to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.Info("Successfully wrote movements to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

package advance

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/samber/lo"
)

// CSVFilename is the download filename offered with schedule exports.
const CSVFilename = "amortization_schedule.csv"

var csvHeader = []string{"Month", "Payment", "Principal", "Interest", "Balance"}

// ScheduleCSV renders an amortization schedule as CSV, one row per month,
// amounts with two decimal places.
func ScheduleCSV(schedule []ScheduleEntry) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := lo.Map(schedule, func(e ScheduleEntry, _ int) []string {
		return []string{
			strconv.Itoa(e.Month),
			formatAmount(e.Payment),
			formatAmount(e.Principal),
			formatAmount(e.Interest),
			formatAmount(e.Balance),
		}
	})

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

package store

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ReportHeader is the first line of every calculation report
const ReportHeader = "Calculation results"

// Report holds the outcome of each reduction over a NumericStore. A failed
// reduction keeps its error; the others are unaffected.
type Report struct {
	Sum           int32
	Difference    int32
	DifferenceErr error
	Product       int32
	ProductErr    error
	Quotient      float64
	QuotientErr   error
	Values        []int32
}

// Calculate evaluates all four reductions independently
func (s *NumericStore) Calculate() *Report {
	r := &Report{
		Sum:    s.Sum(),
		Values: s.Values(),
	}
	r.Difference, r.DifferenceErr = s.Difference()
	r.Product, r.ProductErr = s.Product()
	r.Quotient, r.QuotientErr = s.Quotient()
	return r
}

// Lines renders the report, one "<Label>: <value>" line per result, with the
// error text in place of any failed result
func (r *Report) Lines() []string {
	lines := []string{
		ReportHeader,
		"Addition: " + strconv.FormatInt(int64(r.Sum), 10),
		"Subtraction: " + resultOrError(strconv.FormatInt(int64(r.Difference), 10), r.DifferenceErr),
		"Multiplication: " + resultOrError(strconv.FormatInt(int64(r.Product), 10), r.ProductErr),
		"Division: " + resultOrError(strconv.FormatFloat(r.Quotient, 'g', -1, 64), r.QuotientErr),
	}

	numbers := "Numbers:"
	for _, v := range r.Values {
		numbers += " " + strconv.FormatInt(int64(v), 10)
	}
	return append(lines, numbers)
}

func resultOrError(value string, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return value
}

// WriteReport computes every reduction and writes the report to path.
// A failing reduction is reported inline; only I/O failures are returned.
func (s *NumericStore) WriteReport(path string) error {
	return s.SaveReport(s.Calculate(), path)
}

// SaveReport writes an already calculated report to path, replacing its contents
func (s *NumericStore) SaveReport(report *Report, path string) (err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordOperation(numericStoreName, "report", err == nil, time.Since(start))
	}()

	writer, openErr := NewLineWriter(FileWriterConfig{FilePath: path})
	if openErr != nil {
		s.metrics.RecordFailure(numericStoreName, KindFileOpen.String())
		return &StoreError{Kind: KindFileOpen, Op: "report", Path: path, Err: openErr}
	}

	for _, line := range report.Lines() {
		if err := writer.WriteString(line); err != nil {
			_ = writer.Close()
			return fmt.Errorf("report %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("report %s: %w", path, err)
	}

	s.logger.Info("report written", zap.String("path", path), zap.Int("records", len(report.Values)))
	return nil
}

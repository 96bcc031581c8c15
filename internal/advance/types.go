// Package advance implements the salary advance and loan domain: eligibility,
// fees, compound interest, amortization schedules and the API types they are
// served with.
package advance

import (
	"time"

	"github.com/google/uuid"
)

// AdvanceRequest is the payload accepted by POST /calculate_advance.
//
// The loan fields are optional: a loan repayment calculation is only
// performed when loan_amount, interest_rate and loan_term are all present
// and non-zero.
type AdvanceRequest struct {
	GrossSalary         float64  `json:"gross_salary" validate:"gte=0"`
	PayFrequency        string   `json:"pay_frequency" validate:"required"`
	AdvanceAmount       float64  `json:"advance_amount" validate:"gte=0"`
	LoanAmount          *float64 `json:"loan_amount,omitempty" validate:"omitempty,gte=0"`
	InterestRate        *float64 `json:"interest_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
	LoanTerm            *int     `json:"loan_term,omitempty" validate:"omitempty,gte=1"`
	IncludeAmortization bool     `json:"include_amortization"`
}

// ScheduleEntry is one month of an amortization schedule.
//
// The JSON keys are capitalized column names - this is the layout the
// dashboard table and the CSV export use.
type ScheduleEntry struct {
	Month     int     `json:"Month"`
	Payment   float64 `json:"Payment"`
	Principal float64 `json:"Principal"`
	Interest  float64 `json:"Interest"`
	Balance   float64 `json:"Balance"`
}

// AdvanceResponse is the result of an advance calculation.
type AdvanceResponse struct {
	// Eligible reports salary-based eligibility
	Eligible bool `json:"eligible"`

	// AdvanceApproved reports whether the specific advance request is approved
	AdvanceApproved      bool            `json:"advance_approved"`
	MaxAdvance           float64         `json:"max_advance"`
	ApprovedAmount       float64         `json:"approved_amount"`
	Fee                  float64         `json:"fee"`
	TotalRepayable       *float64        `json:"total_repayable,omitempty"`
	AmortizationSchedule []ScheduleEntry `json:"amortization_schedule,omitempty"`
	Message              string          `json:"message"`
	LoanID               *string         `json:"loan_id,omitempty"`
}

// CSVExport is returned instead of an AdvanceResponse when the client asks
// for the amortization schedule as CSV (?export_csv=true).
type CSVExport struct {
	CSVData  string `json:"csv_data"`
	Filename string `json:"filename"`
}

// Loan is the record stored for an approved advance and returned by
// GET /loan/{loan_id}.
type Loan struct {
	LoanID               string          `json:"loan_id"`
	AdvanceAmount        float64         `json:"advance_amount"`
	Fee                  float64         `json:"fee"`
	Timestamp            string          `json:"timestamp"`
	GrossSalary          float64         `json:"gross_salary"`
	PayFrequency         string          `json:"pay_frequency"`
	LoanAmount           *float64        `json:"loan_amount"`
	InterestRate         *float64        `json:"interest_rate"`
	LoanTerm             *int            `json:"loan_term"`
	TotalRepayable       *float64        `json:"total_repayable"`
	AmortizationSchedule []ScheduleEntry `json:"amortization_schedule"`

	// Fingerprint identifies the originating request so that replayed
	// submissions map to the same loan. Not part of the API payload.
	Fingerprint string `json:"-"`
}

// NewLoan builds the loan record for an approved advance.
func NewLoan(req AdvanceRequest, resp AdvanceResponse, fingerprint string) Loan {
	return Loan{
		LoanID:               uuid.NewString(),
		AdvanceAmount:        req.AdvanceAmount,
		Fee:                  resp.Fee,
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
		GrossSalary:          req.GrossSalary,
		PayFrequency:         req.PayFrequency,
		LoanAmount:           req.LoanAmount,
		InterestRate:         req.InterestRate,
		LoanTerm:             req.LoanTerm,
		TotalRepayable:       resp.TotalRepayable,
		AmortizationSchedule: resp.AmortizationSchedule,
		Fingerprint:          fingerprint,
	}
}

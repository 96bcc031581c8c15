package advance

// calc.go implements the advance and loan math.
//
// Money is represented as float64 and rounded to cents (half away from zero)
// at the points where the schedule and totals are reported. All intermediate
// arithmetic is done unrounded so per-month rounding error does not
// accumulate into the balance.

import (
	"fmt"
	"math"
)

const (
	// MinMonthlySalaryThreshold is the minimum monthly salary for advance
	// eligibility.
	MinMonthlySalaryThreshold = 1000.0

	// maxAdvanceShare caps the advance at this share of the monthly salary.
	maxAdvanceShare = 0.5

	// fee is 5% of the advance, clamped to [minFee, maxFee]
	feeRate = 0.05
	minFee  = 10.0
	maxFee  = 50.0

	compoundingPeriodsPerYear = 12.0
)

// round2 rounds to cents, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthlySalary converts a gross salary quoted at the given pay frequency to
// a monthly figure.
func MonthlySalary(grossSalary float64, payFrequency string) (float64, error) {
	switch payFrequency {
	case "Weekly":
		return grossSalary * 52 / 12, nil
	case "Bi-Weekly":
		return grossSalary * 26 / 12, nil
	case "Monthly":
		return grossSalary, nil
	case "Annually":
		return grossSalary / 12, nil
	default:
		return 0, NewInvalidFrequencyError("Invalid pay_frequency")
	}
}

// CompoundInterest returns the total repayable for a loan of the given
// principal at the given annual rate (percent), compounded monthly over the
// term, rounded to cents.
func CompoundInterest(principal, annualRate float64, termMonths int) float64 {
	years := float64(termMonths) / 12
	ratePerPeriod := annualRate / 100 / compoundingPeriodsPerYear
	total := principal * math.Pow(1+ratePerPeriod, compoundingPeriodsPerYear*years)
	return round2(total)
}

// AmortizationSchedule returns the month-by-month repayment schedule for a
// loan: fixed monthly payment (annuity formula, or principal/term at 0%),
// with the final month adjusted so the closing balance is exactly zero.
func AmortizationSchedule(principal, annualRate float64, termMonths int) []ScheduleEntry {
	monthlyRate := annualRate / 100 / 12

	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = principal / float64(termMonths)
	} else {
		growth := math.Pow(1+monthlyRate, float64(termMonths))
		monthlyPayment = principal * (monthlyRate * growth) / (growth - 1)
	}
	monthlyPayment = round2(monthlyPayment)

	entries := make([]ScheduleEntry, termMonths)
	balance := principal

	for i := range entries {
		interest := balance * monthlyRate
		principalPayment := math.Min(monthlyPayment-interest, balance)
		balance -= principalPayment

		if i == termMonths-1 && balance > 0 {
			// fold the residual balance into the final payment
			entries[i] = ScheduleEntry{
				Month:     i + 1,
				Payment:   principalPayment + balance,
				Principal: principalPayment + balance - interest,
				Interest:  interest,
				Balance:   0,
			}
			balance = 0
		} else {
			remaining := math.Max(0, balance)
			entries[i] = ScheduleEntry{
				Month:     i + 1,
				Payment:   monthlyPayment,
				Principal: principalPayment,
				Interest:  interest,
				Balance:   remaining,
			}
			balance = remaining
		}
	}

	for i := range entries {
		entries[i].Payment = round2(entries[i].Payment)
		entries[i].Principal = round2(entries[i].Principal)
		entries[i].Interest = round2(entries[i].Interest)
		entries[i].Balance = round2(entries[i].Balance)
	}

	return entries
}

// hasLoanTerms reports whether the request carries a complete, non-zero set
// of loan parameters. A zero in any field means "no loan calculation".
func hasLoanTerms(req AdvanceRequest) bool {
	return req.LoanAmount != nil && *req.LoanAmount != 0 &&
		req.InterestRate != nil && *req.InterestRate != 0 &&
		req.LoanTerm != nil && *req.LoanTerm != 0
}

// Evaluate runs the advance calculation for a request:
// eligibility, maximum advance, approval, fee, and - when the request carries
// loan terms and the advance is approved - the loan repayment total.
//
// The amortization schedule is only produced when includeSchedule is set
// (the caller passes include_amortization || export_csv).
//
// Evaluate does not record the loan; the loan_id is assigned by the caller
// after storing.
func Evaluate(req AdvanceRequest, includeSchedule bool) (AdvanceResponse, error) {
	monthlySalary, err := MonthlySalary(req.GrossSalary, req.PayFrequency)
	if err != nil {
		return AdvanceResponse{}, err
	}

	if monthlySalary < MinMonthlySalaryThreshold {
		return AdvanceResponse{
			Eligible:        false,
			AdvanceApproved: false,
			MaxAdvance:      0.0,
			ApprovedAmount:  0.0,
			Fee:             0.0,
			Message:         "Ineligible: Monthly salary is below the minimum threshold of $1000.",
		}, nil
	}

	maxAdvance := monthlySalary * maxAdvanceShare
	approved := req.AdvanceAmount <= maxAdvance

	var approvedAmount, fee float64
	if approved {
		approvedAmount = req.AdvanceAmount
		fee = math.Max(minFee, math.Min(maxFee, req.AdvanceAmount*feeRate))
	}

	var totalRepayable *float64
	var schedule []ScheduleEntry
	if approved && hasLoanTerms(req) {
		total := CompoundInterest(*req.LoanAmount, *req.InterestRate, *req.LoanTerm)
		totalRepayable = &total

		if includeSchedule {
			schedule = AmortizationSchedule(*req.LoanAmount, *req.InterestRate, *req.LoanTerm)
		}
	}

	var message string
	if approved {
		message = fmt.Sprintf("Advance approved! Amount: $%s, Fee: $%s",
			FormatMoney(req.AdvanceAmount), FormatMoney(fee))
	} else {
		message = fmt.Sprintf("Requested advance ($%s) exceeds maximum allowed ($%s).",
			FormatMoney(req.AdvanceAmount), FormatMoney(maxAdvance))
	}
	if approved && totalRepayable != nil && *totalRepayable != 0 {
		message += fmt.Sprintf(". Loan repayable: $%s over %d months.",
			FormatMoney(*totalRepayable), *req.LoanTerm)
	}

	return AdvanceResponse{
		Eligible:             true,
		AdvanceApproved:      approved,
		MaxAdvance:           maxAdvance,
		ApprovedAmount:       approvedAmount,
		Fee:                  fee,
		TotalRepayable:       totalRepayable,
		AmortizationSchedule: schedule,
		Message:              message,
	}, nil
}

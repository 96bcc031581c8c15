package advance

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestMonthlySalary(t *testing.T) {
	tests := []struct {
		name         string
		grossSalary  float64
		payFrequency string
		want         float64
		wantErr      bool
	}{
		{name: "weekly", grossSalary: 1200, payFrequency: "Weekly", want: 5200},
		{name: "bi-weekly", grossSalary: 6000, payFrequency: "Bi-Weekly", want: 13000},
		{name: "monthly", grossSalary: 3000, payFrequency: "Monthly", want: 3000},
		{name: "annually", grossSalary: 60000, payFrequency: "Annually", want: 5000},
		{name: "lowercase is rejected", grossSalary: 1000, payFrequency: "weekly", wantErr: true},
		{name: "unknown frequency", grossSalary: 1000, payFrequency: "Fortnightly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MonthlySalary(tt.grossSalary, tt.payFrequency)
			if (err != nil) != tt.wantErr {
				t.Fatalf("MonthlySalary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var advErr *AdvanceError
				if !errors.As(err, &advErr) {
					t.Fatalf("error is %T, want *AdvanceError", err)
				}
				if advErr.Code() != ErrCodeInvalidFrequency {
					t.Errorf("error code = %d, want ErrCodeInvalidFrequency", advErr.Code())
				}
				if advErr.Error() != "Invalid pay_frequency" {
					t.Errorf("error message = %q, want %q", advErr.Error(), "Invalid pay_frequency")
				}
				return
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("MonthlySalary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompoundInterest(t *testing.T) {
	tests := []struct {
		name       string
		principal  float64
		annualRate float64
		termMonths int
		want       float64
	}{
		{name: "zero rate", principal: 1200, annualRate: 0, termMonths: 12, want: 1200},
		{name: "12 percent over a year", principal: 1000, annualRate: 12, termMonths: 12, want: 1126.83},
		{name: "single month", principal: 1000, annualRate: 12, termMonths: 1, want: 1010},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompoundInterest(tt.principal, tt.annualRate, tt.termMonths)
			if got != tt.want {
				t.Errorf("CompoundInterest() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAmortizationScheduleZeroRate(t *testing.T) {
	schedule := AmortizationSchedule(1200, 0, 12)

	if len(schedule) != 12 {
		t.Fatalf("schedule length = %d, want 12", len(schedule))
	}

	for i, entry := range schedule {
		if entry.Month != i+1 {
			t.Errorf("entry %d month = %d, want %d", i, entry.Month, i+1)
		}
		if entry.Payment != 100 {
			t.Errorf("month %d payment = %v, want 100", entry.Month, entry.Payment)
		}
		if entry.Interest != 0 {
			t.Errorf("month %d interest = %v, want 0", entry.Month, entry.Interest)
		}
		if entry.Principal != 100 {
			t.Errorf("month %d principal = %v, want 100", entry.Month, entry.Principal)
		}
	}

	if schedule[11].Balance != 0 {
		t.Errorf("final balance = %v, want 0", schedule[11].Balance)
	}
}

func TestAmortizationSchedule(t *testing.T) {
	schedule := AmortizationSchedule(1000, 12, 12)

	if len(schedule) != 12 {
		t.Fatalf("schedule length = %d, want 12", len(schedule))
	}

	first := schedule[0]
	if first.Payment != 88.85 {
		t.Errorf("first payment = %v, want 88.85", first.Payment)
	}
	if first.Interest != 10 {
		t.Errorf("first interest = %v, want 10", first.Interest)
	}
	if first.Principal != 78.85 {
		t.Errorf("first principal = %v, want 78.85", first.Principal)
	}
	if first.Balance != 921.15 {
		t.Errorf("first balance = %v, want 921.15", first.Balance)
	}

	if schedule[11].Balance != 0 {
		t.Errorf("final balance = %v, want 0", schedule[11].Balance)
	}

	// balances must never go negative and must decrease monotonically
	prev := 1000.0
	for _, entry := range schedule {
		if entry.Balance < 0 {
			t.Errorf("month %d balance = %v, want >= 0", entry.Month, entry.Balance)
		}
		if entry.Balance > prev {
			t.Errorf("month %d balance = %v, increased from %v", entry.Month, entry.Balance, prev)
		}
		prev = entry.Balance
	}
}

func TestEvaluateIneligible(t *testing.T) {
	resp, err := Evaluate(AdvanceRequest{
		GrossSalary:   999,
		PayFrequency:  "Monthly",
		AdvanceAmount: 100,
	}, false)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if resp.Eligible {
		t.Error("Eligible = true, want false")
	}
	if resp.AdvanceApproved {
		t.Error("AdvanceApproved = true, want false")
	}
	if resp.MaxAdvance != 0 || resp.ApprovedAmount != 0 || resp.Fee != 0 {
		t.Errorf("amounts = %v/%v/%v, want all 0", resp.MaxAdvance, resp.ApprovedAmount, resp.Fee)
	}
	want := "Ineligible: Monthly salary is below the minimum threshold of $1000."
	if resp.Message != want {
		t.Errorf("Message = %q, want %q", resp.Message, want)
	}
}

func TestEvaluateEligibilityBoundary(t *testing.T) {
	resp, err := Evaluate(AdvanceRequest{
		GrossSalary:   1000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 100,
	}, false)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if !resp.Eligible {
		t.Error("salary exactly at the threshold should be eligible")
	}
}

func TestEvaluateApproved(t *testing.T) {
	resp, err := Evaluate(AdvanceRequest{
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 500,
	}, false)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !resp.Eligible || !resp.AdvanceApproved {
		t.Fatalf("eligible/approved = %v/%v, want true/true", resp.Eligible, resp.AdvanceApproved)
	}
	if !almostEqual(resp.MaxAdvance, 3000) {
		t.Errorf("MaxAdvance = %v, want 3000", resp.MaxAdvance)
	}
	if resp.ApprovedAmount != 500 {
		t.Errorf("ApprovedAmount = %v, want 500", resp.ApprovedAmount)
	}
	if !almostEqual(resp.Fee, 25) {
		t.Errorf("Fee = %v, want 25", resp.Fee)
	}
	want := "Advance approved! Amount: $500.00, Fee: $25.00"
	if resp.Message != want {
		t.Errorf("Message = %q, want %q", resp.Message, want)
	}
	if resp.TotalRepayable != nil {
		t.Errorf("TotalRepayable = %v, want nil without loan terms", *resp.TotalRepayable)
	}
}

func TestEvaluateFeeClamps(t *testing.T) {
	tests := []struct {
		name          string
		advanceAmount float64
		wantFee       float64
	}{
		{name: "minimum fee", advanceAmount: 100, wantFee: 10},
		{name: "percentage fee", advanceAmount: 500, wantFee: 25},
		{name: "maximum fee", advanceAmount: 1500, wantFee: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Evaluate(AdvanceRequest{
				GrossSalary:   6000,
				PayFrequency:  "Monthly",
				AdvanceAmount: tt.advanceAmount,
			}, false)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if !resp.AdvanceApproved {
				t.Fatal("expected advance to be approved")
			}
			if !almostEqual(resp.Fee, tt.wantFee) {
				t.Errorf("Fee = %v, want %v", resp.Fee, tt.wantFee)
			}
		})
	}
}

func TestEvaluateExceedsMax(t *testing.T) {
	resp, err := Evaluate(AdvanceRequest{
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 4000,
	}, false)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if !resp.Eligible {
		t.Error("Eligible = false, want true")
	}
	if resp.AdvanceApproved {
		t.Error("AdvanceApproved = true, want false")
	}
	if resp.ApprovedAmount != 0 || resp.Fee != 0 {
		t.Errorf("ApprovedAmount/Fee = %v/%v, want 0/0", resp.ApprovedAmount, resp.Fee)
	}
	want := "Requested advance ($4,000.00) exceeds maximum allowed ($3,000.00)."
	if resp.Message != want {
		t.Errorf("Message = %q, want %q", resp.Message, want)
	}
}

func TestEvaluateWithLoan(t *testing.T) {
	req := AdvanceRequest{
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 500,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(12),
	}

	resp, err := Evaluate(req, false)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if resp.TotalRepayable == nil {
		t.Fatal("TotalRepayable = nil, want value")
	}
	if *resp.TotalRepayable != 1126.83 {
		t.Errorf("TotalRepayable = %v, want 1126.83", *resp.TotalRepayable)
	}
	if resp.AmortizationSchedule != nil {
		t.Error("schedule should not be produced unless requested")
	}
	want := "Advance approved! Amount: $500.00, Fee: $25.00. Loan repayable: $1,126.83 over 12 months."
	if resp.Message != want {
		t.Errorf("Message = %q, want %q", resp.Message, want)
	}

	// asking for the schedule produces one row per month
	resp, err = Evaluate(req, true)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if len(resp.AmortizationSchedule) != 12 {
		t.Errorf("schedule length = %d, want 12", len(resp.AmortizationSchedule))
	}
}

func TestEvaluateIncompleteLoanTerms(t *testing.T) {
	tests := []struct {
		name string
		req  AdvanceRequest
	}{
		{
			name: "zero interest rate skips the loan calculation",
			req: AdvanceRequest{
				GrossSalary: 6000, PayFrequency: "Monthly", AdvanceAmount: 500,
				LoanAmount: floatPtr(1000), InterestRate: floatPtr(0), LoanTerm: intPtr(12),
			},
		},
		{
			name: "missing term skips the loan calculation",
			req: AdvanceRequest{
				GrossSalary: 6000, PayFrequency: "Monthly", AdvanceAmount: 500,
				LoanAmount: floatPtr(1000), InterestRate: floatPtr(12),
			},
		},
		{
			name: "loan terms are ignored when the advance is rejected",
			req: AdvanceRequest{
				GrossSalary: 6000, PayFrequency: "Monthly", AdvanceAmount: 4000,
				LoanAmount: floatPtr(1000), InterestRate: floatPtr(12), LoanTerm: intPtr(12),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := Evaluate(tt.req, true)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if resp.TotalRepayable != nil {
				t.Errorf("TotalRepayable = %v, want nil", *resp.TotalRepayable)
			}
			if resp.AmortizationSchedule != nil {
				t.Error("schedule should not be produced")
			}
		})
	}
}

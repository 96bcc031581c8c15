package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paystream-demos/advance-app/internal/advance"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestCalculateAdvance(t *testing.T) {
	req := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/calculate_advance", r.URL.Path)

		var body advance.AdvanceRequest
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal(500.0, body.AdvanceAmount)

		loanID := "4b2cb2e9-58db-4b62-90ae-7bb99bbba9b7"
		_ = json.NewEncoder(w).Encode(advance.AdvanceResponse{
			Eligible:        true,
			AdvanceApproved: true,
			MaxAdvance:      3000,
			ApprovedAmount:  500,
			Fee:             25,
			Message:         "Advance approved! Amount: $500.00, Fee: $25.00",
			LoanID:          &loanID,
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	resp, err := c.CalculateAdvance(context.Background(), advance.AdvanceRequest{
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 500,
	})
	req.NoError(err)
	req.True(resp.AdvanceApproved)
	req.NotNil(resp.LoanID)
}

func TestCalculateAdvanceRetriesOnServerError(t *testing.T) {
	req := require.New(t)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"Internal server error"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(advance.AdvanceResponse{Eligible: true})
	}))
	defer ts.Close()

	c := New(ts.URL, WithRetry(5, time.Millisecond))
	resp, err := c.CalculateAdvance(context.Background(), advance.AdvanceRequest{
		GrossSalary: 6000, PayFrequency: "Monthly", AdvanceAmount: 100,
	})
	req.NoError(err)
	req.True(resp.Eligible)
	req.EqualValues(3, calls.Load())
}

func TestCalculateAdvanceDoesNotRetryClientErrors(t *testing.T) {
	req := require.New(t)

	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Invalid pay_frequency"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, WithRetry(5, time.Millisecond))
	_, err := c.CalculateAdvance(context.Background(), advance.AdvanceRequest{
		GrossSalary: 6000, PayFrequency: "quarterly", AdvanceAmount: 100,
	})

	var apiErr *APIError
	req.ErrorAs(err, &apiErr)
	req.Equal(http.StatusBadRequest, apiErr.StatusCode)
	req.Equal("Invalid pay_frequency", apiErr.Detail)
	req.EqualValues(1, calls.Load())
}

func TestExportScheduleCSV(t *testing.T) {
	req := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("true", r.URL.Query().Get("export_csv"))
		_ = json.NewEncoder(w).Encode(advance.CSVExport{
			CSVData:  "Month,Payment,Principal,Interest,Balance\n1,88.85,78.85,10.00,921.15\n",
			Filename: "amortization_schedule.csv",
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	export, err := c.ExportScheduleCSV(context.Background(), advance.AdvanceRequest{
		GrossSalary:   6000,
		PayFrequency:  "Monthly",
		AdvanceAmount: 500,
		LoanAmount:    floatPtr(1000),
		InterestRate:  floatPtr(12),
		LoanTerm:      intPtr(12),
	})
	req.NoError(err)
	req.Equal("amortization_schedule.csv", export.Filename)
	req.Contains(export.CSVData, "Month,Payment")
}

func TestGetLoanNotFound(t *testing.T) {
	req := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Loan not found"}`))
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.GetLoan(context.Background(), "missing")

	var apiErr *APIError
	req.ErrorAs(err, &apiErr)
	req.Equal(http.StatusNotFound, apiErr.StatusCode)
}

func TestGetLoan(t *testing.T) {
	req := require.New(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/loan/abc", r.URL.Path)
		_ = json.NewEncoder(w).Encode(advance.Loan{
			LoanID:        "abc",
			AdvanceAmount: 500,
			Fee:           25,
		})
	}))
	defer ts.Close()

	c := New(ts.URL)
	loan, err := c.GetLoan(context.Background(), "abc")
	req.NoError(err)
	req.Equal("abc", loan.LoanID)
	req.Equal(500.0, loan.AdvanceAmount)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/paystream-demos/advance-app/internal/advance"
	"github.com/paystream-demos/advance-app/internal/logger"
	"github.com/paystream-demos/advance-app/internal/store"
)

// HandleCalculateAdvance godoc
//
//	@Summary		Calculate a salary advance and optional loan repayment
//	@Description	Determines salary-based eligibility, the maximum advance, approval of the
//	@Description	requested amount and its fee. When loan_amount, interest_rate and loan_term
//	@Description	are all present and non-zero, the total repayable is calculated and - with
//	@Description	include_amortization (or export_csv) - the month-by-month schedule.
//	@Description
//	@Description	Approved advances are recorded as loans; the response carries the loan_id.
//	@Description	Submitting an identical payload again returns the already-recorded loan.
//	@Description
//	@Description	With export_csv=true the amortization schedule is returned as CSV data
//	@Description	instead of the calculation result, and no loan is recorded.
//	@Tags			Advance
//	@Accept			json
//	@Produce		json
//	@Param			export_csv	query		bool					false	"Return the amortization schedule as CSV"
//	@Param			request		body		advance.AdvanceRequest	true	"Advance request"
//	@Success		200			{object}	advance.AdvanceResponse
//	@Failure		400			{object}	advance.ErrorDetail	"Invalid request"
//	@Failure		500			{object}	advance.ErrorDetail	"Internal server error"
//	@Router			/calculate_advance [post]
func HandleCalculateAdvance(loans store.LoanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exportCSV := false
		if v := r.URL.Query().Get("export_csv"); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				advance.RespondWithError(w, r, advance.NewInvalidRequestError("export_csv must be a boolean"))
				return
			}
			exportCSV = parsed
		}

		var req advance.AdvanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			advance.RespondWithError(w, r, advance.WrapInvalidRequestError(err, "invalid request body"))
			return
		}

		if err := advance.ValidateRequest(req); err != nil {
			advance.RespondWithError(w, r, err)
			return
		}

		resp, err := advance.Evaluate(req, req.IncludeAmortization || exportCSV)
		if err != nil {
			advance.RespondWithError(w, r, err)
			return
		}

		// The CSV export is a pure calculation: it returns before any loan
		// is recorded.
		if exportCSV && resp.AmortizationSchedule != nil {
			csvData, err := advance.ScheduleCSV(resp.AmortizationSchedule)
			if err != nil {
				advance.RespondWithError(w, r, advance.WrapInternalError(err, "failed to render CSV"))
				return
			}
			advance.RespondWithJSONPayload(w, http.StatusOK, advance.CSVExport{
				CSVData:  csvData,
				Filename: advance.CSVFilename,
			})
			return
		}

		if resp.AdvanceApproved {
			fingerprint, err := advance.Fingerprint(req)
			if err != nil {
				advance.RespondWithError(w, r, advance.WrapInternalError(err, "failed to fingerprint request"))
				return
			}

			existing, err := loans.GetByFingerprint(r.Context(), fingerprint)
			switch {
			case err == nil:
				// replayed submission: reuse the recorded loan
				resp.LoanID = &existing.LoanID
				logger.ContextWithLogAttrs(r.Context(),
					slog.String("loan_id", existing.LoanID),
					slog.Bool("replayed", true),
				)
			case errors.Is(err, store.ErrLoanNotFound):
				loan := advance.NewLoan(req, resp, fingerprint)
				if err := loans.Create(r.Context(), loan); err != nil {
					advance.RespondWithError(w, r, advance.WrapStorageError(err, "failed to record loan"))
					return
				}
				resp.LoanID = &loan.LoanID
				logger.ContextWithLogAttrs(r.Context(), slog.String("loan_id", loan.LoanID))
			default:
				advance.RespondWithError(w, r, advance.WrapStorageError(err, "failed to look up loan"))
				return
			}
		}

		advance.RespondWithJSONPayload(w, http.StatusOK, resp)
	}
}

// HandleGetLoan godoc
//
//	@Summary	Retrieve a recorded loan
//	@Tags		Advance
//	@Produce	json
//	@Param		loanID	path		string	true	"Loan ID"
//	@Success	200		{object}	advance.Loan
//	@Failure	404		{object}	advance.ErrorDetail	"Loan not found"
//	@Router		/loan/{loanID} [get]
func HandleGetLoan(loans store.LoanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loanID := chi.URLParam(r, "loanID")

		loan, err := loans.Get(r.Context(), loanID)
		if err != nil {
			if errors.Is(err, store.ErrLoanNotFound) {
				advance.RespondWithError(w, r, advance.NewNotFoundError("Loan not found"))
				return
			}
			advance.RespondWithError(w, r, advance.WrapStorageError(err, "failed to fetch loan"))
			return
		}

		advance.RespondWithJSONPayload(w, http.StatusOK, loan)
	}
}

// Package dashboard serves the advance calculator web UI: an HTML form that
// submits to the advance API and renders the calculation result, including
// the amortization table and a CSV download.
package dashboard

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/paystream-demos/advance-app/internal/advance"
	"github.com/paystream-demos/advance-app/internal/client"
	"github.com/paystream-demos/advance-app/internal/config"
	"github.com/paystream-demos/advance-app/internal/logger"
	"github.com/paystream-demos/advance-app/internal/server/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

// payFrequencies are the options offered by the form, in display order.
var payFrequencies = []string{"Weekly", "Bi-Weekly", "Monthly", "Annually"}

// Server is the dashboard HTTP server.
type Server struct {
	config  *config.DashboardEnvironment
	logger  *slog.Logger
	backend *client.Client
	router  *chi.Mux
	tmpl    *template.Template
}

// pageData drives the index template.
type pageData struct {
	Frequencies []string
	Request     advance.AdvanceRequest
	IncludeLoan bool
	Result      *advance.AdvanceResponse
	Error       string
}

func NewServer(cfg *config.DashboardEnvironment, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"money": advance.FormatMoney,
		"deref": func(v *float64) float64 {
			if v == nil {
				return 0
			}
			return *v
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	server := &Server{
		config: cfg,
		logger: logger,
		backend: client.New(cfg.BackendURL,
			client.WithRetry(cfg.BackendRetryAttempts, cfg.BackendRetryDelay)),
		router: chi.NewRouter(),
		tmpl:   tmpl,
	}

	server.setupMiddleware()
	server.registerRoutes()

	return server, nil
}

// Router exposes the configured handler chain (used by the tests).
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(60 * time.Second))
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
}

func (s *Server) registerRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Post("/calculate", s.handleCalculate)
	s.router.Post("/export.csv", s.handleExportCSV)
	s.router.Get("/health", s.handleHealth)
}

func (s *Server) Start(ctx context.Context) error {
	serverAddr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	httpServer := &http.Server{
		Addr:         serverAddr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("dashboard listening",
			slog.String("environment", s.config.Environment),
			slog.String("address", serverAddr),
			slog.String("backend_url", s.config.BackendURL))

		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.config.ServerShutdownTimeout)
	defer shutdownCancel()

	err := httpServer.Shutdown(shutdownCtx)
	if err != nil {
		return fmt.Errorf("HTTP server shutdown failed: %w", err)
	}

	s.logger.Info("HTTP server shutdown complete")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, pageData{Frequencies: payFrequencies})
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	data := pageData{Frequencies: payFrequencies}

	req, includeLoan, err := parseAdvanceForm(r)
	if err != nil {
		data.Error = err.Error()
		s.render(w, r, data)
		return
	}
	data.Request = req
	data.IncludeLoan = includeLoan

	result, err := s.backend.CalculateAdvance(r.Context(), req)
	if err != nil {
		data.Error = backendErrorMessage(err)
		s.render(w, r, data)
		return
	}

	data.Result = &result
	s.render(w, r, data)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	req, _, err := parseAdvanceForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	export, err := s.backend.ExportScheduleCSV(r.Context(), req)
	if err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("CSV export failed", slog.String("error", err.Error()))
		http.Error(w, backendErrorMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	_, _ = w.Write([]byte(export.CSVData))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		reqLogger := logger.ContextRequestLogger(r.Context())
		reqLogger.Error("failed to render template", slog.String("error", err.Error()))
	}
}

// parseAdvanceForm maps the submitted form onto an AdvanceRequest. Empty
// numeric fields are treated as zero; the loan section is only read when the
// include_loan checkbox was set.
func parseAdvanceForm(r *http.Request) (advance.AdvanceRequest, bool, error) {
	if err := r.ParseForm(); err != nil {
		return advance.AdvanceRequest{}, false, fmt.Errorf("invalid form submission: %w", err)
	}

	grossSalary, err := parseFloatField(r, "gross_salary")
	if err != nil {
		return advance.AdvanceRequest{}, false, err
	}
	advanceAmount, err := parseFloatField(r, "advance_amount")
	if err != nil {
		return advance.AdvanceRequest{}, false, err
	}

	req := advance.AdvanceRequest{
		GrossSalary:   grossSalary,
		PayFrequency:  r.PostFormValue("pay_frequency"),
		AdvanceAmount: advanceAmount,
	}

	includeLoan := r.PostFormValue("include_loan") != ""
	if includeLoan {
		loanAmount, err := parseFloatField(r, "loan_amount")
		if err != nil {
			return advance.AdvanceRequest{}, false, err
		}
		interestRate, err := parseFloatField(r, "interest_rate")
		if err != nil {
			return advance.AdvanceRequest{}, false, err
		}
		loanTerm, err := parseIntField(r, "loan_term")
		if err != nil {
			return advance.AdvanceRequest{}, false, err
		}

		// zero loan fields mean "no loan quote" and are left out of the payload
		if loanAmount != 0 {
			req.LoanAmount = &loanAmount
		}
		if interestRate != 0 {
			req.InterestRate = &interestRate
		}
		if loanTerm != 0 {
			req.LoanTerm = &loanTerm
		}
		req.IncludeAmortization = r.PostFormValue("include_amortization") != ""
	}

	return req, includeLoan, nil
}

func parseFloatField(r *http.Request, name string) (float64, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

func parseIntField(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return v, nil
}

func backendErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("Error communicating with backend: %s", apiErr.Detail)
	}
	return fmt.Sprintf("Error communicating with backend: %s", err.Error())
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paystream-demos/advance-app/internal/advance"
)

var (
	schedSalary       float64
	schedFrequency    string
	schedAdvance      float64
	schedLoanAmount   float64
	schedInterestRate float64
	schedLoanTerm     int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Export an amortization schedule as CSV",
	Long:  `Request the amortization schedule for a loan quote and print it as CSV on stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := advance.AdvanceRequest{
			GrossSalary:   schedSalary,
			PayFrequency:  schedFrequency,
			AdvanceAmount: schedAdvance,
			LoanAmount:    &schedLoanAmount,
			InterestRate:  &schedInterestRate,
			LoanTerm:      &schedLoanTerm,
		}

		export, err := apiClient.ExportScheduleCSV(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Print(export.CSVData)
		return nil
	},
}

func init() {
	scheduleCmd.Flags().Float64Var(&schedSalary, "salary", 0, "gross salary")
	scheduleCmd.Flags().StringVar(&schedFrequency, "frequency", "Monthly", "pay frequency (Weekly, Bi-Weekly, Monthly, Annually)")
	scheduleCmd.Flags().Float64Var(&schedAdvance, "advance", 0, "requested advance amount")
	scheduleCmd.Flags().Float64Var(&schedLoanAmount, "loan-amount", 0, "loan principal")
	scheduleCmd.Flags().Float64Var(&schedInterestRate, "rate", 0, "annual interest rate in percent")
	scheduleCmd.Flags().IntVar(&schedLoanTerm, "term", 0, "loan term in months")

	_ = scheduleCmd.MarkFlagRequired("salary")
	_ = scheduleCmd.MarkFlagRequired("advance")
	_ = scheduleCmd.MarkFlagRequired("loan-amount")
	_ = scheduleCmd.MarkFlagRequired("term")
}

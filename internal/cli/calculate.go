package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/paystream-demos/advance-app/internal/advance"
)

var (
	calcSalary       float64
	calcFrequency    string
	calcAdvance      float64
	calcLoanAmount   float64
	calcInterestRate float64
	calcLoanTerm     int
	calcShowSchedule bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate a salary advance",
	Long:  `Submit an advance request and print the eligibility decision, fee and optional loan quote`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := advance.AdvanceRequest{
			GrossSalary:         calcSalary,
			PayFrequency:        calcFrequency,
			AdvanceAmount:       calcAdvance,
			IncludeAmortization: calcShowSchedule,
		}
		if cmd.Flags().Changed("loan-amount") {
			req.LoanAmount = &calcLoanAmount
			req.InterestRate = &calcInterestRate
			req.LoanTerm = &calcLoanTerm
		}

		resp, err := apiClient.CalculateAdvance(cmd.Context(), req)
		if err != nil {
			return err
		}

		printResponse(resp)
		return nil
	},
}

func printResponse(resp advance.AdvanceResponse) {
	fmt.Printf("Eligible:        %v\n", resp.Eligible)
	if resp.Eligible {
		fmt.Printf("Max advance:     $%s\n", advance.FormatMoney(resp.MaxAdvance))
	}
	fmt.Printf("Approved:        %v\n", resp.AdvanceApproved)
	if resp.AdvanceApproved {
		fmt.Printf("Approved amount: $%s\n", advance.FormatMoney(resp.ApprovedAmount))
		fmt.Printf("Fee:             $%s\n", advance.FormatMoney(resp.Fee))
	}
	if resp.TotalRepayable != nil {
		fmt.Printf("Total repayable: $%s\n", advance.FormatMoney(*resp.TotalRepayable))
	}
	if resp.LoanID != nil {
		fmt.Printf("Loan ID:         %s\n", *resp.LoanID)
	}
	fmt.Printf("\n%s\n", resp.Message)

	if len(resp.AmortizationSchedule) > 0 {
		fmt.Println()
		printScheduleTable(resp.AmortizationSchedule)
	}
}

func printScheduleTable(schedule []advance.ScheduleEntry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Month", "Payment", "Principal", "Interest", "Balance"})
	for _, entry := range schedule {
		table.Append([]string{
			strconv.Itoa(entry.Month),
			"$" + advance.FormatMoney(entry.Payment),
			"$" + advance.FormatMoney(entry.Principal),
			"$" + advance.FormatMoney(entry.Interest),
			"$" + advance.FormatMoney(entry.Balance),
		})
	}
	table.Render()
}

func init() {
	calculateCmd.Flags().Float64Var(&calcSalary, "salary", 0, "gross salary")
	calculateCmd.Flags().StringVar(&calcFrequency, "frequency", "Monthly", "pay frequency (Weekly, Bi-Weekly, Monthly, Annually)")
	calculateCmd.Flags().Float64Var(&calcAdvance, "advance", 0, "requested advance amount")
	calculateCmd.Flags().Float64Var(&calcLoanAmount, "loan-amount", 0, "loan principal for an optional loan quote")
	calculateCmd.Flags().Float64Var(&calcInterestRate, "rate", 0, "annual interest rate in percent")
	calculateCmd.Flags().IntVar(&calcLoanTerm, "term", 0, "loan term in months")
	calculateCmd.Flags().BoolVar(&calcShowSchedule, "schedule", false, "include the amortization schedule")

	_ = calculateCmd.MarkFlagRequired("salary")
	_ = calculateCmd.MarkFlagRequired("advance")
}

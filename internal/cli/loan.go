package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/paystream-demos/advance-app/internal/advance"
)

var loanCmd = &cobra.Command{
	Use:   "loan <loan-id>",
	Short: "Look up a recorded loan",
	Long:  `Fetch a recorded loan by ID and print its details`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loan, err := apiClient.GetLoan(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		printLoan(loan)
		return nil
	},
}

func printLoan(loan advance.Loan) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Field", "Value"})
	table.Append([]string{"Loan ID", loan.LoanID})
	table.Append([]string{"Advance amount", "$" + advance.FormatMoney(loan.AdvanceAmount)})
	table.Append([]string{"Fee", "$" + advance.FormatMoney(loan.Fee)})
	if loan.TotalRepayable != nil {
		table.Append([]string{"Total repayable", "$" + advance.FormatMoney(*loan.TotalRepayable)})
	}
	if loan.LoanTerm != nil {
		table.Append([]string{"Loan term", strconv.Itoa(*loan.LoanTerm) + " months"})
	}
	table.Append([]string{"Recorded at", loan.Timestamp})
	table.Render()

	if loan.TotalRepayable == nil {
		fmt.Println("No loan quote attached to this advance.")
	}
}

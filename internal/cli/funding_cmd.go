package cli

import (
	"context"
	"fmt"

	"github.com/coveyrise/steward/internal/cli/formatter"
	"github.com/coveyrise/steward/internal/domain"
	"github.com/coveyrise/steward/internal/service"
	"github.com/spf13/cobra"
)

func newFundingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funding",
		Short: "Manage cost-share funding reference data",
	}

	cmd.AddCommand(
		newFundingImportCmd(app),
		newFundingListCmd(app),
	)

	return cmd
}

func newFundingImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import program and practice reference data from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := service.LoadReferenceFile(args[0])
			if err != nil {
				return err
			}

			stats, err := app.Funding.ImportReference(context.Background(), set)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d program(s) and %d practice(s).\n", stats.Programs, stats.Practices)
			return nil
		},
	}
}

func newFundingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the loaded funding reference data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			programs, err := app.Funding.ListPrograms(ctx)
			if err != nil {
				return err
			}
			practices, err := app.Funding.ListPractices(ctx)
			if err != nil {
				return err
			}

			if len(programs) == 0 {
				fmt.Println("No funding reference data loaded. Import it with `steward funding import FILE`.")
				return nil
			}

			byProgram := make(map[string][]*domain.FundingPractice, len(programs))
			for _, p := range practices {
				byProgram[p.ProgramID] = append(byProgram[p.ProgramID], p)
			}

			headers := []string{"Program", "Code", "Practice", "Rate", "Unit"}
			rows := make([][]string, 0, len(practices))
			for _, prog := range programs {
				for _, p := range byProgram[prog.ID] {
					rate := formatter.Dim("—")
					if p.DefaultPaymentRate != nil {
						rate = fmt.Sprintf("$%.2f", *p.DefaultPaymentRate)
					}
					code := p.Code
					if code == "" {
						code = formatter.Dim("—")
					}
					rows = append(rows, []string{string(prog.Name), code, p.Title, rate, p.Unit})
				}
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

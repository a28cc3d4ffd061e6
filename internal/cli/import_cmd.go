package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import tasks from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			result, err := app.Import.ImportFile(ctx, projectID, args[0])
			if result != nil && result.Created > 0 {
				fmt.Printf("Imported %d tasks", result.Created)
				if result.SkippedRows > 0 {
					fmt.Printf(" (%d rows skipped)", result.SkippedRows)
				}
				fmt.Println()
			}
			return err
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project ID or name")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/mfurukawa/girder/internal/cli/formatter"
	"github.com/mfurukawa/girder/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee roster",
	}

	var name, team, color string
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := &domain.Employee{Name: name, Team: team, Color: color}
			if err := app.Employees.Create(context.Background(), e); err != nil {
				return err
			}
			fmt.Printf("Added %s\n", e.Name)
			return nil
		},
	}
	addCmd.Flags().StringVar(&name, "name", "", "Employee name")
	addCmd.Flags().StringVar(&team, "team", "", "Team name")
	addCmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	_ = addCmd.MarkFlagRequired("name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.List(context.Background())
			if err != nil {
				return err
			}
			if len(employees) == 0 {
				fmt.Println("No employees found.")
				return nil
			}
			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				rows = append(rows, []string{e.ID[:8], e.Name, e.Team})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "TEAM"}, rows))
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Employees.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed %s\n", args[0])
			return nil
		},
	}

	membersCmd := &cobra.Command{
		Use:   "members",
		Short: "List workspace members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Employees.Members(context.Background())
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println("No members found.")
				return nil
			}
			rows := make([][]string, 0, len(members))
			for _, m := range members {
				rows = append(rows, []string{m.ID[:8], m.Name, m.Role})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME", "ROLE"}, rows))
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd, removeCmd, membersCmd)
	return cmd
}

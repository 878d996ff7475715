package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kthtools/labfetch/services/labfetch/internal/canvas"
)

var assignmentsCmd = &cobra.Command{
	Use:   "assignments <course-id>",
	Short: "List assignments for a course",
	Long:  "Lists the published, gradable assignments of a Canvas course, ordered by due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}

		client := canvas.NewClient(logger)

		logger.Info().Str("course", args[0]).Msg("Finding assignments on Canvas")
		assignments, err := client.GetAssignments(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to list assignments: %w", err)
		}

		fmt.Println("Available assignments:")
		for _, assignment := range assignments {
			fmt.Printf("  %d: %s\n", assignment.ID, assignment.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(assignmentsCmd)
}

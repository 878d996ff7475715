package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kthtools/labfetch/services/labfetch/internal/canvas"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List Canvas courses",
	Long:  "Lists the Canvas courses where you are a teacher or TA, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}

		client := canvas.NewClient(logger)

		logger.Info().Msg("Finding courses on Canvas")
		courses, err := client.GetCourses(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list courses: %w", err)
		}

		fmt.Println("Available courses:")
		for _, course := range courses {
			fmt.Printf("  %d: %s\n", course.ID, course.Name)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(coursesCmd)
}

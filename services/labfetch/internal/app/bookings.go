package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kthtools/labfetch/services/labfetch/internal/remores"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings from the reservation system",
	Long:  "Scrapes and lists the bookings on every sub-list you administer in a repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _ := cmd.Flags().GetString("repo")
		user, _ := cmd.Flags().GetString("user")

		client := remores.NewClient(repo, logger)

		logger.Info().Str("repository", repo).Msg("Finding bookings")
		bookings, err := client.GetBookingsFor(cmd.Context(), user)
		if err != nil {
			return fmt.Errorf("failed to list bookings: %w", err)
		}

		fmt.Printf("Found %d bookings:\n", len(bookings))
		for _, booking := range bookings {
			fmt.Printf("  %s  %s <%s>\n", booking.Time.Format("2006-01-02 15:04"), booking.Name, booking.Email)
		}

		return nil
	},
}

func init() {
	bookingsCmd.Flags().String("repo", "", "Reservation system repository name")
	bookingsCmd.Flags().String("user", "", "Your institutional user id, e.g. `asalamon`")
	bookingsCmd.MarkFlagRequired("repo")
	bookingsCmd.MarkFlagRequired("user")

	rootCmd.AddCommand(bookingsCmd)
}

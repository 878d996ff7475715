package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kthtools/labfetch/services/labfetch/internal/canvas"
	"github.com/kthtools/labfetch/services/labfetch/internal/match"
	"github.com/kthtools/labfetch/services/labfetch/internal/remores"
)

var downloadCmd = &cobra.Command{
	Use:   "download [folder]",
	Short: "Download submissions matching reservation bookings",
	Long:  "Scrapes bookings from the reservation system, matches them against Canvas submissions and downloads the matched attachments",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireToken(); err != nil {
			return err
		}

		folder := "downloads"
		if len(args) > 0 {
			folder = args[0]
		}

		repo, _ := cmd.Flags().GetString("repo")
		user, _ := cmd.Flags().GetString("user")
		course, _ := cmd.Flags().GetUint64("course")
		assignment, _ := cmd.Flags().GetUint64("assignment")

		log := logger.With().Str("run_id", uuid.New().String()).Logger()
		ctx := cmd.Context()

		log.Info().Str("repository", repo).Msg("Finding bookings")
		reservations := remores.NewClient(repo, log)
		bookings, err := reservations.GetBookingsFor(ctx, user)
		if err != nil {
			return fmt.Errorf("failed to get bookings: %w", err)
		}
		log.Info().Int("bookings", len(bookings)).Msg("Found bookings")

		log.Info().Uint64("course", course).Uint64("assignment", assignment).Msg("Finding submissions on Canvas")
		client := canvas.NewClient(log)
		submissions, err := client.GetSubmissions(ctx, course, assignment)
		if err != nil {
			return fmt.Errorf("failed to get submissions: %w", err)
		}

		matches := match.Reconcile(bookings, submissions, viper.GetString("remores.email_domain"))

		matched := 0
		for _, m := range matches {
			if m.Submission != nil {
				matched++
			}
		}
		log.Info().Int("matched", matched).Int("bookings", len(bookings)).Msg("Found matching submissions")

		if err := os.MkdirAll(folder, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", folder, err)
		}

		// Per-submission failures are reported and the loop moves on, one
		// broken download must not sink the rest of the batch.
		for _, m := range matches {
			if m.Submission == nil {
				log.Warn().
					Str("name", m.Booking.Name).
					Str("email", m.Booking.Email.String()).
					Time("slot", m.Booking.Time).
					Msg("No submission matched booking")
				continue
			}

			prefix := fmt.Sprintf("%s-%s", m.Booking.Time.Format("200601021504"), m.Submission.User.Name)
			paths, err := client.DownloadSubmission(ctx, *m.Submission, folder, prefix)
			if err != nil {
				log.Error().Err(err).Stringer("user", m.Submission.User).Msg("Failed to download submission")
				continue
			}

			for _, path := range paths {
				log.Info().Str("path", path).Msg("Downloaded submission")
			}
		}

		return nil
	},
}

func init() {
	downloadCmd.Flags().String("repo", "", "Reservation system repository name")
	downloadCmd.Flags().String("user", "", "Your institutional user id, e.g. `asalamon`")
	downloadCmd.Flags().Uint64("course", 0, "Canvas course ID")
	downloadCmd.Flags().Uint64("assignment", 0, "Canvas assignment ID")
	downloadCmd.MarkFlagRequired("repo")
	downloadCmd.MarkFlagRequired("user")
	downloadCmd.MarkFlagRequired("course")
	downloadCmd.MarkFlagRequired("assignment")

	rootCmd.AddCommand(downloadCmd)
}

package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:   "labfetch",
	Short: "Labfetch submission downloader",
	Long:  "Downloads Canvas submissions matched against lab-slot bookings from the legacy reservation system",
}

func init() {
	cobra.OnInitialize(initConfig)

	// Flags
	rootCmd.PersistentFlags().String("canvas.api_url", "https://canvas.kth.se/api/v1", "Canvas API base URL")
	rootCmd.PersistentFlags().String("remores.url", "https://www.csc.kth.se/cgi-bin/bokning/remores1.4/server/decoder", "Reservation system CGI endpoint")
	rootCmd.PersistentFlags().String("remores.email_domain", "@kth.se", "Institutional email domain suffix")
	rootCmd.PersistentFlags().Duration("http.timeout", 0, "HTTP request timeout (default 30s)")

	// Bind flags to viper
	viper.BindPFlag("canvas.api_url", rootCmd.PersistentFlags().Lookup("canvas.api_url"))
	viper.BindPFlag("remores.url", rootCmd.PersistentFlags().Lookup("remores.url"))
	viper.BindPFlag("remores.email_domain", rootCmd.PersistentFlags().Lookup("remores.email_domain"))
	viper.BindPFlag("http.timeout", rootCmd.PersistentFlags().Lookup("http.timeout"))

	// The token is an opaque credential sourced from the environment,
	// obtained from the Canvas profile settings page.
	viper.BindEnv("canvas.api_token", "CANVAS_API_TOKEN")
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./services/labfetch")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// requireToken guards the commands that talk to Canvas.
func requireToken() error {
	if viper.GetString("canvas.api_token") == "" {
		return fmt.Errorf("CANVAS_API_TOKEN not set")
	}
	return nil
}

func Execute(log zerolog.Logger) {
	logger = log
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

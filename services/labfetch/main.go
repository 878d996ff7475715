package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/kthtools/labfetch/services/labfetch/internal/app"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()

	app.Execute(log)
}

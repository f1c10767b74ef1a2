package main

import (
	"log"

	"github.com/farxc/tuition_status/internal/env"
	"github.com/farxc/tuition_status/internal/logger"
	"github.com/farxc/tuition_status/internal/tuition"
)

func main() {
	log.SetFlags(0)

	if err := env.Load(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg := config{
		addr:        env.GetString("ADDR", ":8080"),
		maxUploadMB: env.GetInt("MAX_UPLOAD_MB", 32),
	}

	appLogger := &logger.Logger{MinLevel: logger.ParseLevel(env.GetString("LOG_LEVEL", "info"))}

	opts := tuition.OptionsFromEnv()
	if err := opts.Validate(); err != nil {
		appLogger.Fatal("Main", "Invalid pipeline configuration: error=%v", err)
	}

	app := &application{
		config: cfg,
		logger: appLogger,
		opts:   opts,
	}

	mux := app.mount()

	log.Fatal(app.run(mux))
}

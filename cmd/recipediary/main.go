// Recipe Diary — speak a recipe, keep it forever.
//
// Usage:
//
//	recipediary [-verbose] [-quiet]
package main

import (
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ram55git/recipediary/internal/api"
	"github.com/ram55git/recipediary/internal/auth"
	"github.com/ram55git/recipediary/internal/capture"
	"github.com/ram55git/recipediary/internal/config"
	"github.com/ram55git/recipediary/internal/display"
	"github.com/ram55git/recipediary/internal/domain"
	"github.com/ram55git/recipediary/internal/gallery"
	"github.com/ram55git/recipediary/internal/logger"
	"github.com/ram55git/recipediary/internal/modal"
	"github.com/ram55git/recipediary/internal/preview"
	"github.com/ram55git/recipediary/internal/record"
	"github.com/ram55git/recipediary/internal/upload"
)

func main() {
	_ = godotenv.Load()

	verbose := flag.Bool("verbose", false, "enable verbose/debug logging")
	quiet := flag.Bool("quiet", false, "disable all logging")
	logFile := flag.String("log-file", ".recipediary/recipediary.log", "file to write logs to (use \"stderr\" to log to console)")
	noPreview := flag.Bool("no-preview", false, "disable audio preview playback")
	flag.Parse()

	// Configure logger.
	logLevel := logger.LevelNormal
	if *verbose {
		logLevel = logger.LevelVerbose
	}
	if *quiet {
		logLevel = logger.LevelOff
	}

	// Direct logs to a file by default so the TUI stays clean.
	var logOut io.Writer = os.Stderr
	if *logFile != "" && *logFile != "stderr" {
		dir := filepath.Dir(*logFile)
		if dir != "" && dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not open log file %s: %v (falling back to stderr)\n", *logFile, err)
		} else {
			logOut = f
			defer f.Close()
		}
	}

	// Redirect Go's default log package (used by third-party audio
	// libs) to the same output so it doesn't corrupt the TUI.
	stdlog.SetOutput(logOut)
	stdlog.SetFlags(stdlog.Ltime)

	log := logger.New(logLevel, logOut)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Wire dependencies.
	session := auth.NewSession(log)
	if cfg.API.Token != "" {
		session.SignIn(cfg.API.Token)
	} else {
		log.Warn("no auth token configured: set RECIPEDIARY_AUTH_TOKEN to sign in")
	}

	client := api.NewClient(cfg.API.BaseURL, session, log,
		api.WithHTTPTimeout(cfg.API.Timeout),
	)

	mic := capture.NewMicrophone(cfg.Recording.SampleRate, cfg.Recording.Channels, log)
	recorder := record.New(mic, session, log,
		record.WithMaxDuration(cfg.Recording.MaxDuration),
		record.WithAudioFormat(cfg.Recording.SampleRate, cfg.Recording.Channels),
	)
	uploads := upload.NewHandler(session, log)

	// Preview playback is best-effort: headless systems run without it.
	var previewer domain.Previewer = preview.Noop{}
	if !*noPreview {
		if p, err := preview.NewPlayer(cfg.Recording.SampleRate, cfg.Recording.Channels, log); err != nil {
			log.Warn("audio output unavailable, preview disabled: %v", err)
		} else {
			previewer = p
		}
	}

	recipeList := gallery.NewController(client, log)
	detail := modal.New(client, log, recipeList.Reload, recipeList.Reload)

	ui := display.NewUI(display.Deps{
		Recorder: recorder,
		Uploads:  uploads,
		Gallery:  recipeList,
		Modal:    detail,
		Preview:  previewer,
		Service:  client,
		Config:   cfg,
		Log:      log,
	})

	fmt.Println(display.RenderBanner())

	// Bubble Tea owns the terminal — blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		os.Exit(1)
	}
}

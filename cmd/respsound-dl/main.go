package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icbhi/respiratory-sounds/internal/config"
	"github.com/icbhi/respiratory-sounds/internal/dataset"
	"github.com/icbhi/respiratory-sounds/internal/model"
)

func main() {
	// Command line flags
	var (
		dataDirFlag        = flag.String("data-dir", "", "Data directory (overrides config)")
		configFlag         = flag.String("config", "", "Path to config file")
		evictFlag          = flag.Bool("evict", false, "Evict both table caches before loading")
		evictRecordingsFlg = flag.Bool("evict-recordings", false, "Evict the recordings cache before loading")
		evictPatientsFlag  = flag.Bool("evict-patients", false, "Evict the patients cache before loading")
		waveformsFlag      = flag.Bool("export-waveforms", false, "Export a waveform PNG per recording")
		verboseFlag        = flag.Bool("verbose", false, "Show verbose output")
	)

	flag.Parse()

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *dataDirFlag != "" {
		settings.DataDir = *dataDirFlag
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	// Create manager with progress callback
	manager := dataset.NewManager(settings, func(event dataset.ProgressEvent) {
		if event.Level == dataset.LevelVerbose && !*verboseFlag {
			return
		}

		prefix := ""
		switch event.Level {
		case dataset.LevelError:
			prefix = "x "
		case dataset.LevelWarning:
			prefix = "! "
		case dataset.LevelSuccess:
			prefix = "+ "
		case dataset.LevelInfo:
			prefix = "> "
		default:
			prefix = "  "
		}

		fmt.Println(prefix + event.Message)
	})

	fmt.Println("Respiratory Sounds - ICBHI 2017 dataset loader")
	fmt.Println()

	if *evictFlag || *evictRecordingsFlg {
		if err := manager.EmptyCacheRecordings(); err != nil {
			fmt.Fprintf(os.Stderr, "Evicting recordings cache: %v\n", err)
		} else {
			fmt.Println("Evicted recordings cache.")
		}
	}
	if *evictFlag || *evictPatientsFlag {
		if err := manager.EmptyCachePatients(); err != nil {
			fmt.Fprintf(os.Stderr, "Evicting patients cache: %v\n", err)
		} else {
			fmt.Println("Evicted patients cache.")
		}
	}

	recordings, err := manager.Recordings(ctx)
	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nLoad cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error loading recordings: %v\n", err)
		os.Exit(1)
	}

	patients, err := manager.Patients()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading patients: %v\n", err)
		os.Exit(1)
	}

	joined := model.JoinRecordingsPatients(recordings, patients)

	fmt.Println()
	fmt.Printf("Recordings: %d\n", recordings.Len())
	fmt.Printf("Audio:      %s\n", recordings.TotalDuration().Round(time.Second))
	fmt.Printf("Patients:   %d\n", patients.Len())
	fmt.Printf("Join rows:  %d\n", len(joined))

	if *waveformsFlag {
		fmt.Println("\nExporting waveforms...")
		count, err := manager.ExportWaveforms(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting waveforms: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d waveform images to %s\n", count, settings.WaveformDir())
	}
}

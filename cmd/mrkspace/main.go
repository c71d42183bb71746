package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"mrkspace/internal/models"
	"mrkspace/pkg/analysis"
	"mrkspace/pkg/config"
	"mrkspace/pkg/dataset"
	"mrkspace/pkg/reconstruction"
	"mrkspace/pkg/visualization"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	inputPath := flag.String("input", "", "Optional grayscale image (JPEG/PNG) to process alongside the phantom")
	outputDir := flag.String("output", "", "Results directory (overrides the configured one)")
	phantomSize := flag.Int("size", 0, "Phantom size in pixels (overrides the configured one)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration file and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write default config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Load configuration, falling back to defaults if no file exists
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.Output.ResultsDir = *outputDir
	}
	if *phantomSize > 0 {
		cfg.Phantom.Size = *phantomSize
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	fmt.Println("================================")
	fmt.Println("K-SPACE SAMPLING AND FILTERING ANALYSIS")
	fmt.Println("Full vs. partial acquisition and Gaussian low/high-pass reconstruction")
	fmt.Println("================================")

	params := reconstruction.Params{
		PartialFraction:       cfg.Processing.PartialFraction,
		LowpassSigmaFraction:  cfg.Processing.LowpassSigmaFraction,
		HighpassSigmaFraction: cfg.Processing.HighpassSigmaFraction,
	}

	engine := reconstruction.NewEngine()
	viewer := visualization.NewViewer(cfg.Output.ResultsDir)

	// The phantom dataset is always available
	datasets := []struct {
		name string
		img  *models.Grid
	}{
		{"shepp_logan", dataset.Phantom(cfg.Phantom.Size)},
	}

	// A real slice is optional: a missing or unreadable file is skipped
	// with a warning so the phantom run still completes
	if *inputPath != "" {
		img, err := dataset.LoadImage(*inputPath)
		if err != nil {
			log.Printf("Warning: skipping input image: %v", err)
		} else {
			datasets = append(datasets, struct {
				name string
				img  *models.Grid
			}{"input_slice", dataset.NormalizeMax(img)})
		}
	}

	startTime := time.Now()
	for _, ds := range datasets {
		if err := processDataset(ds.name, ds.img, engine, viewer, params, cfg); err != nil {
			log.Fatalf("Processing %s failed: %v", ds.name, err)
		}
	}

	fmt.Printf("\nAll results in: ./%s/\n", cfg.Output.ResultsDir)
	fmt.Printf("Total processing time: %.2f seconds\n", time.Since(startTime).Seconds())
}

// processDataset runs the full pipeline for one input image:
// reconstruction with every method, rendering, and the metric report
func processDataset(name string, img *models.Grid, engine *reconstruction.Engine,
	viewer *visualization.Viewer, params reconstruction.Params, cfg *config.Config) error {

	fmt.Printf("\n============================================================\n")
	fmt.Printf("Processing: %s (%dx%d)\n", name, img.Width, img.Height)
	fmt.Printf("============================================================\n")

	// Save the original image for reference
	if err := viewer.SaveGrid(name+"_original", img); err != nil {
		return fmt.Errorf("failed to save original image: %w", err)
	}

	// Save the k-space views before any masking
	if cfg.Output.SaveKSpaceViews {
		kspaceData, err := engine.Transform().Forward(img)
		if err != nil {
			return fmt.Errorf("forward transform failed: %w", err)
		}
		if err := viewer.SaveKSpaceViews(name, kspaceData); err != nil {
			return fmt.Errorf("failed to save k-space views: %w", err)
		}
		if cfg.Output.Verbose {
			fmt.Printf("Saved: %s k-space views (log-magnitude, phase, real part)\n", name)
		}
	}

	// Reconstruct with all four methods sharing one forward transform
	results, err := engine.ReconstructAll(img, params)
	if err != nil {
		return fmt.Errorf("reconstruction failed: %w", err)
	}

	// Normalize every reconstruction by the full reference maximum so
	// the saved images share one intensity scale
	reference := results[reconstruction.Full]
	refMax := reference.Max()
	normalized := make(map[reconstruction.Method]*models.Grid, len(results))
	for method, grid := range results {
		normalized[method] = reconstruction.NormalizeByReference(grid, refMax)
	}

	if err := viewer.SaveReconstructions(name, normalized); err != nil {
		return fmt.Errorf("failed to save reconstructions: %w", err)
	}
	if cfg.Output.Verbose {
		fmt.Printf("Saved: %s reconstructions (full, partial, lowpass, highpass)\n", name)
		fmt.Printf("The full reconstruction serves as the gold standard for comparison.\n")
	}

	// Difference maps of each degraded method against the reference
	if cfg.Output.SaveDifferenceMaps {
		for _, method := range reconstruction.Methods() {
			if method == reconstruction.Full {
				continue
			}
			diffName := fmt.Sprintf("%s_%s", name, method)
			if err := viewer.SaveDifferenceMap(diffName, normalized[method], normalized[reconstruction.Full]); err != nil {
				return fmt.Errorf("failed to save %s difference map: %w", method, err)
			}
		}
		if cfg.Output.Verbose {
			fmt.Printf("Saved: %s difference maps\n", name)
		}
	}

	// Quality metrics against the full reference
	report, err := analysis.Compare(reference, results)
	if err != nil {
		return fmt.Errorf("metric comparison failed: %w", err)
	}

	fmt.Printf("\nQuality metrics (fraction=%.2f, lowpass sigma=%.2f, highpass sigma=%.2f):\n\n",
		params.PartialFraction, params.LowpassSigmaFraction, params.HighpassSigmaFraction)
	fmt.Print(report.String())

	return nil
}

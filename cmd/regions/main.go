// Command regions runs the detection post-processing pipeline over one
// image or a directory of captured frames and writes the extracted region
// segments to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/vision-works/go-regions/config"
	"github.com/vision-works/go-regions/images"
	"github.com/vision-works/go-regions/inference"
	"github.com/vision-works/go-regions/inference/darknet"
	"github.com/vision-works/go-regions/pipeline"
	"github.com/vision-works/go-regions/util"
)

const (
	// DefaultConfigPath is the default pipeline configuration file.
	DefaultConfigPath = "regions.yaml"
	// DefaultOutputDir is the default directory for extracted segments.
	DefaultOutputDir = "segments"
)

func main() {
	var (
		configPath string
		imagePath  string
		dirPath    string
		outputDir  string
		workers    int
	)
	flag.StringVar(&configPath, "config", DefaultConfigPath, "Path to pipeline configuration file")
	flag.StringVar(&imagePath, "image", "", "Path to a single image file")
	flag.StringVar(&dirPath, "dir", "", "Path to a directory of frame-<n> image files")
	flag.StringVar(&outputDir, "output", DefaultOutputDir, "Output directory for extracted segments")
	flag.IntVar(&workers, "workers", 0, "Concurrent pipeline invocations for directory input (0 = GOMAXPROCS)")
	flag.Parse()

	if (imagePath == "") == (dirPath == "") {
		log.Fatal("exactly one of -image or -dir is required")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	retain, err := cfg.RetainIDs()
	if err != nil {
		log.Fatalf("resolving categories: %v", err)
	}

	engine, err := darknet.New(darknet.Config{
		ConfigPath:  cfg.Model.ConfigPath,
		WeightsPath: cfg.Model.WeightsPath,
		InputShape:  image.Point{X: cfg.Model.InputWidth, Y: cfg.Model.InputHeight},
	})
	if err != nil {
		log.Fatalf("loading network: %v", err)
	}
	defer engine.Close()

	p := pipeline.New(retain,
		pipeline.WithScoreThreshold(cfg.Detection.ScoreThreshold),
		pipeline.WithOverlapThreshold(cfg.Detection.OverlapThreshold),
	)

	if imagePath != "" {
		if err := processImage(p, engine, imagePath, outputDir); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := processDirectory(p, engine, dirPath, outputDir, workers); err != nil {
		log.Fatal(err)
	}
}

// processImage runs the pipeline over a single image file.
func processImage(p *pipeline.Pipeline, engine inference.Engine, path, outputDir string) error {
	img, err := imaging.Open(path)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	frame := images.FromImage(img, images.OrderBGR)

	outputs, err := engine.Forward(frame)
	if err != nil {
		return fmt.Errorf("forward pass: %w", err)
	}
	segments, err := p.Run(outputs, frame)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	saved, err := util.SaveSegments(outputDir, segments)
	if err != nil {
		return err
	}
	log.Printf("%s: %d segments -> %s", path, saved, outputDir)
	return nil
}

// processDirectory runs the forward pass sequentially per frame, then
// post-processes all frames as one concurrent batch.
func processDirectory(p *pipeline.Pipeline, engine inference.Engine, dir, outputDir string, workers int) error {
	files, err := util.LoadDirectoryImageFiles(dir)
	if err != nil {
		return fmt.Errorf("loading %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no image files in %s", dir)
	}

	// The engine owns its output buffers, so outputs are copied out before
	// the next Forward call overwrites them.
	requests := make([]pipeline.Request, 0, len(files))
	for _, file := range files {
		outputs, err := engine.Forward(file.Frame)
		if err != nil {
			return fmt.Errorf("forward pass on %s: %w", file.Path, err)
		}
		requests = append(requests, pipeline.Request{
			Outputs: copyOutputs(outputs),
			Frame:   file.Frame,
		})
	}

	results, err := p.RunBatch(context.Background(), requests, workers)
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	for i, segments := range results {
		frameDir := filepath.Join(outputDir, fmt.Sprintf("frame-%d", files[i].Index))
		saved, err := util.SaveSegments(frameDir, segments)
		if err != nil {
			return err
		}
		log.Printf("%s: %d segments -> %s", files[i].Path, saved, frameDir)
	}
	return nil
}

func copyOutputs(outputs [][][]float32) [][][]float32 {
	out := make([][][]float32, len(outputs))
	for i, rows := range outputs {
		out[i] = make([][]float32, len(rows))
		for j, row := range rows {
			out[i][j] = append([]float32(nil), row...)
		}
	}
	return out
}

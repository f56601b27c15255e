//analyze runs the football analysis on a local video and prints its summary
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/chenBenjamin97/football-analyzer/pkg/video"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	input := flag.String("input", "", "video to analyze")
	output := flag.String("output", "output_videos/output_video.avi", "annotated video, XVID encoded")
	stubs := flag.String("stubs", "stubs", "directory caching tracks and camera movement, empty disables it")
	stats := flag.String("stats", "", "directory receiving the JSON summary and charts, empty disables them")
	configFile := flag.String("config", "", "optional config file, defaults are used for missing keys")
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	utils.SetConfigDefaults()
	if *configFile != "" {
		viper.SetConfigFile(*configFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("Error: Could not read config file, got '%v'", err)
		}
	}

	opts := video.OptionsFromConfig(*input, "")
	opts.SourcePath = *input
	opts.OutputPath = *output
	opts.StubsDir = *stubs
	opts.StatsDir = *stats

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatalf("Error: Could not create output directory, got '%v'", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := video.Run(ctx, opts)
	if err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatalf("Error: Got '%v'", err)
	}
}

package utils

import "github.com/spf13/viper"

//SetConfigDefaults registers a default for every configuration key, so a partial config.yaml is enough
func SetConfigDefaults() {
	viper.SetDefault("http.port", "8080")

	viper.SetDefault("directory.root", "./data/")
	viper.SetDefault("directory.source", "./data/source/")
	viper.SetDefault("directory.ready", "./data/ready/")
	viper.SetDefault("directory.temp", "./data/temp/")
	viper.SetDefault("directory.stubs", "./data/stubs/")
	viper.SetDefault("directory.stats", "./data/stats/")

	viper.SetDefault("video.prod_format", "mp4")
	viper.SetDefault("video.fps", 24)

	viper.SetDefault("detector.script", "./detector/yolo_detect.py")
	viper.SetDefault("detector.model", "./models/best.pt")
	viper.SetDefault("detector.confidence", 0.1)

	viper.SetDefault("tracker.track_thresh", 0.25)
	viper.SetDefault("tracker.high_thresh", 0.35)
	viper.SetDefault("tracker.match_thresh", 0.8)
	viper.SetDefault("tracker.track_buffer", 30)

	viper.SetDefault("camera.minimum_distance", 5.0)
	viper.SetDefault("camera.max_corners", 100)
	viper.SetDefault("camera.quality_level", 0.3)
	viper.SetDefault("camera.min_distance", 3.0)

	viper.SetDefault("analytics.max_player_ball_distance", 70.0)
	viper.SetDefault("analytics.frame_window", 5)
}

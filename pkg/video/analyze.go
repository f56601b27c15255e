package video

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/chenBenjamin97/football-analyzer/pkg/analytics"
	"github.com/chenBenjamin97/football-analyzer/pkg/cache"
	"github.com/chenBenjamin97/football-analyzer/pkg/camera"
	"github.com/chenBenjamin97/football-analyzer/pkg/detector"
	"github.com/chenBenjamin97/football-analyzer/pkg/report"
	"github.com/chenBenjamin97/football-analyzer/pkg/tracking"
	"github.com/chenBenjamin97/football-analyzer/pkg/utils"
	"github.com/chenBenjamin97/football-analyzer/pkg/view"
)

//Options describes one analysis run
type Options struct {
	//ID identifies the run in the summary, may be empty
	ID string
	//SourcePath is the video to analyze
	SourcePath string
	//OutputPath receives the annotated video, XVID encoded
	OutputPath string
	//StubsDir caches tracks and camera movement between runs, empty disables caching
	StubsDir string
	//StatsDir receives the JSON summary and the charts, empty disables them
	StatsDir string
	//FrameRate is used when the video does not report one
	FrameRate float64

	Detector              detector.Config
	ByteTrack             tracking.ByteTrackConfig
	Camera                camera.Config
	MaxPlayerBallDistance float64
	FrameWindow           int
}

//OptionsFromConfig builds Options from the configuration file for a video in the source directory
func OptionsFromConfig(srcVideoName, id string) Options {
	cameraCfg := camera.DefaultConfig()
	cameraCfg.MinimumDistance = viper.GetFloat64("camera.minimum_distance")
	cameraCfg.MaxCorners = viper.GetInt("camera.max_corners")
	cameraCfg.QualityLevel = viper.GetFloat64("camera.quality_level")
	cameraCfg.MinDistance = viper.GetFloat64("camera.min_distance")

	return Options{
		ID:         id,
		SourcePath: path.Join(viper.GetString("directory.source"), srcVideoName),
		OutputPath: path.Join(viper.GetString("directory.temp"), utils.BaseName(srcVideoName)+".avi"),
		StubsDir:   viper.GetString("directory.stubs"),
		StatsDir:   viper.GetString("directory.stats"),
		FrameRate:  viper.GetFloat64("video.fps"),
		Detector: detector.Config{
			Script:     viper.GetString("detector.script"),
			Model:      viper.GetString("detector.model"),
			Confidence: viper.GetFloat64("detector.confidence"),
		},
		ByteTrack: tracking.ByteTrackConfig{
			FrameRate:   viper.GetInt("video.fps"),
			TrackBuffer: viper.GetInt("tracker.track_buffer"),
			TrackThresh: viper.GetFloat64("tracker.track_thresh"),
			HighThresh:  viper.GetFloat64("tracker.high_thresh"),
			MatchThresh: viper.GetFloat64("tracker.match_thresh"),
		},
		Camera:                cameraCfg,
		MaxPlayerBallDistance: viper.GetFloat64("analytics.max_player_ball_distance"),
		FrameWindow:           viper.GetInt("analytics.frame_window"),
	}
}

//Analyze runs the full analysis of a video from the source directory and stores the annotated video in the ready
//directory (converted by ffmpeg to the production format) and its summary in the stats directory.
//srcVideoName should include file's extension ('.mp4', etc.)
func Analyze(srcVideoName, id string) error {
	opts := OptionsFromConfig(srcVideoName, id)
	outputVideoPath := path.Join(viper.GetString("directory.ready"), utils.BaseName(srcVideoName)+"."+viper.GetString("video.prod_format"))

	defer os.Remove(opts.OutputPath) //remove '.avi' temp file at the end of this function

	if _, err := Run(context.Background(), opts); err != nil {
		log.Printf("Analyze: Error analyzing '%s', got '%v'", srcVideoName, err)
		return fmt.Errorf("Analyze: %w", err)
	}

	//Convert to from 'avi' to production format. example: ffmpeg -i match.avi match.mp4
	cmd := exec.Command("ffmpeg", "-y", "-i", opts.OutputPath, outputVideoPath)
	if err := cmd.Run(); err != nil {
		log.Printf("Analyze: Error from ffmpeg, got '%v'", err)
		return fmt.Errorf("Analyze: ffmpeg failed, got '%w'", err)
	}

	log.Printf("Analyze: '%s' is ready at '%s'", srcVideoName, outputVideoPath)
	return nil
}

//Run analyzes opts.SourcePath: detection and tracking, camera movement compensation, pitch projection, speed,
//teams and ball possession. It writes the annotated video and, when configured, the summary and charts.
func Run(ctx context.Context, opts Options) (report.Summary, error) {
	frames, fps, err := ReadVideo(opts.SourcePath)
	if err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}
	defer CloseFrames(frames)

	if fps <= 0 {
		fps = opts.FrameRate
	}

	var stubs cache.Store
	if opts.StubsDir != "" {
		fs, err := cache.NewFileStore()
		if err != nil {
			return report.Summary{}, fmt.Errorf("Run: %w", err)
		}
		stubs = fs
	}

	log.Printf("Run: Analyzing '%s', %d frames at %.2f fps", opts.SourcePath, len(frames), fps)

	store, err := trackObjects(ctx, opts, stubs, len(frames))
	if err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}

	ballFrames := 0
	for _, frame := range store.Ball {
		if len(frame) > 0 {
			ballFrames++
		}
	}

	store.Ball = tracking.InterpolateBall(store.Ball)
	tracking.AddPositions(store)

	flow := NewFlowTracker(frames, opts.Camera)
	defer flow.Close()

	estimator := camera.NewEstimator(frames[0].Cols(), frames[0].Rows(), opts.Camera, stubs)
	movement, err := estimator.GetCameraMovement(flow, len(frames), utils.StubPath(opts.StubsDir, opts.SourcePath, "camera"))
	if err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}

	if err := camera.AddAdjustedPositions(store, movement); err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}

	transformer, err := view.NewTransformer()
	if err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}
	transformer.AddTransformedPositions(store)

	analytics.NewSpeedDistance(opts.FrameWindow, fps).Add(store)

	AssignTeams(frames, store)
	possession := analytics.AssignPossession(store, analytics.NewBallAssigner(opts.MaxPlayerBallDistance))

	DrawAnnotations(frames, store, movement, possession.Control)
	if err := SaveVideo(frames, opts.OutputPath, fps); err != nil {
		return report.Summary{}, fmt.Errorf("Run: %w", err)
	}

	summary := report.Build(filepath.Base(opts.SourcePath), store, movement, possession, ballFrames)
	summary.ID = opts.ID

	if opts.StatsDir != "" {
		if err := writeStats(opts.StatsDir, utils.BaseName(opts.SourcePath), store, summary, movement, possession); err != nil {
			return summary, fmt.Errorf("Run: %w", err)
		}
	}

	return summary, nil
}

//trackObjects returns the tracks of every frame, from the stub when there is one, otherwise from the detector
func trackObjects(ctx context.Context, opts Options, stubs cache.Store, frameCount int) (*tracking.TrackStore, error) {
	stubPath := utils.StubPath(opts.StubsDir, opts.SourcePath, "tracks")
	continuity := tracking.NewByteTrack(opts.ByteTrack)

	if stubs != nil && stubs.Exists(stubPath) {
		return tracking.NewTracker(nil, continuity, stubs).GetObjectTracks(frameCount, stubPath)
	}

	proc, err := detector.Start(ctx, opts.Detector, opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("trackObjects: %w", err)
	}

	store, trackErr := tracking.NewTracker(proc, continuity, stubs).GetObjectTracks(frameCount, stubPath)
	if err := proc.Close(); err != nil {
		log.Printf("trackObjects: %v", err)
	}

	return store, trackErr
}

//writeStats stores the summary as <name>.json, the charts as <name>_<kind>.png and the team heatmaps as
//<name>_heatmap_<team>.webp
func writeStats(dir, name string, store *tracking.TrackStore, summary report.Summary, movement camera.Movement, possession analytics.Possession) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("writeStats: Could not create '%s', got '%w'", dir, err)
	}

	if err := report.WriteJSON(filepath.Join(dir, name+".json"), summary); err != nil {
		return fmt.Errorf("writeStats: %w", err)
	}

	if err := report.PlotCameraMovement(movement, filepath.Join(dir, name+"_camera.png")); err != nil {
		return fmt.Errorf("writeStats: %w", err)
	}

	if err := report.PlotPossession(possession.Control, filepath.Join(dir, name+"_possession.png")); err != nil {
		return fmt.Errorf("writeStats: %w", err)
	}

	for team, suffix := range map[int]string{utils.DarkTeamID: "dark", utils.LightTeamID: "light"} {
		if err := report.SaveHeatmap(store, team, filepath.Join(dir, name+"_heatmap_"+suffix+".webp")); err != nil {
			return fmt.Errorf("writeStats: %w", err)
		}
	}

	return nil
}

package camera

//Config holds the feature detection, optical flow and motion threshold parameters
type Config struct {
	//MaxCorners caps the number of features per detection
	MaxCorners int
	//QualityLevel is the minimal accepted corner quality, relative to the best corner
	QualityLevel float64
	//MinDistance is the minimal distance between two features, in pixels
	MinDistance float64
	//BlockSize is the corner detector neighbourhood. gocv does not expose it, OpenCV's default (3) is used there.
	BlockSize int

	//WinSize is the Lucas-Kanade search window side, in pixels
	WinSize int
	//MaxLevel is the number of pyramid levels above the original frame
	MaxLevel int
	//MaxIterations and Epsilon stop the per-level flow search
	MaxIterations int
	Epsilon       float64

	//MinimumDistance is the displacement, in pixels, a frame must strictly exceed to count as camera movement
	MinimumDistance float64

	//Bands are the column ranges features are taken from: the pitch borders, where players rarely stand
	Bands []Band
}

//Band is a half open column range [From, To)
type Band struct {
	From int
	To   int
}

//DefaultConfig returns the parameters tuned for 1920x1080 broadcast footage
func DefaultConfig() Config {
	return Config{
		MaxCorners:      100,
		QualityLevel:    0.3,
		MinDistance:     3,
		BlockSize:       7,
		WinSize:         15,
		MaxLevel:        2,
		MaxIterations:   10,
		Epsilon:         0.03,
		MinimumDistance: 5,
		Bands:           []Band{{From: 0, To: 20}, {From: 900, To: 1050}},
	}
}

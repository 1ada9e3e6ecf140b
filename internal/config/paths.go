package config

const (
	StateDir = ".cssfix"

	// Subdirectory names under the state dir.
	ObjectsDirName = "objects"
	RunsDirName    = "runs"
)

const (
	// TargetFile is the one file this tool operates on, relative to the
	// project root.
	TargetFile = "src/styles/global.css"
)

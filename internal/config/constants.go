package config

const SourceFileExt = ".rs"

// ConfigFileName is looked up in the working directory unless -config is
// given.
const ConfigFileName = ".reflint.yaml"

// Check names as they appear in the configuration file.
const (
	CheckNeedlessLifetimes = "needless-lifetimes"
)

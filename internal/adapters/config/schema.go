package config

// File represents the structure of the .jopts.yaml configuration file.
type File struct {
	BuildFile  string   `yaml:"buildFile"`
	WatchFiles []string `yaml:"watchFiles"`
	Debounce   string   `yaml:"debounce"`
}

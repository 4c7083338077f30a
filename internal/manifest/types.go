package manifest

// Project is the typed form of an overlook.yaml file.
type Project struct {
	Name     string  `yaml:"name,omitempty" json:"name,omitempty"`
	Requires string  `yaml:"requires,omitempty" json:"requires,omitempty"`
	Paths    any     `yaml:"paths,omitempty" json:"paths,omitempty"`
	Routes   *Routes `yaml:"routes,omitempty" json:"routes,omitempty"`
	Log      *Log    `yaml:"log,omitempty" json:"log,omitempty"`
}

// Routes is the routes section of a project file.
type Routes struct {
	Path          string         `yaml:"path,omitempty" json:"path,omitempty"`
	Upon          string         `yaml:"upon,omitempty" json:"upon,omitempty"`
	Types         map[string]any `yaml:"types,omitempty" json:"types,omitempty"`
	Exts          any            `yaml:"exts,omitempty" json:"exts,omitempty"`
	FilterFiles   any            `yaml:"filter_files,omitempty" json:"filter_files,omitempty"`
	FilterFolders any            `yaml:"filter_folders,omitempty" json:"filter_folders,omitempty"`
	MaxConcurrent int            `yaml:"max_concurrent,omitempty" json:"max_concurrent,omitempty"`
}

// Log is the log section of a project file.
type Log struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
}

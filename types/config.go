package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	JSON    bool          `mapstructure:"json"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir  string `mapstructure:"rootDir" validate:"required"`
	TasksDir string `mapstructure:"tasksDir" validate:"required"`
}

// DataConfig holds data storage configuration
type DataConfig struct {
	// Backend selects the persistence implementation.
	Backend string `mapstructure:"backend" validate:"required,oneof=file sqlite"`
	// File is the data file name (task file for the file backend, database
	// file for the sqlite backend).
	File string `mapstructure:"file" validate:"required"`
	// Format applies to the file backend only.
	Format string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

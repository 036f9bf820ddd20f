package config

// Config is the root application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Log      LogConfig      `yaml:"log"`
	Practice PracticeConfig `yaml:"practice"`
	Harvest  HarvestConfig  `yaml:"harvest"`
}

// Backend names accepted by DataConfig.Backend.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// DataConfig says where the verb and comparison documents live.
type DataConfig struct {
	VerbsPath       string `yaml:"verbs_path"       env:"DATA_VERBS_PATH"       env-default:"data/verbs.json"`
	ComparisonsPath string `yaml:"comparisons_path" env:"DATA_COMPARISONS_PATH" env-default:"data/comparisons.json"`
	Backend         string `yaml:"backend"          env:"DATA_BACKEND"          env-default:"json"`
	SQLitePath      string `yaml:"sqlite_path"      env:"DATA_SQLITE_PATH"      env-default:"data/verbs.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// PracticeConfig holds quiz settings.
type PracticeConfig struct {
	// Seed fixes the random draws; 0 picks a random seed.
	Seed  uint64 `yaml:"seed"  env:"PRACTICE_SEED"  env-default:"0"`
	Track string `yaml:"track" env:"PRACTICE_TRACK" env-default:"verbs"`
}

// HarvestConfig holds settings for collecting example sentences from articles.
type HarvestConfig struct {
	PerVerbLimit int `yaml:"per_verb_limit" env:"HARVEST_PER_VERB_LIMIT" env-default:"3"`
}

package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mgouveia/userdb/internal/flagx"
	"github.com/mgouveia/userdb/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "5s" and integer nanoseconds.
// After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN  string         `json:"database_dsn"`
	QueryTimeout timex.Duration `json:"query_timeout"`
	LogLevel     string         `json:"log_level"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. An unreadable file or
// invalid JSON panics, since running with half-applied config is worse than
// not starting.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.DatabaseDSN = c.DatabaseDSN
	config.QueryTimeout = time.Duration(c.QueryTimeout.Duration)
	config.LogLevel = c.LogLevel
}

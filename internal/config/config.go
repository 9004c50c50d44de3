package config

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Logging struct {
	Level slog.Level
}

type Ranking struct {
	MaxResults int
}

type Config struct {
	Logging Logging
	Ranking Ranking
}

const (
	logtag = "[config]"

	defaultLogLevel   = slog.LevelError
	defaultMaxResults = 12
)

// Load builds the config from the environment. CHATBOT_ENV_FILE, when set,
// names a dotenv file loaded first.
func Load() *Config {
	if path := os.Getenv("CHATBOT_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
	}

	return &Config{
		Logging: *newLogging(),
		Ranking: *newRanking(),
	}
}

func newLogging() *Logging {
	level := defaultLogLevel
	if v := getenv("CHATBOT_LOG_LEVEL", ""); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = defaultLogLevel
		}
	}
	return &Logging{Level: level}
}

// The limit can only be lowered, values above the default fall back to it.
func newRanking() *Ranking {
	n, err := strconv.Atoi(getenv("CHATBOT_MAX_RESULTS", strconv.Itoa(defaultMaxResults)))
	if err != nil || n <= 0 || n > defaultMaxResults {
		n = defaultMaxResults
	}
	return &Ranking{MaxResults: n}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}

package config

// Config holds runtime configuration for the server and the one-shot CLI.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	Timezone     string
	HistoryDays  int
	MCPEnabled   bool
	AdminToken   string
	NHL          NHLConfig
	Venues       VenuesConfig
	Cache        CacheConfig
	Render       RenderConfig
	Publish      PublishConfig
	Metrics      MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (or the file named by ENV_FILE) is applied first without
// overriding variables that are already set.
func Load() Config {
	loadDotEnv()
	return Config{
		Port:         envOrDefault(envPort, defaultPort),
		PollInterval: durationEnvOrDefault(envPollInterval, defaultPollInterval),
		Provider:     envOrDefault(envProvider, defaultProvider),
		Timezone:     envOrDefault(envTimezone, defaultTimezone),
		HistoryDays:  intEnvOrDefault(envHistoryDays, defaultHistoryDays),
		MCPEnabled:   boolEnvOrDefault(envMCPEnabled, defaultMCPEnabled),
		AdminToken:   envOrDefault(envAdminToken, ""),
		NHL:          loadNHL(),
		Venues:       loadVenues(),
		Cache:        loadCache(),
		Render:       loadRender(),
		Publish:      loadPublish(),
		Metrics:      loadMetrics(),
	}
}

package config

import "time"

const (
	envFile         = "ENV_FILE"
	envPort         = "PORT"
	envPollInterval = "POLL_INTERVAL"
	envProvider     = "PROVIDER"
	envTimezone     = "TIMEZONE"
	envHistoryDays  = "HISTORY_DAYS"
	envMCPEnabled   = "MCP_ENABLED"
	envAdminToken   = "ADMIN_TOKEN"

	envNHLBaseURL      = "NHL_BASE_URL"
	envNHLUserAgent    = "NHL_USER_AGENT"
	envNHLRateInterval = "NHL_RATE_INTERVAL"
	envNHLMaxAttempts  = "NHL_MAX_ATTEMPTS"
	envNHLBackoff      = "NHL_RETRY_BACKOFF"

	envArenasCSV   = "ARENAS_CSV_PATH"
	envVenuesDBURL = "VENUES_DATABASE_URL"

	envScheduleCache     = "SCHEDULE_CACHE"
	envSnapshotDir       = "SNAPSHOT_DIR"
	envSnapshotRetention = "SNAPSHOT_RETENTION_DAYS"
	envSnapshotSync      = "SNAPSHOT_SYNC_ENABLED"
	envSnapshotDays      = "SNAPSHOT_SYNC_DAYS"
	envSnapshotRate      = "SNAPSHOT_SYNC_INTERVAL"
	envSnapshotHour      = "SNAPSHOT_DAILY_HOUR"
	envRedisAddr         = "REDIS_ADDR"
	envRedisTTL          = "REDIS_TTL"

	envRenderOutDir   = "RENDER_OUT_DIR"
	envRenderPerSlide = "RENDER_PER_SLIDE"
	envRenderLogo     = "RENDER_LOGO_PATH"

	envGitHubPublish   = "GITHUB_PUBLISH"
	envGitHubToken     = "GITHUB_TOKEN"
	envGitHubOwner     = "GITHUB_OWNER"
	envGitHubRepo      = "GITHUB_REPO"
	envGitHubBranch    = "GITHUB_BRANCH"
	envGitHubPagesDir  = "GITHUB_PAGES_DIR"
	envGitHubSubdir    = "GITHUB_SUBDIR"
	envGitHubUserAgent = "GITHUB_USER_AGENT"
	envGitHubAPIURL    = "GITHUB_API_URL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultEnvFile = ".env"
	defaultPort    = "4000"
	// One regeneration per quarter hour keeps the card current without hammering upstream.
	defaultPollInterval = 15 * Duration(time.Minute)
	defaultProvider     = "nhle"
	defaultTimezone     = "America/Toronto"
	defaultHistoryDays  = 14
	defaultMCPEnabled   = true

	defaultNHLBaseURL      = "https://api-web.nhle.com/v1"
	defaultNHLRateInterval = 250 * Duration(time.Millisecond)
	defaultNHLMaxAttempts  = 3
	defaultNHLBackoff      = Duration(time.Second)

	defaultArenasCSV = "nhl_arenas.csv"

	defaultScheduleCache     = CacheFS
	defaultSnapshotDir       = "data/snapshots"
	defaultSnapshotRetention = 30
	defaultSnapshotSync      = true
	defaultSnapshotDays      = 14
	defaultSnapshotInterval  = Duration(time.Second)
	// UTC hour for the daily backfill (10:00 UTC is early morning in North America).
	defaultSnapshotDailyHour = 10
	defaultRedisAddr         = "localhost:6379"
	defaultRedisTTL          = 30 * 24 * Duration(time.Hour)

	defaultRenderOutDir   = "ig_pressure"
	defaultRenderPerSlide = 5

	defaultGitHubPublish  = false
	defaultGitHubOwner    = "stat-trick-hockey"
	defaultGitHubRepo     = "ig_pressure"
	defaultGitHubBranch   = "main"
	defaultGitHubPagesDir = "docs"
	defaultGitHubSubdir   = "ig_pressure"
	defaultGitHubUA       = "Mozilla/5.0 (compatible; GitHubPublisher/1.0)"
	defaultGitHubAPIURL   = "https://api.github.com"

	defaultMetricsPort = "9090"
)

package config

import "strings"

// Schedule cache backends.
const (
	CacheNone  = "none"
	CacheFS    = "fs"
	CacheRedis = "redis"
)

// NHLConfig controls how the NHL schedule API is reached.
type NHLConfig struct {
	BaseURL      string
	UserAgent    string
	RateInterval Duration
	MaxAttempts  int
	Backoff      Duration
}

// VenuesConfig names the arena sources. The database wins when both are set.
type VenuesConfig struct {
	CSVPath     string
	DatabaseURL string
}

// CacheConfig selects the schedule cache for settled dates.
type CacheConfig struct {
	Kind          string
	SnapshotDir   string
	RetentionDays int
	RedisAddr     string
	RedisTTL      Duration
	Sync          SnapshotSyncConfig
}

// SnapshotSyncConfig controls automatic snapshot backfill for the fs cache.
type SnapshotSyncConfig struct {
	Enabled      bool
	Days         int      // how many past days to maintain
	Interval     Duration // delay between snapshot fetches
	DailyHourUTC int      // hour of day (0-23) for the daily backfill
}

// RenderConfig controls slide output.
type RenderConfig struct {
	OutDir   string
	PerSlide int
	LogoPath string
}

// PublishConfig controls uploading slides to GitHub Pages.
type PublishConfig struct {
	Enabled   bool
	Token     string
	Owner     string
	Repo      string
	Branch    string
	PagesDir  string
	Subdir    string
	UserAgent string
	APIURL    string
}

func loadNHL() NHLConfig {
	return NHLConfig{
		BaseURL:      envOrDefault(envNHLBaseURL, defaultNHLBaseURL),
		UserAgent:    envOrDefault(envNHLUserAgent, ""),
		RateInterval: durationEnvOrDefault(envNHLRateInterval, defaultNHLRateInterval),
		MaxAttempts:  intEnvOrDefault(envNHLMaxAttempts, defaultNHLMaxAttempts),
		Backoff:      durationEnvOrDefault(envNHLBackoff, defaultNHLBackoff),
	}
}

func loadVenues() VenuesConfig {
	return VenuesConfig{
		CSVPath:     envOrDefault(envArenasCSV, defaultArenasCSV),
		DatabaseURL: envOrDefault(envVenuesDBURL, ""),
	}
}

func loadCache() CacheConfig {
	kind := strings.ToLower(strings.TrimSpace(envOrDefault(envScheduleCache, defaultScheduleCache)))
	switch kind {
	case CacheNone, CacheFS, CacheRedis:
	default:
		kind = defaultScheduleCache
	}
	hour := intEnvOrDefault(envSnapshotHour, defaultSnapshotDailyHour)
	if hour > 23 {
		hour = defaultSnapshotDailyHour
	}
	return CacheConfig{
		Kind:          kind,
		SnapshotDir:   envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotRetention, defaultSnapshotRetention),
		RedisAddr:     envOrDefault(envRedisAddr, defaultRedisAddr),
		RedisTTL:      durationEnvOrDefault(envRedisTTL, defaultRedisTTL),
		Sync: SnapshotSyncConfig{
			Enabled:      boolEnvOrDefault(envSnapshotSync, defaultSnapshotSync),
			Days:         intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
			Interval:     durationEnvOrDefault(envSnapshotRate, defaultSnapshotInterval),
			DailyHourUTC: hour,
		},
	}
}

func loadRender() RenderConfig {
	return RenderConfig{
		OutDir:   envOrDefault(envRenderOutDir, defaultRenderOutDir),
		PerSlide: intEnvOrDefault(envRenderPerSlide, defaultRenderPerSlide),
		LogoPath: envOrDefault(envRenderLogo, ""),
	}
}

func loadPublish() PublishConfig {
	return PublishConfig{
		Enabled:   boolEnvOrDefault(envGitHubPublish, defaultGitHubPublish),
		Token:     envOrDefault(envGitHubToken, ""),
		Owner:     envOrDefault(envGitHubOwner, defaultGitHubOwner),
		Repo:      envOrDefault(envGitHubRepo, defaultGitHubRepo),
		Branch:    envOrDefault(envGitHubBranch, defaultGitHubBranch),
		PagesDir:  envOrDefault(envGitHubPagesDir, defaultGitHubPagesDir),
		Subdir:    envOrDefault(envGitHubSubdir, defaultGitHubSubdir),
		UserAgent: envOrDefault(envGitHubUserAgent, defaultGitHubUA),
		APIURL:    envOrDefault(envGitHubAPIURL, defaultGitHubAPIURL),
	}
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. Values come from the
// environment so main stays lean; every field has a development default.
type Server struct {
	Addr string

	// DataDir holds the flat dataset cache and the freshness manifest.
	DataDir string

	// Upstream dataset sources.
	RevocationURL   string
	SDNPrimaryURL   string
	SDNAliasURL     string
	DatasetMaxAge   time.Duration
	RefreshCooldown time.Duration

	// Download guards.
	DownloadTimeout time.Duration
	DownloadCeiling int64
	ExtractCeiling  int64

	// Cardinality floors below which a downloaded dataset is treated as
	// truncated or corrupted.
	RevocationFloor int
	SanctionsFloor  int

	// Litigation search collaborator.
	LitigationBaseURL  string
	LitigationToken    string
	LitigationInterval time.Duration
	LitigationCacheTTL time.Duration

	// RedisURL enables the litigation result cache when non-empty.
	RedisURL string

	// AdminSigningKey verifies bearer tokens on the admin surface.
	AdminSigningKey string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	return Server{
		Addr:    envStr("ORGVET_ADDR", ":8080"),
		DataDir: envStr("ORGVET_DATA_DIR", "./data"),

		RevocationURL:   envStr("ORGVET_IRS_REVOCATION_URL", "https://apps.irs.gov/pub/epostcard/data-download-revocation.zip"),
		SDNPrimaryURL:   envStr("ORGVET_OFAC_SDN_URL", "https://www.treasury.gov/ofac/downloads/sdn.csv"),
		SDNAliasURL:     envStr("ORGVET_OFAC_ALT_URL", "https://www.treasury.gov/ofac/downloads/alt.csv"),
		DatasetMaxAge:   envDuration("ORGVET_DATASET_MAX_AGE", 7*24*time.Hour),
		RefreshCooldown: envDuration("ORGVET_REFRESH_COOLDOWN", 60*time.Second),

		DownloadTimeout: envDuration("ORGVET_DOWNLOAD_TIMEOUT", 5*time.Minute),
		DownloadCeiling: envInt64("ORGVET_DOWNLOAD_CEILING_BYTES", 500<<20),
		ExtractCeiling:  envInt64("ORGVET_EXTRACT_CEILING_BYTES", 1<<30),

		RevocationFloor: envInt("ORGVET_REVOCATION_FLOOR", 100_000),
		SanctionsFloor:  envInt("ORGVET_SANCTIONS_FLOOR", 1_000),

		LitigationBaseURL:  envStr("ORGVET_LITIGATION_URL", "https://www.courtlistener.com/api/rest/v4"),
		LitigationToken:    os.Getenv("ORGVET_LITIGATION_TOKEN"),
		LitigationInterval: envDuration("ORGVET_LITIGATION_INTERVAL", time.Second),
		LitigationCacheTTL: envDuration("ORGVET_LITIGATION_CACHE_TTL", 24*time.Hour),

		RedisURL: os.Getenv("ORGVET_REDIS_URL"),

		AdminSigningKey: envStr("ORGVET_ADMIN_SIGNING_KEY", "dev-secret-key-change-in-production"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

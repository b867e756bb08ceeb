// Package key names every configuration key.
package key

// Page downloads.
const (
	DownloaderRetryLimit     = "downloader.retry_limit"
	DownloaderTLSFingerprint = "downloader.tls_fingerprint"
	DownloaderHeadless       = "downloader.headless"
	DownloaderHeadlessBin    = "downloader.headless_bin"
)

const CrawlerParallelism = "crawler.parallelism"

// Top recommendations selection.
const (
	RecommendationsLimit  = "recommendations.limit"
	RecommendationsCutoff = "recommendations.cutoff"
)

const IconsVariant = "icons.variant"

const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

package cmd

import (
	"strings"
	"time"

	"github.com/foomo/sitemapserver/pkg/sitemap"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func logLevelFlag(v *viper.Viper) string {
	return v.GetString("log.level")
}

func addLogLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-level", "info", "log level")
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindEnv("log.level", "LOG_LEVEL")
}

func logFormatFlag(v *viper.Viper) string {
	return v.GetString("log.format")
}

func addLogFormatFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("log-format", "json", "log format")
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
	_ = v.BindEnv("log.format", "LOG_FORMAT")
}

func originFlag(v *viper.Viper) string {
	return v.GetString("origin")
}

func addOriginFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("origin", "", "Absolute site url without trailing slash, e.g. https://www.example.com")
	_ = v.BindPFlag("origin", flags.Lookup("origin"))
	_ = v.BindEnv("origin", "SITE_ORIGIN")
}

// routesFlag comma separated, an empty element is the root route
func routesFlag(v *viper.Viper) []string {
	raw, ok := v.Get("routes").(string)
	if !ok {
		return v.GetStringSlice("routes")
	}
	routes := strings.Split(raw, ",")
	for i, route := range routes {
		routes[i] = strings.TrimSpace(route)
	}
	return routes
}

func addRoutesFlag(flags *pflag.FlagSet, v *viper.Viper) {
	defaults := make([]string, 0, len(sitemap.DefaultRoutes))
	for _, route := range sitemap.DefaultRoutes {
		defaults = append(defaults, route.Path())
	}
	flags.StringSlice("routes", defaults, "Static site routes, listed before the content records")
	_ = v.BindPFlag("routes", flags.Lookup("routes"))
	_ = v.BindEnv("routes", "SITEMAP_SERVER_ROUTES")
}

func contentPrefixFlag(v *viper.Viper) string {
	return v.GetString("content.prefix")
}

func addContentPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("content-prefix", "blog", "Path prefix of content files without an explicit path")
	_ = v.BindPFlag("content.prefix", flags.Lookup("content-prefix"))
	_ = v.BindEnv("content.prefix", "SITEMAP_SERVER_CONTENT_PREFIX")
}

func addressFlag(v *viper.Viper) string {
	return v.GetString("address")
}

func addAddressFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("address", ":8080", "Address to bind to (host:port)")
	_ = v.BindPFlag("address", flags.Lookup("address"))
	_ = v.BindEnv("address", "SITEMAP_SERVER_ADDRESS")
}

func basePathFlag(v *viper.Viper) string {
	return v.GetString("base_path")
}

func addBasePathFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("base-path", "/sitemapserver", "Base path to export the json api on")
	_ = v.BindPFlag("base_path", flags.Lookup("base-path"))
	_ = v.BindEnv("base_path", "SITEMAP_SERVER_BASE_PATH")
}

func pollFlag(v *viper.Viper) bool {
	return v.GetBool("poll.enabled")
}

func addPollFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("poll", false, "If true, the content source will be polled periodically")
	_ = v.BindPFlag("poll.enabled", flags.Lookup("poll"))
	_ = v.BindEnv("poll.enabled", "SITEMAP_SERVER_POLL")
}

func pollIntervalFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("poll.interval")
}

func addPollIntervalFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("poll-interval", time.Minute, "Specifies the poll interval")
	_ = v.BindPFlag("poll.interval", flags.Lookup("poll-interval"))
	_ = v.BindEnv("poll.interval", "SITEMAP_SERVER_POLL_INTERVAL")
}

func historyDirFlag(v *viper.Viper) string {
	return v.GetString("history.dir")
}

func addHistoryDirFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("history-dir", "/var/lib/sitemapserver", "Where to put my data")
	_ = v.BindPFlag("history.dir", flags.Lookup("history-dir"))
	_ = v.BindEnv("history.dir", "SITEMAP_SERVER_HISTORY_DIR")
}

func historyLimitFlag(v *viper.Viper) int {
	return v.GetInt("history.limit")
}

func addHistoryLimitFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("history-limit", 2, "Number of history records to keep")
	_ = v.BindPFlag("history.limit", flags.Lookup("history-limit"))
	_ = v.BindEnv("history.limit", "SITEMAP_SERVER_HISTORY_LIMIT")
}

func storageTypeFlag(v *viper.Viper) string {
	return v.GetString("storage.type")
}

func addStorageTypeFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-type", "filesystem", "History storage type (filesystem, blob)")
	_ = v.BindPFlag("storage.type", flags.Lookup("storage-type"))
	_ = v.BindEnv("storage.type", "SITEMAP_SERVER_STORAGE_TYPE")
}

func storageBlobBucketFlag(v *viper.Viper) string {
	return v.GetString("storage.blob.bucket")
}

func addStorageBlobBucketFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-blob-bucket", "", "Bucket url of the blob storage, e.g. gs://bucket-name")
	_ = v.BindPFlag("storage.blob.bucket", flags.Lookup("storage-blob-bucket"))
	_ = v.BindEnv("storage.blob.bucket", "SITEMAP_SERVER_STORAGE_BLOB_BUCKET")
}

func storageBlobPrefixFlag(v *viper.Viper) string {
	return v.GetString("storage.blob.prefix")
}

func addStorageBlobPrefixFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("storage-blob-prefix", "", "Key prefix inside the blob bucket")
	_ = v.BindPFlag("storage.blob.prefix", flags.Lookup("storage-blob-prefix"))
	_ = v.BindEnv("storage.blob.prefix", "SITEMAP_SERVER_STORAGE_BLOB_PREFIX")
}

func repositoryTimeoutFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("repository.timeout")
}

func addRepositoryTimeoutFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("repository-timeout", 2*time.Minute, "Timeout for fetching records from the content url")
	_ = v.BindPFlag("repository.timeout", flags.Lookup("repository-timeout"))
	_ = v.BindEnv("repository.timeout", "SITEMAP_SERVER_REPOSITORY_TIMEOUT")
}

func renderUnsafeFlag(v *viper.Viper) bool {
	return v.GetBool("render.unsafe")
}

func addRenderUnsafeFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("render-unsafe", false, "Keep raw html of content bodies")
	_ = v.BindPFlag("render.unsafe", flags.Lookup("render-unsafe"))
	_ = v.BindEnv("render.unsafe", "SITEMAP_SERVER_RENDER_UNSAFE")
}

func gzipLevelFlag(v *viper.Viper) int {
	return v.GetInt("gzip.level")
}

func addGzipLevelFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Int("gzip-level", -1, "Gzip compression level of http responses")
	_ = v.BindPFlag("gzip.level", flags.Lookup("gzip-level"))
	_ = v.BindEnv("gzip.level", "SITEMAP_SERVER_GZIP_LEVEL")
}

func gracefulPeriodFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("graceful_period")
}

func addGracefulPeriodFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("graceful-period", 0, "Graceful period before shutting down")
	_ = v.BindPFlag("graceful_period", flags.Lookup("graceful-period"))
	_ = v.BindEnv("graceful_period", "SITEMAP_SERVER_GRACEFUL_PERIOD")
}

func outputFlag(v *viper.Viper) string {
	return v.GetString("output")
}

func addOutputFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("output", "public", "Output dir or bucket url, e.g. s3://bucket-name")
	_ = v.BindPFlag("output", flags.Lookup("output"))
	_ = v.BindEnv("output", "SITEMAP_SERVER_OUTPUT")
}

func healthcheckTimeoutFlag(v *viper.Viper) time.Duration {
	return v.GetDuration("healthcheck.timeout")
}

func addHealthcheckTimeoutFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Duration("timeout", 5*time.Second, "Timeout of the health probe")
	_ = v.BindPFlag("healthcheck.timeout", flags.Lookup("timeout"))
	_ = v.BindEnv("healthcheck.timeout", "SITEMAP_SERVER_HEALTHCHECK_TIMEOUT")
}

func serviceHealthzEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.healthz.enabled")
}

func addServiceHealthzEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-healthz-enabled", false, "Enable healthz service")
	_ = v.BindPFlag("service.healthz.enabled", flags.Lookup("service-healthz-enabled"))
}

func servicePrometheusEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.prometheus.enabled")
}

func addServicePrometheusEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-prometheus-enabled", false, "Enable prometheus service")
	_ = v.BindPFlag("service.prometheus.enabled", flags.Lookup("service-prometheus-enabled"))
}

func servicePProfEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("service.pprof.enabled")
}

func addServicePProfEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("service-pprof-enabled", false, "Enable pprof service")
	_ = v.BindPFlag("service.pprof.enabled", flags.Lookup("service-pprof-enabled"))
}

func otelEnabledFlag(v *viper.Viper) bool {
	return v.GetBool("otel.enabled")
}

func addOtelEnabledFlag(flags *pflag.FlagSet, v *viper.Viper) {
	flags.Bool("otel-enabled", false, "Enable otel service")
	_ = v.BindPFlag("otel.enabled", flags.Lookup("otel-enabled"))
	_ = v.BindEnv("otel.enabled", "OTEL_ENABLED")
}

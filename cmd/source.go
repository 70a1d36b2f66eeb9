package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/foomo/sitemapserver/pkg/repo"
	"github.com/foomo/sitemapserver/pkg/utils"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newSource returns a url source for http(s) urls and a dir source otherwise
func newSource(v *viper.Viper, l *zap.Logger, arg string, client *http.Client) repo.Source {
	if utils.IsValidUrl(arg) {
		l.Info("using content url", zap.String("url", arg))
		return repo.NewURLSource(arg, repo.URLSourceWithHTTPClient(client))
	}
	l.Info("using content dir", zap.String("dir", arg), zap.String("prefix", contentPrefixFlag(v)))
	return repo.NewDirSource(arg, repo.DirSourceWithPrefix(contentPrefixFlag(v)))
}

func checkOrigin(l *zap.Logger, origin string) {
	if !utils.IsValidUrl(origin) {
		l.Warn("site origin is not an absolute url, sitemap urls will be relative", zap.String("origin", origin))
	} else if strings.HasSuffix(origin, "/") {
		l.Warn("site origin has a trailing slash, sitemap urls will contain a double slash", zap.String("origin", origin))
	}
}

// createStorage creates a storage backend based on the configuration
func createStorage(ctx context.Context, v *viper.Viper, l *zap.Logger) (repo.Storage, error) {
	storageType := storageTypeFlag(v)
	blobBucket := storageBlobBucketFlag(v)
	blobPrefix := storageBlobPrefixFlag(v)

	if storageType != "blob" && (blobBucket != "" || blobPrefix != "") {
		l.Warn("blob storage flags are set but storage-type is not 'blob'; blob config will be ignored",
			zap.String("storage-type", storageType),
			zap.String("blob-bucket", blobBucket),
			zap.String("blob-prefix", blobPrefix),
		)
	}

	l.Info("creating storage", zap.String("type", storageType))

	switch storageType {
	case "blob":
		return openBlobStorage(ctx, l, blobBucket, blobPrefix)
	case "filesystem", "":
		l.Info("using filesystem storage", zap.String("dir", historyDirFlag(v)))
		return repo.NewFilesystemStorage(historyDirFlag(v))
	default:
		return nil, fmt.Errorf("unknown storage type: %s (supported: filesystem, blob)", storageType)
	}
}

// createOutputStorage buckets for known blob schemes, a local dir otherwise
func createOutputStorage(ctx context.Context, l *zap.Logger, output string) (repo.Storage, error) {
	if strings.Contains(output, "://") {
		return openBlobStorage(ctx, l, output, "")
	}
	l.Info("using output dir", zap.String("dir", output))
	return repo.NewFilesystemStorage(output)
}

func openBlobStorage(ctx context.Context, l *zap.Logger, bucketURL, prefix string) (repo.Storage, error) {
	if bucketURL == "" {
		return nil, fmt.Errorf("blob bucket URL is required (supported schemes: %s)", supportedBlobSchemes())
	}
	provider := repo.BlobProvider(bucketURL)
	if provider == "unknown" {
		return nil, fmt.Errorf("unsupported blob storage URL scheme in %q; supported schemes: %s", bucketURL, supportedBlobSchemes())
	}
	l.Info("using blob storage",
		zap.String("bucket", bucketURL),
		zap.String("prefix", prefix),
		zap.String("provider", provider),
	)
	storage, err := repo.NewBlobStorage(ctx, bucketURL, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob storage: %w", err)
	}
	return storage, nil
}

func supportedBlobSchemes() string {
	return "gs://, s3://, azblob://"
}

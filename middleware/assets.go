package middleware

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Static assets referenced by the pages, relative to the working directory
const (
	CSSPath = "static/css/style.css"
	JSPath  = "static/js/calculator.js"
)

var (
	cssVersion        string
	jsVersion         string
	assetVersionsOnce sync.Once
)

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	assetVersionsOnce.Do(func() {
		cssVersion = computeFileHash(log, CSSPath)
		jsVersion = computeFileHash(log, JSPath)
		log.Info("asset versions initialized",
			zap.String("css", GetCSSVersion(context.Background())),
			zap.String("js", GetJSVersion(context.Background())))
	})
}

// computeFileHash returns the first 8 characters of the MD5 hash of a file
func computeFileHash(log *zap.Logger, path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Warn("failed to open asset for hashing", zap.String("path", path), zap.Error(err))
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		log.Warn("failed to hash asset", zap.String("path", path), zap.Error(err))
		return ""
	}

	return hex.EncodeToString(hash.Sum(nil))[:8]
}

// GetCSSVersion returns the stylesheet version hash for cache busting.
// The ctx parameter keeps the signature usable from templates.
func GetCSSVersion(ctx context.Context) string {
	if cssVersion == "" {
		return "1"
	}
	return cssVersion
}

// GetJSVersion returns the calculator script version hash for cache busting
func GetJSVersion(ctx context.Context) string {
	if jsVersion == "" {
		return "1"
	}
	return jsVersion
}

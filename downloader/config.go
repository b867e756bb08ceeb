package downloader

import (
	"github.com/anisan-cli/anicat/key"
	"github.com/anisan-cli/anicat/network"
	"github.com/anisan-cli/anicat/where"
	"github.com/spf13/viper"
)

// FromConfig builds the downloader stack described by the downloader.* keys.
// The returned Headless is nil when headless rendering is disabled; callers close it when done.
func FromConfig(usesHeadless func(url string) bool) (*Router, *Headless) {
	opts := []HTTPOption{WithRetryLimit(viper.GetInt(key.DownloaderRetryLimit))}
	if viper.GetBool(key.DownloaderTLSFingerprint) {
		opts = append(opts, WithClient(network.TLSClient()))
	}
	plain := NewHTTP(opts...)

	if !viper.GetBool(key.DownloaderHeadless) {
		return NewRouter(plain, nil, usesHeadless), nil
	}

	headless := NewHeadless(
		WithBrowserBin(viper.GetString(key.DownloaderHeadlessBin)),
		WithUserDataDir(where.Browser()),
	)
	return NewRouter(plain, headless, usesHeadless), headless
}

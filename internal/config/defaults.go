package config

import "time"

const (
	DefaultAppName                  = "Black Swan Sentinel"
	DefaultAppVersion               = "1.0.0"
	DefaultAlgorithm                = "HS256"
	DefaultAccessTokenExpireMinutes = 30
	DefaultBcryptCost               = 10
	DefaultHTTPAddress              = "0.0.0.0:8000"
	DefaultRequestTimeout           = 30 * time.Second
	DefaultDSN                      = "file:black_swan_sentinel.db"
	DefaultCORSOrigin               = "*"
)

// defaultConfig returns the values used for every field no other source set.
// The secret key has no default and must always be provided.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Name:                     DefaultAppName,
			Version:                  DefaultAppVersion,
			Algorithm:                DefaultAlgorithm,
			AccessTokenExpireMinutes: DefaultAccessTokenExpireMinutes,
			BcryptCost:               DefaultBcryptCost,
		},
		Storage: Storage{
			DB: DB{DSN: DefaultDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			CORSOrigins:    []string{DefaultCORSOrigin},
		},
	}
}

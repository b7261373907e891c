package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the layout of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		Name                      string `json:"name"`
		Version                   string `json:"version"`
		SecretKey                 string `json:"secret_key"`
		Algorithm                 string `json:"algorithm"`
		AccessTokenExpireMinutes  int    `json:"access_token_expire_minutes"`
		TokenIssuer               string `json:"token_issuer"`
		BcryptCost                int    `json:"bcrypt_cost"`
		FormLoginUpdatesLastLogin bool   `json:"form_login_updates_last_login"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CORSOrigins    []string `json:"cors_origins"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Name:                      jsonCfg.App.Name,
			Version:                   jsonCfg.App.Version,
			SecretKey:                 jsonCfg.App.SecretKey,
			Algorithm:                 jsonCfg.App.Algorithm,
			AccessTokenExpireMinutes:  jsonCfg.App.AccessTokenExpireMinutes,
			TokenIssuer:               jsonCfg.App.TokenIssuer,
			BcryptCost:                jsonCfg.App.BcryptCost,
			FormLoginUpdatesLastLogin: jsonCfg.App.FormLoginUpdatesLastLogin,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CORSOrigins:    jsonCfg.Server.CORSOrigins,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

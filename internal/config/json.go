package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON-friendly field
// types (durations accepted as "3m"-style strings).
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
	} `json:"auth,omitempty"`

	Security struct {
		LockAttempts        int      `json:"lock_attempts"`
		LockDuration        Duration `json:"lock_duration"`
		DisableSignAttempts int      `json:"disable_sign_attempts"`
	} `json:"security,omitempty"`

	LDAP struct {
		Enabled         bool     `json:"enabled"`
		URL             string   `json:"url"`
		IDAttribute     string   `json:"id_attribute"`
		MailAttribute   string   `json:"mail_attribute"`
		ObjectClass     string   `json:"object_class"`
		EligiblePattern string   `json:"eligible_pattern"`
		Timeout         Duration `json:"timeout"`
	} `json:"ldap,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
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
		Auth: Auth{
			TokenSignKey:  jsonCfg.Auth.TokenSignKey,
			TokenIssuer:   jsonCfg.Auth.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.Auth.TokenDuration),
		},
		Security: Security{
			LockAttempts:        jsonCfg.Security.LockAttempts,
			LockDuration:        time.Duration(jsonCfg.Security.LockDuration),
			DisableSignAttempts: jsonCfg.Security.DisableSignAttempts,
		},
		LDAP: LDAP{
			Enabled:         jsonCfg.LDAP.Enabled,
			URL:             jsonCfg.LDAP.URL,
			IDAttribute:     jsonCfg.LDAP.IDAttribute,
			MailAttribute:   jsonCfg.LDAP.MailAttribute,
			ObjectClass:     jsonCfg.LDAP.ObjectClass,
			EligiblePattern: jsonCfg.LDAP.EligiblePattern,
			Timeout:         time.Duration(jsonCfg.LDAP.Timeout),
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
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "3m", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
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
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

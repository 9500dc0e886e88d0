package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

var (
	cfgFile    = "chessrules/config.json"
	archiveDir = "chessrules/archive"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ServerConfig struct {
	Addr            string   `json:"addr"`
	AllowOrigins    []string `json:"allow_origins"`
	ReadBufferSize  int      `json:"read_buffer_size"`
	WriteBufferSize int      `json:"write_buffer_size"`
}

type EngineConfig struct {
	// StrictCastling forbids castling out of or through check.
	StrictCastling bool `json:"strict_castling"`
}

type StorageConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir"`
}

type LogConfig struct {
	Development bool   `json:"development"`
	Level       string `json:"level"`
}

type Config struct {
	Server  ServerConfig  `json:"server"`
	Engine  EngineConfig  `json:"engine"`
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
}

// DefaultConfig serves the local UI dev server on :3000 with the archive
// under the user's data directory.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			AllowOrigins:    []string{"http://localhost:5173"},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		Storage: StorageConfig{
			Enabled: true,
			Dir:     filepath.Join(xdg.DataHome, archiveDir),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file from the XDG config dirs if there is one,
// applies CHESSRULES_* environment overrides and validates the result.
func Load() (*Config, error) {
	config := DefaultConfig()
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &InvalidConfig{"server address is empty"}
	}
	if c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0 {
		return &InvalidConfig{"websocket buffer sizes must not be negative"}
	}
	if c.Storage.Enabled && c.Storage.Dir == "" {
		return &InvalidConfig{"storage is enabled but has no directory"}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// Save writes c to the user's config file, creating directories as needed.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("CHESSRULES_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv("CHESSRULES_ALLOW_ORIGINS"); ok {
		c.Server.AllowOrigins = splitList(v)
	}
	if v, ok := os.LookupEnv("CHESSRULES_STORAGE_DIR"); ok {
		c.Storage.Dir = v
	}

	bools := []struct {
		name string
		dst  *bool
	}{
		{"CHESSRULES_STRICT_CASTLING", &c.Engine.StrictCastling},
		{"CHESSRULES_STORAGE_ENABLED", &c.Storage.Enabled},
		{"CHESSRULES_LOG_DEV", &c.Log.Development},
	}
	for _, b := range bools {
		v, ok := os.LookupEnv(b.name)
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %q is not a boolean", b.name, v)}
		}
		*b.dst = parsed
	}
	return nil
}

func splitList(v string) []string {
	out := []string{}
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return &InvalidConfig{fmt.Sprintf("%s: %v", filePath, err)}
	}
	return nil
}

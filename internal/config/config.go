// Package config handles loading and validating lyskom-chat's configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level configuration for the lyskom-chat client.
type Config struct {
	Server ServerConfig `koanf:"server"`
	User   UserConfig   `koanf:"user"`
}

// ServerConfig holds the address of the LysKOM server to dial.
type ServerConfig struct {
	Address string `koanf:"address"`
}

// UserConfig holds the handshake identity and login credentials to present
// once connected.
type UserConfig struct {
	Name     string `koanf:"name"`
	Hostname string `koanf:"hostname"`
	Person   int64  `koanf:"person"`
	Password string `koanf:"password"`
}

// Load reads configuration from an optional YAML file, layers environment
// variable overrides on top, and returns a fully populated Config. path may
// be empty, in which case only the environment and defaults apply.
func Load(path string) (*Config, error) {
	// Load .env into the process environment; ignored if not present.
	_ = godotenv.Load()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// LYSKOM_SERVER_ADDRESS -> server.address, LYSKOM_USER_PASSWORD ->
	// user.password, and so on.
	if err := k.Load(env.Provider("LYSKOM_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "LYSKOM_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	out := Config{
		Server: ServerConfig{Address: "localhost:4894"},
		User:   UserConfig{Name: "guest", Hostname: "unknown"},
	}
	if err := k.Unmarshal("", &out); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand a ${VAR_NAME} password placeholder against the environment, so
	// a checked-in config file never needs to carry a literal secret.
	if strings.HasPrefix(out.User.Password, "${") && strings.HasSuffix(out.User.Password, "}") {
		out.User.Password = os.Getenv(out.User.Password[2 : len(out.User.Password)-1])
	}

	return &out, nil
}

package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	Secret     string
	SecretFile string
	Output     string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("TTT_SERVER", "http://localhost:3000"),
		Secret:     os.Getenv("TTT_SECRET"),
		SecretFile: getEnvOrDefault("TTT_SECRET_FILE", defaultSecretFile()),
		Output:     "text",
	}
}

// LoadSecret loads the secret from file if not already set
func (c *Config) LoadSecret() error {
	if c.Secret != "" {
		return nil
	}

	data, err := os.ReadFile(c.SecretFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No secret file is fine
		}
		return err
	}

	c.Secret = string(data)
	return nil
}

// SaveSecret saves the secret to the secret file
func (c *Config) SaveSecret(secret string) error {
	c.Secret = secret

	dir := filepath.Dir(c.SecretFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.SecretFile, []byte(secret), 0600)
}

func defaultSecretFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ttt/secret"
	}
	return filepath.Join(home, ".ttt", "secret")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

package configuration

import (
	"encoding/json"
	"os"
	"strconv"
)

type MongoConfig struct {
	Uri             string `json:"uri"`
	Database        string `json:"database"`
	UsersCollection string `json:"usersCollection"`
}

type ServerConfig struct {
	AppPort       int    `json:"app_port"`
	TemplateGlob  string `json:"template_glob"`
	SessionSecret string `json:"session_secret"`
}

type OAuthConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RedirectURL  string `json:"redirect_url"`
}

type Config struct {
	Database MongoConfig  `json:"mongo"`
	Server   ServerConfig `json:"server"`
	OAuth    OAuthConfig  `json:"google_oauth"`
}

func LoadConfig(config_path string) (*Config, error) {
	file, err := os.ReadFile(config_path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = json.Unmarshal(file, &config)
	if err != nil {
		return nil, err
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	return &config, nil
}

// applyEnvOverrides lets secrets come from the environment (or a .env file
// loaded by the entrypoint) so they never have to live in the config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.AppPort = port
		}
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Database.Uri = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Server.SessionSecret = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.OAuth.ClientID = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_SECRET"); v != "" {
		c.OAuth.ClientSecret = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.AppPort == 0 {
		c.Server.AppPort = 3000
	}
	if c.Server.TemplateGlob == "" {
		c.Server.TemplateGlob = "web/templates/*.tmpl"
	}
	if c.Database.UsersCollection == "" {
		c.Database.UsersCollection = "users"
	}
}

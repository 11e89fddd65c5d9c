package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Neo4j     Neo4jConfig     `mapstructure:"neo4j"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	AI        AIConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Snapshot  SnapshotConfig  `mapstructure:"snapshot"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type Neo4jConfig struct {
	URI      string `mapstructure:"uri"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// IsConfigured 连接参数是否齐全；缺失时必须在任何查询前报配置错误
func (c Neo4jConfig) IsConfigured() bool {
	return c.URI != "" && c.User != "" && c.Password != ""
}

type FirestoreConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	ClientEmail     string `mapstructure:"client_email"`
	PrivateKey      string `mapstructure:"private_key"`
}

func (c FirestoreConfig) IsConfigured() bool {
	if c.CredentialsFile != "" {
		return true
	}
	return c.ProjectID != "" && c.ClientEmail != "" && c.PrivateKey != ""
}

type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

// SnapshotConfig 每周 LVI 快照任务
type SnapshotConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("NEU4G")
	viper.AutomaticEnv()

	// Server
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Neo4j
	viper.BindEnv("neo4j.uri", "NEO4J_URI")
	viper.BindEnv("neo4j.user", "NEO4J_USER")
	viper.BindEnv("neo4j.password", "NEO4J_PASSWORD")
	viper.BindEnv("neo4j.database", "NEO4J_DATABASE")

	// Firestore
	viper.BindEnv("firestore.project_id", "FIREBASE_PROJECT_ID")
	viper.BindEnv("firestore.credentials_file", "FIREBASE_CREDENTIALS_FILE")
	viper.BindEnv("firestore.client_email", "FIREBASE_CLIENT_EMAIL")
	viper.BindEnv("firestore.private_key", "FIREBASE_PRIVATE_KEY")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}

	// release 模式下两套存储至少要有一套可用，否则服务没有任何可响应的数据接口
	if cfg.Server.Mode == "release" && !cfg.Neo4j.IsConfigured() && !cfg.Firestore.IsConfigured() {
		return nil, fmt.Errorf("no data store configured: set neo4j or firestore credentials")
	}

	return &cfg, nil
}

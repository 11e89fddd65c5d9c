package database

import (
	"context"
	"time"

	"neu4g_backend/internal/config"
	"neu4g_backend/internal/util"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// InitNeo4j 初始化图数据库驱动并验证连通性。
// 配置缺失返回 ErrConfiguration，连接失败返回 ErrExternalStore。
func InitNeo4j(cfg *config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	if !cfg.IsConfigured() {
		return nil, util.ConfigurationError("neo4j")
	}

	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = 50
		c.MaxConnectionLifetime = time.Hour
		c.SocketConnectTimeout = 30 * time.Second
	})
	if err != nil {
		return nil, util.StoreError("init neo4j driver", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, util.StoreError("verify neo4j connectivity", err)
	}

	return driver, nil
}

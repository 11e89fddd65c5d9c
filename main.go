// @title Neu4G 学习分析后端 API
// @version 1.0
// @description 学习进度仪表盘的后端服务：知识图谱、学习速度指数与趋势分析。

// @contact.name API支持
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

package main

import (
	"log"

	"neu4g_backend/internal/app"
	"neu4g_backend/internal/config"
	"neu4g_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	application.Run()
}

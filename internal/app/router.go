package app

import (
	"neu4g_backend/docs"
	"neu4g_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 仪表盘读接口
		api.GET("/knowledge-graph", c.dashboard.GetKnowledgeGraph)
		api.GET("/lvi", c.dashboard.GetLVI)
		api.GET("/lvi-trend", c.dashboard.GetLVITrend)
		api.GET("/skill-confidence", c.dashboard.GetSkillConfidence)

		// 技能管理
		skills := api.Group("/skills")
		{
			skills.POST("/add-skill", c.skill.AddSkill)
			skills.POST("/update-skill-status", c.skill.UpdateSkillStatus)
			skills.DELETE("/delete-skill/:id", c.skill.DeleteSkill)
		}

		// 图谱生成管理
		graphRAG := api.Group("/graph-rag")
		{
			graphRAG.POST("/generate-skills", c.graphRAG.GenerateSkills)
			graphRAG.POST("/generate-learning-path", c.graphRAG.GenerateLearningPath)
			graphRAG.POST("/enrich-skill", c.graphRAG.EnrichSkill)
			graphRAG.GET("/status", c.graphRAG.Status)
		}
	}
}

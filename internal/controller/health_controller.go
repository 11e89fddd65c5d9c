package controller

import (
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	GraphRepo    *repository.SkillGraphRepository
	ActivityRepo *repository.ActivityRepository
}

func NewHealthController(graphRepo *repository.SkillGraphRepository, activityRepo *repository.ActivityRepository) *HealthController {
	return &HealthController{GraphRepo: graphRepo, ActivityRepo: activityRepo}
}

// @Summary 健康检查
// @Description 检查服务与各存储的配置状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	storeStatus := func(available bool) string {
		if available {
			return "configured"
		}
		return "not_configured"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"neo4j":     storeStatus(c.GraphRepo.Available()),
			"firestore": storeStatus(c.ActivityRepo.Available()),
		},
	})
}

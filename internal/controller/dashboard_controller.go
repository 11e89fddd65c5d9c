package controller

import (
	"time"

	"neu4g_backend/internal/service"
	"neu4g_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// DashboardController 仪表盘读接口：图谱、LVI、趋势、技能信心
type DashboardController struct {
	GraphService *service.KnowledgeGraphService
	LVIService   *service.LVIService
}

func NewDashboardController(graphService *service.KnowledgeGraphService, lviService *service.LVIService) *DashboardController {
	return &DashboardController{
		GraphService: graphService,
		LVIService:   lviService,
	}
}

// @Summary 获取知识图谱
// @Description 返回技能节点、关系边与下一步学习建议
// @Tags 仪表盘
// @Produce json
// @Param userId query string false "用户ID" default(user-1)
// @Success 200 {object} util.Response{data=model.KnowledgeGraphData}
// @Router /api/knowledge-graph [get]
func (c *DashboardController) GetKnowledgeGraph(ctx *gin.Context) {
	userID := ctx.DefaultQuery("userId", util.DefaultUserID)

	data, err := c.GraphService.GetKnowledgeGraph(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

// @Summary 获取本周学习速度指数
// @Tags 仪表盘
// @Produce json
// @Param userId query string false "用户ID" default(user-1)
// @Success 200 {object} util.Response{data=model.LVIData}
// @Router /api/lvi [get]
func (c *DashboardController) GetLVI(ctx *gin.Context) {
	userID := ctx.DefaultQuery("userId", util.DefaultUserID)

	data, err := c.LVIService.ComputeLVI(ctx.Request.Context(), userID, time.Now())
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

// @Summary 获取 LVI 历史趋势
// @Description 最近若干周快照及加速/平稳/减速分类
// @Tags 仪表盘
// @Produce json
// @Param userId query string false "用户ID" default(user-1)
// @Success 200 {object} util.Response{data=model.LVITrendData}
// @Router /api/lvi-trend [get]
func (c *DashboardController) GetLVITrend(ctx *gin.Context) {
	userID := ctx.DefaultQuery("userId", util.DefaultUserID)

	data, err := c.LVIService.GetTrend(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

// @Summary 获取技能信心雷达数据
// @Description 信心值最高的前 6 个已掌握技能
// @Tags 仪表盘
// @Produce json
// @Param userId query string false "用户ID" default(user-1)
// @Success 200 {object} util.Response{data=[]model.RadarDataPoint}
// @Router /api/skill-confidence [get]
func (c *DashboardController) GetSkillConfidence(ctx *gin.Context) {
	userID := ctx.DefaultQuery("userId", util.DefaultUserID)

	data, err := c.GraphService.GetSkillConfidence(ctx.Request.Context(), userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, data)
}

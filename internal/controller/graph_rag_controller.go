package controller

import (
	"neu4g_backend/internal/model"
	"neu4g_backend/internal/service"
	"neu4g_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GraphRAGController struct {
	GraphRAGService *service.GraphRAGService
}

func NewGraphRAGController(graphRAGService *service.GraphRAGService) *GraphRAGController {
	return &GraphRAGController{GraphRAGService: graphRAGService}
}

// @Summary 按领域生成技能图谱
// @Description 后台重建图谱，进度通过 status 接口查询
// @Tags 图谱生成
// @Accept json
// @Produce json
// @Param request body model.GenerateSkillsRequest true "生成参数"
// @Success 200 {object} util.Response
// @Router /api/graph-rag/generate-skills [post]
func (c *GraphRAGController) GenerateSkills(ctx *gin.Context) {
	var req model.GenerateSkillsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = util.DefaultUserID
	}

	if err := c.GraphRAGService.GenerateSkills(ctx.Request.Context(), &req, userID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"message": "Skill graph generation started",
		"domain":  req.Domain,
	})
}

// @Summary 生成个性化学习路径
// @Tags 图谱生成
// @Accept json
// @Produce json
// @Param request body model.GeneratePathRequest true "目标技能"
// @Success 200 {object} util.Response{data=model.LearningPath}
// @Router /api/graph-rag/generate-learning-path [post]
func (c *GraphRAGController) GenerateLearningPath(ctx *gin.Context) {
	var req model.GeneratePathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = util.DefaultUserID
	}

	path, err := c.GraphRAGService.GenerateLearningPath(ctx.Request.Context(), userID, req.TargetSkillID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, path)
}

// @Summary 为技能补充学习资源
// @Tags 图谱生成
// @Accept json
// @Produce json
// @Param request body model.EnrichSkillRequest true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/graph-rag/enrich-skill [post]
func (c *GraphRAGController) EnrichSkill(ctx *gin.Context) {
	var req model.EnrichSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrichment, err := c.GraphRAGService.EnrichSkill(ctx.Request.Context(), req.SkillID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, enrichment)
}

// @Summary 查询图谱生成服务状态
// @Tags 图谱生成
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/graph-rag/status [get]
func (c *GraphRAGController) Status(ctx *gin.Context) {
	util.Success(ctx, c.GraphRAGService.Status())
}

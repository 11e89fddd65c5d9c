package controller

import (
	"neu4g_backend/internal/model"
	"neu4g_backend/internal/service"
	"neu4g_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillController struct {
	SkillService *service.SkillService
}

func NewSkillController(skillService *service.SkillService) *SkillController {
	return &SkillController{SkillService: skillService}
}

// @Summary 手动添加技能
// @Description 添加技能节点并自动推断与既有技能的关系
// @Tags 技能管理
// @Accept json
// @Produce json
// @Param skill body model.AddSkillRequest true "技能信息"
// @Success 200 {object} util.Response{data=model.AddSkillResult}
// @Router /api/skills/add-skill [post]
func (c *SkillController) AddSkill(ctx *gin.Context) {
	var req model.AddSkillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = util.DefaultUserID
	}

	result, err := c.SkillService.AddSkill(ctx.Request.Context(), &req, userID)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 更新技能掌握状态
// @Tags 技能管理
// @Accept json
// @Produce json
// @Param status body model.UpdateSkillStatusRequest true "掌握状态"
// @Success 200 {object} util.Response
// @Router /api/skills/update-skill-status [post]
func (c *SkillController) UpdateSkillStatus(ctx *gin.Context) {
	var req model.UpdateSkillStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = util.DefaultUserID
	}

	if err := c.SkillService.UpdateSkillStatus(ctx.Request.Context(), &req, userID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"skill_id": req.SkillID,
		"learned":  req.Learned,
	})
}

// @Summary 删除技能
// @Description 删除技能节点及其全部关联边
// @Tags 技能管理
// @Produce json
// @Param id path string true "技能ID"
// @Success 200 {object} util.Response
// @Router /api/skills/delete-skill/{id} [delete]
func (c *SkillController) DeleteSkill(ctx *gin.Context) {
	skillID := ctx.Param("id")
	if skillID == "" {
		util.BadRequest(ctx, "skill id is required")
		return
	}

	if err := c.SkillService.DeleteSkill(ctx.Request.Context(), skillID); err != nil {
		util.RespondError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"skill_id": skillID, "deleted": true})
}

package service

import (
	"context"
	"fmt"
	"strings"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/logger"

	"go.uber.org/zap"
)

// 手动添加技能时的默认信心值与元数据兜底
const (
	defaultConfidence       = 50
	fallbackDifficultyLevel = 2
	fallbackLearningHours   = 20
)

type SkillService struct {
	GraphRepo *repository.SkillGraphRepository
	Generator SkillGenerator
}

func NewSkillService(graphRepo *repository.SkillGraphRepository, generator SkillGenerator) *SkillService {
	return &SkillService{GraphRepo: graphRepo, Generator: generator}
}

// SlugifySkillID 技能名转 ID：小写、空格转连字符、去掉点号
func SlugifySkillID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.ReplaceAll(id, " ", "-")
	id = strings.ReplaceAll(id, ".", "")
	return id
}

// AddSkill 手动添加一个技能节点并自动建立与既有技能的关系
func (s *SkillService) AddSkill(ctx context.Context, req *model.AddSkillRequest, userID string) (*model.AddSkillResult, error) {
	name := strings.TrimSpace(req.SkillName)
	if name == "" {
		return nil, util.ValidationError("skill_name is required")
	}
	if req.Category != "" && !util.IsValidCategory(req.Category) {
		return nil, util.ValidationError("invalid category: %s", req.Category)
	}

	confidence := defaultConfidence
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	if confidence < 0 || confidence > 100 {
		return nil, util.ValidationError("confidence must be between 0 and 100")
	}

	skillID := SlugifySkillID(name)
	exists, err := s.GraphRepo.SkillExists(ctx, skillID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ValidationError("skill already exists: %s", skillID)
	}

	skill := s.enrichNewSkill(ctx, name, req.Category)
	skill.ID = skillID
	if err := s.GraphRepo.CreateSkill(ctx, skill); err != nil {
		return nil, err
	}

	relationships := s.autoLink(ctx, skillID, name)

	if req.Learned {
		if err := s.GraphRepo.SetLearned(ctx, userID, skillID, confidence); err != nil {
			return nil, err
		}
	}

	return &model.AddSkillResult{
		SkillID:              skillID,
		SkillName:            name,
		Learned:              req.Learned,
		RelationshipsCreated: relationships,
		Message:              fmt.Sprintf("Skill '%s' added to knowledge graph", name),
	}, nil
}

// enrichNewSkill 用 AI 补全技能元数据，不可用或失败时回退到默认值
func (s *SkillService) enrichNewSkill(ctx context.Context, name, category string) *model.Skill {
	fallbackCategory := category
	if fallbackCategory == "" {
		fallbackCategory = "frontend"
	}

	skill := &model.Skill{
		Name:              name,
		Category:          fallbackCategory,
		Description:       fmt.Sprintf("User-added skill: %s", name),
		DifficultyLevel:   fallbackDifficultyLevel,
		LearningTimeHours: fallbackLearningHours,
	}

	if s.Generator == nil {
		return skill
	}

	enrichment, err := s.Generator.EnrichSkill(ctx, name, category)
	if err != nil {
		logger.Log.Warn("技能元数据补全失败，使用默认值",
			zap.String("skill", name), zap.Error(err))
		return skill
	}

	if category == "" && util.IsValidCategory(enrichment.Category) {
		skill.Category = enrichment.Category
	}
	if enrichment.Description != "" {
		skill.Description = enrichment.Description
	}
	if enrichment.DifficultyLevel >= 1 && enrichment.DifficultyLevel <= 5 {
		skill.DifficultyLevel = enrichment.DifficultyLevel
	}
	if enrichment.LearningTimeHours > 0 {
		skill.LearningTimeHours = enrichment.LearningTimeHours
	}
	return skill
}

// autoLink 根据既有技能名推断关系并写入边。
// 关系推断失败只记日志，不阻断添加流程。
func (s *SkillService) autoLink(ctx context.Context, skillID, skillName string) map[string]int {
	relationships := map[string]int{"relates_to": 0, "prerequisites": 0}
	if s.Generator == nil {
		return relationships
	}

	existing, err := s.GraphRepo.ListSkillNames(ctx, skillID)
	if err != nil || len(existing) == 0 {
		return relationships
	}

	related, err := s.Generator.FindRelatedSkills(ctx, skillName, existing)
	if err != nil {
		logger.Log.Warn("相关技能推断失败", zap.String("skill", skillName), zap.Error(err))
	}
	for _, other := range related {
		count, err := s.GraphRepo.LinkRelated(ctx, skillID, SlugifySkillID(other), other)
		if err != nil {
			logger.Log.Warn("建立 RELATES_TO 边失败", zap.String("target", other), zap.Error(err))
			continue
		}
		relationships["relates_to"] += count
	}

	prereqs, err := s.Generator.FindPrerequisites(ctx, skillName, existing)
	if err != nil {
		logger.Log.Warn("前置技能推断失败", zap.String("skill", skillName), zap.Error(err))
	}
	for _, other := range prereqs {
		count, err := s.GraphRepo.LinkPrerequisite(ctx, skillID, SlugifySkillID(other), other)
		if err != nil {
			logger.Log.Warn("建立 PREREQUISITE_OF 边失败", zap.String("target", other), zap.Error(err))
			continue
		}
		relationships["prerequisites"] += count
	}
	return relationships
}

// UpdateSkillStatus 更新技能的掌握状态与信心值
func (s *SkillService) UpdateSkillStatus(ctx context.Context, req *model.UpdateSkillStatusRequest, userID string) error {
	confidence := defaultConfidence
	if req.Confidence != nil {
		confidence = *req.Confidence
	}
	if confidence < 0 || confidence > 100 {
		return util.ValidationError("confidence must be between 0 and 100")
	}

	exists, err := s.GraphRepo.SkillExists(ctx, req.SkillID)
	if err != nil {
		return err
	}
	if !exists {
		return util.NotFoundError("skill", req.SkillID)
	}

	if req.Learned {
		return s.GraphRepo.SetLearned(ctx, userID, req.SkillID, confidence)
	}
	return s.GraphRepo.RemoveLearned(ctx, userID, req.SkillID)
}

// DeleteSkill 删除技能及其全部关联边
func (s *SkillService) DeleteSkill(ctx context.Context, skillID string) error {
	deleted, err := s.GraphRepo.DeleteSkill(ctx, skillID)
	if err != nil {
		return err
	}
	if !deleted {
		return util.NotFoundError("skill", skillID)
	}
	return nil
}

package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/logger"

	"go.uber.org/zap"
)

// 图谱生成的默认规模与后台任务超时
const (
	defaultNumSkills   = 12
	maxNumSkills       = 30
	generationTimeout  = 5 * time.Minute
	generationIdle     = "idle"
	generationRunning  = "running"
	generationComplete = "complete"
	generationFailed   = "failed"
)

// GraphRAGService 图谱生成与学习路径的管理接口
type GraphRAGService struct {
	GraphRepo *repository.SkillGraphRepository
	Generator SkillGenerator

	mu         sync.Mutex
	generation string
	lastError  string
}

func NewGraphRAGService(graphRepo *repository.SkillGraphRepository, generator SkillGenerator) *GraphRAGService {
	return &GraphRAGService{
		GraphRepo:  graphRepo,
		Generator:  generator,
		generation: generationIdle,
	}
}

// GenerateSkills 按领域重建技能图谱。
// 生成在后台执行，接口立即返回；进度通过 Status 查询。
// 同一时间只允许一次生成。
func (s *GraphRAGService) GenerateSkills(ctx context.Context, req *model.GenerateSkillsRequest, userID string) error {
	if s.Generator == nil {
		return util.ConfigurationError("openai")
	}
	if !s.GraphRepo.Available() {
		return util.ConfigurationError("neo4j")
	}

	numSkills := req.NumSkills
	if numSkills <= 0 {
		numSkills = defaultNumSkills
	}
	if numSkills > maxNumSkills {
		return util.ValidationError("num_skills must be at most %d", maxNumSkills)
	}

	s.mu.Lock()
	if s.generation == generationRunning {
		s.mu.Unlock()
		return util.ValidationError("a generation is already running")
	}
	s.generation = generationRunning
	s.lastError = ""
	s.mu.Unlock()

	go s.runGeneration(req.Domain, numSkills, userID)
	return nil
}

func (s *GraphRAGService) runGeneration(domain string, numSkills int, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), generationTimeout)
	defer cancel()

	err := func() error {
		skills, err := s.Generator.GenerateSkills(ctx, domain, numSkills)
		if err != nil {
			return err
		}

		edges, err := s.Generator.GenerateRelationships(ctx, skills)
		if err != nil {
			return err
		}

		return s.GraphRepo.ReplaceGraph(ctx, skills, edges, userID)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.generation = generationFailed
		s.lastError = err.Error()
		logger.Log.Error("图谱生成失败", zap.String("domain", domain), zap.Error(err))
		return
	}
	s.generation = generationComplete
	logger.Log.Info("图谱生成完成", zap.String("domain", domain), zap.Int("numSkills", numSkills))
}

// GenerateLearningPath 为目标技能生成个性化学习路径。
// 模型不可用或失败时回退为按难度排序的未掌握技能链。
func (s *GraphRAGService) GenerateLearningPath(ctx context.Context, userID, targetSkillID string) (*model.LearningPath, error) {
	target, err := s.GraphRepo.GetSkill(ctx, targetSkillID)
	if err != nil {
		return nil, err
	}

	learned, err := s.GraphRepo.GetLearnedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	learnedNames := make([]string, 0, len(learned))
	learnedSet := make(map[string]bool, len(learned))
	for _, l := range learned {
		learnedNames = append(learnedNames, l.SkillName)
		learnedSet[l.SkillID] = true
	}

	skills, err := s.GraphRepo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}

	if s.Generator != nil {
		path, err := s.Generator.GenerateLearningPath(ctx, learnedNames, target, skills)
		if err == nil {
			return path, nil
		}
		logger.Log.Warn("学习路径生成失败，使用兜底路径",
			zap.String("target", targetSkillID), zap.Error(err))
	}
	return fallbackPath(target, skills, learnedSet), nil
}

// fallbackPath 未掌握技能按难度升序排列，目标技能放在末尾
func fallbackPath(target *model.Skill, skills []model.Skill, learnedSet map[string]bool) *model.LearningPath {
	remaining := []model.Skill{}
	for _, s := range skills {
		if learnedSet[s.ID] || s.ID == target.ID {
			continue
		}
		if s.DifficultyLevel <= target.DifficultyLevel {
			remaining = append(remaining, s)
		}
	}
	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].DifficultyLevel != remaining[j].DifficultyLevel {
			return remaining[i].DifficultyLevel < remaining[j].DifficultyLevel
		}
		return remaining[i].ID < remaining[j].ID
	})
	remaining = append(remaining, *target)

	names := make([]string, 0, len(remaining))
	progression := make([]int, 0, len(remaining))
	totalHours := 0.0
	for _, s := range remaining {
		names = append(names, s.Name)
		progression = append(progression, s.DifficultyLevel)
		totalHours += s.LearningTimeHours
	}

	return &model.LearningPath{
		PathID:                 "path-" + target.ID,
		Name:                   "Path to " + target.Name,
		Skills:                 names,
		EstimatedDurationHours: int(totalHours),
		DifficultyProgression:  progression,
	}
}

// EnrichSkill 为既有技能补充学习资源
func (s *GraphRAGService) EnrichSkill(ctx context.Context, skillID string) (map[string]interface{}, error) {
	if s.Generator == nil {
		return nil, util.ConfigurationError("openai")
	}

	skill, err := s.GraphRepo.GetSkill(ctx, skillID)
	if err != nil {
		return nil, err
	}
	return s.Generator.EnrichWithResources(ctx, skill)
}

// Status 各依赖的就绪状态与最近一次生成的结果
func (s *GraphRAGService) Status() map[string]interface{} {
	s.mu.Lock()
	generation, lastError := s.generation, s.lastError
	s.mu.Unlock()

	openaiConfigured := s.Generator != nil
	neo4jConfigured := s.GraphRepo.Available()

	status := map[string]interface{}{
		"openai_configured": openaiConfigured,
		"neo4j_configured":  neo4jConfigured,
		"ready":             openaiConfigured && neo4jConfigured,
		"generation":        generation,
	}
	if lastError != "" {
		status["last_error"] = lastError
	}
	return status
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"neu4g_backend/internal/config"
	"neu4g_backend/internal/model"
	"neu4g_backend/internal/util"

	openai "github.com/sashabaranov/go-openai"
)

// SkillGenerator AI 驱动的图谱内容生成
type SkillGenerator interface {
	EnrichSkill(ctx context.Context, name, category string) (*model.SkillEnrichment, error)
	FindRelatedSkills(ctx context.Context, name string, existing []string) ([]string, error)
	FindPrerequisites(ctx context.Context, name string, existing []string) ([]string, error)
	GenerateSkills(ctx context.Context, domain string, numSkills int) ([]model.Skill, error)
	GenerateRelationships(ctx context.Context, skills []model.Skill) ([]model.SkillEdge, error)
	GenerateLearningPath(ctx context.Context, learned []string, target *model.Skill, skills []model.Skill) (*model.LearningPath, error)
	EnrichWithResources(ctx context.Context, skill *model.Skill) (map[string]interface{}, error)
}

// OpenAIGenerator 基于 Chat Completions 的 SkillGenerator 实现
type OpenAIGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIGenerator(cfg config.AIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, util.ConfigurationError("openai")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

func (g *OpenAIGenerator) complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// stripJSONFence 去掉模型输出外层的 Markdown 代码围栏
func stripJSONFence(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

func (g *OpenAIGenerator) completeJSON(ctx context.Context, system, prompt string, temperature float32, out interface{}) error {
	raw, err := g.complete(ctx, system, prompt, temperature)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), out); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

func (g *OpenAIGenerator) EnrichSkill(ctx context.Context, name, category string) (*model.SkillEnrichment, error) {
	prompt := fmt.Sprintf(`Provide metadata for the technical skill "%s".
Return ONLY a JSON object:
{"category": "one of: %s", "description": "one sentence", "difficulty_level": 1-5, "learning_time_hours": number}`,
		name, strings.Join(util.SkillCategories, ", "))
	if category != "" {
		prompt += fmt.Sprintf("\nThe category is known to be %q, keep it.", category)
	}

	var enrichment model.SkillEnrichment
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.2, &enrichment); err != nil {
		return nil, err
	}
	return &enrichment, nil
}

func (g *OpenAIGenerator) FindRelatedSkills(ctx context.Context, name string, existing []string) ([]string, error) {
	return g.pickSkillNames(ctx, fmt.Sprintf(
		`From this list of skills: %s
Which ones are closely related to "%s" (same domain, commonly used together)?
Return ONLY a JSON array of skill names from the list, at most 3. Return [] if none.`,
		strings.Join(existing, ", "), name))
}

func (g *OpenAIGenerator) FindPrerequisites(ctx context.Context, name string, existing []string) ([]string, error) {
	return g.pickSkillNames(ctx, fmt.Sprintf(
		`From this list of skills: %s
Which ones are prerequisites a learner should master before "%s"?
Return ONLY a JSON array of skill names from the list, at most 3. Return [] if none.`,
		strings.Join(existing, ", "), name))
}

func (g *OpenAIGenerator) pickSkillNames(ctx context.Context, prompt string) ([]string, error) {
	var names []string
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.2, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (g *OpenAIGenerator) GenerateSkills(ctx context.Context, domain string, numSkills int) ([]model.Skill, error) {
	prompt := fmt.Sprintf(`Generate %d essential skills for learning %s.
Return ONLY a JSON array:
[{"id": "kebab-case-id", "name": "Skill Name", "category": "one of: %s",
  "description": "one sentence", "difficulty_level": 1-5, "learning_time_hours": number}]
Order from foundational to advanced.`,
		numSkills, domain, strings.Join(util.SkillCategories, ", "))

	var rows []struct {
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		Category          string  `json:"category"`
		Description       string  `json:"description"`
		DifficultyLevel   int     `json:"difficulty_level"`
		LearningTimeHours float64 `json:"learning_time_hours"`
	}
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.7, &rows); err != nil {
		return FallbackSkills(), nil
	}

	skills := make([]model.Skill, 0, len(rows))
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		id := row.ID
		if id == "" {
			id = SlugifySkillID(row.Name)
		}
		category := row.Category
		if !util.IsValidCategory(category) {
			category = "frontend"
		}
		skills = append(skills, model.Skill{
			ID:                id,
			Name:              row.Name,
			Category:          category,
			Description:       row.Description,
			DifficultyLevel:   row.DifficultyLevel,
			LearningTimeHours: row.LearningTimeHours,
		})
	}
	if len(skills) == 0 {
		return FallbackSkills(), nil
	}
	return skills, nil
}

func (g *OpenAIGenerator) GenerateRelationships(ctx context.Context, skills []model.Skill) ([]model.SkillEdge, error) {
	names := make([]string, 0, len(skills))
	idByName := make(map[string]string, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
		idByName[s.Name] = s.ID
	}

	prompt := fmt.Sprintf(`Given these skills: %s
Identify prerequisite and relatedness links between them.
Return ONLY a JSON array:
[{"source": "Skill Name", "target": "Skill Name", "type": "PREREQUISITE_OF" or "RELATES_TO", "strength": 0.0-1.0}]`,
		strings.Join(names, ", "))

	var rows []struct {
		Source   string  `json:"source"`
		Target   string  `json:"target"`
		Type     string  `json:"type"`
		Strength float64 `json:"strength"`
	}
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.3, &rows); err != nil {
		return FallbackRelationships(skills), nil
	}

	edges := make([]model.SkillEdge, 0, len(rows))
	for _, row := range rows {
		sourceID, okSource := idByName[row.Source]
		targetID, okTarget := idByName[row.Target]
		if !okSource || !okTarget || sourceID == targetID {
			continue
		}
		if row.Type != model.EdgePrerequisiteOf && row.Type != model.EdgeRelatesTo && row.Type != model.EdgeBuildsOn {
			continue
		}
		strength := row.Strength
		if strength <= 0 || strength > 1 {
			strength = 0.8
		}
		edges = append(edges, model.SkillEdge{
			SourceID: sourceID,
			TargetID: targetID,
			Type:     row.Type,
			Strength: strength,
		})
	}
	if len(edges) == 0 {
		return FallbackRelationships(skills), nil
	}
	return edges, nil
}

func (g *OpenAIGenerator) GenerateLearningPath(ctx context.Context, learned []string, target *model.Skill, skills []model.Skill) (*model.LearningPath, error) {
	catalog := make([]string, 0, len(skills))
	for _, s := range skills {
		catalog = append(catalog, fmt.Sprintf("%s (difficulty %d, %gh)", s.Name, s.DifficultyLevel, s.LearningTimeHours))
	}

	prompt := fmt.Sprintf(`A learner has mastered: %s
They want to reach: %s
Available skills: %s
Design an ordered learning path ending at the target, skipping mastered skills.
Return ONLY a JSON object:
{"name": "path name", "skills": ["Skill Name", ...], "estimated_duration_hours": number, "difficulty_progression": [1-5, ...]}`,
		strings.Join(learned, ", "), target.Name, strings.Join(catalog, "; "))

	var row struct {
		Name                   string   `json:"name"`
		Skills                 []string `json:"skills"`
		EstimatedDurationHours int      `json:"estimated_duration_hours"`
		DifficultyProgression  []int    `json:"difficulty_progression"`
	}
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.5, &row); err != nil {
		return nil, err
	}
	if len(row.Skills) == 0 {
		return nil, fmt.Errorf("model returned empty path")
	}

	return &model.LearningPath{
		PathID:                 "path-" + target.ID,
		Name:                   row.Name,
		Skills:                 row.Skills,
		EstimatedDurationHours: row.EstimatedDurationHours,
		DifficultyProgression:  row.DifficultyProgression,
	}, nil
}

func (g *OpenAIGenerator) EnrichWithResources(ctx context.Context, skill *model.Skill) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(`Provide learning material for the skill "%s" (%s, difficulty %d/5).
Return ONLY a JSON object:
{"resources": ["..."], "projects": ["..."], "key_concepts": ["..."], "pitfalls": ["..."]}`,
		skill.Name, skill.Category, skill.DifficultyLevel)

	var enrichment map[string]interface{}
	if err := g.completeJSON(ctx, "You are a curriculum expert. Respond with JSON only.", prompt, 0.5, &enrichment); err != nil {
		return nil, err
	}
	return enrichment, nil
}

// FallbackSkills 模型不可用时的最小起步图谱
func FallbackSkills() []model.Skill {
	return []model.Skill{
		{
			ID:                "html-css",
			Name:              "HTML & CSS",
			Category:          "frontend",
			Description:       "Structure and style web pages",
			DifficultyLevel:   1,
			LearningTimeHours: 40,
		},
		{
			ID:                "javascript",
			Name:              "JavaScript",
			Category:          "frontend",
			Description:       "Core language of the web",
			DifficultyLevel:   2,
			LearningTimeHours: 80,
		},
	}
}

// FallbackRelationships 同类目技能按难度排序后相邻成链（前置边，强度 0.8）
func FallbackRelationships(skills []model.Skill) []model.SkillEdge {
	byCategory := make(map[string][]model.Skill)
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	edges := []model.SkillEdge{}
	for _, c := range categories {
		group := byCategory[c]
		sort.Slice(group, func(i, j int) bool {
			if group[i].DifficultyLevel != group[j].DifficultyLevel {
				return group[i].DifficultyLevel < group[j].DifficultyLevel
			}
			return group[i].ID < group[j].ID
		})
		for i := 0; i+1 < len(group); i++ {
			edges = append(edges, model.SkillEdge{
				SourceID: group[i].ID,
				TargetID: group[i+1].ID,
				Type:     model.EdgePrerequisiteOf,
				Strength: 0.8,
			})
		}
	}
	return edges
}

package model

// AddSkillRequest 手动添加技能
type AddSkillRequest struct {
	SkillName  string `json:"skill_name" binding:"required"`
	Category   string `json:"category"`
	Learned    bool   `json:"learned"`
	Confidence *int   `json:"confidence"`
	UserID     string `json:"user_id"`
}

// UpdateSkillStatusRequest 更新技能掌握状态
type UpdateSkillStatusRequest struct {
	SkillID    string `json:"skill_id" binding:"required"`
	Learned    bool   `json:"learned"`
	Confidence *int   `json:"confidence"`
	UserID     string `json:"user_id"`
}

// AddSkillResult 添加技能的返回
type AddSkillResult struct {
	SkillID              string         `json:"skill_id"`
	SkillName            string         `json:"skill_name"`
	Learned              bool           `json:"learned"`
	RelationshipsCreated map[string]int `json:"relationships_created"`
	Message              string         `json:"message"`
}

// GenerateSkillsRequest 按领域生成技能图谱
type GenerateSkillsRequest struct {
	Domain    string `json:"domain" binding:"required"`
	NumSkills int    `json:"num_skills"`
	UserID    string `json:"user_id"`
}

// GeneratePathRequest 生成个性化学习路径
type GeneratePathRequest struct {
	UserID        string `json:"user_id"`
	TargetSkillID string `json:"target_skill_id" binding:"required"`
}

// EnrichSkillRequest 为技能补充学习资源
type EnrichSkillRequest struct {
	SkillID string `json:"skill_id" binding:"required"`
}

// SkillEnrichment AI 补全的技能元数据
type SkillEnrichment struct {
	Category          string  `json:"category"`
	Description       string  `json:"description"`
	DifficultyLevel   int     `json:"difficulty_level"`
	LearningTimeHours float64 `json:"learning_time_hours"`
}

// LearningPath 生成的学习路径
type LearningPath struct {
	PathID                 string   `json:"path_id"`
	Name                   string   `json:"name"`
	Skills                 []string `json:"skills"`
	EstimatedDurationHours int      `json:"estimated_duration_hours"`
	DifficultyProgression  []int    `json:"difficulty_progression"`
}

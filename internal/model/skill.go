package model

// SkillCategory 技能类别（枚举见 util.SkillCategories）
type SkillCategory = string

// Skill 技能节点，归图数据库所有，创建后除删除外不可变
type Skill struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Category          SkillCategory `json:"category"`
	Description       string        `json:"description,omitempty"`
	DifficultyLevel   int           `json:"difficultyLevel"`   // 1-5
	LearningTimeHours float64       `json:"learningTimeHours"` // 预估学习时长（小时）
}

// 技能关系类型
const (
	EdgePrerequisiteOf = "PREREQUISITE_OF"
	EdgeRelatesTo      = "RELATES_TO"
	EdgeBuildsOn       = "BUILDS_ON"
)

// SkillEdge 技能之间的有向关系，禁止自环；同一对节点允许多条不同类型的边
type SkillEdge struct {
	SourceID string  `json:"source"`
	TargetID string  `json:"target"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"` // [0,1]
}

// LearnedSkill 用户已掌握的技能（LEARNED 关系），confidence 取 [0,100]
type LearnedSkill struct {
	SkillID    string `json:"skillId"`
	SkillName  string `json:"skillName"`
	Confidence int    `json:"confidence"`
}

package model

// GraphNode 知识图谱渲染节点；未掌握的技能 confidence 为 0
type GraphNode struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Category   SkillCategory `json:"category"`
	Confidence float64       `json:"confidence"`
	Learned    bool          `json:"learned"`
}

// GraphLink 渲染边，仅包含 PREREQUISITE_OF / RELATES_TO 两类
type GraphLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// SuggestedSkill 下一步学习建议
type SuggestedSkill struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Category       SkillCategory `json:"category"`
	Prerequisites  []string      `json:"prerequisites"`  // 已掌握的前置技能名称
	ReadinessScore int           `json:"readinessScore"` // 0-100
}

// KnowledgeGraphData 知识图谱接口的完整返回
type KnowledgeGraphData struct {
	Nodes               []GraphNode      `json:"nodes"`
	Links               []GraphLink      `json:"links"`
	SuggestedNextSkills []SuggestedSkill `json:"suggestedNextSkills"`
}

// RadarDataPoint 技能信心雷达图数据点
type RadarDataPoint struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
	FullMark   int     `json:"fullMark"`
}

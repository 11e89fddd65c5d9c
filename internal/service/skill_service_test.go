package service

import (
	"testing"

	"neu4g_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugifySkillID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"React", "react"},
		{"Node.js", "nodejs"},
		{"HTML & CSS", "html-&-css"},
		{"Machine Learning", "machine-learning"},
		{"  Vue.js  ", "vuejs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugifySkillID(tt.in))
		})
	}
}

func TestFallbackSkills(t *testing.T) {
	skills := FallbackSkills()
	require.Len(t, skills, 2)
	assert.Equal(t, "html-css", skills[0].ID)
	assert.Equal(t, "javascript", skills[1].ID)
}

func TestFallbackRelationships(t *testing.T) {
	skills := []model.Skill{
		{ID: "react", Category: "frontend", DifficultyLevel: 3},
		{ID: "html-css", Category: "frontend", DifficultyLevel: 1},
		{ID: "javascript", Category: "frontend", DifficultyLevel: 2},
		{ID: "sql", Category: "database", DifficultyLevel: 2},
	}

	edges := FallbackRelationships(skills)

	// 同类目按难度相邻成链，单个技能的类目不产生边
	require.Len(t, edges, 2)
	assert.Equal(t, "html-css", edges[0].SourceID)
	assert.Equal(t, "javascript", edges[0].TargetID)
	assert.Equal(t, "javascript", edges[1].SourceID)
	assert.Equal(t, "react", edges[1].TargetID)
	for _, e := range edges {
		assert.Equal(t, model.EdgePrerequisiteOf, e.Type)
		assert.Equal(t, 0.8, e.Strength)
	}
}

func TestFallbackPath(t *testing.T) {
	target := &model.Skill{ID: "react", Name: "React", DifficultyLevel: 3, LearningTimeHours: 60}
	skills := []model.Skill{
		{ID: "html-css", Name: "HTML & CSS", DifficultyLevel: 1, LearningTimeHours: 40},
		{ID: "javascript", Name: "JavaScript", DifficultyLevel: 2, LearningTimeHours: 80},
		{ID: "react", Name: "React", DifficultyLevel: 3, LearningTimeHours: 60},
		{ID: "kubernetes", Name: "Kubernetes", DifficultyLevel: 4, LearningTimeHours: 80},
	}
	learned := map[string]bool{"html-css": true}

	path := fallbackPath(target, skills, learned)

	// 已掌握的和难度超过目标的都不进入路径，目标排在最后
	assert.Equal(t, []string{"JavaScript", "React"}, path.Skills)
	assert.Equal(t, []int{2, 3}, path.DifficultyProgression)
	assert.Equal(t, 140, path.EstimatedDurationHours)
	assert.Equal(t, "path-react", path.PathID)
}

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"无围栏", `{"a": 1}`, `{"a": 1}`},
		{"json围栏", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"裸围栏", "```\n[1, 2]\n```", `[1, 2]`},
		{"带空白", "  ```json\n{}\n```  ", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripJSONFence(tt.in))
		})
	}
}

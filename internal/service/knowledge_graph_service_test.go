package service

import (
	"testing"

	"neu4g_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id, name string) model.GraphNode {
	return model.GraphNode{ID: id, Name: name, Category: "frontend"}
}

func prereq(source, target string) model.GraphLink {
	return model.GraphLink{Source: source, Target: target, Type: model.EdgePrerequisiteOf}
}

func learnedSkill(id string) model.LearnedSkill {
	return model.LearnedSkill{SkillID: id, SkillName: id, Confidence: 80}
}

func TestSuggestNextSkills(t *testing.T) {
	nodes := []model.GraphNode{
		node("html-css", "HTML & CSS"),
		node("javascript", "JavaScript"),
		node("react", "React"),
		node("typescript", "TypeScript"),
	}
	links := []model.GraphLink{
		prereq("html-css", "javascript"),
		prereq("javascript", "react"),
		prereq("javascript", "typescript"),
		prereq("typescript", "react"),
	}

	t.Run("未掌握任何技能时返回空", func(t *testing.T) {
		got := SuggestNextSkills(nodes, links, nil)
		assert.Empty(t, got)
	})

	t.Run("部分前置掌握时按占比给就绪度", func(t *testing.T) {
		learned := []model.LearnedSkill{learnedSkill("javascript")}
		got := SuggestNextSkills(nodes, links, learned)

		require.Len(t, got, 2)
		byID := map[string]model.SuggestedSkill{}
		for _, s := range got {
			byID[s.ID] = s
		}

		// typescript 的唯一前置已掌握
		assert.Equal(t, 100, byID["typescript"].ReadinessScore)
		assert.Equal(t, []string{"JavaScript"}, byID["typescript"].Prerequisites)

		// react 有两个前置，只掌握了一个
		assert.Equal(t, 50, byID["react"].ReadinessScore)
		assert.Equal(t, []string{"JavaScript"}, byID["react"].Prerequisites)

		// 就绪度高的排前面
		assert.Equal(t, "typescript", got[0].ID)
	})

	t.Run("已掌握技能不会出现在建议里", func(t *testing.T) {
		learned := []model.LearnedSkill{
			learnedSkill("html-css"),
			learnedSkill("javascript"),
		}
		got := SuggestNextSkills(nodes, links, learned)
		for _, s := range got {
			assert.NotEqual(t, "javascript", s.ID)
			assert.NotEqual(t, "html-css", s.ID)
		}
	})

	t.Run("全部前置掌握后就绪度为100", func(t *testing.T) {
		learned := []model.LearnedSkill{
			learnedSkill("javascript"),
			learnedSkill("typescript"),
		}
		got := SuggestNextSkills(nodes, links, learned)

		require.NotEmpty(t, got)
		assert.Equal(t, "react", got[0].ID)
		assert.Equal(t, 100, got[0].ReadinessScore)
		assert.Equal(t, []string{"JavaScript", "TypeScript"}, got[0].Prerequisites)
	})

	t.Run("同分时已掌握前置多的排前面", func(t *testing.T) {
		learned := []model.LearnedSkill{
			learnedSkill("javascript"),
			learnedSkill("typescript"),
		}
		manyNodes := append([]model.GraphNode{}, nodes...)
		manyNodes = append(manyNodes, node("vue", "Vue"))
		manyLinks := append([]model.GraphLink{}, links...)
		manyLinks = append(manyLinks, prereq("javascript", "vue"))

		got := SuggestNextSkills(manyNodes, manyLinks, learned)
		require.Len(t, got, 2)
		// react 有两个已掌握前置，vue 只有一个
		assert.Equal(t, "react", got[0].ID)
		assert.Equal(t, "vue", got[1].ID)
	})
}

func TestSuggestNextSkillsCap(t *testing.T) {
	nodes := []model.GraphNode{node("base", "Base")}
	links := []model.GraphLink{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		nodes = append(nodes, node(id, id))
		links = append(links, prereq("base", id))
	}

	got := SuggestNextSkills(nodes, links, []model.LearnedSkill{learnedSkill("base")})
	assert.Len(t, got, 5)
	for _, s := range got {
		assert.Equal(t, 100, s.ReadinessScore)
	}
}

func TestSuggestNextSkillsIgnoresNonPrereqEdges(t *testing.T) {
	nodes := []model.GraphNode{node("a", "A"), node("b", "B")}
	links := []model.GraphLink{
		{Source: "a", Target: "b", Type: model.EdgeRelatesTo},
	}

	got := SuggestNextSkills(nodes, links, []model.LearnedSkill{learnedSkill("a")})
	assert.Empty(t, got)
}

func TestSuggestNextSkillsSelfLoop(t *testing.T) {
	nodes := []model.GraphNode{node("a", "A"), node("b", "B")}
	links := []model.GraphLink{
		prereq("a", "a"),
		prereq("a", "b"),
	}

	got := SuggestNextSkills(nodes, links, []model.LearnedSkill{learnedSkill("a")})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

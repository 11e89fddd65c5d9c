package service

import (
	"context"
	"math"
	"sort"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/repository"
)

// 建议列表最多返回 5 条
const maxSuggestions = 5

type KnowledgeGraphService struct {
	GraphRepo *repository.SkillGraphRepository
}

func NewKnowledgeGraphService(graphRepo *repository.SkillGraphRepository) *KnowledgeGraphService {
	return &KnowledgeGraphService{GraphRepo: graphRepo}
}

// GetKnowledgeGraph 读取完整图谱视图：节点、边、下一步学习建议。
// 三次读取逻辑独立，全部成功后才组装返回，不返回部分结果。
func (s *KnowledgeGraphService) GetKnowledgeGraph(ctx context.Context, userID string) (*model.KnowledgeGraphData, error) {
	nodes, err := s.GraphRepo.GetSkillNodes(ctx, userID)
	if err != nil {
		return nil, err
	}

	links, err := s.GraphRepo.GetSkillEdges(ctx)
	if err != nil {
		return nil, err
	}

	learned, err := s.GraphRepo.GetLearnedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.KnowledgeGraphData{
		Nodes:               nodes,
		Links:               links,
		SuggestedNextSkills: SuggestNextSkills(nodes, links, learned),
	}, nil
}

// GetSkillConfidence 取信心值最高的前 6 个已掌握技能（雷达图数据）
func (s *KnowledgeGraphService) GetSkillConfidence(ctx context.Context, userID string) ([]model.RadarDataPoint, error) {
	learned, err := s.GraphRepo.GetLearnedSkills(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(learned) > 6 {
		learned = learned[:6]
	}

	points := make([]model.RadarDataPoint, 0, len(learned))
	for _, l := range learned {
		points = append(points, model.RadarDataPoint{
			Skill:      l.SkillName,
			Confidence: float64(l.Confidence),
			FullMark:   100,
		})
	}
	return points, nil
}

// SuggestNextSkills 计算下一步学习建议。
//
// 候选集：存在 已掌握技能 -PREREQUISITE_OF-> next 且 next 未掌握。
// 就绪度：next 的前置技能中已掌握的占比（无前置时为 100）。
// 排序：就绪度降序，已掌握前置数降序；取前 5，就绪度四舍五入为整数。
//
// 用户未掌握任何技能或图中没有前置边时返回空列表。
// 只向前看一跳，环状或自引用的前置边不会导致不终止。
func SuggestNextSkills(nodes []model.GraphNode, links []model.GraphLink, learned []model.LearnedSkill) []model.SuggestedSkill {
	learnedSet := make(map[string]bool, len(learned))
	for _, l := range learned {
		learnedSet[l.SkillID] = true
	}

	nodeByID := make(map[string]model.GraphNode, len(nodes))
	for _, n := range nodes {
		nodeByID[n.ID] = n
	}

	// 按目标技能聚合前置边（全部 / 已掌握，名称去重）
	allPrereqs := make(map[string]map[string]bool)
	learnedPrereqs := make(map[string]map[string]bool)
	candidates := make(map[string]bool)

	for _, link := range links {
		if link.Type != model.EdgePrerequisiteOf {
			continue
		}

		source, ok := nodeByID[link.Source]
		if !ok {
			continue
		}

		if allPrereqs[link.Target] == nil {
			allPrereqs[link.Target] = make(map[string]bool)
		}
		allPrereqs[link.Target][source.Name] = true

		if learnedSet[link.Source] {
			if learnedPrereqs[link.Target] == nil {
				learnedPrereqs[link.Target] = make(map[string]bool)
			}
			learnedPrereqs[link.Target][source.Name] = true

			if !learnedSet[link.Target] {
				candidates[link.Target] = true
			}
		}
	}

	suggestions := make([]model.SuggestedSkill, 0, len(candidates))
	for id := range candidates {
		node, ok := nodeByID[id]
		if !ok {
			continue
		}

		prereqNames := sortedKeys(learnedPrereqs[id])
		readiness := 100.0
		if total := len(allPrereqs[id]); total > 0 {
			readiness = float64(len(prereqNames)) / float64(total) * 100
		}

		suggestions = append(suggestions, model.SuggestedSkill{
			ID:             node.ID,
			Name:           node.Name,
			Category:       node.Category,
			Prerequisites:  prereqNames,
			ReadinessScore: int(math.Round(readiness)),
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].ReadinessScore != suggestions[j].ReadinessScore {
			return suggestions[i].ReadinessScore > suggestions[j].ReadinessScore
		}
		if len(suggestions[i].Prerequisites) != len(suggestions[j].Prerequisites) {
			return len(suggestions[i].Prerequisites) > len(suggestions[j].Prerequisites)
		}
		return suggestions[i].ID < suggestions[j].ID
	})

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

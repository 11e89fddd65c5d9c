package repository

import (
	"context"
	"time"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/monitoring"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// SkillGraphRepository 技能图谱仓储。
// 每次调用在独立作用域内开启会话，所有退出路径上都保证释放。
type SkillGraphRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewSkillGraphRepository(driver neo4j.DriverWithContext, database string) *SkillGraphRepository {
	return &SkillGraphRepository{driver: driver, database: database}
}

// Available 图数据库是否已配置
func (r *SkillGraphRepository) Available() bool {
	return r.driver != nil
}

func (r *SkillGraphRepository) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// GetSkillNodes 读取全部技能节点，带用户的掌握标志与信心值（未掌握为 0）
func (r *SkillGraphRepository) GetSkillNodes(ctx context.Context, userID string) ([]model.GraphNode, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "skill_nodes", time.Now())

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill)
		OPTIONAL MATCH (u:User {id: $userId})-[l:LEARNED]->(s)
		RETURN s.id AS id, s.name AS name, s.category AS category,
		       COALESCE(l.confidence, 0) AS confidence,
		       l IS NOT NULL AS learned
	`, map[string]interface{}{"userId": userID})
	if err != nil {
		return nil, util.StoreError("query skill nodes", err)
	}

	nodes := []model.GraphNode{}
	for result.Next(ctx) {
		record := result.Record()
		confidence, _ := record.Get("confidence")
		learned, _ := record.Get("learned")
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		category, _ := record.Get("category")

		nodes = append(nodes, model.GraphNode{
			ID:         util.AsString(id),
			Name:       util.AsString(name),
			Category:   util.AsString(category),
			Confidence: util.AsFloat64(confidence),
			Learned:    util.AsBool(learned),
		})
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("iterate skill nodes", err)
	}
	return nodes, nil
}

// GetSkillEdges 读取可渲染类型（PREREQUISITE_OF / RELATES_TO）的全部边
func (r *SkillGraphRepository) GetSkillEdges(ctx context.Context) ([]model.GraphLink, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "skill_edges", time.Now())

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s1:Skill)-[r:PREREQUISITE_OF|RELATES_TO]->(s2:Skill)
		RETURN s1.id AS source, s2.id AS target, type(r) AS type
	`, nil)
	if err != nil {
		return nil, util.StoreError("query skill edges", err)
	}

	links := []model.GraphLink{}
	for result.Next(ctx) {
		record := result.Record()
		source, _ := record.Get("source")
		target, _ := record.Get("target")
		edgeType, _ := record.Get("type")

		links = append(links, model.GraphLink{
			Source: util.AsString(source),
			Target: util.AsString(target),
			Type:   util.AsString(edgeType),
		})
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("iterate skill edges", err)
	}
	return links, nil
}

// GetLearnedSkills 读取用户已掌握的技能，按信心值降序
func (r *SkillGraphRepository) GetLearnedSkills(ctx context.Context, userID string) ([]model.LearnedSkill, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "learned_skills", time.Now())

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (u:User {id: $userId})-[l:LEARNED]->(s:Skill)
		RETURN s.id AS id, s.name AS name, l.confidence AS confidence
		ORDER BY l.confidence DESC
	`, map[string]interface{}{"userId": userID})
	if err != nil {
		return nil, util.StoreError("query learned skills", err)
	}

	learned := []model.LearnedSkill{}
	for result.Next(ctx) {
		record := result.Record()
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		confidence, _ := record.Get("confidence")

		learned = append(learned, model.LearnedSkill{
			SkillID:    util.AsString(id),
			SkillName:  util.AsString(name),
			Confidence: int(util.AsInt64(confidence)),
		})
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("iterate learned skills", err)
	}
	return learned, nil
}

// GetSkill 按 ID 读取单个技能，不存在返回 ErrNotFound
func (r *SkillGraphRepository) GetSkill(ctx context.Context, skillID string) (*model.Skill, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "get_skill", time.Now())

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill {id: $skillId})
		RETURN s.id AS id, s.name AS name, s.category AS category,
		       s.description AS description, s.difficulty_level AS difficulty,
		       s.learning_time_hours AS hours
	`, map[string]interface{}{"skillId": skillID})
	if err != nil {
		return nil, util.StoreError("query skill", err)
	}

	if result.Next(ctx) {
		record := result.Record()
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		category, _ := record.Get("category")
		description, _ := record.Get("description")
		difficulty, _ := record.Get("difficulty")
		hours, _ := record.Get("hours")

		return &model.Skill{
			ID:                util.AsString(id),
			Name:              util.AsString(name),
			Category:          util.AsString(category),
			Description:       util.AsString(description),
			DifficultyLevel:   int(util.AsInt64(difficulty)),
			LearningTimeHours: util.AsFloat64(hours),
		}, nil
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("query skill", err)
	}
	return nil, util.NotFoundError("skill", skillID)
}

// ListSkills 读取全部技能（含元数据）
func (r *SkillGraphRepository) ListSkills(ctx context.Context) ([]model.Skill, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "list_skills", time.Now())

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill)
		RETURN s.id AS id, s.name AS name, s.category AS category,
		       s.description AS description, s.difficulty_level AS difficulty,
		       s.learning_time_hours AS hours
	`, nil)
	if err != nil {
		return nil, util.StoreError("list skills", err)
	}

	skills := []model.Skill{}
	for result.Next(ctx) {
		record := result.Record()
		id, _ := record.Get("id")
		name, _ := record.Get("name")
		category, _ := record.Get("category")
		description, _ := record.Get("description")
		difficulty, _ := record.Get("difficulty")
		hours, _ := record.Get("hours")

		skills = append(skills, model.Skill{
			ID:                util.AsString(id),
			Name:              util.AsString(name),
			Category:          util.AsString(category),
			Description:       util.AsString(description),
			DifficultyLevel:   int(util.AsInt64(difficulty)),
			LearningTimeHours: util.AsFloat64(hours),
		})
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("list skills", err)
	}
	return skills, nil
}

// SkillExists 判断技能是否已存在
func (r *SkillGraphRepository) SkillExists(ctx context.Context, skillID string) (bool, error) {
	if r.driver == nil {
		return false, util.ConfigurationError("neo4j")
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill {id: $skillId})
		RETURN s.id AS id
	`, map[string]interface{}{"skillId": skillID})
	if err != nil {
		return false, util.StoreError("check skill exists", err)
	}

	exists := result.Next(ctx)
	if err := result.Err(); err != nil {
		return false, util.StoreError("check skill exists", err)
	}
	return exists, nil
}

// ListSkillNames 列出除指定 ID 外的全部技能名称
func (r *SkillGraphRepository) ListSkillNames(ctx context.Context, excludeID string) ([]string, error) {
	if r.driver == nil {
		return nil, util.ConfigurationError("neo4j")
	}

	session := r.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill)
		WHERE s.id <> $skillId
		RETURN s.name AS name
	`, map[string]interface{}{"skillId": excludeID})
	if err != nil {
		return nil, util.StoreError("list skill names", err)
	}

	names := []string{}
	for result.Next(ctx) {
		name, _ := result.Record().Get("name")
		names = append(names, util.AsString(name))
	}
	if err := result.Err(); err != nil {
		return nil, util.StoreError("list skill names", err)
	}
	return names, nil
}

// CreateSkill 创建技能节点
func (r *SkillGraphRepository) CreateSkill(ctx context.Context, skill *model.Skill) error {
	if r.driver == nil {
		return util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "create_skill", time.Now())

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		res, err := tx.Run(ctx, `
			CREATE (s:Skill {
				id: $id,
				name: $name,
				category: $category,
				description: $description,
				difficulty_level: $difficulty,
				learning_time_hours: $hours
			})
		`, map[string]interface{}{
			"id":          skill.ID,
			"name":        skill.Name,
			"category":    skill.Category,
			"description": skill.Description,
			"difficulty":  skill.DifficultyLevel,
			"hours":       skill.LearningTimeHours,
		})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return util.StoreError("create skill", err)
	}
	return nil
}

// LinkRelated 建立 新技能 -RELATES_TO-> 既有技能 的边，目标按 ID 或名称匹配。
// 返回实际创建的边数（目标不存在时为 0）。
func (r *SkillGraphRepository) LinkRelated(ctx context.Context, skillID, relatedID, relatedName string) (int, error) {
	return r.linkByName(ctx, `
		MATCH (new:Skill {id: $skillId})
		MATCH (other:Skill)
		WHERE other.id = $otherId OR other.name = $otherName
		CREATE (new)-[:RELATES_TO {strength: 0.8}]->(other)
		RETURN count(*) AS count
	`, skillID, relatedID, relatedName)
}

// LinkPrerequisite 建立 既有技能 -PREREQUISITE_OF-> 新技能 的边
func (r *SkillGraphRepository) LinkPrerequisite(ctx context.Context, skillID, prereqID, prereqName string) (int, error) {
	return r.linkByName(ctx, `
		MATCH (other:Skill)
		WHERE other.id = $otherId OR other.name = $otherName
		MATCH (new:Skill {id: $skillId})
		CREATE (other)-[:PREREQUISITE_OF {strength: 0.8}]->(new)
		RETURN count(*) AS count
	`, skillID, prereqID, prereqName)
}

func (r *SkillGraphRepository) linkByName(ctx context.Context, query, skillID, otherID, otherName string) (int, error) {
	if r.driver == nil {
		return 0, util.ConfigurationError("neo4j")
	}

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"skillId":   skillID,
		"otherId":   otherID,
		"otherName": otherName,
	})
	if err != nil {
		return 0, util.StoreError("create skill edge", err)
	}

	count := 0
	if result.Next(ctx) {
		v, _ := result.Record().Get("count")
		count = int(util.AsInt64(v))
	}
	if err := result.Err(); err != nil {
		return 0, util.StoreError("create skill edge", err)
	}
	return count, nil
}

// SetLearned 标记技能已掌握（存在即更新信心值）
func (r *SkillGraphRepository) SetLearned(ctx context.Context, userID, skillID string, confidence int) error {
	if r.driver == nil {
		return util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "set_learned", time.Now())

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		res, err := tx.Run(ctx, `
			MERGE (u:User {id: $userId})
			WITH u
			MATCH (s:Skill {id: $skillId})
			MERGE (u)-[l:LEARNED]->(s)
			SET l.confidence = $confidence
		`, map[string]interface{}{
			"userId":     userID,
			"skillId":    skillID,
			"confidence": confidence,
		})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return util.StoreError("set learned", err)
	}
	return nil
}

// RemoveLearned 取消掌握标记
func (r *SkillGraphRepository) RemoveLearned(ctx context.Context, userID, skillID string) error {
	if r.driver == nil {
		return util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "remove_learned", time.Now())

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		res, err := tx.Run(ctx, `
			MATCH (u:User {id: $userId})-[l:LEARNED]->(s:Skill {id: $skillId})
			DELETE l
		`, map[string]interface{}{"userId": userID, "skillId": skillID})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return util.StoreError("remove learned", err)
	}
	return nil
}

// DeleteSkill 连同全部关联边删除技能（DETACH DELETE，不留悬挂边）。
// 返回是否确有节点被删除。
func (r *SkillGraphRepository) DeleteSkill(ctx context.Context, skillID string) (bool, error) {
	if r.driver == nil {
		return false, util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "delete_skill", time.Now())

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (s:Skill {id: $skillId})
		DETACH DELETE s
		RETURN count(s) AS deleted
	`, map[string]interface{}{"skillId": skillID})
	if err != nil {
		return false, util.StoreError("delete skill", err)
	}

	deleted := 0
	if result.Next(ctx) {
		v, _ := result.Record().Get("deleted")
		deleted = int(util.AsInt64(v))
	}
	if err := result.Err(); err != nil {
		return false, util.StoreError("delete skill", err)
	}
	return deleted > 0, nil
}

// ReplaceGraph 清空既有技能后批量写入生成的技能与关系，
// 并为低难度技能随机打上掌握标记（用于图谱生成后的初始状态）。
func (r *SkillGraphRepository) ReplaceGraph(ctx context.Context, skills []model.Skill, edges []model.SkillEdge, userID string) error {
	if r.driver == nil {
		return util.ConfigurationError("neo4j")
	}
	defer monitoring.ObserveStoreQuery("neo4j", "replace_graph", time.Now())

	session := r.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	skillRows := make([]map[string]interface{}, 0, len(skills))
	for _, s := range skills {
		skillRows = append(skillRows, map[string]interface{}{
			"id":          s.ID,
			"name":        s.Name,
			"category":    s.Category,
			"description": s.Description,
			"difficulty":  s.DifficultyLevel,
			"hours":       s.LearningTimeHours,
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		if res, err := tx.Run(ctx, `MATCH (s:Skill) DETACH DELETE s`, nil); err != nil {
			return nil, err
		} else if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		if res, err := tx.Run(ctx, `
			UNWIND $rows AS row
			CREATE (s:Skill {
				id: row.id,
				name: row.name,
				category: row.category,
				description: row.description,
				difficulty_level: row.difficulty,
				learning_time_hours: row.hours
			})
		`, map[string]interface{}{"rows": skillRows}); err != nil {
			return nil, err
		} else if _, err := res.Consume(ctx); err != nil {
			return nil, err
		}

		// 边类型来自受信的白名单，允许拼接
		for _, e := range edges {
			if res, err := tx.Run(ctx, `
				MATCH (s1:Skill {id: $source})
				MATCH (s2:Skill {id: $target})
				CREATE (s1)-[:`+e.Type+` {strength: $strength}]->(s2)
			`, map[string]interface{}{
				"source":   e.SourceID,
				"target":   e.TargetID,
				"strength": e.Strength,
			}); err != nil {
				return nil, err
			} else if _, err := res.Consume(ctx); err != nil {
				return nil, err
			}
		}

		res, err := tx.Run(ctx, `
			MERGE (u:User {id: $userId})
			WITH u
			MATCH (s:Skill)
			WHERE s.difficulty_level <= 2
			WITH u, s, rand() AS r
			WHERE r < 0.6
			CREATE (u)-[:LEARNED {confidence: toInteger(70 + rand() * 25)}]->(s)
		`, map[string]interface{}{"userId": userID})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	if err != nil {
		return util.StoreError("replace graph", err)
	}
	return nil
}

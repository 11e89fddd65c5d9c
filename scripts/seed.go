// 初始化演示数据脚本
//
// 向 Neo4j 写入一张起步技能图谱，向 Firestore 写入最近几周的
// 学习会话、技能应用与 LVI 快照，便于本地联调仪表盘。
//
// 用法: go run scripts/seed.go

package main

import (
	"context"
	"log"
	"os"
	"time"

	"neu4g_backend/internal/config"
	"neu4g_backend/internal/model"
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/database"
	"neu4g_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type seedConfig struct {
	Server struct {
		Mode string `yaml:"mode"`
	} `yaml:"server"`
	Neo4j struct {
		URI      string `yaml:"uri"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"neo4j"`
	Firestore struct {
		ProjectID       string `yaml:"project_id"`
		CredentialsFile string `yaml:"credentials_file"`
		ClientEmail     string `yaml:"client_email"`
		PrivateKey      string `yaml:"private_key"`
	} `yaml:"firestore"`
}

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var sc seedConfig
	if err := yaml.Unmarshal(data, &sc); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = sc.Server.Mode
	cfg.Neo4j = config.Neo4jConfig{
		URI:      sc.Neo4j.URI,
		User:     sc.Neo4j.User,
		Password: sc.Neo4j.Password,
		Database: sc.Neo4j.Database,
	}
	cfg.Firestore = config.FirestoreConfig{
		ProjectID:       sc.Firestore.ProjectID,
		CredentialsFile: sc.Firestore.CredentialsFile,
		ClientEmail:     sc.Firestore.ClientEmail,
		PrivateKey:      sc.Firestore.PrivateKey,
	}

	logger.InitLogger(cfg)

	ctx := context.Background()

	if cfg.Neo4j.IsConfigured() {
		seedGraph(ctx, cfg)
	} else {
		log.Println("Neo4j 未配置，跳过图谱数据")
	}

	if cfg.Firestore.IsConfigured() {
		seedActivity(ctx, cfg)
	} else {
		log.Println("Firestore 未配置，跳过活动数据")
	}

	log.Println("完成！")
}

func seedGraph(ctx context.Context, cfg *config.Config) {
	driver, err := database.InitNeo4j(&cfg.Neo4j)
	if err != nil {
		log.Fatalf("Neo4j 连接失败: %v", err)
	}
	defer driver.Close(ctx)

	repo := repository.NewSkillGraphRepository(driver, cfg.Neo4j.Database)

	skills := []model.Skill{
		{ID: "html-css", Name: "HTML & CSS", Category: "frontend", Description: "Structure and style web pages", DifficultyLevel: 1, LearningTimeHours: 40},
		{ID: "javascript", Name: "JavaScript", Category: "frontend", Description: "Core language of the web", DifficultyLevel: 2, LearningTimeHours: 80},
		{ID: "react", Name: "React", Category: "frontend", Description: "Component-based UI library", DifficultyLevel: 3, LearningTimeHours: 60},
		{ID: "typescript", Name: "TypeScript", Category: "frontend", Description: "Typed superset of JavaScript", DifficultyLevel: 3, LearningTimeHours: 40},
		{ID: "nodejs", Name: "Node.js", Category: "backend", Description: "Server-side JavaScript runtime", DifficultyLevel: 2, LearningTimeHours: 50},
		{ID: "express", Name: "Express", Category: "backend", Description: "Minimal web framework for Node.js", DifficultyLevel: 2, LearningTimeHours: 30},
		{ID: "sql", Name: "SQL", Category: "database", Description: "Relational query language", DifficultyLevel: 2, LearningTimeHours: 40},
		{ID: "postgresql", Name: "PostgreSQL", Category: "database", Description: "Advanced open source relational database", DifficultyLevel: 3, LearningTimeHours: 50},
		{ID: "docker", Name: "Docker", Category: "devops", Description: "Container runtime and tooling", DifficultyLevel: 3, LearningTimeHours: 40},
	}

	edges := []model.SkillEdge{
		{SourceID: "html-css", TargetID: "javascript", Type: model.EdgePrerequisiteOf, Strength: 0.9},
		{SourceID: "javascript", TargetID: "react", Type: model.EdgePrerequisiteOf, Strength: 0.9},
		{SourceID: "javascript", TargetID: "typescript", Type: model.EdgePrerequisiteOf, Strength: 0.8},
		{SourceID: "javascript", TargetID: "nodejs", Type: model.EdgePrerequisiteOf, Strength: 0.8},
		{SourceID: "nodejs", TargetID: "express", Type: model.EdgePrerequisiteOf, Strength: 0.9},
		{SourceID: "sql", TargetID: "postgresql", Type: model.EdgePrerequisiteOf, Strength: 0.9},
		{SourceID: "react", TargetID: "typescript", Type: model.EdgeRelatesTo, Strength: 0.7},
		{SourceID: "express", TargetID: "postgresql", Type: model.EdgeRelatesTo, Strength: 0.6},
	}

	if err := repo.ReplaceGraph(ctx, skills, edges, util.DefaultUserID); err != nil {
		log.Fatalf("写入图谱失败: %v", err)
	}
	log.Printf("图谱写入完成: %d 个技能, %d 条关系", len(skills), len(edges))
}

func seedActivity(ctx context.Context, cfg *config.Config) {
	client, err := database.InitFirestore(ctx, &cfg.Firestore)
	if err != nil {
		log.Fatalf("Firestore 连接失败: %v", err)
	}
	defer client.Close()

	repo := repository.NewActivityRepository(client)
	now := time.Now()

	sessions := []model.Session{
		{UserID: util.DefaultUserID, StartTime: now.AddDate(0, 0, -1), Duration: 90, ConceptsLearned: []string{"react hooks", "useEffect"}},
		{UserID: util.DefaultUserID, StartTime: now.AddDate(0, 0, -2), Duration: 60, ConceptsLearned: []string{"sql joins"}},
		{UserID: util.DefaultUserID, StartTime: now.AddDate(0, 0, -3), Duration: 45, ConceptsLearned: nil},
		{UserID: util.DefaultUserID, StartTime: now.AddDate(0, 0, -4), Duration: 120, ConceptsLearned: []string{"docker compose", "dockerfile"}},
	}
	for i := range sessions {
		if err := repo.CreateSession(ctx, &sessions[i]); err != nil {
			log.Fatalf("写入会话失败: %v", err)
		}
	}

	apps := []model.SkillApplication{
		{UserID: util.DefaultUserID, Concept: "react hooks", AppliedAt: now.AddDate(0, 0, -1), SuccessRate: 0.8},
		{UserID: util.DefaultUserID, Concept: "sql joins", AppliedAt: now.AddDate(0, 0, -2), SuccessRate: 0.7},
		{UserID: util.DefaultUserID, Concept: "dockerfile", AppliedAt: now.AddDate(0, 0, -3), SuccessRate: 0.9},
	}
	for i := range apps {
		if err := repo.CreateApplication(ctx, &apps[i]); err != nil {
			log.Fatalf("写入技能应用失败: %v", err)
		}
	}

	// 近 8 周的快照，前低后高，趋势接口能看出加速
	scores := []int{42, 45, 44, 50, 55, 58, 62, 66}
	for i, score := range scores {
		createdAt := now.AddDate(0, 0, -7*(len(scores)-i))
		year, week := createdAt.ISOWeek()
		snap := model.LVISnapshot{
			UserID:           util.DefaultUserID,
			WeekNumber:       week,
			Year:             year,
			Score:            score,
			ConceptsMastered: 3 + i/2,
			ApplicationRate:  0.6 + float64(i)*0.03,
			AvgTimeToMastery: 1.2 - float64(i)*0.05,
			CreatedAt:        createdAt,
		}
		if err := repo.CreateSnapshot(ctx, &snap); err != nil {
			log.Fatalf("写入快照失败: %v", err)
		}
	}

	log.Printf("活动数据写入完成: %d 会话, %d 应用, %d 快照", len(sessions), len(apps), len(scores))
}

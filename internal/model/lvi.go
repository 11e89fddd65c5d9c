package model

import "time"

// Session 一次学习活动记录，写入后不可变，归文档库所有
type Session struct {
	UserID          string    `json:"userId" firestore:"userId"`
	StartTime       time.Time `json:"startTime" firestore:"startTime"`
	Duration        int       `json:"duration" firestore:"duration"` // 分钟
	ConceptsLearned []string  `json:"conceptsLearned" firestore:"conceptsLearned"`
}

// SkillApplication 对已学概念的一次应用记录
type SkillApplication struct {
	UserID      string    `json:"userId" firestore:"userId"`
	Concept     string    `json:"concept" firestore:"concept"`
	AppliedAt   time.Time `json:"appliedAt" firestore:"appliedAt"`
	SuccessRate float64   `json:"successRate" firestore:"successRate"` // [0,1]
}

// LVIData 学习速度指数（当前周）
type LVIData struct {
	Score            int     `json:"score"` // 0-100
	ConceptsMastered int     `json:"conceptsMastered"`
	ApplicationRate  float64 `json:"applicationRate"`
	AvgTimeToMastery float64 `json:"avgTimeToMastery"` // 天，报告值下限 0.1
	ScalingFactor    int     `json:"scalingFactor"`
	WeekStart        string  `json:"weekStart"` // 2006-01-02
	WeekEnd          string  `json:"weekEnd"`
}

// LVISnapshot 每周一次的不可变快照，趋势分析最多取最近 12 条
type LVISnapshot struct {
	ID               string    `json:"id" firestore:"-"`
	UserID           string    `json:"-" firestore:"userId"`
	WeekNumber       int       `json:"weekNumber" firestore:"weekNumber"`
	Year             int       `json:"year" firestore:"year"`
	Score            int       `json:"score" firestore:"score"`
	ConceptsMastered int       `json:"conceptsMastered" firestore:"conceptsMastered"`
	ApplicationRate  float64   `json:"applicationRate" firestore:"applicationRate"`
	AvgTimeToMastery float64   `json:"avgTimeToMastery" firestore:"avgTimeToMastery"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
}

// 趋势分类
const (
	TrendAccelerating = "accelerating"
	TrendStable       = "stable"
	TrendDecelerating = "decelerating"
)

// LVITrendData 趋势接口返回，快照按时间正序
type LVITrendData struct {
	Snapshots     []LVISnapshot `json:"snapshots"`
	Trend         string        `json:"trend"`
	PercentChange float64       `json:"percentChange"`
}

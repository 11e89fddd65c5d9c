package service

import (
	"testing"
	"time"

	"neu4g_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekWindow(t *testing.T) {
	loc := time.Local

	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "周三落在周日到周六的窗口",
			ref:       time.Date(2025, 3, 12, 15, 30, 0, 0, loc),
			wantStart: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 3, 15, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "周日是窗口起点",
			ref:       time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			wantStart: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 3, 15, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "周六仍在同一窗口内",
			ref:       time.Date(2025, 3, 15, 23, 0, 0, 0, loc),
			wantStart: time.Date(2025, 3, 9, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 3, 15, 23, 59, 59, 999000000, loc),
		},
		{
			name:      "跨月的窗口",
			ref:       time.Date(2025, 4, 2, 10, 0, 0, 0, loc),
			wantStart: time.Date(2025, 3, 30, 0, 0, 0, 0, loc),
			wantEnd:   time.Date(2025, 4, 5, 23, 59, 59, 999000000, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekWindow(tt.ref)
			assert.True(t, start.Equal(tt.wantStart), "start = %v, want %v", start, tt.wantStart)
			assert.True(t, end.Equal(tt.wantEnd), "end = %v, want %v", end, tt.wantEnd)
		})
	}
}

func session(duration int, concepts ...string) model.Session {
	return model.Session{Duration: duration, ConceptsLearned: concepts}
}

func application(successRate float64) model.SkillApplication {
	return model.SkillApplication{SuccessRate: successRate}
}

func TestComputeLVI(t *testing.T) {
	t.Run("无任何数据时为零分", func(t *testing.T) {
		got := computeLVI(nil, nil)
		assert.Equal(t, 0, got.Score)
		assert.Equal(t, 0, got.ConceptsMastered)
		assert.Equal(t, 0.0, got.ApplicationRate)
		// 无概念时掌握耗时取默认 1 天
		assert.Equal(t, 1.0, got.AvgTimeToMastery)
		assert.Equal(t, 10, got.ScalingFactor)
	})

	t.Run("概念去重统计", func(t *testing.T) {
		sessions := []model.Session{
			session(60, "hooks", "joins"),
			session(30, "hooks"),
		}
		got := computeLVI(sessions, nil)
		assert.Equal(t, 2, got.ConceptsMastered)
	})

	t.Run("无概念的会话不计时长", func(t *testing.T) {
		sessions := []model.Session{
			session(60, "hooks"),
			session(600), // 没学到概念，时长不计
		}
		apps := []model.SkillApplication{application(0.5)}
		got := computeLVI(sessions, apps)

		// 只有 60 分钟计入: 60/60/24/1 ≈ 0.042 天
		withIdle := computeLVI([]model.Session{session(660, "hooks")}, apps)
		assert.Greater(t, got.Score, withIdle.Score)
	})

	t.Run("高速学习会被封顶在100", func(t *testing.T) {
		sessions := []model.Session{
			session(180, "a", "b", "c"),
		}
		apps := []model.SkillApplication{application(0.8)}
		got := computeLVI(sessions, apps)

		assert.Equal(t, 100, got.Score)
		assert.Equal(t, 3, got.ConceptsMastered)
		assert.Equal(t, 0.8, got.ApplicationRate)
		// 真实值 0.042 天，报告值有 0.1 的下限
		assert.Equal(t, 0.1, got.AvgTimeToMastery)
	})

	t.Run("应用成功率取平均", func(t *testing.T) {
		apps := []model.SkillApplication{
			application(0.6),
			application(0.8),
			application(1.0),
		}
		got := computeLVI([]model.Session{session(600, "a")}, apps)
		assert.Equal(t, 0.8, got.ApplicationRate)
	})

	t.Run("没有应用记录时成功率为0分数为0", func(t *testing.T) {
		got := computeLVI([]model.Session{session(600, "a")}, nil)
		assert.Equal(t, 0.0, got.ApplicationRate)
		assert.Equal(t, 0, got.Score)
	})
}

func snapshotsWithScores(scores ...int) []model.LVISnapshot {
	snaps := make([]model.LVISnapshot, 0, len(scores))
	for _, s := range scores {
		snaps = append(snaps, model.LVISnapshot{Score: s})
	}
	return snaps
}

func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name       string
		scores     []int
		wantTrend  string
		wantChange float64
	}{
		{"空序列为平稳", nil, model.TrendStable, 0.0},
		{"单条快照为平稳", []int{50}, model.TrendStable, 0.0},
		{"后半高于前半为加速", []int{50, 50, 50, 50, 60, 60, 60, 60}, model.TrendAccelerating, 20.0},
		{"后半低于前半为减速", []int{80, 80, 80, 80, 75, 75, 75, 75}, model.TrendDecelerating, -6.25},
		{"变化在阈值内为平稳", []int{50, 50, 51, 51}, model.TrendStable, 2.0},
		{"刚好5%不算加速", []int{100, 100, 105, 105}, model.TrendStable, 5.0},
		{"奇数长度前半取较短的一半", []int{40, 60, 60}, model.TrendAccelerating, 50.0},
		{"前半均值为0时变化率为0", []int{0, 0, 50, 50}, model.TrendStable, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, change := ClassifyTrend(snapshotsWithScores(tt.scores...))
			assert.Equal(t, tt.wantTrend, trend)
			assert.InDelta(t, tt.wantChange, change, 0.001)
		})
	}
}

func TestClassifyTrendIdempotent(t *testing.T) {
	snaps := snapshotsWithScores(40, 45, 50, 55, 60, 65)
	trend1, change1 := ClassifyTrend(snaps)
	trend2, change2 := ClassifyTrend(snaps)

	require.Equal(t, trend1, trend2)
	assert.Equal(t, change1, change2)
}

package service

import (
	"context"
	"math"
	"time"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/repository"
	"neu4g_backend/internal/util"
)

// LVI 缩放系数与趋势分析参数
const (
	lviScalingFactor = 10
	trendWindowSize  = 12
	trendThreshold   = 5.0
)

type LVIService struct {
	ActivityRepo *repository.ActivityRepository
}

func NewLVIService(activityRepo *repository.ActivityRepository) *LVIService {
	return &LVIService{ActivityRepo: activityRepo}
}

// WeekWindow 返回 ref 所在的本地周窗口：周日 00:00:00.000 到周六 23:59:59.999
func WeekWindow(ref time.Time) (time.Time, time.Time) {
	offset := int(ref.Weekday())
	start := time.Date(ref.Year(), ref.Month(), ref.Day()-offset, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999000000, end.Location())
	return start, end
}

// ComputeLVI 计算 ref 所在周的学习速度指数
func (s *LVIService) ComputeLVI(ctx context.Context, userID string, ref time.Time) (*model.LVIData, error) {
	start, end := WeekWindow(ref)

	sessions, err := s.ActivityRepo.SessionsInWindow(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	apps, err := s.ActivityRepo.ApplicationsInWindow(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	data := computeLVI(sessions, apps)
	data.WeekStart = start.Format(util.DateFormat)
	data.WeekEnd = end.Format(util.DateFormat)
	return data, nil
}

// computeLVI 纯计算部分。
//
// 概念数按全部会话的去重概念统计；时长只累计概念列表非空的会话。
// 掌握耗时为 0 天或负数时直接记 0 分，报告值另行设下限 0.1。
func computeLVI(sessions []model.Session, apps []model.SkillApplication) *model.LVIData {
	concepts := make(map[string]bool)
	totalMinutes := 0
	for _, sess := range sessions {
		for _, c := range sess.ConceptsLearned {
			concepts[c] = true
		}
		if len(sess.ConceptsLearned) > 0 {
			totalMinutes += sess.Duration
		}
	}
	mastered := len(concepts)

	applicationRate := 0.0
	if len(apps) > 0 {
		sum := 0.0
		for _, a := range apps {
			sum += a.SuccessRate
		}
		applicationRate = sum / float64(len(apps))
	}

	avgTime := 1.0
	if mastered > 0 {
		avgTime = float64(totalMinutes) / 60 / 24 / float64(mastered)
	}

	score := 0
	if avgTime > 0 {
		raw := float64(mastered) * applicationRate / avgTime * lviScalingFactor
		score = int(math.Round(raw))
		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
	}

	reportedAvgTime := avgTime
	if reportedAvgTime < 0.1 {
		reportedAvgTime = 0.1
	}

	return &model.LVIData{
		Score:            score,
		ConceptsMastered: mastered,
		ApplicationRate:  math.Round(applicationRate*100) / 100,
		AvgTimeToMastery: math.Round(reportedAvgTime*100) / 100,
		ScalingFactor:    lviScalingFactor,
	}
}

// GetTrend 读取最近的快照并分类趋势
func (s *LVIService) GetTrend(ctx context.Context, userID string) (*model.LVITrendData, error) {
	snapshots, err := s.ActivityRepo.RecentSnapshots(ctx, userID, trendWindowSize)
	if err != nil {
		return nil, err
	}

	// 仓储按创建时间倒序返回，这里翻转成正序
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}

	trend, percentChange := ClassifyTrend(snapshots)
	return &model.LVITrendData{
		Snapshots:     snapshots,
		Trend:         trend,
		PercentChange: percentChange,
	}, nil
}

// ClassifyTrend 对时间正序的快照序列分类趋势。
// 前后两半各取均分，变化率超过 ±5% 判为加速或减速，否则平稳。
// 少于 2 条快照时为平稳、变化率 0。
func ClassifyTrend(snapshots []model.LVISnapshot) (string, float64) {
	if len(snapshots) < 2 {
		return model.TrendStable, 0.0
	}

	mid := len(snapshots) / 2
	avgFirst := avgScore(snapshots[:mid])
	avgSecond := avgScore(snapshots[mid:])

	percentChange := 0.0
	if avgFirst > 0 {
		percentChange = (avgSecond - avgFirst) / avgFirst * 100
	}
	percentChange = math.Round(percentChange*100) / 100

	switch {
	case percentChange > trendThreshold:
		return model.TrendAccelerating, percentChange
	case percentChange < -trendThreshold:
		return model.TrendDecelerating, percentChange
	default:
		return model.TrendStable, percentChange
	}
}

func avgScore(snapshots []model.LVISnapshot) float64 {
	if len(snapshots) == 0 {
		return 0
	}
	sum := 0
	for _, s := range snapshots {
		sum += s.Score
	}
	return float64(sum) / float64(len(snapshots))
}

// CaptureWeeklySnapshot 把当前周的 LVI 固化为一条快照
func (s *LVIService) CaptureWeeklySnapshot(ctx context.Context, userID string) (*model.LVISnapshot, error) {
	now := time.Now()
	data, err := s.ComputeLVI(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	year, week := now.ISOWeek()
	snap := &model.LVISnapshot{
		UserID:           userID,
		WeekNumber:       week,
		Year:             year,
		Score:            data.Score,
		ConceptsMastered: data.ConceptsMastered,
		ApplicationRate:  data.ApplicationRate,
		AvgTimeToMastery: data.AvgTimeToMastery,
		CreatedAt:        now,
	}
	if err := s.ActivityRepo.CreateSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

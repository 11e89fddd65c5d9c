package repository

import (
	"context"
	"time"

	"neu4g_backend/internal/model"
	"neu4g_backend/internal/util"
	"neu4g_backend/pkg/monitoring"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// 文档库集合
const (
	collectionSessions     = "sessions"
	collectionApplications = "skill_applications"
	collectionSnapshots    = "lvi_snapshots"
)

// ActivityRepository 学习活动仓储（会话、技能应用、LVI 快照）
type ActivityRepository struct {
	client *firestore.Client
}

func NewActivityRepository(client *firestore.Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// Available 文档库是否已配置
func (r *ActivityRepository) Available() bool {
	return r.client != nil
}

// SessionsInWindow 查询时间窗口内的学习会话（闭区间）
func (r *ActivityRepository) SessionsInWindow(ctx context.Context, userID string, start, end time.Time) ([]model.Session, error) {
	if r.client == nil {
		return nil, util.ConfigurationError("firestore")
	}
	defer monitoring.ObserveStoreQuery("firestore", "sessions_in_window", time.Now())

	iter := r.client.Collection(collectionSessions).
		Where("userId", "==", userID).
		Where("startTime", ">=", start).
		Where("startTime", "<=", end).
		Documents(ctx)
	defer iter.Stop()

	sessions := []model.Session{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, util.StoreError("query sessions", err)
		}

		var s model.Session
		if err := doc.DataTo(&s); err != nil {
			return nil, util.StoreError("decode session", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ApplicationsInWindow 查询时间窗口内的技能应用记录（闭区间）
func (r *ActivityRepository) ApplicationsInWindow(ctx context.Context, userID string, start, end time.Time) ([]model.SkillApplication, error) {
	if r.client == nil {
		return nil, util.ConfigurationError("firestore")
	}
	defer monitoring.ObserveStoreQuery("firestore", "applications_in_window", time.Now())

	iter := r.client.Collection(collectionApplications).
		Where("userId", "==", userID).
		Where("appliedAt", ">=", start).
		Where("appliedAt", "<=", end).
		Documents(ctx)
	defer iter.Stop()

	apps := []model.SkillApplication{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, util.StoreError("query skill applications", err)
		}

		var a model.SkillApplication
		if err := doc.DataTo(&a); err != nil {
			return nil, util.StoreError("decode skill application", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// RecentSnapshots 按创建时间倒序取最近的 LVI 快照（最多 limit 条）
func (r *ActivityRepository) RecentSnapshots(ctx context.Context, userID string, limit int) ([]model.LVISnapshot, error) {
	if r.client == nil {
		return nil, util.ConfigurationError("firestore")
	}
	defer monitoring.ObserveStoreQuery("firestore", "recent_snapshots", time.Now())

	iter := r.client.Collection(collectionSnapshots).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	snapshots := []model.LVISnapshot{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, util.StoreError("query snapshots", err)
		}

		var snap model.LVISnapshot
		if err := doc.DataTo(&snap); err != nil {
			return nil, util.StoreError("decode snapshot", err)
		}
		snap.ID = doc.Ref.ID
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// CreateSnapshot 写入一条每周快照（写入后不可变）
func (r *ActivityRepository) CreateSnapshot(ctx context.Context, snap *model.LVISnapshot) error {
	if r.client == nil {
		return util.ConfigurationError("firestore")
	}
	defer monitoring.ObserveStoreQuery("firestore", "create_snapshot", time.Now())

	ref := r.client.Collection(collectionSnapshots).NewDoc()
	if _, err := ref.Set(ctx, snap); err != nil {
		return util.StoreError("create snapshot", err)
	}
	snap.ID = ref.ID
	return nil
}

// CreateSession 写入一条学习会话记录
func (r *ActivityRepository) CreateSession(ctx context.Context, s *model.Session) error {
	if r.client == nil {
		return util.ConfigurationError("firestore")
	}

	if _, _, err := r.client.Collection(collectionSessions).Add(ctx, s); err != nil {
		return util.StoreError("create session", err)
	}
	return nil
}

// CreateApplication 写入一条技能应用记录
func (r *ActivityRepository) CreateApplication(ctx context.Context, a *model.SkillApplication) error {
	if r.client == nil {
		return util.ConfigurationError("firestore")
	}

	if _, _, err := r.client.Collection(collectionApplications).Add(ctx, a); err != nil {
		return util.StoreError("create skill application", err)
	}
	return nil
}

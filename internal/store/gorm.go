package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"shorturl-analytics/internal/model"

	"gorm.io/gorm"
)

// Gorm 基于 gorm 的存储实现，同时实现 LinkStore 与 EventStore
type Gorm struct {
	db *gorm.DB
}

// NewGorm 创建 gorm 存储
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) Create(ctx context.Context, link *model.ShortLink) error {
	exists, err := s.PathExists(ctx, link.ShortPath)
	if err != nil {
		return err
	}
	if exists {
		return ErrPathTaken
	}
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPathTaken
		}
		return err
	}
	return nil
}

func (s *Gorm) ByID(ctx context.Context, id uint) (*model.ShortLink, error) {
	var link model.ShortLink
	if err := s.db.WithContext(ctx).First(&link, id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &link, nil
}

func (s *Gorm) ByPath(ctx context.Context, path string) (*model.ShortLink, error) {
	var link model.ShortLink
	if err := s.db.WithContext(ctx).Where("short_path = ?", path).First(&link).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &link, nil
}

func (s *Gorm) List(ctx context.Context, q LinkQuery) ([]model.ShortLink, error) {
	links := make([]model.ShortLink, 0)
	query := s.db.WithContext(ctx).Model(&model.ShortLink{})
	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		like := "%" + term + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(short_path) LIKE ? OR LOWER(destination_url) LIKE ?", like, like, like)
	}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

func (s *Gorm) PathExists(ctx context.Context, path string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ShortLink{}).Where("short_path = ?", path).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Gorm) SetActive(ctx context.Context, id uint, active bool) error {
	res := s.db.WithContext(ctx).Model(&model.ShortLink{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *Gorm) Delete(ctx context.Context, id uint, cascade bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.ShortLink{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrLinkNotFound
		}
		if cascade {
			return tx.Where("link_id = ?", id).Delete(&model.AccessEvent{}).Error
		}
		return nil
	})
}

func (s *Gorm) Touch(ctx context.Context, id uint, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&model.ShortLink{}).Where("id = ?", id).Updates(map[string]interface{}{
		"access_count":     gorm.Expr("access_count + 1"),
		"last_accessed_at": gorm.Expr("CASE WHEN last_accessed_at IS NULL OR last_accessed_at < ? THEN ? ELSE last_accessed_at END", at.UTC(), at.UTC()),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func (s *Gorm) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	db := s.db.WithContext(ctx).Model(&model.ShortLink{})
	if err := db.Count(&t.TotalLinks).Error; err != nil {
		return t, err
	}
	if err := s.db.WithContext(ctx).Model(&model.ShortLink{}).Select("COALESCE(SUM(access_count), 0)").Scan(&t.TotalClicks).Error; err != nil {
		return t, err
	}
	if err := s.db.WithContext(ctx).Model(&model.ShortLink{}).Where("is_active = ?", true).Count(&t.ActiveLinks).Error; err != nil {
		return t, err
	}
	return t, nil
}

func (s *Gorm) Append(ctx context.Context, event *model.AccessEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *Gorm) EventsForLink(ctx context.Context, linkID uint, r TimeRange) ([]model.AccessEvent, error) {
	events := make([]model.AccessEvent, 0)
	query := s.db.WithContext(ctx).Where("link_id = ?", linkID)
	// 事件按 UTC 写入，sqlite 以文本比较时间，边界也统一成 UTC
	if !r.From.IsZero() {
		query = query.Where("accessed_at >= ?", r.From.UTC())
	}
	if !r.To.IsZero() {
		query = query.Where("accessed_at <= ?", r.To.UTC())
	}
	if err := query.Order("accessed_at DESC").Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrLinkNotFound
	}
	return err
}

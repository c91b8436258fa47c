package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"

	"go.uber.org/zap"
)

// 随机路径冲突时的最大尝试次数
const maxPathAttempts = 5

// PathSource 提供候选短路径
type PathSource interface {
	Next(ctx context.Context) (string, error)
}

// CreateLinkInput 创建短链接的输入
type CreateLinkInput struct {
	Title          string `json:"title" validate:"required,max=200"`
	DestinationURL string `json:"destination_url" validate:"required,httpurl"`
	ShortPath      string `json:"short_path" validate:"omitempty,shortpath"`
}

// ResolvedLink 重定向所需的链接信息
type ResolvedLink = store.CachedLink

// LinkService 短链接的增删改查
type LinkService struct {
	links    store.LinkStore
	cache    *store.Cache
	paths    PathSource
	generate func(length int) (string, error)
	logger   *zap.SugaredLogger
}

// NewLinkService 创建服务，cache 可以为 nil
func NewLinkService(links store.LinkStore, cache *store.Cache, paths PathSource, logger *zap.SugaredLogger) *LinkService {
	return &LinkService{
		links: links,
		cache: cache,
		paths: paths,
		generate: func(length int) (string, error) {
			return shortcode.Generate(length, shortcode.Alphanumeric)
		},
		logger: logger.Named("link_service"),
	}
}

// Create 创建短链接；未指定短路径时随机生成，遇到冲突会重试
func (s *LinkService) Create(ctx context.Context, in CreateLinkInput) (*model.ShortLink, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.DestinationURL = strings.TrimSpace(in.DestinationURL)
	in.ShortPath = NormalizePath(in.ShortPath)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	link := &model.ShortLink{
		Title:          in.Title,
		DestinationURL: in.DestinationURL,
		ShortPath:      in.ShortPath,
		IsActive:       true,
	}
	if link.ShortPath != "" {
		if err := s.links.Create(ctx, link); err != nil {
			return nil, err
		}
		s.logger.Infow("短链接已创建", "id", link.ID, "path", link.ShortPath)
		return link, nil
	}

	for attempt := 1; attempt <= maxPathAttempts; attempt++ {
		path, err := s.paths.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ValidPath(path) {
			s.logger.Warnw("随机短路径不可用，重新生成", "path", path, "attempt", attempt)
			continue
		}
		link.ShortPath = path
		err = s.links.Create(ctx, link)
		if err == nil {
			s.logger.Infow("短链接已创建", "id", link.ID, "path", link.ShortPath, "attempt", attempt)
			return link, nil
		}
		if !errors.Is(err, store.ErrPathTaken) {
			return nil, err
		}
		s.logger.Warnw("随机短路径冲突，重新生成", "path", path, "attempt", attempt)
	}
	return nil, ErrPathExhausted
}

// RandomPath 为创建页面生成一个可用且当前未被占用的随机路径
func (s *LinkService) RandomPath(ctx context.Context, length int) (string, error) {
	if length > maxPathLength {
		return "", &ValidationError{Field: "length", Message: fmt.Sprintf("must be at most %d", maxPathLength)}
	}
	for attempt := 0; attempt < maxPathAttempts; attempt++ {
		path, err := s.generate(length)
		if err != nil {
			return "", err
		}
		if !ValidPath(path) {
			continue
		}
		exists, err := s.links.PathExists(ctx, path)
		if err != nil {
			return "", err
		}
		if !exists {
			return path, nil
		}
	}
	return "", ErrPathExhausted
}

// Get 按 ID 获取链接
func (s *LinkService) Get(ctx context.Context, id uint) (*model.ShortLink, error) {
	return s.links.ByID(ctx, id)
}

// List 仪表盘列表，支持按标题、路径、目标地址搜索
func (s *LinkService) List(ctx context.Context, search string) ([]model.ShortLink, error) {
	return s.links.List(ctx, store.LinkQuery{Search: search})
}

// Resolve 查找短路径对应的有效链接，先查缓存
func (s *LinkService) Resolve(ctx context.Context, path string) (*ResolvedLink, error) {
	if cached, ok := s.cache.Get(ctx, path); ok {
		return &cached, nil
	}

	link, err := s.links.ByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if !link.IsActive {
		return nil, ErrLinkNotFound
	}

	resolved := ResolvedLink{ID: link.ID, DestinationURL: link.DestinationURL, CreatedAt: link.CreatedAt}
	if err := s.cache.Set(ctx, path, resolved); err != nil {
		s.logger.Warnf("写入缓存失败: %v", err)
	}
	return &resolved, nil
}

// Toggle 切换启用状态，返回新状态
func (s *LinkService) Toggle(ctx context.Context, id uint) (bool, error) {
	link, err := s.links.ByID(ctx, id)
	if err != nil {
		return false, err
	}
	active := !link.IsActive
	if err := s.links.SetActive(ctx, id, active); err != nil {
		return false, err
	}
	s.invalidate(ctx, link.ShortPath)
	return active, nil
}

// Delete 删除链接，cascade 为 true 时同时删除访问记录
func (s *LinkService) Delete(ctx context.Context, id uint, cascade bool) error {
	link, err := s.links.ByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.links.Delete(ctx, id, cascade); err != nil {
		return err
	}
	s.invalidate(ctx, link.ShortPath)
	s.logger.Infow("短链接已删除", "id", id, "cascade", cascade)
	return nil
}

// Stats 全局汇总
func (s *LinkService) Stats(ctx context.Context) (store.Totals, error) {
	return s.links.Totals(ctx)
}

func (s *LinkService) invalidate(ctx context.Context, path string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx, path); err != nil {
		s.logger.Warnf("清除缓存失败: %v", err)
	}
}

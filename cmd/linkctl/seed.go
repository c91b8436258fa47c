package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"shorturl-analytics/internal/model"
	"shorturl-analytics/internal/store"
	"shorturl-analytics/internal/worker"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 演示用链接
var demoLinks = []model.ShortLink{
	{Title: "Official Website", ShortPath: "website", DestinationURL: "https://example.com/our-official-website-with-all-the-information-about-our-products-and-services"},
	{Title: "Black Friday Campaign", ShortPath: "black-friday", DestinationURL: "https://example.com/promotions/black-friday-2023?utm_source=email&utm_medium=campaign&utm_campaign=bf2023"},
	{Title: "Product Documentation", ShortPath: "docs", DestinationURL: "https://docs.example.com/product/v2/getting-started"},
	{Title: "Customer Support", ShortPath: "help", DestinationURL: "https://support.example.com/contact?department=general"},
	{Title: "Partner Program", ShortPath: "partners", DestinationURL: "https://example.com/business/partnership-opportunities"},
}

var (
	demoReferrers = []string{"", "", "https://google.com", "https://twitter.com", "https://facebook.com", "https://www.linkedin.com/feed"}
	demoCampaigns = []string{"", "", "bf2023", "newsletter", "launch"}
	demoSources   = []string{"email", "social", "ads"}
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "写入演示链接和随机访问记录",
	Long: `创建一组演示短链接（已存在则跳过），并为每个链接生成随机访问记录。

示例:
  linkctl seed --events 200 --days 30 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, _ := cmd.Flags().GetInt("events")
		days, _ := cmd.Flags().GetInt("days")
		seed, _ := cmd.Flags().GetUint64("seed")
		if events < 0 || days <= 0 {
			return errors.New("--events 不能为负数，--days 必须为正数")
		}

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		s := store.NewGorm(db)
		n, err := seedDemo(cmd.Context(), s, gofakeit.New(seed), events, days, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "已写入 %d 条访问记录\n", n)
		return nil
	},
}

func init() {
	seedCmd.Flags().Int("events", 100, "每个链接生成的访问记录数")
	seedCmd.Flags().Int("days", 30, "访问时间分布在最近多少天内")
	seedCmd.Flags().Uint64("seed", 0, "随机种子，0 表示每次不同")
}

// seedStore 写入演示数据需要的存储能力
type seedStore interface {
	store.LinkStore
	store.EventStore
}

// seedDemo 创建演示链接并为每个链接生成 perLink 条访问
func seedDemo(ctx context.Context, s seedStore, f *gofakeit.Faker, perLink, days int, now time.Time) (int, error) {
	created := now.AddDate(0, 0, -days)
	total := 0
	for _, demo := range demoLinks {
		link, err := s.ByPath(ctx, demo.ShortPath)
		if errors.Is(err, store.ErrLinkNotFound) {
			l := demo
			l.IsActive = true
			l.CreatedAt = created
			if err := s.Create(ctx, &l); err != nil {
				return total, fmt.Errorf("创建链接 %s 失败: %w", demo.ShortPath, err)
			}
			link = &l
			zap.S().Infow("已创建演示链接", "path", l.ShortPath, "id", l.ID)
		} else if err != nil {
			return total, err
		}

		for _, v := range fakeVisits(f, link, perLink, days, now) {
			event := worker.NewEvent(v)
			if err := s.Append(ctx, &event); err != nil {
				return total, err
			}
			if err := s.Touch(ctx, link.ID, event.Timestamp); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

// fakeVisits 生成 n 条分布在最近 days 天内的随机访问
func fakeVisits(f *gofakeit.Faker, link *model.ShortLink, n, days int, now time.Time) []worker.Visit {
	visits := make([]worker.Visit, 0, n)
	start := now.AddDate(0, 0, -(days - 1))
	// 会话数少于访问数，模拟回访
	sessions := make([]string, n/3+1)
	for i := range sessions {
		sessions[i] = f.UUID()
	}

	for i := 0; i < n; i++ {
		lat, lon := f.Latitude(), f.Longitude()
		query := url.Values{}
		if campaign := f.RandomString(demoCampaigns); campaign != "" {
			query.Set("utm_campaign", campaign)
			query.Set("utm_source", f.RandomString(demoSources))
			query.Set("utm_medium", "referral")
		}
		visits = append(visits, worker.Visit{
			LinkID:        link.ID,
			LinkCreatedAt: link.CreatedAt,
			At:            f.DateRange(start, now),
			IPAddress:     f.IPv4Address(),
			UserAgent:     f.UserAgent(),
			Referrer:      f.RandomString(demoReferrers),
			SessionID:     sessions[f.IntRange(0, len(sessions)-1)],
			Query:         query,
			City:          f.City(),
			State:         f.State(),
			Country:       f.Country(),
			PostalCode:    f.Zip(),
			Latitude:      &lat,
			Longitude:     &lon,
		})
	}
	return visits
}

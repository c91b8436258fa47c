package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"shorturl-analytics/internal/analytics"
	"shorturl-analytics/internal/presenter"
	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "显示短链接的访问统计",
	Long: `显示指定短路径在统计周期内的访问量、浏览器、设备和来源分布。

示例:
  linkctl stats --path docs --period 7d`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		period, _ := cmd.Flags().GetString("period")

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		s := store.NewGorm(db)
		link, err := s.ByPath(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("查找短路径 %s 失败: %w", path, err)
		}

		svc := service.NewAnalyticsService(s, s, service.AnalyticsOptions{})
		ov, err := svc.Overview(cmd.Context(), link.ID, service.OverviewQuery{Period: period})
		if err != nil {
			return err
		}
		printOverview(cmd.OutOrStdout(), ov)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("path", "p", "", "短路径")
	statsCmd.Flags().String("period", string(analytics.DefaultPeriod), "统计周期：7d、30d 或 90d")
	_ = statsCmd.MarkFlagRequired("path")
}

func printOverview(out io.Writer, ov *service.Overview) {
	fmt.Fprintf(out, "%s (/%s)\n", ov.Link.Title, ov.Link.ShortPath)
	fmt.Fprintf(out, "目标地址: %s\n", ov.Link.DestinationURL)
	fmt.Fprintf(out, "创建时间: %s\n", ov.Link.CreatedAt.Format(time.DateTime))
	fmt.Fprintf(out, "总访问量: %d  日均: %d\n", ov.TotalClicks, ov.AverageDailyClicks)
	fmt.Fprintf(out, "%s: %d 次访问, %d 位独立访客\n\n", ov.PeriodLabel, ov.Metrics.TotalCount, ov.Metrics.UniqueVisitors)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, section := range []struct {
		title  string
		shares []analytics.Share
	}{
		{"浏览器", ov.Metrics.Browsers},
		{"设备", ov.Metrics.Devices},
		{"来源", ov.Metrics.Referrers},
		{"国家", ov.Metrics.Countries},
	} {
		fmt.Fprintf(tw, "%s\t\t\n", section.title)
		for _, p := range presenter.ShareChart(section.shares) {
			fmt.Fprintf(tw, "  %s\t%d\t%d%%\n", p.Name, p.Value, p.Percent)
		}
	}
	_ = tw.Flush()
}

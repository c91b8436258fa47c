package main

import (
	"fmt"

	"shorturl-analytics/internal/service"
	"shorturl-analytics/internal/shortcode"
	"shorturl-analytics/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "生成一个未被占用的随机短路径",
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")

		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		s := store.NewGorm(db)
		svc := service.NewLinkService(s, nil, shortcode.NewPool(s, shortcode.PoolOptions{Length: length}, zap.S()), zap.S())
		path, err := svc.RandomPath(cmd.Context(), length)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	pathCmd.Flags().IntP("length", "l", shortcode.DefaultLength, "路径长度")
}

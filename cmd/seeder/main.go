package main

import (
	"fmt"
	"os"

	"Vista_Video/internal/config"

	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var opts seedOptions

	rootCmd := &cobra.Command{
		Use:   "seeder",
		Short: "填充测试数据：用户、视频、随机投票",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Read()
			if err != nil {
				return err
			}
			// 注意：这里的DSN和server使用同一份配置
			db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
				Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
				TranslateError: true,
			})
			if err != nil {
				return fmt.Errorf("无法连接到数据库: %w", err)
			}
			fmt.Println("✅ 数据库连接成功!")

			report, err := seed(db, opts)
			if err != nil {
				return err
			}
			fmt.Printf("✅ 用户 %d 个，视频 %d 个，投票 %d 条，已重算 %d 个视频的赞踩数\n",
				report.Users, report.Videos, report.Votes, report.Recounted)
			fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
			return nil
		},
	}
	rootCmd.Flags().IntVar(&opts.Users, "users", 100, "创建的用户数")
	rootCmd.Flags().IntVar(&opts.Videos, "videos", 500, "创建的视频数")
	rootCmd.Flags().IntVar(&opts.Votes, "votes", 1000, "尝试创建的随机投票数")
	rootCmd.Flags().BoolVar(&opts.Reset, "reset", false, "先删除所有表再重建（会删除所有数据！）")
	rootCmd.Flags().StringVar(&opts.Password, "password", "password", "所有用户的默认密码")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

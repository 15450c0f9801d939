package logger

import (
	"io"
	"log"
	"os"

	"github.com/sirupsen/logrus"
)

// Log 是一个全局的、配置好的 logrus 实例
// 在InitLogger之前就给一个能用的默认值，测试里不初始化也不会空指针
var Log = logrus.New()

// InitLogger 初始化全局的Logger实例：JSON格式，同时输出到控制台和文件，file为空则只输出到控制台
func InitLogger(level, file string) {
	Log = logrus.New()

	// 日志是结构化的，便于后续使用ELK、Loki等工具进行分析
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var out io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("无法打开日志文件: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	Log.SetOutput(out)

	// 解析失败就退回Info，开发时可以是debug，生产环境info
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

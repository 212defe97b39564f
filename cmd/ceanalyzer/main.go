package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ceanalyzer/internal/api"
	"ceanalyzer/internal/calculator"
	"ceanalyzer/internal/config"
	"ceanalyzer/internal/exporter"
	"ceanalyzer/internal/model"
	"ceanalyzer/internal/server"
	"ceanalyzer/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	serve   = flag.Bool("serve", false, "启动报告服务器（默认为一次性批处理导出）")
	outPath = flag.String("out", "", "导出文件路径 (覆盖默认 data/exports 路径)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  成本效果分析工具 (Tirzepatide vs Semaglutide)")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	if *serve {
		runServer(cfg)
		return
	}

	if err := runBatch(cfg, *outPath); err != nil {
		log.Fatalf("分析运行失败: %v", err)
	}
}

// runBatch 一次性批处理：计算基准结果与敏感性分析，打印并导出 xlsx
func runBatch(cfg *config.AppConfig, outPath string) error {
	params, err := cfg.BuildParameters()
	if err != nil {
		return err
	}

	calc := calculator.NewCalculator(cfg.ModelUtilities(), cfg.Bounds())
	bundle, err := calc.Aggregate(params)
	if err != nil {
		return err
	}

	printBundle(bundle, cfg)

	if outPath == "" {
		if _, err := config.EnsureDataDir(cfg); err != nil {
			return fmt.Errorf("创建数据目录失败: %w", err)
		}
		outPath = config.GetDataPath(cfg, "exports", api.ExportFilename)
	}

	exp := exporter.NewExporter(bundle)
	if err := exp.ExportToFile(outPath, exporter.ExportOptions{}); err != nil {
		return err
	}

	fmt.Printf("\n导出完成: %s\n", outPath)
	return nil
}

// printBundle 将三张结果表输出到终端
func printBundle(bundle *model.ResultBundle, cfg *config.AppConfig) {
	fmt.Println("\n--- 成本与 QALY 汇总 ---")
	fmt.Printf("%-12s %16s %12s\n", "治疗组", "期望成本（元）", "期望 QALY")
	for _, row := range bundle.Summary {
		fmt.Printf("%-12s %16.2f %12.4f\n", row.Label, row.Cost, row.QALY)
	}

	fmt.Println("\n--- 基准 ICER ---")
	fmt.Printf("ICER（元/QALY）: %s\n", formatICER(bundle.BaseICER))

	lower := cfg.Sensitivity.LowerMultiplier
	upper := cfg.Sensitivity.UpperMultiplier
	fmt.Printf("\n--- 单因素敏感性分析（×%.2f / ×%.2f）---\n", lower, upper)
	fmt.Printf("%-24s %14s %14s %12s\n", "参数", "ICER 下界", "ICER 上界", "极差")
	for _, row := range bundle.Sensitivity {
		if !row.Defined {
			fmt.Printf("%-24s %14s %14s %12s\n", row.Label, "N/A", "N/A", "N/A")
			continue
		}
		fmt.Printf("%-24s %14.2f %14.2f %12.2f\n", row.Label, row.Low, row.High, row.Range)
	}
}

func formatICER(icer model.ICER) string {
	if !icer.Defined {
		return "N/A（QALY 增量为零）"
	}
	return fmt.Sprintf("%.2f", icer.Value)
}

// runServer 启动报告服务器并等待退出信号
func runServer(cfg *config.AppConfig) {
	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听端口 %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n服务已停止")
}

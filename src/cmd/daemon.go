package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasySwapTrade/base/logger/xzap"
	"github.com/ProjectsTask/EasySwapTrade/src/api/router"
	"github.com/ProjectsTask/EasySwapTrade/src/app"
	"github.com/ProjectsTask/EasySwapTrade/src/config"
	"github.com/ProjectsTask/EasySwapTrade/src/service/svc"
)

// DaemonCmd 启动交易服务：HTTP API 与后台结算循环
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run easy swap trade server.",
	Long:  "run easy swap trade server.",
	Run: func(cmd *cobra.Command, args []string) {
		wg := &sync.WaitGroup{}
		wg.Add(1)

		ctx, cancel := context.WithCancel(context.Background())

		// 服务启动或运行错误通知 chan
		onExit := make(chan error, 1)

		go func() {
			defer wg.Done()

			cfg, err := config.UnmarshalCmdConfig()
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to unmarshal config", zap.Error(err))
				onExit <- err
				return
			}

			serverCtx, err := svc.NewServiceContext(cfg)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create server context", zap.Error(err))
				onExit <- err
				return
			}

			xzap.WithContext(ctx).Info("trade server start", zap.Any("config", cfg))

			r := router.NewRouter(serverCtx)
			platform, err := app.NewPlatform(ctx, cfg, r, serverCtx)
			if err != nil {
				xzap.WithContext(ctx).Error("Failed to create platform", zap.Error(err))
				onExit <- err
				return
			}
			platform.Start()
		}()

		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			cancel()
			xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
		case err := <-onExit:
			cancel()
			xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
			wg.Wait()
		}
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}

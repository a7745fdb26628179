package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"ElectionSeed/internal/api"
	"ElectionSeed/internal/config"
	"ElectionSeed/internal/repository"
	"ElectionSeed/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动开票结果查询服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			override := func(cfg *config.Config) {
				if port > 0 {
					cfg.Server.Port = port
				}
			}
			return runServe(cmd.Context(), root, override)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "监听端口（覆盖配置）")
	return cmd
}

func runServe(ctx context.Context, root *rootOptions, override func(*config.Config)) error {
	a, err := bootstrap(root, true, override)
	if err != nil {
		return err
	}
	defer a.close()

	// 6. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(a.cfg.Server.Mode)
	r := gin.Default()

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)
	a.logger.Infof("Gin运行模式: %s", a.cfg.Server.Mode)

	// 7. 注册API路由
	runs := repository.NewImportRunRepository(a.db)
	resultService := service.NewResultService(repository.NewResultRepository(a.db), a.logger)
	api.RegisterRoutes(r,
		api.NewImportHandler(a.importService, runs, a.logger),
		api.NewResultHandler(resultService, a.logger),
	)

	// 8. 启动服务，收到退出信号后优雅关闭
	srv := &http.Server{Addr: fmt.Sprintf(":%d", a.cfg.Server.Port), Handler: r}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("查询服务启动，端口: %d", a.cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("服务启动失败: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务关闭失败: %w", err)
	}
	a.logger.Info("查询服务已关闭")
	return nil
}

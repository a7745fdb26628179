package main

import (
	"ElectionSeed/internal/config"
	"ElectionSeed/internal/database"
	"ElectionSeed/internal/logging"
	"ElectionSeed/internal/parser"
	"ElectionSeed/internal/repository"
	"ElectionSeed/internal/service"

	// 各格式解析器在 init 中注册
	_ "ElectionSeed/internal/parser/hireidaihyo"
	_ "ElectionSeed/internal/parser/shosenkyo"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app 各子命令共用的依赖
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	db     *gorm.DB

	importService *service.ImportService
}

// bootstrap 加载配置与日志；needDB 为 false 时不连接数据库（仅解析）。
// overrides 为命令行参数对配置的覆盖，覆盖后重新校验。
func bootstrap(opts *rootOptions, needDB bool, overrides ...func(*config.Config)) (*app, error) {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig(opts.configDir)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	for _, override := range overrides {
		override(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, withCode(exitUsage, err)
	}

	// 2. 初始化日志
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	logger.Info("配置文件加载成功")

	// 3. 初始化解析器实例
	registry := parser.NewRegistry(logger)

	a := &app{cfg: cfg, logger: logger}
	if !needDB {
		a.importService = service.NewImportService(cfg.Input, registry, nil, nil, logger)
		return a, nil
	}

	// 4. 连接数据库并迁移表结构
	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return nil, withCode(exitDB, err)
	}
	a.db = db

	// 5. 组装入库与导入服务
	seeder := service.NewSeedService(repository.NewSeedRepository(db), cfg.Blocks, logger)
	a.importService = service.NewImportService(cfg.Input, registry, seeder, repository.NewImportRunRepository(db), logger)
	return a, nil
}

func (a *app) close() {
	if a.db == nil {
		return
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

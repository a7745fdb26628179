package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"ElectionSeed/internal/config"
	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"
	"ElectionSeed/internal/parser"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// SourceFile 待解析的源文件
type SourceFile struct {
	Format model.Format `json:"format"`
	Path   string       `json:"path"`
}

// ImportSummary 一次导入的结果摘要
type ImportSummary struct {
	RunUUID  string         `json:"run_uuid"`
	Files    []SourceFile   `json:"files"`
	Counts   map[string]int `json:"counts"`
	Duration time.Duration  `json:"duration"`
}

// ImportService 发现源文件、并发解析、合并校验并入库，同一时刻只允许一个导入
type ImportService struct {
	input   config.InputConfig
	parsers *parser.Registry
	seeder  *SeedService
	runs    interfaces.ImportRunRepository
	logger  *logrus.Logger
	mu      sync.Mutex
}

func NewImportService(
	input config.InputConfig,
	parsers *parser.Registry,
	seeder *SeedService,
	runs interfaces.ImportRunRepository,
	logger *logrus.Logger,
) *ImportService {
	return &ImportService{
		input:   input,
		parsers: parsers,
		seeder:  seeder,
		runs:    runs,
		logger:  logger,
	}
}

// Discover 按格式列出目录下匹配的文件；同一格式内按路径排序，保证多次运行顺序一致
func (s *ImportService) Discover() ([]SourceFile, error) {
	dirs := map[model.Format]string{
		model.FormatShosenkyo:   s.input.ShosenkyoDir,
		model.FormatHireidaihyo: s.input.HireidaihyoDir,
	}
	var files []SourceFile
	for _, format := range model.Formats {
		matches, err := filepath.Glob(filepath.Join(dirs[format], s.input.Pattern))
		if err != nil {
			return nil, fmt.Errorf("匹配%s文件失败: %w", format, err)
		}
		sort.Strings(matches)
		for _, path := range matches {
			files = append(files, SourceFile{Format: format, Path: path})
		}
	}
	return files, nil
}

// ParseAll 并发解析全部文件，按文件顺序合并后校验自然键
func (s *ImportService) ParseAll(ctx context.Context, files []SourceFile) (*model.Dataset, error) {
	results := make([]*model.Dataset, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := s.parseFile(f)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := Merge(results...)
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *ImportService) workers() int {
	if s.input.Workers < 1 {
		return 1
	}
	return s.input.Workers
}

func (s *ImportService) parseFile(f SourceFile) (*model.Dataset, error) {
	p, err := s.parsers.GetParser(f.Format)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer file.Close()

	r, err := parser.NewDecodingReader(file, s.input.Encoding)
	if err != nil {
		return nil, err
	}
	ds, err := p.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析%s失败: %w", f.Path, err)
	}
	s.logger.WithFields(logrus.Fields{"format": f.Format, "file": f.Path}).Debug("文件解析完成")
	return ds, nil
}

// Load 解析全部源文件并返回合并后的数据集，不写库
func (s *ImportService) Load(ctx context.Context) (*model.Dataset, []SourceFile, error) {
	files, err := s.Discover()
	if err != nil {
		return nil, nil, err
	}
	s.logger.WithField("files", len(files)).Info("源文件发现完成")
	ds, err := s.ParseAll(ctx, files)
	if err != nil {
		return nil, files, err
	}
	return ds, files, nil
}

// Run 完整导入一次并在 import_runs 中留下记录；已有导入进行中时返回 ErrImportRunning
func (s *ImportService) Run(ctx context.Context) (*ImportSummary, error) {
	if !s.mu.TryLock() {
		return nil, model.ErrImportRunning
	}
	defer s.mu.Unlock()

	started := time.Now()
	run := &model.ImportRun{
		RunUUID:   uuid.New().String(),
		Status:    model.ImportStatusRunning,
		StartedAt: started,
	}
	log := s.logger.WithField("run_uuid", run.RunUUID)

	// 先落导入记录，发现文件阶段的失败同样可在 import_runs 中查到
	if err := s.runs.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("创建导入记录失败: %w", err)
	}
	log.Info("开始导入")

	files, counts, runErr := s.execute(ctx, run)
	if err := s.finish(ctx, run, counts, runErr); err != nil {
		log.WithError(err).Error("回写导入记录失败")
		if runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		log.WithError(runErr).Error("导入失败")
		return nil, runErr
	}

	summary := &ImportSummary{
		RunUUID:  run.RunUUID,
		Files:    files,
		Counts:   counts,
		Duration: time.Since(started),
	}
	log.WithField("duration", summary.Duration).Info("导入完成")
	return summary, nil
}

// execute 发现、解析并入库，文件清单写入 run.Files
func (s *ImportService) execute(ctx context.Context, run *model.ImportRun) ([]SourceFile, map[string]int, error) {
	files, err := s.Discover()
	if err != nil {
		return nil, nil, err
	}
	if run.Files, err = toJSON(files); err != nil {
		return files, nil, err
	}
	s.logger.WithFields(logrus.Fields{"run_uuid": run.RunUUID, "files": len(files)}).Info("源文件发现完成")

	ds, err := s.ParseAll(ctx, files)
	if err != nil {
		return files, nil, err
	}
	if err := s.seeder.Seed(ctx, ds); err != nil {
		return files, nil, err
	}
	return files, ds.Counts(), nil
}

// finish 回写导入结果；ctx 已取消时仍使用独立的 context 写入失败状态
func (s *ImportService) finish(ctx context.Context, run *model.ImportRun, counts map[string]int, runErr error) error {
	now := time.Now()
	run.FinishedAt = &now
	run.Status = model.ImportStatusSucceeded
	if runErr != nil {
		run.Status = model.ImportStatusFailed
		msg := runErr.Error()
		run.Error = &msg
	}
	if counts != nil {
		data, err := toJSON(counts)
		if err != nil {
			return err
		}
		run.Counts = data
	}
	if ctx.Err() != nil {
		ctx = context.WithoutCancel(ctx)
	}
	return s.runs.Finish(ctx, run)
}

func toJSON(v interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("序列化导入记录失败: %w", err)
	}
	return datatypes.JSON(data), nil
}

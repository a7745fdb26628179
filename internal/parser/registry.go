package parser

import (
	"fmt"
	"sort"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表 ==========
var factoryRegistry = make(map[model.Format]interfaces.Factory)

// Register 供各格式解析器的 init 函数调用，注册工厂函数
func Register(format model.Format, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("格式%s的工厂函数不能为nil", format))
	}
	if _, exists := factoryRegistry[format]; exists {
		logrus.Warnf("格式%s的解析器已注册，将覆盖原有实现", format)
	}
	factoryRegistry[format] = factory
}

// GetFactory 获取指定格式的工厂函数
func GetFactory(format model.Format) (interfaces.Factory, bool) {
	factory, ok := factoryRegistry[format]
	return factory, ok
}

// ListFactories 列出所有已注册的格式（按名称排序）
func ListFactories() []model.Format {
	formats := make([]model.Format, 0, len(factoryRegistry))
	for f := range factoryRegistry {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Registry 已实例化的解析器集合
type Registry struct {
	logger  *logrus.Logger
	parsers map[model.Format]interfaces.FileParser
}

// NewRegistry 从工厂函数注册表为每种格式创建解析器实例
func NewRegistry(logger *logrus.Logger) *Registry {
	r := &Registry{
		logger:  logger,
		parsers: make(map[model.Format]interfaces.FileParser),
	}
	for _, format := range ListFactories() {
		factory, _ := GetFactory(format)
		p := factory(logger)
		if p == nil {
			logger.WithField("format", format).Error("工厂函数返回nil解析器实例")
			continue
		}
		if p.Format() != format {
			logger.WithFields(logrus.Fields{
				"registered_format": format,
				"parser_format":     p.Format(),
			}).Error("解析器格式与注册格式不匹配")
			continue
		}
		r.parsers[format] = p
	}
	logger.WithField("formats", len(r.parsers)).Debug("解析器实例初始化完成")
	return r
}

// GetParser 获取指定格式的解析器
func (r *Registry) GetParser(format model.Format) (interfaces.FileParser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownFormat, format)
	}
	return p, nil
}

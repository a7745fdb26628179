package interfaces

import (
	"io"

	"ElectionSeed/internal/model"

	"github.com/sirupsen/logrus"
)

// FileParser 所有源文件格式必须实现的解析接口。
// 每次 Parse 使用全新的解析上下文，不同文件之间不共享状态。
type FileParser interface {
	Format() model.Format                              // 文件格式
	Parse(r io.Reader) (*model.Dataset, error)         // 解析整个文件
	ParseLines(lines []string) (*model.Dataset, error) // 解析已拆分的文本行
}

// Factory 解析器工厂函数签名
type Factory func(logger *logrus.Logger) FileParser

package model

import "errors"

// Format 源文件格式枚举
type Format string

const (
	FormatShosenkyo   Format = "shosenkyo"   // 小选举区（开票区 × 候选人）
	FormatHireidaihyo Format = "hireidaihyo" // 比例代表（开票区 × 政党）
)

// 全部已知格式，顺序即导入顺序
var Formats = []Format{FormatShosenkyo, FormatHireidaihyo}

var (
	// ErrColumnMismatch 数据行的值个数与表头声明的开票区个数不一致
	ErrColumnMismatch = errors.New("column count mismatch")
	// ErrMalformedNumber 数值字段无法解析
	ErrMalformedNumber = errors.New("malformed number")
	// ErrLookupMiss 入库时按名称找不到上级实体
	ErrLookupMiss = errors.New("lookup miss")
	// ErrDuplicateKey 合并后的数据集出现重复的自然键
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownFormat 未注册的文件格式
	ErrUnknownFormat = errors.New("unknown format")
	// ErrImportRunning 已有导入任务在执行
	ErrImportRunning = errors.New("import already running")
)

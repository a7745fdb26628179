package model

import (
	"time"

	"gorm.io/datatypes"
)

// 导入任务状态
const (
	ImportStatusRunning   = "running"
	ImportStatusSucceeded = "succeeded"
	ImportStatusFailed    = "failed"
)

// ImportRun 对应 import_runs 表，记录每次导入的文件清单与各表行数。重置选举表时不清空。
type ImportRun struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement;comment:自增主键ID" json:"id"`
	RunUUID    string         `gorm:"column:run_uuid;type:varchar(64);uniqueIndex;not null;comment:任务唯一ID" json:"run_uuid"`
	Status     string         `gorm:"column:status;type:varchar(16);not null;default:running;comment:状态：running/succeeded/failed" json:"status"`
	Files      datatypes.JSON `gorm:"column:files;comment:参与导入的文件列表" json:"files"`
	Counts     datatypes.JSON `gorm:"column:counts;comment:各集合记录数" json:"counts"`
	Error      *string        `gorm:"column:error;type:text;comment:失败原因" json:"error"`
	StartedAt  time.Time      `gorm:"column:started_at;not null;comment:开始时间" json:"started_at"`
	FinishedAt *time.Time     `gorm:"column:finished_at;comment:结束时间" json:"finished_at"`
}

func (ImportRun) TableName() string { return "import_runs" }

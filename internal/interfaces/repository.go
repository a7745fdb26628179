package interfaces

import (
	"context"

	"ElectionSeed/internal/model"
)

// MunicipalityKey 开票区自然键：同名开票区可出现在不同选举区
type MunicipalityKey struct {
	Name       string
	DistrictID uint64
}

// CandidateKey 候选人自然键
type CandidateKey struct {
	Name       string
	DistrictID uint64
}

// SeedRepository 选举表的入库操作
type SeedRepository interface {
	// Transaction 在单个事务内执行 fn，fn 返回错误时整体回滚（包括 Reset）
	Transaction(ctx context.Context, fn func(tx SeedTx) error) error
}

// SeedTx 事务内的重建、批量写入与名称→ID 回查。
// 每个 *IDs 方法在插入后整表回查一次，构建完整的映射。
type SeedTx interface {
	// Reset 删除并重建全部选举表
	Reset() error
	CreateBlocks(rows []*model.Block) error
	BlockIDs() (map[string]uint64, error)
	CreatePrefectures(rows []*model.Prefecture) error
	PrefectureIDs() (map[string]uint64, error)
	CreateDistricts(rows []*model.District) error
	DistrictIDs() (map[string]uint64, error)
	CreateMunicipalities(rows []*model.Municipality) error
	MunicipalityIDs() (map[MunicipalityKey]uint64, error)
	CreateParties(rows []*model.Party) error
	PartyIDs() (map[string]uint64, error)
	CreateCandidates(rows []*model.Candidate) error
	CandidateIDs() (map[CandidateKey]uint64, error)
	CreateCandidateVotes(rows []*model.CandidateVote) error
	CreatePartyVotes(rows []*model.PartyVote) error
}

// ImportRunRepository 导入记录
type ImportRunRepository interface {
	Create(ctx context.Context, run *model.ImportRun) error
	Finish(ctx context.Context, run *model.ImportRun) error
	ListRecent(ctx context.Context, limit int) ([]*model.ImportRun, error)
}

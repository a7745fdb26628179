package repository

import (
	"context"
	"fmt"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"

	"gorm.io/gorm"
)

// 单条 INSERT 的最大行数，避免超过 SQLite 的绑定变量上限
const defaultBatchSize = 500

type seedRepository struct {
	db        *gorm.DB
	batchSize int
}

func NewSeedRepository(db *gorm.DB) interfaces.SeedRepository {
	return &seedRepository{db: db, batchSize: defaultBatchSize}
}

func (r *seedRepository) Transaction(ctx context.Context, fn func(tx interfaces.SeedTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&seedTx{db: tx, batchSize: r.batchSize})
	})
}

type seedTx struct {
	db        *gorm.DB
	batchSize int
}

// Reset 逆依赖顺序删除选举表后重新迁移，import_runs 不受影响。
// 在事务内执行，后续写入失败时旧数据随之恢复。
func (t *seedTx) Reset() error {
	tables := model.ElectionTables()
	for i := len(tables) - 1; i >= 0; i-- {
		if err := t.db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}
	if err := t.db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("重建表失败: %w", err)
	}
	return nil
}

func createInBatches[T any](db *gorm.DB, rows []*T, size int) error {
	if len(rows) == 0 {
		return nil
	}
	return db.CreateInBatches(rows, size).Error
}

func (t *seedTx) CreateBlocks(rows []*model.Block) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) BlockIDs() (map[string]uint64, error) {
	var rows []model.Block
	if err := t.db.Select("block_id", "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.BlockID
	}
	return ids, nil
}

func (t *seedTx) CreatePrefectures(rows []*model.Prefecture) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) PrefectureIDs() (map[string]uint64, error) {
	var rows []model.Prefecture
	if err := t.db.Select("prefecture_id", "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.PrefectureID
	}
	return ids, nil
}

func (t *seedTx) CreateDistricts(rows []*model.District) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) DistrictIDs() (map[string]uint64, error) {
	var rows []model.District
	if err := t.db.Select("district_id", "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.DistrictID
	}
	return ids, nil
}

func (t *seedTx) CreateMunicipalities(rows []*model.Municipality) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) MunicipalityIDs() (map[interfaces.MunicipalityKey]uint64, error) {
	var rows []model.Municipality
	if err := t.db.Select("municipality_id", "name", "district_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[interfaces.MunicipalityKey]uint64, len(rows))
	for _, row := range rows {
		ids[interfaces.MunicipalityKey{Name: row.Name, DistrictID: row.DistrictID}] = row.MunicipalityID
	}
	return ids, nil
}

func (t *seedTx) CreateParties(rows []*model.Party) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) PartyIDs() (map[string]uint64, error) {
	var rows []model.Party
	if err := t.db.Select("party_id", "name").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]uint64, len(rows))
	for _, row := range rows {
		ids[row.Name] = row.PartyID
	}
	return ids, nil
}

func (t *seedTx) CreateCandidates(rows []*model.Candidate) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) CandidateIDs() (map[interfaces.CandidateKey]uint64, error) {
	var rows []model.Candidate
	if err := t.db.Select("candidate_id", "name", "district_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	ids := make(map[interfaces.CandidateKey]uint64, len(rows))
	for _, row := range rows {
		ids[interfaces.CandidateKey{Name: row.Name, DistrictID: row.DistrictID}] = row.CandidateID
	}
	return ids, nil
}

func (t *seedTx) CreateCandidateVotes(rows []*model.CandidateVote) error {
	return createInBatches(t.db, rows, t.batchSize)
}

func (t *seedTx) CreatePartyVotes(rows []*model.PartyVote) error {
	return createInBatches(t.db, rows, t.batchSize)
}

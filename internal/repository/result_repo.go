package repository

import (
	"context"

	"ElectionSeed/internal/model"

	"gorm.io/gorm"
)

// DistrictView 选举区列表项
type DistrictView struct {
	Name       string `json:"name"`
	Prefecture string `json:"prefecture"`
}

// CandidateResult 候选人在选举区内的得票合计
type CandidateResult struct {
	Name    string `json:"name"`
	Party   string `json:"party"`
	Age     int    `json:"age"`
	Former  bool   `json:"former"`
	Overlap bool   `json:"overlap"`
	Votes   int64  `json:"votes"`
}

// PartyResult 政党在区块内的比例得票合计
type PartyResult struct {
	Party string `json:"party"`
	Votes int64  `json:"votes"`
}

// ResultRepository 入库后的结果查询
type ResultRepository interface {
	// ListDistricts 列出选举区，prefecture 为空时不过滤
	ListDistricts(ctx context.Context, prefecture string) ([]*DistrictView, error)
	// GetDistrictByName 不存在时返回 gorm.ErrRecordNotFound
	GetDistrictByName(ctx context.Context, name string) (*model.District, error)
	// ListCandidateResults 选举区内候选人按得票降序
	ListCandidateResults(ctx context.Context, districtID uint64) ([]*CandidateResult, error)
	// GetBlockByName 不存在时返回 gorm.ErrRecordNotFound
	GetBlockByName(ctx context.Context, name string) (*model.Block, error)
	// ListPartyResults 区块内政党按得票降序
	ListPartyResults(ctx context.Context, blockID uint64) ([]*PartyResult, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) ListDistricts(ctx context.Context, prefecture string) ([]*DistrictView, error) {
	db := r.db.WithContext(ctx).
		Table(`"Districts" AS d`).
		Select("d.name AS name, pr.name AS prefecture").
		Joins(`JOIN "Prefectures" AS pr ON pr.prefecture_id = d.prefecture_id`)
	if prefecture != "" {
		db = db.Where("pr.name = ?", prefecture)
	}
	var list []*DistrictView
	if err := db.Order("d.district_id ASC").Scan(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *resultRepository) GetDistrictByName(ctx context.Context, name string) (*model.District, error) {
	var d model.District
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *resultRepository) ListCandidateResults(ctx context.Context, districtID uint64) ([]*CandidateResult, error) {
	var list []*CandidateResult
	err := r.db.WithContext(ctx).
		Table(`"Candidates" AS c`).
		Select("c.name AS name, p.name AS party, c.age AS age, c.former_exp AS former, c.overlap AS overlap, COALESCE(SUM(v.votes), 0) AS votes").
		Joins(`JOIN "Parties" AS p ON p.party_id = c.party_id`).
		Joins(`LEFT JOIN "Votes_Shosenkyo" AS v ON v.candidate_id = c.candidate_id`).
		Where("c.district_id = ?", districtID).
		Group("c.candidate_id, c.name, p.name, c.age, c.former_exp, c.overlap").
		Order("votes DESC, c.candidate_id ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *resultRepository) GetBlockByName(ctx context.Context, name string) (*model.Block, error) {
	var b model.Block
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *resultRepository) ListPartyResults(ctx context.Context, blockID uint64) ([]*PartyResult, error) {
	var list []*PartyResult
	err := r.db.WithContext(ctx).
		Table(`"Votes_Hireidaihyo" AS v`).
		Select("p.name AS party, SUM(v.votes) AS votes").
		Joins(`JOIN "Parties" AS p ON p.party_id = v.party_id`).
		Joins(`JOIN "Municipalities" AS m ON m.municipality_id = v.municipality_id`).
		Joins(`JOIN "Districts" AS d ON d.district_id = m.district_id`).
		Joins(`JOIN "Prefectures" AS pr ON pr.prefecture_id = d.prefecture_id`).
		Where("pr.block_id = ?", blockID).
		Group("p.party_id, p.name").
		Order("votes DESC, p.party_id ASC").
		Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

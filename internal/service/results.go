package service

import (
	"context"

	"ElectionSeed/internal/repository"

	"github.com/sirupsen/logrus"
)

// ResultService 面向查询接口的开票结果服务
type ResultService struct {
	repo   repository.ResultRepository
	logger *logrus.Logger
}

// NewResultService 创建 ResultService
func NewResultService(repo repository.ResultRepository, logger *logrus.Logger) *ResultService {
	return &ResultService{repo: repo, logger: logger}
}

// DistrictResult 选举区开票结果
type DistrictResult struct {
	District   string                        `json:"district"`
	TotalVotes int64                         `json:"total_votes"`
	Candidates []*repository.CandidateResult `json:"candidates"`
}

// BlockResult 比例区块开票结果，Seats 未知时为空
type BlockResult struct {
	Block      string                    `json:"block"`
	Seats      *int                      `json:"seats"`
	TotalVotes int64                     `json:"total_votes"`
	Parties    []*repository.PartyResult `json:"parties"`
}

func (s *ResultService) ListDistricts(ctx context.Context, prefecture string) ([]*repository.DistrictView, error) {
	return s.repo.ListDistricts(ctx, prefecture)
}

// GetDistrictResult 选举区不存在时返回 gorm.ErrRecordNotFound
func (s *ResultService) GetDistrictResult(ctx context.Context, name string) (*DistrictResult, error) {
	d, err := s.repo.GetDistrictByName(ctx, name)
	if err != nil {
		return nil, err
	}
	candidates, err := s.repo.ListCandidateResults(ctx, d.DistrictID)
	if err != nil {
		return nil, err
	}
	res := &DistrictResult{District: d.Name, Candidates: candidates}
	for _, c := range candidates {
		res.TotalVotes += c.Votes
	}
	return res, nil
}

// GetBlockResult 区块不存在时返回 gorm.ErrRecordNotFound
func (s *ResultService) GetBlockResult(ctx context.Context, name string) (*BlockResult, error) {
	b, err := s.repo.GetBlockByName(ctx, name)
	if err != nil {
		return nil, err
	}
	parties, err := s.repo.ListPartyResults(ctx, b.BlockID)
	if err != nil {
		return nil, err
	}
	res := &BlockResult{Block: b.Name, Seats: b.NumElect, Parties: parties}
	for _, p := range parties {
		res.TotalVotes += p.Votes
	}
	return res, nil
}

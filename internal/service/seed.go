package service

import (
	"context"
	"fmt"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultSeats 比例代表各区块定数
var DefaultSeats = map[string]int{
	"北海道":  8,
	"東北":   13,
	"北関東":  19,
	"南関東":  22,
	"東京":   17,
	"北陸信越": 11,
	"東海":   21,
	"近畿":   28,
	"中国":   11,
	"四国":   6,
	"九州":   20,
}

// 候选人所属政党可能不在比例名簿中，这两个政党始终入库
const (
	PartyIndependent = "無"
	PartyMinor       = "諸派"
)

// SeedService 将合并后的数据集按依赖顺序写入关系表
type SeedService struct {
	repo   interfaces.SeedRepository
	seats  map[string]int
	logger *logrus.Logger
}

// NewSeedService overrides 覆盖或补充默认的区块定数
func NewSeedService(repo interfaces.SeedRepository, overrides map[string]int, logger *logrus.Logger) *SeedService {
	seats := make(map[string]int, len(DefaultSeats)+len(overrides))
	for k, v := range DefaultSeats {
		seats[k] = v
	}
	for k, v := range overrides {
		seats[k] = v
	}
	return &SeedService{repo: repo, seats: seats, logger: logger}
}

// Seed 在单个事务内重建选举表并写入全部数据，任何名称回查失败都会整体回滚，上一次的数据保持不变
func (s *SeedService) Seed(ctx context.Context, ds *model.Dataset) error {
	return s.repo.Transaction(ctx, func(tx interfaces.SeedTx) error {
		if err := tx.Reset(); err != nil {
			return fmt.Errorf("重置选举表失败: %w", err)
		}
		l := &loader{tx: tx, ds: ds, seats: s.seats}
		steps := []struct {
			table string
			run   func() (int, error)
		}{
			{"Blocks", l.blocks},
			{"Prefectures", l.prefectures},
			{"Districts", l.districts},
			{"Municipalities", l.municipalities},
			{"Parties", l.parties},
			{"Candidates", l.candidates},
			{"Votes_Shosenkyo", l.candidateVotes},
			{"Votes_Hireidaihyo", l.partyVotes},
		}
		for _, step := range steps {
			n, err := step.run()
			if err != nil {
				return fmt.Errorf("写入%s失败: %w", step.table, err)
			}
			s.logger.WithFields(logrus.Fields{"table": step.table, "rows": n}).Info("写入完成")
		}
		return nil
	})
}

// loader 一次入库过程中的名称→ID 映射，每个上级实体插入后回查一次
type loader struct {
	tx    interfaces.SeedTx
	ds    *model.Dataset
	seats map[string]int

	blockIDs        map[string]uint64
	prefectureIDs   map[string]uint64
	districtIDs     map[string]uint64
	municipalityIDs map[interfaces.MunicipalityKey]uint64
	partyIDs        map[string]uint64
	candidateIDs    map[interfaces.CandidateKey]uint64
}

func lookup[K comparable](ids map[K]uint64, entity string, key K) (uint64, error) {
	id, ok := ids[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s %v", model.ErrLookupMiss, entity, key)
	}
	return id, nil
}

func (l *loader) blocks() (int, error) {
	rows := make([]*model.Block, 0, len(l.ds.Blocks))
	for _, b := range l.ds.Blocks {
		row := &model.Block{Name: b.BlockName}
		if n, ok := l.seats[b.BlockName]; ok {
			row.NumElect = &n
		}
		rows = append(rows, row)
	}
	if err := l.tx.CreateBlocks(rows); err != nil {
		return 0, err
	}
	var err error
	l.blockIDs, err = l.tx.BlockIDs()
	return len(rows), err
}

func (l *loader) prefectures() (int, error) {
	rows := make([]*model.Prefecture, 0, len(l.ds.Prefectures))
	for _, p := range l.ds.Prefectures {
		blockID, err := lookup(l.blockIDs, "区块", p.BlockName)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.Prefecture{Name: p.PrefectureName, BlockID: blockID})
	}
	if err := l.tx.CreatePrefectures(rows); err != nil {
		return 0, err
	}
	var err error
	l.prefectureIDs, err = l.tx.PrefectureIDs()
	return len(rows), err
}

func (l *loader) districts() (int, error) {
	rows := make([]*model.District, 0, len(l.ds.Districts))
	for _, d := range l.ds.Districts {
		prefectureID, err := lookup(l.prefectureIDs, "都道府県", d.PrefectureName)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.District{Name: d.DistrictName, PrefectureID: prefectureID})
	}
	if err := l.tx.CreateDistricts(rows); err != nil {
		return 0, err
	}
	var err error
	l.districtIDs, err = l.tx.DistrictIDs()
	return len(rows), err
}

func (l *loader) municipalities() (int, error) {
	rows := make([]*model.Municipality, 0, len(l.ds.Municipalities))
	for _, m := range l.ds.Municipalities {
		districtID, err := lookup(l.districtIDs, "选举区", m.DistrictName)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.Municipality{
			Name:          m.MunicipalityName,
			DistrictID:    districtID,
			NumVoters:     m.NumVoters,
			NumVotesCast:  m.NumVotesCast,
			NumValidVotes: m.NumValidVotes,
		})
	}
	if err := l.tx.CreateMunicipalities(rows); err != nil {
		return 0, err
	}
	var err error
	l.municipalityIDs, err = l.tx.MunicipalityIDs()
	return len(rows), err
}

func (l *loader) parties() (int, error) {
	rows := make([]*model.Party, 0, len(l.ds.Parties)+2)
	seen := make(map[string]struct{}, len(l.ds.Parties)+2)
	for _, p := range l.ds.Parties {
		seen[p.PartyName] = struct{}{}
		rows = append(rows, &model.Party{Name: p.PartyName})
	}
	for _, name := range []string{PartyIndependent, PartyMinor} {
		if _, ok := seen[name]; !ok {
			rows = append(rows, &model.Party{Name: name})
		}
	}
	if err := l.tx.CreateParties(rows); err != nil {
		return 0, err
	}
	var err error
	l.partyIDs, err = l.tx.PartyIDs()
	return len(rows), err
}

func (l *loader) candidates() (int, error) {
	rows := make([]*model.Candidate, 0, len(l.ds.Candidates))
	for _, c := range l.ds.Candidates {
		partyID, err := lookup(l.partyIDs, "政党", c.PartyName)
		if err != nil {
			return 0, err
		}
		districtID, err := lookup(l.districtIDs, "选举区", c.DistrictName)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.Candidate{
			Name:       c.CandidateName,
			Age:        c.Age,
			PartyID:    partyID,
			FormerExp:  c.Former,
			Overlap:    c.Overlap,
			DistrictID: districtID,
		})
	}
	if err := l.tx.CreateCandidates(rows); err != nil {
		return 0, err
	}
	var err error
	l.candidateIDs, err = l.tx.CandidateIDs()
	return len(rows), err
}

func (l *loader) municipalityID(name, district string) (uint64, error) {
	districtID, err := lookup(l.districtIDs, "选举区", district)
	if err != nil {
		return 0, err
	}
	return lookup(l.municipalityIDs, "开票区", interfaces.MunicipalityKey{Name: name, DistrictID: districtID})
}

func (l *loader) candidateVotes() (int, error) {
	rows := make([]*model.CandidateVote, 0, len(l.ds.CandidateVotes))
	for _, v := range l.ds.CandidateVotes {
		municipalityID, err := l.municipalityID(v.MunicipalityName, v.DistrictName)
		if err != nil {
			return 0, err
		}
		districtID := l.districtIDs[v.DistrictName]
		candidateID, err := lookup(l.candidateIDs, "候选人", interfaces.CandidateKey{Name: v.CandidateName, DistrictID: districtID})
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.CandidateVote{
			MunicipalityID: municipalityID,
			CandidateID:    candidateID,
			Votes:          v.Votes,
		})
	}
	return len(rows), l.tx.CreateCandidateVotes(rows)
}

// partyVotes 比例票按 (都道府県, 开票区) 找到所属选举区后再定位开票区
func (l *loader) partyVotes() (int, error) {
	type place struct{ prefecture, municipality string }
	districtOf := make(map[place]string, len(l.ds.Municipalities))
	for _, m := range l.ds.Municipalities {
		districtOf[place{m.PrefectureName, m.MunicipalityName}] = m.DistrictName
	}

	rows := make([]*model.PartyVote, 0, len(l.ds.PartyVotes))
	for _, v := range l.ds.PartyVotes {
		partyID, err := lookup(l.partyIDs, "政党", v.PartyName)
		if err != nil {
			return 0, err
		}
		district, err := lookupName(districtOf, place{v.PrefectureName, v.MunicipalityName})
		if err != nil {
			return 0, err
		}
		municipalityID, err := l.municipalityID(v.MunicipalityName, district)
		if err != nil {
			return 0, err
		}
		rows = append(rows, &model.PartyVote{
			MunicipalityID: municipalityID,
			PartyID:        partyID,
			Votes:          v.Votes,
		})
	}
	return len(rows), l.tx.CreatePartyVotes(rows)
}

func lookupName[K comparable](names map[K]string, key K) (string, error) {
	name, ok := names[key]
	if !ok {
		return "", fmt.Errorf("%w: 开票区所属选举区 %v", model.ErrLookupMiss, key)
	}
	return name, nil
}

package service

import (
	"fmt"

	"ElectionSeed/internal/model"
)

// Merge 按传入顺序（即文件顺序）拼接同类集合。
// 政党、区块按名称去重，保留首次出现；完全相同的都道府県记录只保留一条。
func Merge(datasets ...*model.Dataset) *model.Dataset {
	merged := &model.Dataset{}
	for _, ds := range datasets {
		if ds == nil {
			continue
		}
		merged.Districts = append(merged.Districts, ds.Districts...)
		merged.Municipalities = append(merged.Municipalities, ds.Municipalities...)
		merged.Candidates = append(merged.Candidates, ds.Candidates...)
		merged.CandidateVotes = append(merged.CandidateVotes, ds.CandidateVotes...)
		merged.Blocks = append(merged.Blocks, ds.Blocks...)
		merged.Prefectures = append(merged.Prefectures, ds.Prefectures...)
		merged.Parties = append(merged.Parties, ds.Parties...)
		merged.PartyVotes = append(merged.PartyVotes, ds.PartyVotes...)
	}
	merged.Blocks = dedup(merged.Blocks, func(b *model.BlockRecord) string { return b.BlockName })
	merged.Parties = dedup(merged.Parties, func(p *model.PartyRecord) string { return p.PartyName })
	merged.Prefectures = dedup(merged.Prefectures, func(p *model.PrefectureRecord) string {
		return p.PrefectureName + "\x00" + p.BlockName
	})
	return merged
}

func dedup[T any](items []T, key func(T) string) []T {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}

// Validate 校验合并后的自然键唯一性。解析阶段不跨文件检查，重复只能在这里发现。
func Validate(ds *model.Dataset) error {
	districts := make(map[string]struct{}, len(ds.Districts))
	for _, d := range ds.Districts {
		if _, ok := districts[d.DistrictName]; ok {
			return fmt.Errorf("%w: 选举区 %s", model.ErrDuplicateKey, d.DistrictName)
		}
		districts[d.DistrictName] = struct{}{}
	}

	prefectureBlock := make(map[string]string, len(ds.Prefectures))
	for _, p := range ds.Prefectures {
		if block, ok := prefectureBlock[p.PrefectureName]; ok && block != p.BlockName {
			return fmt.Errorf("%w: 都道府県 %s 同时属于 %s 与 %s", model.ErrDuplicateKey, p.PrefectureName, block, p.BlockName)
		}
		prefectureBlock[p.PrefectureName] = p.BlockName
	}

	type pair struct{ name, district string }
	municipalities := make(map[pair]struct{}, len(ds.Municipalities))
	for _, m := range ds.Municipalities {
		k := pair{m.MunicipalityName, m.DistrictName}
		if _, ok := municipalities[k]; ok {
			return fmt.Errorf("%w: 开票区 %s（%s）", model.ErrDuplicateKey, m.MunicipalityName, m.DistrictName)
		}
		municipalities[k] = struct{}{}
	}

	candidates := make(map[pair]struct{}, len(ds.Candidates))
	for _, c := range ds.Candidates {
		k := pair{c.CandidateName, c.DistrictName}
		if _, ok := candidates[k]; ok {
			return fmt.Errorf("%w: 候选人 %s（%s）", model.ErrDuplicateKey, c.CandidateName, c.DistrictName)
		}
		candidates[k] = struct{}{}
	}
	return nil
}

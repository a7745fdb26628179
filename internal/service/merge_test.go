package service

import (
	"errors"
	"testing"

	"ElectionSeed/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ConcatenatesInFileOrder(t *testing.T) {
	a := &model.Dataset{
		Districts: []*model.DistrictRecord{{DistrictName: "東京１区", PrefectureName: "東京"}},
		Parties:   []*model.PartyRecord{{PartyName: "自由民主党"}},
	}
	b := &model.Dataset{
		Districts: []*model.DistrictRecord{{DistrictName: "東京２区", PrefectureName: "東京"}},
		Parties:   []*model.PartyRecord{{PartyName: "自由民主党"}, {PartyName: "立憲民主党"}},
	}

	merged := Merge(a, nil, b)
	require.Len(t, merged.Districts, 2)
	assert.Equal(t, "東京１区", merged.Districts[0].DistrictName)
	assert.Equal(t, "東京２区", merged.Districts[1].DistrictName)

	var parties []string
	for _, p := range merged.Parties {
		parties = append(parties, p.PartyName)
	}
	assert.Equal(t, []string{"自由民主党", "立憲民主党"}, parties)
}

func TestMerge_DeduplicatesBlocksAndPrefectures(t *testing.T) {
	a := &model.Dataset{
		Blocks:      []*model.BlockRecord{{BlockName: "近畿"}},
		Prefectures: []*model.PrefectureRecord{{PrefectureName: "大阪", BlockName: "近畿"}},
	}
	b := &model.Dataset{
		Blocks:      []*model.BlockRecord{{BlockName: "近畿"}},
		Prefectures: []*model.PrefectureRecord{{PrefectureName: "大阪", BlockName: "近畿"}, {PrefectureName: "京都", BlockName: "近畿"}},
	}

	merged := Merge(a, b)
	assert.Len(t, merged.Blocks, 1)
	assert.Len(t, merged.Prefectures, 2)
	assert.NoError(t, Validate(merged))
}

func TestValidate_DuplicateKeys(t *testing.T) {
	cases := map[string]*model.Dataset{
		"district": {
			Districts: []*model.DistrictRecord{{DistrictName: "東京１区"}, {DistrictName: "東京１区"}},
		},
		"municipality in same district": {
			Municipalities: []*model.MunicipalityRecord{
				{MunicipalityName: "港区", DistrictName: "東京１区"},
				{MunicipalityName: "港区", DistrictName: "東京１区"},
			},
		},
		"candidate in same district": {
			Candidates: []*model.CandidateRecord{
				{CandidateName: "山田太郎", DistrictName: "東京１区"},
				{CandidateName: "山田太郎", DistrictName: "東京１区"},
			},
		},
		"prefecture in two blocks": {
			Prefectures: []*model.PrefectureRecord{
				{PrefectureName: "東京", BlockName: "東京"},
				{PrefectureName: "東京", BlockName: "南関東"},
			},
		},
	}
	for name, ds := range cases {
		t.Run(name, func(t *testing.T) {
			err := Validate(ds)
			assert.True(t, errors.Is(err, model.ErrDuplicateKey), "got %v", err)
		})
	}
}

func TestValidate_SameNameAcrossDistricts(t *testing.T) {
	ds := &model.Dataset{
		Municipalities: []*model.MunicipalityRecord{
			{MunicipalityName: "横浜市都筑区", DistrictName: "神奈川７区"},
			{MunicipalityName: "横浜市都筑区", DistrictName: "神奈川８区"},
		},
		Candidates: []*model.CandidateRecord{
			{CandidateName: "山田太郎", DistrictName: "神奈川７区"},
			{CandidateName: "山田太郎", DistrictName: "神奈川８区"},
		},
	}
	assert.NoError(t, Validate(ds))
}

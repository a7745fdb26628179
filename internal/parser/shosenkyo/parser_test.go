package shosenkyo

import (
	"errors"
	"io"
	"strings"
	"testing"

	"ElectionSeed/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokyo1 = `,,東京１区
,,開票所名,合計,千代田区,中央区,港区
,,有権者数,300,100,120,80
,,投票者数,150,50.4,60,39.6
,,有効票,147,49,59,39
当,,山田太郎,自由民主党,前,55歳,80,30,30,20
,重複,鈴木花子,立憲民主党,新,４２歳,67,19,29,19
`

func newTestParser() *Parser {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &Parser{logger: logger}
}

func TestParse_EndToEnd(t *testing.T) {
	ds, err := newTestParser().Parse(strings.NewReader(tokyo1))
	require.NoError(t, err)

	require.Len(t, ds.Districts, 1)
	assert.Equal(t, &model.DistrictRecord{DistrictName: "東京１区", PrefectureName: "東京"}, ds.Districts[0])

	require.Len(t, ds.Municipalities, 3)
	for _, m := range ds.Municipalities {
		assert.Equal(t, "東京１区", m.DistrictName)
		assert.Equal(t, "東京", m.PrefectureName)
	}

	require.Len(t, ds.Candidates, 2)
	assert.Equal(t, &model.CandidateRecord{
		CandidateName: "山田太郎",
		DistrictName:  "東京１区",
		PartyName:     "自由民主党",
		Age:           55,
		Former:        true,
		Overlap:       false,
	}, ds.Candidates[0])
	assert.Equal(t, &model.CandidateRecord{
		CandidateName: "鈴木花子",
		DistrictName:  "東京１区",
		PartyName:     "立憲民主党",
		Age:           42,
		Former:        false,
		Overlap:       true,
	}, ds.Candidates[1])

	require.Len(t, ds.CandidateVotes, 6)
	totals := map[string]int{"山田太郎": 80, "鈴木花子": 67}
	sums := map[string]int{}
	for _, v := range ds.CandidateVotes {
		sums[v.CandidateName] += v.Votes
	}
	for name, total := range totals {
		assert.LessOrEqual(t, sums[name], total, name)
	}
}

func TestParse_PositionalAlignment(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		",,大阪３区",
		",,開票所名,合計,A,B,C",
		",,有権者数,60,10,20,30",
	})
	require.NoError(t, err)

	got := map[string]int{}
	var order []string
	for _, m := range ds.Municipalities {
		got[m.MunicipalityName] = m.NumVoters
		order = append(order, m.MunicipalityName)
	}
	assert.Equal(t, []string{"A", "B", "C"}, order)
	assert.Equal(t, map[string]int{"A": 10, "B": 20, "C": 30}, got)
}

func TestParse_MunicipalityTotalsAreRounded(t *testing.T) {
	ds, err := newTestParser().Parse(strings.NewReader(tokyo1))
	require.NoError(t, err)

	byName := map[string]*model.MunicipalityRecord{}
	for _, m := range ds.Municipalities {
		byName[m.MunicipalityName] = m
	}
	require.NotNil(t, byName["千代田区"].NumVotesCast)
	assert.Equal(t, 50, *byName["千代田区"].NumVotesCast)
	assert.Equal(t, 40, *byName["港区"].NumVotesCast)
	require.NotNil(t, byName["中央区"].NumValidVotes)
	assert.Equal(t, 59, *byName["中央区"].NumValidVotes)
}

func TestParse_MunicipalityCountFollowsLatestHeader(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		",,北海道１区",
		",,開票所名,合計,札幌市中央区,札幌市南区",
		",,開票所名,合計,札幌市中央区,札幌市南区,札幌市西区",
		",,有権者数,6,1,2,3",
	})
	require.NoError(t, err)
	assert.Len(t, ds.Municipalities, 3)
}

func TestParse_ContextCarriesAcrossDistricts(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		",,神奈川７区",
		",,開票所名,合計,横浜市港北区,横浜市都筑区７区",
		",,有権者数,30,10,20",
		"当,,甲,自由民主党,元,60歳,15,5,10",
		",,神奈川８区",
		",,開票所名,合計,横浜市都筑区８区",
		",,有権者数,40,40",
		"当,,乙,無,新,38歳,20,20",
	})
	require.NoError(t, err)

	require.Len(t, ds.Districts, 2)
	assert.Equal(t, "神奈川", ds.Districts[1].PrefectureName)
	require.Len(t, ds.Municipalities, 3)
	assert.Equal(t, "神奈川８区", ds.Municipalities[2].DistrictName)
	require.Len(t, ds.Candidates, 2)
	assert.Equal(t, "神奈川７区", ds.Candidates[0].DistrictName)
	assert.False(t, ds.Candidates[0].Former)
	assert.Equal(t, "神奈川８区", ds.Candidates[1].DistrictName)
	require.Len(t, ds.CandidateVotes, 3)
	assert.Equal(t, "横浜市都筑区８区", ds.CandidateVotes[2].MunicipalityName)
}

func TestParse_UnmatchedTotalsAreSkipped(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		",,福岡２区",
		",,開票所名,合計,福岡市中央区",
		",,有権者数,10,10",
		",,開票所名,合計,福岡市南区",
		",,投票者数,7,7",
	})
	require.NoError(t, err)
	require.Len(t, ds.Municipalities, 1)
	assert.Nil(t, ds.Municipalities[0].NumVotesCast)
}

func TestParse_ColumnMismatch(t *testing.T) {
	_, err := newTestParser().ParseLines([]string{
		",,東京２区",
		",,開票所名,合計,A,B",
		",,有権者数,30,10,20,5",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrColumnMismatch))
	assert.Contains(t, err.Error(), "第3行")

	_, err = newTestParser().ParseLines([]string{
		",,東京２区",
		",,開票所名,合計,A,B",
		",,有権者数,30,10,20",
		"当,,甲,無,新,40歳,12,12",
	})
	assert.True(t, errors.Is(err, model.ErrColumnMismatch))
}

func TestParse_MalformedNumberIsFatal(t *testing.T) {
	_, err := newTestParser().ParseLines([]string{
		",,東京３区",
		",,開票所名,合計,A",
		",,有権者数,10,abc",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrMalformedNumber))
}

func TestParse_IgnoresDecorativeRows(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		"",
		"令和３年１０月３１日執行 衆議院小選挙区選出議員選挙",
		",,,,,",
		",,東京４区",
		",,開票所名,合計,A",
		",,有権者数,10,10",
		"※ 数値は確定値",
	})
	require.NoError(t, err)
	assert.Len(t, ds.Districts, 1)
	assert.Len(t, ds.Municipalities, 1)
	assert.Empty(t, ds.Candidates)
}

func TestParse_TrailingPaddingIsIgnored(t *testing.T) {
	ds, err := newTestParser().ParseLines([]string{
		",,東京５区",
		",,開票所名,合計,A,B,,,",
		",,有権者数,30,10,20,,,",
	})
	require.NoError(t, err)
	assert.Len(t, ds.Municipalities, 2)
}

func TestParse_IsIdempotent(t *testing.T) {
	p := newTestParser()
	first, err := p.Parse(strings.NewReader(tokyo1))
	require.NoError(t, err)
	second, err := p.Parse(strings.NewReader(tokyo1))
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-parse mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_StripsBOM(t *testing.T) {
	ds, err := newTestParser().Parse(strings.NewReader("\ufeff" + tokyo1))
	require.NoError(t, err)
	require.Len(t, ds.Districts, 1)
	assert.Equal(t, "東京１区", ds.Districts[0].DistrictName)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		line string
		want rowKind
	}{
		{",,東京１区", rowDistrict},
		{",,開票所名,合計,千代田区", rowHeader},
		{",,有権者数,1,1", rowVoters},
		{",,投票者数,1,1", rowVotesCast},
		{",,有効票,1,1", rowValidVotes},
		{"当,重複,甲,無,前,50歳,1,1", rowCandidate},
		{"合計,,,", rowUnknown},
	}
	for _, tc := range cases {
		got, _ := classify(tc.line)
		assert.Equal(t, tc.want, got, tc.line)
	}
}

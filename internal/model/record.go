package model

// 解析器产出的记录均以自然键（名称）互相引用，ID 由入库阶段分配。

// DistrictRecord 小选举区
type DistrictRecord struct {
	DistrictName   string `json:"district_name"`   // 都道府県名 + 区号，如 東京１区
	PrefectureName string `json:"prefecture_name"` // 都道府県名
}

// MunicipalityRecord 开票区（市区町村）
// NumVotesCast / NumValidVotes 由后续的 投票者数 / 有効票 行补写，未出现时为 nil
type MunicipalityRecord struct {
	MunicipalityName string `json:"municipality_name"`
	DistrictName     string `json:"district_name"`
	PrefectureName   string `json:"prefecture_name"`
	NumVoters        int    `json:"num_voters"`
	NumVotesCast     *int   `json:"num_votes_cast,omitempty"`
	NumValidVotes    *int   `json:"num_valid_votes,omitempty"`
}

// CandidateRecord 小选举区候选人
type CandidateRecord struct {
	CandidateName string `json:"candidate_name"`
	DistrictName  string `json:"district_name"`
	PartyName     string `json:"party_name"`
	Age           int    `json:"age"`
	Former        bool   `json:"former"`  // 前职
	Overlap       bool   `json:"overlap"` // 比例重复立候补
}

// CandidateVoteRecord 候选人在某开票区的得票
type CandidateVoteRecord struct {
	CandidateName    string `json:"candidate_name"`
	MunicipalityName string `json:"municipality_name"`
	DistrictName     string `json:"district_name"`
	Votes            int    `json:"votes"`
}

// BlockRecord 比例代表区块
type BlockRecord struct {
	BlockName string `json:"block_name"`
}

// PrefectureRecord 都道府県，隶属于唯一的区块
type PrefectureRecord struct {
	PrefectureName string `json:"prefecture_name"`
	BlockName      string `json:"block_name"`
}

// PartyRecord 政党
type PartyRecord struct {
	PartyName string `json:"party_name"`
}

// PartyVoteRecord 政党在某开票区的比例得票
type PartyVoteRecord struct {
	PartyName        string `json:"party_name"`
	MunicipalityName string `json:"municipality_name"`
	PrefectureName   string `json:"prefecture_name"`
	Votes            int    `json:"votes"`
}

// Dataset 一个或多个文件解析后的全部记录集合。
// 小选举区解析器只填充前四个集合，比例代表解析器只填充后四个。
type Dataset struct {
	Districts      []*DistrictRecord      `json:"districts"`
	Municipalities []*MunicipalityRecord  `json:"municipalities"`
	Candidates     []*CandidateRecord     `json:"candidates"`
	CandidateVotes []*CandidateVoteRecord `json:"candidate_votes"`
	Blocks         []*BlockRecord         `json:"blocks"`
	Prefectures    []*PrefectureRecord    `json:"prefectures"`
	Parties        []*PartyRecord         `json:"parties"`
	PartyVotes     []*PartyVoteRecord     `json:"party_votes"`
}

// Counts 各集合的记录数，用于日志与导入记录
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		"districts":       len(d.Districts),
		"municipalities":  len(d.Municipalities),
		"candidates":      len(d.Candidates),
		"candidate_votes": len(d.CandidateVotes),
		"blocks":          len(d.Blocks),
		"prefectures":     len(d.Prefectures),
		"parties":         len(d.Parties),
		"party_votes":     len(d.PartyVotes),
	}
}

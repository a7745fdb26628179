package model

// 以下为入库后的关系表，表名与列名保持与历史 schema 一致。

type Block struct {
	BlockID  uint64 `gorm:"column:block_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name     string `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:区块名称"`
	NumElect *int   `gorm:"column:num_elect;type:int;comment:比例代表定数（未知区块为空）"`
}

type Prefecture struct {
	PrefectureID uint64 `gorm:"column:prefecture_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name         string `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:都道府県名"`
	BlockID      uint64 `gorm:"column:block_id;type:bigint;not null;index;comment:所属区块ID"`
}

type District struct {
	DistrictID   uint64 `gorm:"column:district_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name         string `gorm:"column:name;type:varchar(64);uniqueIndex;not null;comment:选举区名称"`
	PrefectureID uint64 `gorm:"column:prefecture_id;type:bigint;not null;index;comment:所属都道府県ID"`
}

type Municipality struct {
	MunicipalityID uint64 `gorm:"column:municipality_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name           string `gorm:"column:name;type:varchar(128);not null;uniqueIndex:uk_municipality_district;comment:开票区名称"`
	DistrictID     uint64 `gorm:"column:district_id;type:bigint;not null;uniqueIndex:uk_municipality_district;comment:所属选举区ID"`
	NumVoters      int    `gorm:"column:num_voters;type:int;not null;comment:有权者数"`
	NumVotesCast   *int   `gorm:"column:num_votes_cast;type:int;comment:投票者数"`
	NumValidVotes  *int   `gorm:"column:num_valid_votes;type:int;comment:有效票数"`
}

type Party struct {
	PartyID uint64 `gorm:"column:party_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name    string `gorm:"column:name;type:varchar(128);uniqueIndex;not null;comment:政党名称"`
}

type Candidate struct {
	CandidateID uint64 `gorm:"column:candidate_id;primaryKey;autoIncrement;comment:自增主键ID"`
	Name        string `gorm:"column:name;type:varchar(128);not null;uniqueIndex:uk_candidate_district;comment:候选人姓名"`
	Age         int    `gorm:"column:age;type:int;not null;comment:年龄"`
	PartyID     uint64 `gorm:"column:party_id;type:bigint;not null;index;comment:所属政党ID"`
	FormerExp   bool   `gorm:"column:former_exp;type:boolean;default:false;comment:是否前职"`
	Overlap     bool   `gorm:"column:overlap;type:boolean;default:false;comment:是否比例重复"`
	DistrictID  uint64 `gorm:"column:district_id;type:bigint;not null;uniqueIndex:uk_candidate_district;comment:所属选举区ID"`
}

type CandidateVote struct {
	MunicipalityID uint64 `gorm:"column:municipality_id;primaryKey;autoIncrement:false;comment:开票区ID"`
	CandidateID    uint64 `gorm:"column:candidate_id;primaryKey;autoIncrement:false;comment:候选人ID"`
	Votes          int    `gorm:"column:votes;type:int;not null;comment:得票数"`
}

type PartyVote struct {
	MunicipalityID uint64 `gorm:"column:municipality_id;primaryKey;autoIncrement:false;comment:开票区ID"`
	PartyID        uint64 `gorm:"column:party_id;primaryKey;autoIncrement:false;comment:政党ID"`
	Votes          int    `gorm:"column:votes;type:int;not null;comment:得票数"`
}

func (Block) TableName() string         { return "Blocks" }
func (Prefecture) TableName() string    { return "Prefectures" }
func (District) TableName() string      { return "Districts" }
func (Municipality) TableName() string  { return "Municipalities" }
func (Party) TableName() string         { return "Parties" }
func (Candidate) TableName() string     { return "Candidates" }
func (CandidateVote) TableName() string { return "Votes_Shosenkyo" }
func (PartyVote) TableName() string     { return "Votes_Hireidaihyo" }

// ElectionTables 按依赖顺序排列的选举表，迁移与重置共用
func ElectionTables() []interface{} {
	return []interface{}{
		&Block{},
		&Prefecture{},
		&District{},
		&Municipality{},
		&Party{},
		&Candidate{},
		&CandidateVote{},
		&PartyVote{},
	}
}

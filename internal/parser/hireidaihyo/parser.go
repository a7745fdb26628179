package hireidaihyo

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"
	"ElectionSeed/internal/parser"

	"github.com/sirupsen/logrus"
)

const (
	markerHeader     = "政党名"
	markerPercentage = "(%)"
	// 北海道保留"道"，其余都府県去掉后缀，与小选举区文件中的都道府県名一致
	suffixCircuit = "道"
	// 表头与政党行的前三列为标签列，之后每个开票区占两列：得票数、得票率
	labelColumns = 3
)

// 北海道ブロック,北海道,比例票 / 東京ブロック,東京都,比例票
var blockPattern = regexp.MustCompile(`^(.+)ブロック,(.+)(県|都|府|道),比例票`)

// splitMunicipalities 源数据中被错误合并的开票区：票数平分给两个选举区下的开票区。
// 仅按完整名称匹配。
var splitMunicipalities = map[string][]string{
	"横浜市都筑区": {"横浜市都筑区８区", "横浜市都筑区７区"},
}

func init() {
	parser.Register(model.FormatHireidaihyo, New)
}

// Parser 比例代表开票结果解析器
type Parser struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) interfaces.FileParser {
	return &Parser{logger: logger}
}

// Format ========== 实现FileParser接口 ==========
func (p *Parser) Format() model.Format {
	return model.FormatHireidaihyo
}

func (p *Parser) Parse(r io.Reader) (*model.Dataset, error) {
	lines, err := parser.ReadLines(r)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(lines)
}

func (p *Parser) ParseLines(lines []string) (*model.Dataset, error) {
	ctx := &parseContext{
		result:     &model.Dataset{},
		seenBlocks: make(map[string]struct{}),
	}
	for i, line := range lines {
		lineNo := i + 1
		if m := blockPattern.FindStringSubmatch(line); m != nil {
			ctx.declarePrefecture(m)
			continue
		}
		if strings.Contains(line, markerHeader) {
			ctx.declareMunicipalities(line)
			continue
		}
		columns := parser.SplitFields(line)
		if len(columns) <= labelColumns {
			p.logger.WithField("line", lineNo).Trace("忽略无法识别的行")
			continue
		}
		if err := ctx.addPartyVotes(columns); err != nil {
			return nil, fmt.Errorf("第%d行: %w", lineNo, err)
		}
	}
	return ctx.result, nil
}

// parseContext 单个文件的解析状态：当前区块、都道府県与开票区顺序
type parseContext struct {
	block          string
	prefecture     string
	municipalities []string
	seenBlocks     map[string]struct{}
	result         *model.Dataset
}

func (c *parseContext) declarePrefecture(m []string) {
	c.block = m[1]
	c.prefecture = m[2]
	if m[3] == suffixCircuit {
		c.prefecture += m[3]
	}
	if _, ok := c.seenBlocks[c.block]; !ok {
		c.seenBlocks[c.block] = struct{}{}
		c.result.Blocks = append(c.result.Blocks, &model.BlockRecord{BlockName: c.block})
	}
	c.result.Prefectures = append(c.result.Prefectures, &model.PrefectureRecord{
		PrefectureName: c.prefecture,
		BlockName:      c.block,
	})
}

// declareMunicipalities 只保留得票数列，得票率列（含"(%)"）与空列被排除
func (c *parseContext) declareMunicipalities(line string) {
	c.municipalities = nil
	for _, f := range parser.Tail(parser.SplitFields(line), labelColumns) {
		f = strings.TrimSpace(f)
		if f == "" || strings.Contains(f, markerPercentage) {
			continue
		}
		c.municipalities = append(c.municipalities, f)
	}
}

func (c *parseContext) addPartyVotes(columns []string) error {
	party := strings.TrimSpace(columns[0])
	if party == "" {
		return nil
	}
	c.result.Parties = append(c.result.Parties, &model.PartyRecord{PartyName: party})

	for i, municipality := range c.municipalities {
		idx := 2*i + labelColumns
		if idx >= len(columns) {
			continue
		}
		value := strings.TrimSpace(columns[idx])
		if value == "" {
			continue
		}
		if targets, ok := splitMunicipalities[municipality]; ok {
			votes, err := parser.ParseHalf(value)
			if err != nil {
				return fmt.Errorf("政党%s/%s: %w", party, municipality, err)
			}
			for _, t := range targets {
				c.appendVote(party, t, votes)
			}
			continue
		}
		votes, err := parser.ParseRounded(value)
		if err != nil {
			return fmt.Errorf("政党%s/%s: %w", party, municipality, err)
		}
		c.appendVote(party, municipality, votes)
	}
	return nil
}

func (c *parseContext) appendVote(party, municipality string, votes int) {
	c.result.PartyVotes = append(c.result.PartyVotes, &model.PartyVoteRecord{
		PartyName:        party,
		MunicipalityName: municipality,
		PrefectureName:   c.prefecture,
		Votes:            votes,
	})
}

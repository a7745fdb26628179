package shosenkyo

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"ElectionSeed/internal/interfaces"
	"ElectionSeed/internal/model"
	"ElectionSeed/internal/parser"

	"github.com/sirupsen/logrus"
)

// 小选举区 CSV 中用于识别行类型的标记
const (
	markerHeader     = "開票所名"
	markerVoters     = "有権者数"
	markerVotesCast  = "投票者数"
	markerValidVotes = "有効票"
	markerOverlap    = "重複"
	markerFormer     = "前"
)

// 数值行、表头行的前三列为标签列
const labelColumns = 3

var (
	// ,,東京１区 形式：两个空字段后紧跟都道府県名与区号
	districtPattern = regexp.MustCompile(`^,,(.+?)([0-9０-９]+区)`)
	// [当],[重複],候选人,政党,前/元/新,NN歳,合计,各开票区得票...
	candidatePattern = regexp.MustCompile(`^(当|),*(重複|),*(.+),(.+),(.+),([0-9０-９]+)歳,(.+)`)
)

func init() {
	parser.Register(model.FormatShosenkyo, New)
}

type rowKind int

const (
	rowUnknown rowKind = iota
	rowDistrict
	rowHeader
	rowVoters
	rowVotesCast
	rowValidVotes
	rowCandidate
)

// Parser 小选举区开票结果解析器
type Parser struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) interfaces.FileParser {
	return &Parser{logger: logger}
}

// Format ========== 实现FileParser接口 ==========
func (p *Parser) Format() model.Format {
	return model.FormatShosenkyo
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
		logger: p.logger,
		result: &model.Dataset{},
	}
	for i, line := range lines {
		ctx.lineNo = i + 1
		kind, match := classify(line)
		var err error
		switch kind {
		case rowDistrict:
			ctx.declareDistrict(match)
		case rowHeader:
			ctx.declareMunicipalities(line)
		case rowVoters:
			err = ctx.addMunicipalities(line)
		case rowVotesCast:
			err = ctx.setMunicipalityTotals(line, func(m *model.MunicipalityRecord, v int) { m.NumVotesCast = &v })
		case rowValidVotes:
			err = ctx.setMunicipalityTotals(line, func(m *model.MunicipalityRecord, v int) { m.NumValidVotes = &v })
		case rowCandidate:
			err = ctx.addCandidate(match)
		default:
			// 空行、注释、合计等装饰行直接忽略
			p.logger.WithField("line", ctx.lineNo).Trace("忽略无法识别的行")
		}
		if err != nil {
			return nil, fmt.Errorf("第%d行: %w", ctx.lineNo, err)
		}
	}
	return ctx.result, nil
}

// classify 按优先级判定行类型，选举区行与候选人行同时返回正则子匹配
func classify(line string) (rowKind, []string) {
	isHeader := strings.Contains(line, markerHeader)
	if !isHeader {
		if m := districtPattern.FindStringSubmatch(line); m != nil {
			return rowDistrict, m
		}
	}
	switch {
	case isHeader:
		return rowHeader, nil
	case strings.Contains(line, markerVoters):
		return rowVoters, nil
	case strings.Contains(line, markerVotesCast):
		return rowVotesCast, nil
	case strings.Contains(line, markerValidVotes):
		return rowValidVotes, nil
	}
	if m := candidatePattern.FindStringSubmatch(line); m != nil {
		return rowCandidate, m
	}
	return rowUnknown, nil
}

// parseContext 单个文件的解析状态。
// municipalities 的长度与顺序由最近一个表头行确定，之后的每个数值行都按位置与其一一对应。
type parseContext struct {
	logger         *logrus.Logger
	lineNo         int
	district       string
	prefecture     string
	municipalities []string
	result         *model.Dataset
}

func (c *parseContext) declareDistrict(m []string) {
	c.prefecture = m[1]
	c.district = m[1] + m[2]
	c.result.Districts = append(c.result.Districts, &model.DistrictRecord{
		DistrictName:   c.district,
		PrefectureName: c.prefecture,
	})
}

func (c *parseContext) declareMunicipalities(line string) {
	names := parser.TrimPadding(parser.Tail(parser.SplitFields(line), labelColumns))
	c.municipalities = make([]string, len(names))
	for i, n := range names {
		c.municipalities[i] = strings.TrimSpace(n)
	}
}

func (c *parseContext) addMunicipalities(line string) error {
	values, err := c.alignedValues(parser.Tail(parser.SplitFields(line), labelColumns))
	if err != nil {
		return err
	}
	for i, name := range c.municipalities {
		c.result.Municipalities = append(c.result.Municipalities, &model.MunicipalityRecord{
			MunicipalityName: name,
			DistrictName:     c.district,
			PrefectureName:   c.prefecture,
			NumVoters:        values[i],
		})
	}
	return nil
}

// setMunicipalityTotals 按名称回写已创建的开票区（取第一个同名记录）。
// 找不到同名记录时跳过该值。
func (c *parseContext) setMunicipalityTotals(line string, set func(m *model.MunicipalityRecord, v int)) error {
	values, err := c.alignedValues(parser.Tail(parser.SplitFields(line), labelColumns))
	if err != nil {
		return err
	}
	for i, name := range c.municipalities {
		target := c.findMunicipality(name)
		if target == nil {
			c.logger.WithFields(logrus.Fields{
				"line":         c.lineNo,
				"municipality": name,
			}).Debug("未找到对应的开票区，跳过")
			continue
		}
		set(target, values[i])
	}
	return nil
}

func (c *parseContext) findMunicipality(name string) *model.MunicipalityRecord {
	for _, m := range c.result.Municipalities {
		if m.MunicipalityName == name {
			return m
		}
	}
	return nil
}

func (c *parseContext) addCandidate(m []string) error {
	age, err := strconv.Atoi(parser.Narrow(m[6]))
	if err != nil {
		return fmt.Errorf("%w: 年龄 %q", model.ErrMalformedNumber, m[6])
	}
	name := strings.TrimSpace(m[3])
	c.result.Candidates = append(c.result.Candidates, &model.CandidateRecord{
		CandidateName: name,
		DistrictName:  c.district,
		PartyName:     strings.TrimSpace(m[4]),
		Age:           age,
		Former:        strings.TrimSpace(m[5]) == markerFormer,
		Overlap:       strings.TrimSpace(m[2]) == markerOverlap,
	})

	// 第一个值是候选人的得票合计，其后才是各开票区
	votes, err := c.alignedValues(parser.Tail(parser.SplitFields(m[7]), 1))
	if err != nil {
		return fmt.Errorf("候选人%s: %w", name, err)
	}
	for i, municipality := range c.municipalities {
		c.result.CandidateVotes = append(c.result.CandidateVotes, &model.CandidateVoteRecord{
			CandidateName:    name,
			MunicipalityName: municipality,
			DistrictName:     c.district,
			Votes:            votes[i],
		})
	}
	return nil
}

// alignedValues 解析数值并校验个数与当前开票区列表一致
func (c *parseContext) alignedValues(fields []string) ([]int, error) {
	fields = parser.TrimPadding(fields)
	if len(fields) != len(c.municipalities) {
		return nil, fmt.Errorf("%w: 选举区%s声明了%d个开票区，该行有%d个值",
			model.ErrColumnMismatch, c.district, len(c.municipalities), len(fields))
	}
	return parser.ParseRoundedAll(fields)
}

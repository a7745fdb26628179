package export

import (
	"fmt"

	"ElectionSeed/internal/model"

	"github.com/xuri/excelize/v2"
)

// sheet 一个工作表：表头与按行展开的数据
type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// WriteWorkbook 把解析后的数据集按集合写成八个工作表，供入库前人工核对
func WriteWorkbook(ds *model.Dataset, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}

	sheets := buildSheets(ds)
	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("重命名工作表失败: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("创建工作表%s失败: %w", s.name, err)
		}
		if err := writeSheet(f, s, headerStyle); err != nil {
			return fmt.Errorf("写入工作表%s失败: %w", s.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("保存Excel文件失败: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", last, headerStyle); err != nil {
		return err
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(s.name, "A", lastCol, 18)
}

// optional 缺失的计数写成空单元格
func optional(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func buildSheets(ds *model.Dataset) []sheet {
	districts := sheet{name: "Districts", headers: []string{"district_name", "prefecture_name"}}
	for _, d := range ds.Districts {
		districts.rows = append(districts.rows, []interface{}{d.DistrictName, d.PrefectureName})
	}

	municipalities := sheet{name: "Municipalities", headers: []string{
		"municipality_name", "district_name", "prefecture_name", "num_voters", "num_votes_cast", "num_valid_votes",
	}}
	for _, m := range ds.Municipalities {
		municipalities.rows = append(municipalities.rows, []interface{}{
			m.MunicipalityName, m.DistrictName, m.PrefectureName, m.NumVoters, optional(m.NumVotesCast), optional(m.NumValidVotes),
		})
	}

	candidates := sheet{name: "Candidates", headers: []string{
		"candidate_name", "district_name", "party_name", "age", "former", "overlap",
	}}
	for _, c := range ds.Candidates {
		candidates.rows = append(candidates.rows, []interface{}{
			c.CandidateName, c.DistrictName, c.PartyName, c.Age, c.Former, c.Overlap,
		})
	}

	candidateVotes := sheet{name: "Votes_Shosenkyo", headers: []string{
		"candidate_name", "municipality_name", "district_name", "votes",
	}}
	for _, v := range ds.CandidateVotes {
		candidateVotes.rows = append(candidateVotes.rows, []interface{}{
			v.CandidateName, v.MunicipalityName, v.DistrictName, v.Votes,
		})
	}

	blocks := sheet{name: "Blocks", headers: []string{"block_name"}}
	for _, b := range ds.Blocks {
		blocks.rows = append(blocks.rows, []interface{}{b.BlockName})
	}

	prefectures := sheet{name: "Prefectures", headers: []string{"prefecture_name", "block_name"}}
	for _, p := range ds.Prefectures {
		prefectures.rows = append(prefectures.rows, []interface{}{p.PrefectureName, p.BlockName})
	}

	parties := sheet{name: "Parties", headers: []string{"party_name"}}
	for _, p := range ds.Parties {
		parties.rows = append(parties.rows, []interface{}{p.PartyName})
	}

	partyVotes := sheet{name: "Votes_Hireidaihyo", headers: []string{
		"party_name", "municipality_name", "prefecture_name", "votes",
	}}
	for _, v := range ds.PartyVotes {
		partyVotes.rows = append(partyVotes.rows, []interface{}{
			v.PartyName, v.MunicipalityName, v.PrefectureName, v.Votes,
		})
	}

	return []sheet{districts, municipalities, candidates, candidateVotes, blocks, prefectures, parties, partyVotes}
}

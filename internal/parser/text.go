package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"ElectionSeed/internal/model"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// 支持的源文件编码
const (
	EncodingUTF8     = "utf-8"
	EncodingShiftJIS = "shift_jis"
)

var (
	commaRun = regexp.MustCompile(`,+`)
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// NewDecodingReader 按配置的编码把源文件转为 UTF-8
func NewDecodingReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingShiftJIS, "sjis", "cp932":
		return transform.NewReader(r, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("不支持的编码: %s", encoding)
	}
}

// ReadLines 读取全部文本行，去掉行尾换行符与首行的 UTF-8 BOM
func ReadLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	var lines []string
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("读取文本行失败: %w", err)
		}
	}
}

// SplitFields 去掉首尾空白后按逗号切分，连续逗号视为一个分隔符。
// 行首的逗号会产生一个空的首字段，与列号约定一致。
func SplitFields(line string) []string {
	return commaRun.Split(strings.TrimSpace(line), -1)
}

// TrimPadding 去掉行尾补齐产生的空字段
func TrimPadding(fields []string) []string {
	end := len(fields)
	for end > 0 && strings.TrimSpace(fields[end-1]) == "" {
		end--
	}
	return fields[:end]
}

// Tail 返回第 n 列之后的字段，不足时为空
func Tail(fields []string, n int) []string {
	if len(fields) <= n {
		return nil
	}
	return fields[n:]
}

// Narrow 全角数字、符号转半角
func Narrow(s string) string {
	return width.Narrow.String(s)
}

// ParseRounded 将票数字符串按浮点解析后四舍六入五成双取整。
// 比例代表的拆分修正会产生 .5 的票数，取整规则需与原始数据处理一致。
func ParseRounded(s string) (int, error) {
	f, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	return int(math.RoundToEven(f)), nil
}

// ParseHalf 拆分修正：原始票数一分为二后取整
func ParseHalf(s string) (int, error) {
	f, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	return int(math.RoundToEven(f / 2)), nil
}

// ParseRoundedAll 逐个解析，遇到第一个非法值即返回错误
func ParseRoundedAll(fields []string) ([]int, error) {
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := ParseRounded(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseNumber(s string) (float64, error) {
	v := strings.TrimSpace(Narrow(s))
	v = strings.TrimSpace(strings.Trim(v, `"`))
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", model.ErrMalformedNumber, s)
	}
	// 票数与有权者数均为非负且落在 int 列的范围内
	if f < 0 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q 超出范围", model.ErrMalformedNumber, s)
	}
	return f, nil
}

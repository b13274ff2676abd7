package schedule_parser_service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Range объединённая область, индексы с нуля, границы включительно
type Range struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

type cellPos struct {
	row, col int
}

// Grid первый лист книги: текст ячеек и объединения.
// Всё, что связано с excelize, живёт только здесь.
type Grid struct {
	rows    [][]string
	merges  map[cellPos]Range
	lastRow int
	lastCol int
}

func OpenGrid(file []byte) (*Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return newGrid(nil, nil), nil
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheet, err)
	}

	mergeCells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("read merges of %q: %w", sheet, err)
	}

	merges := make([]Range, 0, len(mergeCells))
	for _, mc := range mergeCells {
		startCol, startRow, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			continue
		}
		endCol, endRow, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			continue
		}
		merges = append(merges, Range{
			StartRow: startRow - 1,
			StartCol: startCol - 1,
			EndRow:   endRow - 1,
			EndCol:   endCol - 1,
		})
	}

	return newGrid(rows, merges), nil
}

func newGrid(rows [][]string, merges []Range) *Grid {
	g := &Grid{
		rows:    rows,
		merges:  make(map[cellPos]Range, len(merges)),
		lastRow: len(rows) - 1,
		lastCol: -1,
	}
	for _, row := range rows {
		if len(row)-1 > g.lastCol {
			g.lastCol = len(row) - 1
		}
	}
	for _, m := range merges {
		g.merges[cellPos{m.StartRow, m.StartCol}] = m
		// объединения могут выходить за последнюю заполненную строку
		if m.EndRow > g.lastRow {
			g.lastRow = m.EndRow
		}
		if m.EndCol > g.lastCol {
			g.lastCol = m.EndCol
		}
	}
	return g
}

// Empty у листа нет ни одной ячейки
func (g *Grid) Empty() bool {
	return g.lastRow < 0 || g.lastCol < 0
}

func (g *Grid) LastRow() int { return g.lastRow }
func (g *Grid) LastCol() int { return g.lastCol }

// Cell текст ячейки; ok == false для отсутствующей или пустой (только пробелы) ячейки
func (g *Grid) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= len(g.rows[row]) {
		return "", false
	}
	value := g.rows[row][col]
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return norm.NFC.String(value), true
}

// MergeFromStart объединение, начинающееся в ячейке, или сама ячейка
func (g *Grid) MergeFromStart(row, col int) Range {
	if m, ok := g.merges[cellPos{row, col}]; ok {
		return m
	}
	return Range{StartRow: row, StartCol: col, EndRow: row, EndCol: col}
}

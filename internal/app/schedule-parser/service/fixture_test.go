package schedule_parser_service

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheet = "Sheet1"

// workbook собирает xlsx в памяти, координаты с нуля
type workbook struct {
	t *testing.T
	f *excelize.File
}

func newWorkbook(t *testing.T) *workbook {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	return &workbook{t, f}
}

func (w *workbook) cellName(row, col int) string {
	w.t.Helper()
	name, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		w.t.Fatal(err)
	}
	return name
}

func (w *workbook) set(row, col int, value string) *workbook {
	w.t.Helper()
	if err := w.f.SetCellValue(sheet, w.cellName(row, col), value); err != nil {
		w.t.Fatal(err)
	}
	return w
}

func (w *workbook) merge(startRow, startCol, endRow, endCol int) *workbook {
	w.t.Helper()
	if err := w.f.MergeCell(sheet, w.cellName(startRow, startCol), w.cellName(endRow, endCol)); err != nil {
		w.t.Fatal(err)
	}
	return w
}

func (w *workbook) bytes() []byte {
	w.t.Helper()
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		w.t.Fatal(err)
	}
	return buf.Bytes()
}

func (w *workbook) grid() *Grid {
	w.t.Helper()
	g, err := OpenGrid(w.bytes())
	if err != nil {
		w.t.Fatal(err)
	}
	return g
}

// weekWorkbook неделя из трёх дней для двух групп.
// mathName позволяет поменять одно занятие между прогонами.
func weekWorkbook(t *testing.T, mathName string) *workbook {
	return newWorkbook(t).
		set(0, 0, "Расписание занятий").
		set(1, 2, "ИС-21").
		set(1, 4, "ПР-22").
		// понедельник
		set(2, 0, "Понедельник 11.11.2024").
		set(2, 1, "1 пара 08.30-09.50").
		set(2, 2, mathName+" Иванов А.А.").
		set(2, 3, "42").
		set(2, 4, "Иностранный язык Смирнов А.Б. (1 подгруппа), Кузнецова В.Г. (2 подгруппа)").
		set(2, 5, "201 202").
		set(3, 1, "2 пара 10:00-11:20").
		set(3, 2, "Физика Петров П.П., Сидоров С.С.").
		set(3, 3, "101 102").
		set(4, 1, "Классный час 11:30-12:00").
		set(4, 2, "Разговоры\nо важном").
		// вторник
		set(5, 0, "Вторник 12.11.2024").
		set(5, 1, "1 пара 08:30-09:50").
		set(5, 2, "ЗАЧЕТ С ОЦЕНКОЙ История Иванов А.А.").
		set(5, 4, "Практика Петров П.П.").
		merge(5, 4, 6, 4).
		set(5, 5, "305").
		set(6, 1, "2 пара 10:00-11:20").
		set(6, 2, "Лермонтова, 12").
		// суббота без даты
		set(7, 0, "Суббота").
		set(7, 1, "1 пара 08:30-09:50").
		set(7, 2, "Литература Иванов А.А.").
		set(7, 3, "42").
		// строка после субботы закрывает неделю
		set(8, 0, "Конец недели").
		set(8, 1, "не время")
}

var loadMoscow = sync.OnceValues(func() (*time.Location, error) {
	return time.LoadLocation("Europe/Moscow")
})

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := loadMoscow()
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	return loc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

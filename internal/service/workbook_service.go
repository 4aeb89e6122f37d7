package service

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"escape_room_backend/internal/model"
	"escape_room_backend/internal/util"
	"escape_room_backend/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Header names accepted per column, lowercase. The original sheets are
// Hungarian; the English spellings are accepted too.
var (
	questionHeaders = []string{"kérdés", "kerdes", "question", "feladat"}
	answerHeaders   = []string{"megoldás", "megoldas", "answer", "válasz", "valasz"}
	lockHeaders     = []string{"lezárásperc", "lezarasperc", "lockminutes"}
	hintHeaders     = []string{"hint", "segítség", "segitseg"}
)

// WorkbookService owns the playable question set. One xlsx sheet is one
// room; a room needs a question column and an answer column, everything
// else is optional. Uploads swap the whole set atomically.
type WorkbookService struct {
	mu    sync.RWMutex
	rooms []model.Room
}

func NewWorkbookService() *WorkbookService {
	return &WorkbookService{}
}

// LoadFile loads a workbook from disk, typically at boot. A missing file
// is reported but callers treat it as "start without rooms".
func (s *WorkbookService) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.LoadBytes(data)
}

// LoadBytes parses workbook bytes and, when at least one valid room comes
// out, replaces the current set. An upload with no usable sheet leaves
// the previous set in place.
func (s *WorkbookService) LoadBytes(data []byte) error {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var rooms []model.Room
	for _, sheet := range f.GetSheetList() {
		room, ok := parseSheet(f, sheet)
		if !ok {
			logger.Log.Warn("sheet skipped, question or answer column missing",
				zap.String("sheet", sheet))
			continue
		}
		rooms = append(rooms, room)
	}

	if len(rooms) == 0 {
		return util.ErrNoValidSheets
	}

	s.mu.Lock()
	s.rooms = rooms
	s.mu.Unlock()

	logger.Log.Info("workbook loaded", zap.Int("rooms", len(rooms)))
	return nil
}

// Rooms lists the playable rooms in workbook order.
func (s *WorkbookService) Rooms() []model.RoomSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]model.RoomSummary, len(s.rooms))
	for i, room := range s.rooms {
		summaries[i] = model.RoomSummary{Name: room.Name, TotalQuestions: room.TotalQuestions()}
	}
	return summaries
}

// Room returns the named room, or false when it is not in the set.
func (s *WorkbookService) Room(name string) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, room := range s.rooms {
		if room.Name == name {
			return room, true
		}
	}
	return model.Room{}, false
}

func parseSheet(f *excelize.File, sheet string) (model.Room, bool) {
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		return model.Room{}, false
	}

	qCol := findColumn(rows[0], questionHeaders)
	aCol := findColumn(rows[0], answerHeaders)
	if qCol < 0 || aCol < 0 {
		return model.Room{}, false
	}
	lCol := findColumn(rows[0], lockHeaders)
	hCol := findColumn(rows[0], hintHeaders)

	var questions []model.Question
	for _, row := range rows[1:] {
		question := strings.TrimSpace(cell(row, qCol))
		key := strings.TrimSpace(cell(row, aCol))
		if question == "" || key == "" {
			continue
		}
		questions = append(questions, model.Question{
			Text:        question,
			AnswerKey:   key,
			LockMinutes: parseLockMinutes(cell(row, lCol)),
			Hint:        strings.TrimSpace(cell(row, hCol)),
		})
	}

	if len(questions) == 0 {
		return model.Room{}, false
	}
	return model.Room{Name: sheet, Questions: questions}, true
}

func findColumn(header []string, names []string) int {
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for _, name := range names {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// parseLockMinutes reads the lock duration in minutes. Sheets use comma
// decimals ("0,5"); anything unparsable or negative becomes zero, which
// later falls back to the default lockout.
func parseLockMinutes(raw string) float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0
	}
	minutes, err := strconv.ParseFloat(raw, 64)
	if err != nil || minutes < 0 {
		return 0
	}
	return minutes
}

// Template generates the sample workbook handed to game masters: one
// example room with the expected headers and one row per key syntax.
func (s *WorkbookService) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Szoba1"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]interface{}{
		{"Kérdés", "Megoldás", "LezárásPerc", "Hint"},
		{"Mi a piros és a kék keveréke?", "lila", 1, "Színkeverés"},
		{"Melyik szín jó? (több megoldás)", "piros|kék", "0,5", "Kettő is elfogadható"},
		{"Kód a lakaton (alpha + két számjegy)", `re:alpha\d{2}`, 2, "Nagybetű nem számít"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

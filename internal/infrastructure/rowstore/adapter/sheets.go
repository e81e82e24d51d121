package adapter

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/antonklochkov-droid/g5-meetup-bot/internal/infrastructure/rowstore/port"
)

// SheetsRowStore is an adapter that satisfies the port.RowStore interface
// using one worksheet of a Google spreadsheet. The key column is column A.
type SheetsRowStore struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	rowWidth      int
}

// NewSheetsRowStore constructs a store over the given worksheet using a
// service-account credentials file. rowWidth fixes the width of full-row
// writes and snapshot reads.
func NewSheetsRowStore(ctx context.Context, credentialsFile, spreadsheetID, sheetName string, rowWidth int) (*SheetsRowStore, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is required")
	}
	if sheetName == "" {
		return nil, fmt.Errorf("sheets: sheet name is required")
	}
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &SheetsRowStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		rowWidth:      rowWidth,
	}, nil
}

// Ensure interface compliance at compile time
var _ port.RowStore = (*SheetsRowStore)(nil)

func (s *SheetsRowStore) FindRowByKey(ctx context.Context, key string) (int, error) {
	rng := fmt.Sprintf("%s!A:A", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("sheets: read key column: %w", err)
	}
	// Skip the header row; sheet rows are 1-based.
	for i := 1; i < len(resp.Values); i++ {
		if len(resp.Values[i]) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(resp.Values[i][0])) == key {
			return i + 1, nil
		}
	}
	return 0, port.ErrNotFound
}

func (s *SheetsRowStore) AppendRow(ctx context.Context, values []string) error {
	rng := fmt.Sprintf("%s!A:%s", s.sheetName, columnLetter(s.rowWidth))
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

func (s *SheetsRowStore) UpdateRowRange(ctx context.Context, row int, values []string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", s.sheetName, row, columnLetter(s.rowWidth), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update row %d: %w", row, err)
	}
	return nil
}

func (s *SheetsRowStore) UpdateCell(ctx context.Context, row, col int, value string) error {
	cell := fmt.Sprintf("%s!%s%d", s.sheetName, columnLetter(col), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cell, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update cell %s: %w", cell, err)
	}
	return nil
}

func (s *SheetsRowStore) ReadAllRows(ctx context.Context) ([][]string, error) {
	rng := fmt.Sprintf("%s!A:%s", s.sheetName, columnLetter(s.rowWidth))
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read all rows: %w", err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// columnLetter converts a 1-based column index to its A1-notation letter(s).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

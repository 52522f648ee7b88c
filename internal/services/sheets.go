package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/vicsaltechstyle-dot/ChatVicSal/internal/models"
)

// Sink is the append destination for completed leads.
type Sink interface {
	Append(ctx context.Context, lead *models.Lead) error
	Healthy() bool
}

// SheetsSink appends leads to the first worksheet of a Google Sheets
// spreadsheet. The service client is acquired once at startup and reused
// for the process lifetime.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	worksheet     string
}

// NewSheetsSink connects to the target spreadsheet. The target may be a
// bare spreadsheet ID or a full docs.google.com URL. The first worksheet
// is resolved from spreadsheet metadata and used as the append range.
func NewSheetsSink(ctx context.Context, creds option.ClientOption, target string) (*SheetsSink, error) {
	spreadsheetID, err := extractSpreadsheetID(target)
	if err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx, creds, option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	meta, err := svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets(properties(title))").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(meta.Sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet %s has no worksheets", spreadsheetID)
	}

	return &SheetsSink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		worksheet:     meta.Sheets[0].Properties.Title,
	}, nil
}

// Append writes one lead as a row at the bottom of the first worksheet
func (s *SheetsSink) Append(ctx context.Context, lead *models.Lead) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{lead.Row()},
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, fmt.Sprintf("'%s'!A1", s.worksheet), values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}

	log.Printf("💾 Datos guardados: %s, %s", lead.Name, lead.SelectedOption)
	return nil
}

func (s *SheetsSink) Healthy() bool {
	return true
}

// extractSpreadsheetID accepts a spreadsheet ID or a docs.google.com URL
// of the form https://docs.google.com/spreadsheets/d/<id>/...
func extractSpreadsheetID(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("no spreadsheet target configured")
	}

	if !strings.Contains(target, "/") {
		return target, nil
	}

	const marker = "/spreadsheets/d/"
	idx := strings.Index(target, marker)
	if idx < 0 {
		return "", fmt.Errorf("unrecognized spreadsheet target: %s", target)
	}

	id := target[idx+len(marker):]
	if slash := strings.IndexAny(id, "/?#"); slash >= 0 {
		id = id[:slash]
	}
	if id == "" {
		return "", fmt.Errorf("unrecognized spreadsheet target: %s", target)
	}
	return id, nil
}

// UnavailableSink is the permanent fallback when credentials are missing
// or the spreadsheet could not be opened at startup. Every append fails,
// the dialogue still completes.
type UnavailableSink struct{}

func (UnavailableSink) Append(context.Context, *models.Lead) error {
	return fmt.Errorf("spreadsheet connection unavailable")
}

func (UnavailableSink) Healthy() bool {
	return false
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kamal-hamza/wp-cli/internal/core/domain"
	"github.com/kamal-hamza/wp-cli/internal/core/ports"
)

// ActionKind is what happened to a row
type ActionKind string

const (
	ActionWrite        ActionKind = "write"
	ActionDryRun       ActionKind = "dry-run"
	ActionSkipExisting ActionKind = "skip-existing"
	ActionSkipMissing  ActionKind = "skip-missing"
	ActionInvalid      ActionKind = "invalid"
)

// Action reports the outcome for a single row
type Action struct {
	Kind ActionKind
	Row  int
	ID   string
	Path string
	// Overwrite is set when a write replaced (or would replace) an existing page
	Overwrite bool
	// Err explains ActionInvalid
	Err error
}

// Summary accumulates per-row outcomes across a run
type Summary struct {
	Written int
	Skipped int
}

// Add folds one action into the summary
func (s Summary) Add(a Action) Summary {
	switch a.Kind {
	case ActionWrite, ActionDryRun:
		s.Written++
	default:
		s.Skipped++
	}
	return s
}

// GenerateService turns spreadsheet rows into work pages
type GenerateService struct {
	reader ports.TableReader
	repo   ports.DocumentRepository
	logger *slog.Logger
}

// NewGenerateService creates a new page generation service
func NewGenerateService(reader ports.TableReader, repo ports.DocumentRepository) *GenerateService {
	return &GenerateService{
		reader: reader,
		repo:   repo,
		logger: slog.Default(),
	}
}

// GenerateRequest represents a request to generate pages from a workbook
type GenerateRequest struct {
	Source string
	// Sheet selects a sheet by name; empty means the active sheet
	Sheet   string
	Options domain.BuildOptions
	// Write persists pages; otherwise the run only reports
	Write bool
	// Force replaces pages that already exist
	Force bool
	// ContinueOnError skips rows with malformed ids or dates instead of aborting
	ContinueOnError bool
	// OnAction, when set, is called as soon as each row is decided
	OnAction func(Action)
}

// GenerateResponse represents the outcome of a generation run
type GenerateResponse struct {
	Sheet   string
	Actions []Action
	Summary Summary
	// MissingColumns lists mandatory roles absent from the header row
	MissingColumns []domain.Role
}

// Execute reads the sheet and processes every row in table order.
// Structural problems and, unless ContinueOnError is set, malformed ids or
// dates abort the run; the partial response is returned with the error.
func (s *GenerateService) Execute(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	table, err := s.reader.Read(ctx, req.Source, req.Sheet)
	if err != nil {
		return nil, err
	}
	if table.IsEmpty() {
		return nil, domain.NewStructuralError(req.Source, domain.ErrEmptyTable)
	}

	resp := &GenerateResponse{
		Sheet:          table.Sheet,
		MissingColumns: req.Options.Columns.Missing(table),
	}
	s.logger.Debug("sheet loaded",
		"source", req.Source,
		"sheet", table.Sheet,
		"rows", len(table.Rows),
		"write", req.Write,
		"force", req.Force,
	)

	for _, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		action, err := s.processRow(ctx, row, req)
		if err != nil {
			return resp, err
		}

		resp.Actions = append(resp.Actions, action)
		resp.Summary = resp.Summary.Add(action)
		if req.OnAction != nil {
			req.OnAction(action)
		}
	}

	return resp, nil
}

// Render builds the page for the first row whose normalized id matches id
func (s *GenerateService) Render(ctx context.Context, req GenerateRequest, id string) (*domain.Document, error) {
	works, err := s.Works(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, w := range works {
		if w.ID == id {
			return w.Document(), nil
		}
	}
	return nil, fmt.Errorf("no row with id %s", id)
}

// Works normalizes every valid row without touching the repository.
// Rows with missing id or title are left out.
func (s *GenerateService) Works(ctx context.Context, req GenerateRequest) ([]*domain.Work, error) {
	table, err := s.reader.Read(ctx, req.Source, req.Sheet)
	if err != nil {
		return nil, err
	}
	if table.IsEmpty() {
		return nil, domain.NewStructuralError(req.Source, domain.ErrEmptyTable)
	}

	var works []*domain.Work
	for _, row := range table.Rows {
		w, err := domain.NewWork(row, req.Options)
		if errors.Is(err, domain.ErrMissingRequiredField) {
			continue
		}
		if err != nil {
			if req.ContinueOnError {
				continue
			}
			return nil, &domain.RowError{Row: row.Number, Err: err}
		}
		works = append(works, w)
	}
	return works, nil
}

func (s *GenerateService) processRow(ctx context.Context, row domain.Row, req GenerateRequest) (Action, error) {
	work, err := domain.NewWork(row, req.Options)
	if errors.Is(err, domain.ErrMissingRequiredField) {
		s.logger.Debug("row skipped", "row", row.Number, "reason", err)
		return Action{Kind: ActionSkipMissing, Row: row.Number}, nil
	}
	if err != nil {
		rowErr := &domain.RowError{Row: row.Number, Err: err}
		if req.ContinueOnError {
			s.logger.Warn("row invalid", "row", row.Number, "error", err)
			return Action{Kind: ActionInvalid, Row: row.Number, Err: rowErr}, nil
		}
		return Action{}, rowErr
	}

	doc := work.Document()
	path := s.repo.Path(doc.ID)

	exists, err := s.repo.Exists(ctx, doc.ID)
	if err != nil {
		return Action{}, &domain.RowError{Row: row.Number, ID: doc.ID, Err: err}
	}

	action := Action{Row: row.Number, ID: doc.ID, Path: path, Overwrite: exists}
	if exists && !req.Force {
		action.Kind = ActionSkipExisting
		return action, nil
	}

	if !req.Write {
		action.Kind = ActionDryRun
		return action, nil
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return Action{}, &domain.RowError{Row: row.Number, ID: doc.ID, Err: err}
	}
	s.logger.Debug("page written", "id", doc.ID, "path", path, "overwrite", exists)

	action.Kind = ActionWrite
	return action, nil
}

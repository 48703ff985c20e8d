package main

import (
	"bytes"
	"cellgrid/contracts"
	"fmt"
	"strings"
	"sync"

	"go.etcd.io/bbolt"
)

// SheetRepository multiplexes named in-memory sheets behind one mutex (the
// engine itself is single-threaded) and persists accepted edits write-through
// to bbolt, one bucket per sheet id, so sheets can be replayed on startup.
type SheetRepository struct {
	db                *bbolt.DB
	serializer        contracts.CellSerializer
	webhookDispatcher contracts.WebhookDispatcher

	mutex  sync.Mutex
	sheets map[string]*Sheet
}

func NewSheetRepository(
	db *bbolt.DB, serializer contracts.CellSerializer,
	webhookDispatcher contracts.WebhookDispatcher,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		serializer:        serializer,
		webhookDispatcher: webhookDispatcher,
		sheets:            map[string]*Sheet{},
	}
}

// LoadSheets replays every persisted bucket into a fresh engine. Records that
// no longer unmarshal or parse are skipped; the stored graph was acyclic when
// accepted, so replay order does not matter.
func (r *SheetRepository) LoadSheets() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bbolt.Bucket) error {
			sheet := NewSheet()
			r.sheets[string(name)] = sheet

			return bucket.ForEach(func(_ []byte, value []byte) error {
				pos, text, err := r.serializer.Unmarshal(value)
				if err != nil {
					return nil
				}

				_ = sheet.SetCell(pos, text)
				return nil
			})
		})
	})
}

func (r *SheetRepository) SetCell(sheetId string, cellId string, text string) (*contracts.CellData, error) {
	sheetId = strings.ToLower(sheetId)

	pos := contracts.PositionFromString(cellId)
	if !pos.IsValid() {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.InvalidPositionError)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sheet := r.sheets[sheetId]
	if sheet == nil {
		sheet = NewSheet()
		r.sheets[sheetId] = sheet
	}

	if err := sheet.SetCell(pos, text); err != nil {
		return nil, err
	}

	err := r.db.Batch(func(tx *bbolt.Tx) error {
		bucket, bucketErr := tx.CreateBucketIfNotExists([]byte(sheetId))
		if bucketErr != nil {
			return bucketErr
		}
		return bucket.Put([]byte(pos.String()), r.serializer.Marshal(pos, text))
	})
	if err != nil {
		return nil, err
	}

	cells := r.snapshotCells(sheet, append([]contracts.Position{pos}, sheet.GetDependents(pos)...))
	r.webhookDispatcher.Notify(sheetId, cells)

	return cells[0], nil
}

func (r *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.CellData, error) {
	sheetId = strings.ToLower(sheetId)

	pos := contracts.PositionFromString(cellId)
	if !pos.IsValid() {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.InvalidPositionError)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sheet := r.sheets[sheetId]
	if sheet == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	cell, _ := sheet.GetCell(pos)
	if cell == nil {
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}

	return r.makeCellData(sheet, pos), nil
}

func (r *SheetRepository) ClearCell(sheetId string, cellId string) error {
	sheetId = strings.ToLower(sheetId)

	pos := contracts.PositionFromString(cellId)
	if !pos.IsValid() {
		return fmt.Errorf("cell_id `%s`: %w", cellId, contracts.InvalidPositionError)
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sheet := r.sheets[sheetId]
	if sheet == nil {
		return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	dependents := sheet.GetDependents(pos)

	if err := sheet.ClearCell(pos); err != nil {
		return err
	}

	err := r.db.Batch(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(pos.String()))
	})
	if err != nil {
		return err
	}

	if len(dependents) > 0 {
		r.webhookDispatcher.Notify(sheetId, r.snapshotCells(sheet, dependents))
	}

	return nil
}

func (r *SheetRepository) GetGrid(sheetId string) (*contracts.GridData, error) {
	sheetId = strings.ToLower(sheetId)

	r.mutex.Lock()
	defer r.mutex.Unlock()

	sheet := r.sheets[sheetId]
	if sheet == nil {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	size := sheet.GetPrintableSize()

	values := bytes.Buffer{}
	sheet.PrintValues(&values)

	texts := bytes.Buffer{}
	sheet.PrintTexts(&texts)

	return &contracts.GridData{
		Rows:   size.Rows,
		Cols:   size.Cols,
		Values: values.String(),
		Texts:  texts.String(),
	}, nil
}

func (r *SheetRepository) snapshotCells(sheet *Sheet, positions []contracts.Position) []*contracts.CellData {
	cells := make([]*contracts.CellData, 0, len(positions))
	for _, pos := range positions {
		cells = append(cells, r.makeCellData(sheet, pos))
	}
	return cells
}

func (r *SheetRepository) makeCellData(sheet *Sheet, pos contracts.Position) *contracts.CellData {
	data := &contracts.CellData{CellId: pos.String()}

	cell, _ := sheet.GetCell(pos)
	if cell != nil {
		data.Text = cell.GetText()
		data.Value = contracts.FormatValue(cell.GetValue())
	}

	return data
}

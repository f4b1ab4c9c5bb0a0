// Package repo implements the data persistence layer for the workout
// tracker. This file implements the JSON export and import used by the
// CLI for backups and for moving data between drivers.
//
// Tables are processed in Models() order so parents are written before
// children on import. Rows that already exist are skipped.
package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// importBatchSize bounds the rows per INSERT during import.
const importBatchSize = 200

// TableCount reports how many rows were moved for one table.
type TableCount struct {
	Table string
	Rows  int
}

// ExportTables writes every table to dir as <table>.json (a JSON array of
// rows). The directory is created when missing.
func ExportTables(ctx context.Context, db *gorm.DB, dir string) ([]TableCount, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var out []TableCount
	for _, model := range Models() {
		table, err := tableName(db, model)
		if err != nil {
			return out, err
		}
		rows := newSliceOf(model)
		if err := db.WithContext(ctx).Model(model).Order("id asc").Find(rows.Addr().Interface()).Error; err != nil {
			return out, fmt.Errorf("export %s: %w", table, err)
		}
		b, err := json.MarshalIndent(rows.Interface(), "", "  ")
		if err != nil {
			return out, fmt.Errorf("encode %s: %w", table, err)
		}
		if err := os.WriteFile(filepath.Join(dir, table+".json"), b, 0o644); err != nil {
			return out, err
		}
		out = append(out, TableCount{Table: table, Rows: rows.Len()})
	}
	return out, nil
}

// ImportTables loads <table>.json files from dir in dependency order inside
// one transaction. Missing files are skipped; rows whose primary key already
// exists are left alone.
func ImportTables(ctx context.Context, db *gorm.DB, dir string) ([]TableCount, error) {
	var out []TableCount
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range Models() {
			table, err := tableName(tx, model)
			if err != nil {
				return err
			}
			b, err := os.ReadFile(filepath.Join(dir, table+".json"))
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return err
			}
			rows := newSliceOf(model)
			if err := json.Unmarshal(b, rows.Addr().Interface()); err != nil {
				return fmt.Errorf("decode %s: %w", table, err)
			}
			if rows.Len() == 0 {
				out = append(out, TableCount{Table: table})
				continue
			}
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Omit(clause.Associations).
				CreateInBatches(rows.Addr().Interface(), importBatchSize)
			if res.Error != nil {
				return fmt.Errorf("import %s: %w", table, res.Error)
			}
			out = append(out, TableCount{Table: table, Rows: int(res.RowsAffected)})
		}
		return nil
	})
	return out, err
}

func tableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

// newSliceOf returns an addressable, empty []T for a *T model.
func newSliceOf(model any) reflect.Value {
	t := reflect.TypeOf(model).Elem()
	return reflect.New(reflect.SliceOf(t)).Elem()
}

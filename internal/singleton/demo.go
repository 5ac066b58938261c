package singleton

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// Demo reaches the database through its accessor, adds, removes and lists
// items, and overwrites a duplicate.
type Demo struct {
	db     func() *Database
	diag   io.Writer
	logger *slog.Logger
}

// NewDemo creates the singleton demo. A nil accessor means Instance. Duplicate
// additions are reported to diag, or to the demo output when diag is nil.
func NewDemo(db func() *Database, diag io.Writer, logger *slog.Logger) *Demo {
	if db == nil {
		db = Instance
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Demo{db: db, diag: diag, logger: logger}
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Singleton"
}

// Run executes the demo.
func (d *Demo) Run(_ context.Context, out io.Writer) error {
	db := d.db()
	db.SetOutput(out)
	db.SetErrorOutput(d.diag)
	defer func() {
		db.SetOutput(nil)
		db.SetErrorOutput(nil)
	}()

	if err := d.add(db, "1", "Test1"); err != nil {
		return err
	}
	if err := d.add(db, "2", "Test2"); err != nil {
		return err
	}
	if err := db.List(); err != nil {
		return err
	}

	db.Remove("2")
	if err := db.List(); err != nil {
		return err
	}

	if err := d.add(db, "1", "InvalidTest"); err != nil {
		return err
	}
	return db.List()
}

// add stores an item; duplicates are logged and do not stop the demo.
func (d *Demo) add(db *Database, id, value string) error {
	err := db.Add(id, value)
	if errors.Is(err, ErrDuplicateItem) {
		d.logger.Warn("duplicate item overwritten", "id", id)
		return nil
	}
	return err
}

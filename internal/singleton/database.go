// Package singleton provides a process-wide keyed string store.
package singleton

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/tidwall/pretty"
)

// ErrDuplicateItem is returned by Add when the id was already present.
var ErrDuplicateItem = errors.New("item already exists")

var (
	instance     *Database
	instanceOnce sync.Once
)

// Instance returns the process-wide database, creating it on first use.
func Instance() *Database {
	instanceOnce.Do(func() {
		instance = New()
	})
	return instance
}

// Database stores values by id and remembers insertion order.
// It is safe for concurrent use.
type Database struct {
	mu     sync.RWMutex
	items  map[string]string
	order  []string
	out    io.Writer
	errOut io.Writer
}

// New creates an isolated database. Most callers want Instance.
func New() *Database {
	return &Database{
		items: make(map[string]string),
		out:   io.Discard,
	}
}

// SetOutput sets where operations are reported. Nil discards.
func (d *Database) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	d.mu.Lock()
	d.out = w
	d.mu.Unlock()
}

// SetErrorOutput sets where duplicate additions are reported. Nil reports
// them to the regular output.
func (d *Database) SetErrorOutput(w io.Writer) {
	d.mu.Lock()
	d.errOut = w
	d.mu.Unlock()
}

// Has reports whether id is stored.
func (d *Database) Has(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.items[id]
	return ok
}

// Get returns the value stored for id.
func (d *Database) Get(id string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.items[id]
	return v, ok
}

// Len returns the number of stored items.
func (d *Database) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.items)
}

// Add stores value under id. An existing id is reported and then
// overwritten in place; the returned ErrDuplicateItem is informational.
func (d *Database) Add(id, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var err error
	if _, ok := d.items[id]; ok {
		errOut := d.errOut
		if errOut == nil {
			errOut = d.out
		}
		fmt.Fprintf(errOut, "Item '%s' already exists in database!\n", id)
		err = fmt.Errorf("%w: %q", ErrDuplicateItem, id)
	} else {
		d.order = append(d.order, id)
	}
	d.items[id] = value
	fmt.Fprintf(d.out, "Added item %s\n", id)
	return err
}

// Remove deletes id. Removing a missing id is not an error.
func (d *Database) Remove(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.items[id]; ok {
		delete(d.items, id)
		d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	}
	fmt.Fprintf(d.out, "Removed item %s\n", id)
}

// JSON returns the content as a compact JSON object in insertion order.
func (d *Database) JSON() ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.items[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// List prints the content as JSON indented by two spaces.
func (d *Database) List() error {
	data, err := d.JSON()
	if err != nil {
		return err
	}
	out := bytes.TrimRight(pretty.Pretty(data), "\n")

	d.mu.RLock()
	w := d.out
	d.mu.RUnlock()

	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

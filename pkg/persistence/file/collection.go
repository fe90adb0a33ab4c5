package file

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// collection is a directory of JSON documents, one file per record. The mutex
// makes read-modify-write sequences (the execution counter in particular) safe
// across concurrent engine runs in one process.
type collection[T any] struct {
	mu  sync.RWMutex
	dir string
}

func newCollection[T any](root, name string) *collection[T] {
	return &collection[T]{dir: filepath.Join(root, name)}
}

func (c *collection[T]) get(id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.read(id)
}

func (c *collection[T]) save(id string, record *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.write(id, record)
}

func (c *collection[T]) delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.Remove(c.path(id))
	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}

	return nil
}

func (c *collection[T]) list() ([]*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files, err := fs.Glob(os.DirFS(c.dir), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]*T, 0, len(files))

	for _, file := range files {
		record, err := c.read(file[:len(file)-len(".json")])
		if err != nil {
			return nil, err
		}

		if record != nil {
			records = append(records, record)
		}
	}

	return records, nil
}

// update applies fn to an existing record under the write lock. fn receiving
// nil means the record does not exist; returning an error aborts the write.
func (c *collection[T]) update(id string, fn func(record *T) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, err := c.read(id)
	if err != nil {
		return err
	}

	err = fn(record)
	if err != nil {
		return err
	}

	return c.write(id, record)
}

func (c *collection[T]) path(id string) string {
	return filepath.Clean(path.Join(c.dir, id+".json"))
}

func (c *collection[T]) read(id string) (*T, error) {
	body, err := os.ReadFile(c.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read record %s: %w", id, err)
	}

	var record T

	err = json.Unmarshal(body, &record)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", id, err)
	}

	return &record, nil
}

func (c *collection[T]) write(id string, record *T) error {
	err := os.MkdirAll(c.dir, 0750)
	if err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", id, err)
	}

	return os.WriteFile(c.path(id), data, 0600)
}

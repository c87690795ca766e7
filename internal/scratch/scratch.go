// Package scratch hands out per-invocation temp file paths and deletes
// them all when the invocation is over, whatever the outcome.
package scratch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Dir tracks the scratch paths of one pipeline invocation.
// Acquire the Dir at the top of the pipeline and defer ReleaseAll.
type Dir struct {
	mu    sync.Mutex
	paths []string
}

func New() *Dir {
	return &Dir{}
}

// Acquire reserves a unique local path for the given logical name.
// The uuid suffix keeps concurrent invocations from colliding on the
// same scratch file. Nothing is created on disk yet.
func (d *Dir) Acquire(logicalName string) string {
	base := filepath.Base(logicalName)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	p := filepath.Join(os.TempDir(), fmt.Sprintf("%s_%s%s", stem, uuid.NewString(), ext))

	d.mu.Lock()
	d.paths = append(d.paths, p)
	d.mu.Unlock()

	return p
}

// ReleaseAll removes every acquired path. Missing files are fine —
// a step may have failed before writing its output. Removal failures
// are logged and swallowed: cleanup must never mask the real error.
func (d *Dir) ReleaseAll() {
	d.mu.Lock()
	paths := d.paths
	d.paths = nil
	d.mu.Unlock()

	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := os.Remove(p); err != nil {
			log.Printf("[scratch] remove %s fail: %v", p, err)
		}
	}
}

// File: internal/taint/catalog.go

package taint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// CatalogOptions tunes how a Catalog treats malformed configuration entries.
type CatalogOptions struct {
	// Strict aborts the whole load on the first malformed entry instead of
	// logging and skipping it.
	Strict bool
}

// Catalog maps JVM type descriptors to their loaded class summaries. Entries
// come from line-oriented configuration resources, one "descriptor:summary"
// pair per line. Lookups and loads may run concurrently; the stored
// ClassConfig values are shared read-only.
type Catalog struct {
	loader *ClassConfigLoader
	logger *zap.Logger
	opts   CatalogOptions

	mu      sync.RWMutex // Protects classes and skipped.
	classes map[string]*ClassConfig
	skipped int
}

// NewCatalog builds an empty catalog resolving states against domain (nil
// selects the default domain).
func NewCatalog(domain *Domain, logger *zap.Logger, opts CatalogOptions) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		loader:  NewClassConfigLoader(domain),
		logger:  logger.Named("taint_catalog"),
		opts:    opts,
		classes: make(map[string]*ClassConfig),
	}
}

// ParseEntry splits one configuration line into its descriptor and summary
// fields at the last colon. A line without a colon is a descriptor whose
// summary is absent, which is a distinct condition from an empty summary.
func ParseEntry(line string) (descriptor, summary string, err error) {
	idx := strings.LastIndex(line, ":")
	if idx < 0 {
		return strings.TrimSpace(line), "", ErrSummaryMissing
	}
	return strings.TrimSpace(line[:idx]), line[idx+1:], nil
}

// LoadReader reads configuration entries from r. Blank lines and lines
// starting with '#' are skipped. Each entry is pre-flighted against the
// grammars and then loaded; malformed entries are logged and skipped unless
// the catalog is strict, in which case the first one fails the whole load.
// Later entries for the same descriptor replace earlier ones.
func (c *Catalog) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := c.loadLine(line, lineNo); err != nil {
			if c.opts.Strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			c.logger.Warn("Skipping malformed catalog entry.",
				zap.Int("line", lineNo),
				zap.String("entry", line),
				zap.Error(err))
			c.mu.Lock()
			c.skipped++
			c.mu.Unlock()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading catalog: %w", err)
	}
	return nil
}

// LoadFile is LoadReader over the named file.
func (c *Catalog) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	if err := c.LoadReader(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (c *Catalog) loadLine(line string, lineNo int) error {
	descriptor, summary, err := ParseEntry(line)
	if err != nil {
		return err
	}
	trimmed := strings.TrimSpace(summary)
	if !Accepts(descriptor, trimmed) {
		// Distinguish the two failure sides for the log.
		if !typePattern.MatchString(descriptor) {
			return fmt.Errorf("invalid type descriptor %q", descriptor)
		}
		if trimmed == "" {
			return ErrEmptySummary
		}
		return fmt.Errorf("invalid summary %q", trimmed)
	}

	cfg, err := c.loader.Load(summary)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.classes[descriptor] = cfg
	c.mu.Unlock()
	return nil
}

// Lookup returns the summary configured for descriptor, if any.
func (c *Catalog) Lookup(descriptor string) (*ClassConfig, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.classes[descriptor]
	return cfg, ok
}

// Len returns the number of configured classes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// Skipped returns how many malformed entries were dropped across all loads.
func (c *Catalog) Skipped() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.skipped
}

package loader

import (
	"fmt"
	"os"

	"tabula/lib/pcache"
	"tabula/lib/table"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const cacheName = "loader"

// Cache memoizes ReadFile. Entries are keyed by path, file size and
// modification time and options, so an edited file is read again. Tables are
// immutable so the same instance is handed to every caller.
type Cache struct {
	pc     pcache.PCache
	logger *zap.Logger
}

// NewCache holds up to maxCells table cells, counted as rows times columns.
func NewCache(maxCells int64, logger *zap.Logger) (*Cache, error) {
	pc, err := pcache.NewPCache(maxCells, 1<<16)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{pc: pc, logger: logger}, nil
}

func (c *Cache) key(path string, opts Options) (uint64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	d := xxhash.New()
	_, _ = d.WriteString(fmt.Sprintf("%s|%d|%d|%s", path, info.Size(), info.ModTime().UnixNano(), opts))
	return d.Sum64(), nil
}

func (c *Cache) ReadFile(path string, opts Options) (*table.Table, error) {
	defer pcache.RecordStats(cacheName, c.pc)
	k, err := c.key(path, opts)
	if err != nil {
		return nil, err
	}
	if v, ok := c.pc.Get(k); ok {
		tbl := v.(*table.Table)
		c.logger.Debug("loader cache hit", zap.String("path", path), zap.Int("rows", tbl.NumRows()))
		return tbl, nil
	}
	tbl, err := ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	cost := int64(tbl.NumRows()) * int64(tbl.NumCols())
	if cost == 0 {
		cost = 1
	}
	if !c.pc.Set(k, tbl, cost) {
		c.logger.Debug("loader cache dropped table", zap.String("path", path))
	}
	c.logger.Info("loaded table",
		zap.String("path", path),
		zap.String("rows", humanize.Comma(int64(tbl.NumRows()))),
		zap.Int("columns", tbl.NumCols()),
	)
	return tbl, nil
}

func (c *Cache) Close() {
	c.pc.Close()
}

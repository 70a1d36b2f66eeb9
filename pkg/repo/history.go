package repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	HistoryPrefix = "sitemapserver-records-"
	HistorySuffix = ".json"
	CurrentKey    = HistoryPrefix + "current" + HistorySuffix

	// fixed width, so that keys sort chronologically
	historyKeyLayout = "20060102T150405.000000000Z"
)

type (
	// History keeps the current records snapshot and a limited number of backups
	History struct {
		l       *zap.Logger
		storage Storage
		dir     string
		limit   int
		now     func() time.Time
		mu      sync.RWMutex
	}
	HistoryOption func(*History)
)

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func HistoryWithLimit(v int) HistoryOption {
	return func(o *History) {
		o.limit = v
	}
}

// HistoryWithDir directory of the default filesystem storage
func HistoryWithDir(v string) HistoryOption {
	return func(o *History) {
		o.dir = v
	}
}

func HistoryWithStorage(v Storage) HistoryOption {
	return func(o *History) {
		o.storage = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func NewHistory(l *zap.Logger, opts ...HistoryOption) (*History, error) {
	inst := &History{
		l:     l.Named("history"),
		dir:   "/var/lib/sitemapserver",
		limit: 2,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(inst)
	}

	if inst.storage == nil {
		storage, err := NewFilesystemStorage(inst.dir)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create default filesystem storage")
		}
		inst.storage = storage
	}

	return inst, nil
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// Add stores data as a timestamped backup and as the current snapshot
func (h *History) Add(ctx context.Context, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	backupKey := HistoryPrefix + h.now().UTC().Format(historyKeyLayout) + HistorySuffix
	h.l.Debug("writing snapshot",
		zap.String("backup", backupKey),
		zap.String("current", CurrentKey),
		zap.Int("length", len(data)),
	)

	if err := h.storage.Write(ctx, backupKey, data); err != nil {
		return errors.Wrap(err, "failed to write backup snapshot")
	}
	if err := h.storage.Write(ctx, CurrentKey, data); err != nil {
		return errors.Wrap(err, "failed to write current snapshot")
	}
	if err := h.cleanup(ctx); err != nil {
		return errors.Wrap(err, "failed to clean up history")
	}
	return nil
}

// Current returns the current snapshot, os.ErrNotExist if there is none
func (h *History) Current(ctx context.Context) ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.storage.Read(ctx, CurrentKey)
}

func (h *History) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.storage.Close()
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

// backups newest first
func (h *History) backups(ctx context.Context) ([]string, error) {
	keys, err := h.storage.List(ctx, HistoryPrefix)
	if err != nil {
		return nil, err
	}
	var ret []string
	for _, key := range keys {
		if key != CurrentKey && strings.HasSuffix(key, HistorySuffix) {
			ret = append(ret, key)
		}
	}
	return ret, nil
}

func (h *History) cleanup(ctx context.Context) error {
	keys, err := h.backups(ctx)
	if err != nil {
		return errors.Wrap(err, "could not list backups")
	}
	if len(keys) <= h.limit {
		return nil
	}
	for _, key := range keys[h.limit:] {
		h.l.Debug("removing outdated backup", zap.String("key", key))
		if err := h.storage.Delete(ctx, key); err != nil {
			return errors.Wrapf(err, "could not remove backup %s", key)
		}
	}
	return nil
}

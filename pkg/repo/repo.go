package repo

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/metrics"
	"github.com/foomo/sitemapserver/responses"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Repo keeps the current snapshot of content records loaded from a Source
type (
	Repo struct {
		l            *zap.Logger
		source       Source
		poll         bool
		pollInterval time.Duration
		onLoaded     func()
		loaded       *atomic.Bool
		history      *History
		// only one update at a time
		updateLock  chan struct{}
		records     []*content.Record
		directory   map[string]*content.Record
		snapshot    []byte
		recordsLock sync.RWMutex
	}
	Option func(*Repo)
)

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

func New(l *zap.Logger, source Source, history *History, opts ...Option) *Repo {
	inst := &Repo{
		l:            l.Named("repo"),
		source:       source,
		loaded:       &atomic.Bool{},
		pollInterval: time.Minute,
		history:      history,
		updateLock:   make(chan struct{}, 1),
		directory:    map[string]*content.Record{},
	}

	for _, opt := range opts {
		opt(inst)
	}

	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Options
// ------------------------------------------------------------------------------------------------

func WithPoll(v bool) Option {
	return func(o *Repo) {
		o.poll = v
	}
}

func WithPollInterval(v time.Duration) Option {
	return func(o *Repo) {
		o.pollInterval = v
	}
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

func (r *Repo) Loaded() bool {
	return r.loaded.Load()
}

// Records returns a copy of the current, ordered snapshot
func (r *Repo) Records(ctx context.Context) ([]*content.Record, error) {
	if !r.Loaded() {
		return nil, ErrNotLoaded
	}
	r.recordsLock.RLock()
	defer r.recordsLock.RUnlock()
	ret := make([]*content.Record, 0, len(r.records))
	for _, record := range r.records {
		ret = append(ret, cloneRecord(record))
	}
	return ret, nil
}

// Record looks up a copy of a record by its path
func (r *Repo) Record(path string) (*content.Record, bool) {
	r.recordsLock.RLock()
	defer r.recordsLock.RUnlock()
	record, ok := r.directory[path]
	if !ok {
		return nil, false
	}
	return cloneRecord(record), true
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

// OnLoaded is called once after the first snapshot became available
func (r *Repo) OnLoaded(fn func()) {
	r.onLoaded = fn
}

// WriteRecordsBytes writes the current snapshot wrapped as service response,
// e.g: {"reply": [<records>]}. It falls back to the history when nothing has
// been loaded yet.
func (r *Repo) WriteRecordsBytes(ctx context.Context, w io.Writer) error {
	r.recordsLock.RLock()
	data := r.snapshot
	r.recordsLock.RUnlock()

	if len(data) == 0 {
		current, err := r.history.Current(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to read records from history")
		}
		data = current
	}

	if _, err := io.WriteString(w, `{"reply":`); err != nil {
		return errors.Wrap(err, "failed to write records prefix")
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(err, "failed to write records")
	}
	if _, err := io.WriteString(w, `}`); err != nil {
		return errors.Wrap(err, "failed to write records suffix")
	}
	return nil
}

// Update reloads all records from the source. Concurrent calls are rejected
// while an update is running.
func (r *Repo) Update(ctx context.Context) *responses.Update {
	r.l.Info("update triggered")

	start := time.Now()
	sourceRuntime, err := r.tryUpdate(ctx)
	updateResponse := &responses.Update{}
	updateResponse.Stats.SourceRuntime = sourceRuntime.Seconds()

	if err != nil {
		updateResponse.Success = false
		updateResponse.ErrorMessage = err.Error()
		updateResponse.Stats.NumberOfRecords = -1
		updateResponse.Stats.NumberOfDrafts = -1
		if !errors.Is(err, ErrUpdateRejected) {
			r.l.Error("failed to update records", zap.Error(err))
		}
	} else {
		updateResponse.Success = true
		r.recordsLock.RLock()
		for _, record := range r.records {
			updateResponse.Stats.NumberOfRecords++
			if !record.Published() {
				updateResponse.Stats.NumberOfDrafts++
			}
		}
		r.recordsLock.RUnlock()
	}
	updateResponse.Stats.OwnRuntime = time.Since(start).Seconds() - updateResponse.Stats.SourceRuntime
	return updateResponse
}

// Start restores the last snapshot, runs the initial update and polls the
// source, if enabled, until ctx is done
func (r *Repo) Start(ctx context.Context) error {
	l := r.l.Named("start")

	l.Debug("trying to restore previous records")
	if err := r.tryToRestoreCurrent(ctx); errors.Is(err, os.ErrNotExist) {
		l.Info("previous records snapshot does not exist")
	} else if err != nil {
		l.Warn("could not restore previous records", zap.Error(err))
	} else {
		l.Info("restored previous records")
	}

	if resp := r.Update(ctx); !resp.Success {
		l.Error("failed to update initial state",
			zap.String("error", resp.ErrorMessage),
			zap.Float64("own_runtime", resp.Stats.OwnRuntime),
			zap.Float64("source_runtime", resp.Stats.SourceRuntime),
		)
	}

	g, gCtx := errgroup.WithContext(ctx)
	if r.poll {
		g.Go(func() error {
			l.Debug("starting poll routine", zap.Duration("interval", r.pollInterval))
			return r.PollRoutine(gCtx)
		})
	}
	return g.Wait()
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (r *Repo) setRecords(records []*content.Record, directory map[string]*content.Record, snapshot []byte) {
	r.recordsLock.Lock()
	r.records = records
	r.directory = directory
	r.snapshot = snapshot
	r.recordsLock.Unlock()

	var drafts int
	for _, record := range records {
		if !record.Published() {
			drafts++
		}
	}
	metrics.RecordsGauge.WithLabelValues("published").Set(float64(len(records) - drafts))
	metrics.RecordsGauge.WithLabelValues("draft").Set(float64(drafts))

	if !r.loaded.Swap(true) {
		r.l.Info("initial records loaded", zap.Int("records", len(records)))
		if r.onLoaded != nil {
			r.onLoaded()
		}
	}
}

func cloneRecord(record *content.Record) *content.Record {
	cp := *record
	return &cp
}

// buildDirectory indexes records by path and rejects duplicates
func buildDirectory(records []*content.Record) (map[string]*content.Record, error) {
	directory := make(map[string]*content.Record, len(records))
	for i, record := range records {
		if record == nil {
			return nil, errors.Errorf("invalid record at index %d", i)
		}
		if _, ok := directory[record.Path]; ok {
			return nil, errors.New("duplicate record path: " + record.Path)
		}
		directory[record.Path] = record
	}
	return directory, nil
}

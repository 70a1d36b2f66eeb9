package repo

import (
	"context"
	"time"

	"github.com/foomo/sitemapserver/content"
	"github.com/foomo/sitemapserver/pkg/metrics"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var (
	json              = jsoniter.ConfigCompatibleWithStandardLibrary
	ErrUpdateRejected = errors.New("update rejected: update in progress")
	ErrNotLoaded      = errors.New("records not loaded yet")
)

func (r *Repo) PollRoutine(ctx context.Context) error {
	l := r.l.Named("routine.poll")
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.Debug("routine canceled", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
			if _, err := r.tryUpdate(ctx); errors.Is(err, ErrUpdateRejected) {
				l.Info("skipping poll, update in progress")
			} else if err != nil {
				l.Error("update failed", zap.Error(err))
			} else {
				l.Debug("update success")
			}
		}
	}
}

// tryUpdate limits resources and allows only one update at once
func (r *Repo) tryUpdate(ctx context.Context) (time.Duration, error) {
	select {
	case r.updateLock <- struct{}{}:
		defer func() { <-r.updateLock }()
	default:
		r.l.Info("update request rejected, previous update still running")
		return 0, ErrUpdateRejected
	}

	start := time.Now()
	l := r.l.With(zap.String("run_id", uuid.New().String()), zap.String("source", r.source.Name()))
	l.Info("update started")

	sourceRuntime, err := r.update(context.WithoutCancel(ctx), l)
	if err != nil {
		l.Error("update failed", zap.Error(err))
		metrics.UpdatesFailedCounter.WithLabelValues(r.source.Name()).Inc()
	} else {
		l.Info("update success")
		metrics.UpdatesCompletedCounter.WithLabelValues(r.source.Name()).Inc()
	}
	metrics.UpdateDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	return sourceRuntime, err
}

func (r *Repo) update(ctx context.Context, l *zap.Logger) (time.Duration, error) {
	start := time.Now()
	records, err := r.source.Records(ctx)
	sourceRuntime := time.Since(start)
	if err != nil {
		return sourceRuntime, errors.Wrap(err, "failed to load records from source")
	}
	if records == nil {
		records = []*content.Record{}
	}

	directory, err := buildDirectory(records)
	if err != nil {
		return sourceRuntime, errors.Wrap(err, "invalid records")
	}
	for _, record := range records {
		if record.Modified() == "" {
			l.Warn("record without date", zap.String("path", record.Path))
		}
	}

	snapshot, err := json.Marshal(records)
	if err != nil {
		return sourceRuntime, errors.Wrap(err, "failed to encode records")
	}
	r.setRecords(records, directory, snapshot)

	if err := r.history.Add(ctx, snapshot); err != nil {
		l.Error("could not persist records in history", zap.Error(err))
		metrics.HistoryPersistFailedCounter.WithLabelValues().Inc()
	} else {
		l.Debug("persisted records to history")
	}
	return sourceRuntime, nil
}

func (r *Repo) tryToRestoreCurrent(ctx context.Context) error {
	data, err := r.history.Current(ctx)
	if err != nil {
		return err
	}
	records, err := decodeRecords(data)
	if err != nil {
		return err
	}
	directory, err := buildDirectory(records)
	if err != nil {
		return errors.Wrap(err, "invalid records in history")
	}
	r.setRecords(records, directory, data)
	return nil
}

func decodeRecords(data []byte) ([]*content.Record, error) {
	var records []*content.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize records")
	}
	return records, nil
}

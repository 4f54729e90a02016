// Package archiver ships finished days to object storage: the primary
// artifacts (token, state, transaction) exported from the row store,
// plus optionally the derived artifacts (event, ohlcv). Every upload
// is downloaded back and hash-compared before the cursor advances, so
// a day is either fully archived or not archived at all.
package archiver

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"sedimentology/internal/dateutil"
	"sedimentology/internal/deriver"
	"sedimentology/internal/metrics"
)

// AdminStore is the cursor slice of the repository.
type AdminStore interface {
	LatestReplayedDate(ctx context.Context) (uint32, error)
	LatestArchivedDate(ctx context.Context, profile string) (uint32, error)
	AdvanceArchiverState(ctx context.Context, profile string, date uint32) error
}

type Worker struct {
	store    Store
	admin    AdminStore
	exporter *Exporter
	remote   RemoteCopier

	Profile    string
	Workdir    string
	RemotePath string

	// Deriver produces event/ohlcv artifacts; nil archives the primary
	// artifacts only.
	Deriver deriver.Deriver

	// CaughtUpSleep is the pause when every replayed day is archived.
	CaughtUpSleep time.Duration
}

func NewWorker(store Store, admin AdminStore, remote RemoteCopier, profile, workdir, remotePath string) *Worker {
	return &Worker{
		store:         store,
		admin:         admin,
		exporter:      NewExporter(store),
		remote:        remote,
		Profile:       profile,
		Workdir:       workdir,
		RemotePath:    remotePath,
		CaughtUpSleep: time.Hour,
	}
}

// Run archives one day per iteration until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			log.Println("[archiver] shutting down ...")
			return nil
		default:
		}

		latestReplayed, err := w.admin.LatestReplayedDate(ctx)
		if err != nil {
			return err
		}
		latestArchived, err := w.admin.LatestArchivedDate(ctx, w.Profile)
		if err != nil {
			return err
		}

		// >= is fail safe
		if latestArchived >= latestReplayed {
			log.Printf("[archiver] fully archived, sleeping for %s ...", w.CaughtUpSleep)
			select {
			case <-ctx.Done():
				log.Println("[archiver] shutting down ...")
				return nil
			case <-time.After(w.CaughtUpSleep):
			}
			continue
		}

		date := dateutil.NextYYYYMMDD(latestArchived)
		if err := w.archiveDay(ctx, date); err != nil {
			return fmt.Errorf("archive %d: %w", date, err)
		}

		metrics.ArchivedDays.WithLabelValues(w.Profile).Inc()
	}
}

// artifact couples a local tmp file with its remote name.
type artifact struct {
	kind string
	ext  string
}

var (
	primaryArtifacts = []artifact{
		{kind: "token", ext: "json.gz"},
		{kind: "state", ext: "json.gz"},
		{kind: "transaction", ext: "jsonl.gz"},
	}
	derivedArtifacts = []artifact{
		{kind: "event", ext: "jsonl.gz"},
		{kind: "ohlcv-daily", ext: "jsonl.gz"},
		{kind: "ohlcv-minutely", ext: "jsonl.gz"},
	}
)

func (w *Worker) tmpPath(kind string) string {
	return fmt.Sprintf("%s/%s.%s.tmp", w.Workdir, w.Profile, kind)
}

func (w *Worker) verifyPath(kind string) string {
	return fmt.Sprintf("%s/%s.%s.verify", w.Workdir, w.Profile, kind)
}

func (w *Worker) remotePath(a artifact, date uint32) string {
	yyyy, mmdd := dateutil.SplitYYYYMMDD(date)
	return fmt.Sprintf("%s/%s/%s/whirlpool-%s-%d.%s", w.RemotePath, yyyy, mmdd, a.kind, date, a.ext)
}

func (w *Worker) archiveDay(ctx context.Context, date uint32) error {
	log.Printf("[archiver] archiving %d ...", date)

	var cleanup []string
	defer func() {
		for _, path := range cleanup {
			os.Remove(path)
		}
	}()

	log.Println("[archiver] exporting token to tmp file ...")
	if err := w.exporter.ExportToken(ctx, date, w.tmpPath("token")); err != nil {
		return err
	}
	cleanup = append(cleanup, w.tmpPath("token"))

	log.Println("[archiver] exporting state to tmp file ...")
	if err := w.exporter.ExportState(ctx, date, w.tmpPath("state")); err != nil {
		return err
	}
	cleanup = append(cleanup, w.tmpPath("state"))

	log.Println("[archiver] exporting transaction to tmp file ...")
	if err := w.exporter.ExportTransaction(ctx, date, w.tmpPath("transaction")); err != nil {
		return err
	}
	cleanup = append(cleanup, w.tmpPath("transaction"))

	for _, a := range primaryArtifacts {
		if err := w.uploadAndVerify(ctx, a, date); err != nil {
			return err
		}
		cleanup = append(cleanup, w.verifyPath(a.kind))
	}

	if w.Deriver != nil {
		if err := w.deriveDay(ctx, date); err != nil {
			return err
		}
		for _, a := range derivedArtifacts {
			cleanup = append(cleanup, w.tmpPath(a.kind))
			if err := w.uploadAndVerify(ctx, a, date); err != nil {
				return err
			}
			cleanup = append(cleanup, w.verifyPath(a.kind))
		}
	}

	log.Printf("[archiver] updating latest archived date to %d ...", date)
	if err := w.admin.AdvanceArchiverState(ctx, w.Profile, date); err != nil {
		return err
	}
	log.Printf("[archiver] updated latest archived date to %d", date)
	return nil
}

// deriveDay produces the event and ohlcv artifacts. Derivation needs
// the previous day's closing state as its starting point, exported to
// a scratch file alongside the day's own artifacts.
func (w *Worker) deriveDay(ctx context.Context, date uint32) error {
	prevDate := dateutil.PrevYYYYMMDD(date)
	prevStatePath := w.tmpPath("prevstate")
	log.Printf("[archiver] exporting previous state (%d) to tmp file ...", prevDate)
	if err := w.exporter.ExportState(ctx, prevDate, prevStatePath); err != nil {
		return err
	}
	defer os.Remove(prevStatePath)

	log.Println("[archiver] deriving event ...")
	if err := w.Deriver.DeriveEvents(prevStatePath, w.tmpPath("token"), w.tmpPath("transaction"), w.tmpPath("event")); err != nil {
		return fmt.Errorf("derive event: %w", err)
	}

	log.Println("[archiver] deriving ohlcv ...")
	if err := w.Deriver.DeriveOHLCV(prevStatePath, w.tmpPath("token"), w.tmpPath("event"),
		w.tmpPath("ohlcv-daily"), w.tmpPath("ohlcv-minutely")); err != nil {
		return fmt.Errorf("derive ohlcv: %w", err)
	}
	return nil
}

// uploadAndVerify ships one artifact and proves the remote copy is
// byte-identical by downloading it back and comparing digests.
func (w *Worker) uploadAndVerify(ctx context.Context, a artifact, date uint32) error {
	local := w.tmpPath(a.kind)
	remote := w.remotePath(a, date)
	verify := w.verifyPath(a.kind)

	hash, err := sha256File(local)
	if err != nil {
		return err
	}
	log.Printf("[archiver] %s_hash = %s", a.kind, hash)

	log.Printf("[archiver] uploading %s to %s ...", local, remote)
	if err := w.remote.Copy(ctx, local, remote); err != nil {
		return err
	}

	log.Printf("[archiver] downloading %s to %s ...", remote, verify)
	if err := w.remote.Copy(ctx, remote, verify); err != nil {
		return err
	}

	verifyHash, err := sha256File(verify)
	if err != nil {
		return err
	}
	if hash != verifyHash {
		return fmt.Errorf("%s verify failed: uploaded %s, downloaded %s", a.kind, hash, verifyHash)
	}
	return nil
}

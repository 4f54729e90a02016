package distributor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"sedimentology/internal/models"
)

// insertChunkSize bounds the rows per INSERT statement. One row per
// statement is too chatty for a distant destination, so rows go in
// multi-VALUES batches.
const insertChunkSize = 32

// EncodedSlot is one slot record ready for the destination: the slot
// metadata plus the compressed JSON body.
type EncodedSlot struct {
	Slot    models.Slot
	Data    []byte
	RawSize int
}

// TLSFiles points at DER-encoded client credentials for a destination
// requiring mutual TLS.
type TLSFiles struct {
	Cert   string
	Key    string
	RootCA string
}

// DestRepository wraps the destination database: the mirrored
// transactions table and its cursor row.
type DestRepository struct {
	db *pgxpool.Pool
}

// NewDestRepository connects to the destination. tlsFiles may be nil
// when the DSN already carries the TLS mode. Connection-level
// compression stays off; the rows are already compressed.
func NewDestRepository(ctx context.Context, dsn string, tlsFiles *TLSFiles) (*DestRepository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dest dsn: %w", err)
	}
	if tlsFiles != nil {
		tlsCfg, err := tlsFiles.config(cfg.ConnConfig.Host)
		if err != nil {
			return nil, err
		}
		cfg.ConnConfig.TLSConfig = tlsCfg
	}

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect dest database: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping dest database: %w", err)
	}
	return &DestRepository{db: db}, nil
}

func (t *TLSFiles) config(serverName string) (*tls.Config, error) {
	certDER, err := os.ReadFile(t.Cert)
	if err != nil {
		return nil, fmt.Errorf("read client cert: %w", err)
	}
	keyDER, err := os.ReadFile(t.Key)
	if err != nil {
		return nil, fmt.Errorf("read client key: %w", err)
	}
	key, err := parsePrivateKeyDER(keyDER)
	if err != nil {
		return nil, err
	}
	caDER, err := os.ReadFile(t.RootCA)
	if err != nil {
		return nil, fmt.Errorf("read root ca: %w", err)
	}
	ca, err := x509.ParseCertificate(caDER)
	if err != nil {
		return nil, fmt.Errorf("parse root ca: %w", err)
	}

	roots := x509.NewCertPool()
	roots.AddCert(ca)
	return &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{certDER}, PrivateKey: key}},
		RootCAs:      roots,
		ServerName:   serverName,
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func parsePrivateKeyDER(der []byte) (any, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	return nil, fmt.Errorf("client key is not PKCS8, EC or PKCS1 DER")
}

func (d *DestRepository) Close() {
	d.db.Close()
}

// Cursor reads the destination-side cursor.
func (d *DestRepository) Cursor(ctx context.Context) (models.Cursor, error) {
	var c models.Cursor
	err := d.db.QueryRow(ctx, `
		SELECT latestDistributedBlockSlot, latestDistributedBlockHeight, latestDistributedBlockTime
		FROM admDistributorDestState`).Scan(&c.Slot, &c.BlockHeight, &c.BlockTime)
	if err != nil {
		return models.Cursor{}, fmt.Errorf("fetch dest cursor: %w", err)
	}
	return c, nil
}

// StoreTransactions lands one batch in a single transaction: the row
// inserts, the retention delete, and the destination cursor update.
// Either the whole batch becomes visible or none of it does.
func (d *DestRepository) StoreTransactions(ctx context.Context, batch []EncodedSlot, keepBlockHeight uint64) error {
	if len(batch) == 0 {
		return fmt.Errorf("empty batch")
	}

	tx, err := d.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin dest tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for start := 0; start < len(batch); start += insertChunkSize {
		chunk := batch[start:]
		if len(chunk) > insertChunkSize {
			chunk = chunk[:insertChunkSize]
		}

		var b strings.Builder
		b.WriteString("INSERT INTO transactions (slot, blockHeight, blockTime, data) VALUES ")
		args := make([]any, 0, len(chunk)*4)
		for i, row := range chunk {
			if i > 0 {
				b.WriteString(", ")
			}
			n := i * 4
			fmt.Fprintf(&b, "($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4)
			args = append(args, row.Slot.Slot, row.Slot.BlockHeight, row.Slot.BlockTime, row.Data)
		}
		if _, err := tx.Exec(ctx, b.String(), args...); err != nil {
			return fmt.Errorf("insert transactions: %w", err)
		}
	}

	latest := batch[len(batch)-1].Slot
	threshold := RetentionThreshold(latest.BlockHeight, keepBlockHeight)
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE blockHeight < $1`, threshold); err != nil {
		return fmt.Errorf("retention delete: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE admDistributorDestState
		SET latestDistributedBlockSlot = $1,
		    latestDistributedBlockHeight = $2,
		    latestDistributedBlockTime = $3`,
		latest.Slot, latest.BlockHeight, latest.BlockTime)
	if err != nil {
		return fmt.Errorf("update dest cursor: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit dest tx: %w", err)
	}
	return nil
}

// RetentionThreshold returns the first blockHeight worth keeping.
// Saturates at zero while the chain is younger than the window.
func RetentionThreshold(latestBlockHeight, keepBlockHeight uint64) uint64 {
	if keepBlockHeight > latestBlockHeight {
		return 0
	}
	return latestBlockHeight - keepBlockHeight
}

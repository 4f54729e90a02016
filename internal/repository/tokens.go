package repository

import (
	"context"
	"fmt"

	"sedimentology/internal/models"
)

// FetchTokenDecimals resolves the decimals of every token mint that
// appears in a pool or reward initialization up to maxTxid.
//
// This assumes backfilling is complete: every mint referenced by the
// account set must have its initialization instruction indexed.
// resolveDecimals is a server-side function of the source schema.
func (r *Repository) FetchTokenDecimals(ctx context.Context, maxTxid uint64) ([]models.TokenDecimals, error) {
	rows, err := r.db.Query(ctx, `
		SELECT toPubkeyBase58(mints.mint), resolveDecimals(mints.mint)
		FROM (
		          SELECT keyTokenMintA mint FROM ixsInitializePool WHERE txid <= $1
		    UNION SELECT keyTokenMintB mint FROM ixsInitializePool WHERE txid <= $1
		    UNION SELECT keyTokenMintA mint FROM ixsInitializePoolV2 WHERE txid <= $1
		    UNION SELECT keyTokenMintB mint FROM ixsInitializePoolV2 WHERE txid <= $1
		    UNION SELECT keyTokenMintA mint FROM ixsInitializePoolWithAdaptiveFee WHERE txid <= $1
		    UNION SELECT keyTokenMintB mint FROM ixsInitializePoolWithAdaptiveFee WHERE txid <= $1
		    UNION SELECT keyRewardMint mint FROM ixsInitializeReward WHERE txid <= $1
		    UNION SELECT keyRewardMint mint FROM ixsInitializeRewardV2 WHERE txid <= $1
		) mints`, maxTxid)
	if err != nil {
		return nil, fmt.Errorf("fetch token decimals: %w", err)
	}
	defer rows.Close()

	var out []models.TokenDecimals
	for rows.Next() {
		var td models.TokenDecimals
		if err := rows.Scan(&td.Mint, &td.Decimals); err != nil {
			return nil, fmt.Errorf("scan token decimals row: %w", err)
		}
		out = append(out, td)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch token decimals: %w", err)
	}
	return out, nil
}

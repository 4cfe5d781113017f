package billing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mfp/backend/internal/models"
)

const numberPrefix = "FAT"

// FormatNumber renders an invoice number, e.g. FAT-2026-00042. The sequence
// is global and monotonically increasing; the year reflects issuance only and
// does not reset the counter.
func FormatNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", numberPrefix, year, seq)
}

// nextNumber allocates the next invoice number inside tx. The counter row is
// locked for the duration of the enclosing transaction, so two concurrent
// creations cannot observe the same value. Counting invoice rows instead
// would race under concurrent writers.
func nextNumber(tx *gorm.DB, issuedAt time.Time) (string, error) {
	q := tx
	// SQLite serializes writers on its own and rejects FOR UPDATE.
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var seq models.InvoiceSequence
	if err := q.First(&seq).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("load invoice sequence: %w", err)
		}
		seq = models.InvoiceSequence{}
		if err := tx.Create(&seq).Error; err != nil {
			return "", fmt.Errorf("init invoice sequence: %w", err)
		}
	}
	seq.Value++
	if err := tx.Save(&seq).Error; err != nil {
		return "", fmt.Errorf("advance invoice sequence: %w", err)
	}
	return FormatNumber(issuedAt.Year(), seq.Value), nil
}

// isNumberConflict reports whether err is a unique violation on the invoice
// number, i.e. a lost allocation race. The service retries these
// transparently instead of surfacing them.
func isNumberConflict(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return (strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")) &&
		strings.Contains(msg, "number")
}

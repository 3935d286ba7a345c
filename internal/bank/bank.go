// Package bank maintains the durable question pool: an insertion-ordered,
// text-deduplicated collection capped at MaxBankSize, evicting oldest
// entries first.
package bank

import (
	"github.com/ddelfanti/fisica-milionaria-bot/internal/domain/entities"
)

// MaxBankSize caps the bank; the most recent questions win.
const MaxBankSize = 120

// Merge appends the incoming questions whose text is not already present,
// dropping invalid ones, and truncates the oldest entries when the cap is
// exceeded. The input slices are not modified; when nothing changes the
// original bank slice is returned as-is.
func Merge(bank, incoming []entities.Question) []entities.Question {
	known := make(map[string]struct{}, len(bank))
	for _, q := range bank {
		known[q.Text] = struct{}{}
	}

	fresh := make([]entities.Question, 0, len(incoming))
	for _, q := range incoming {
		if _, ok := known[q.Text]; ok {
			continue
		}
		if q.Validate() != nil {
			continue
		}
		known[q.Text] = struct{}{}
		fresh = append(fresh, q)
	}

	if len(fresh) == 0 {
		return bank
	}

	merged := make([]entities.Question, 0, len(bank)+len(fresh))
	merged = append(merged, bank...)
	merged = append(merged, fresh...)
	if len(merged) > MaxBankSize {
		merged = merged[len(merged)-MaxBankSize:]
	}
	return merged
}

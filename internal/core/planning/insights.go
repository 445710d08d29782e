package planning

import (
	"sort"
	"time"

	"github.com/peraplan/peraplan_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	topCategoryCount      = 5
	topTransactionsPerCat = 3
)

// fallbackPalette supplies colors for categories that have none configured.
// Assignment cycles by rank, so a category's color is stable within one
// result set but not across different datasets.
var fallbackPalette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7",
}

// CategoryInsight is one ranked expense category with drill-down detail.
type CategoryInsight struct {
	CategoryID      string               `json:"categoryID"`
	Name            string               `json:"name"`
	Color           string               `json:"color"`
	Total           decimal.Decimal      `json:"total"`
	Percentage      float64              `json:"percentage"` // share of the shown top categories, not of all spending
	TopTransactions []domain.Transaction `json:"topTransactions"`
}

// CategoryInsights ranks expense categories by posted debit volume inside
// [rangeStart, rangeEnd], keeping the top five. Ties keep the order in which
// categories first appear in the transaction list. Each insight carries its
// three largest transactions for drill-down.
func CategoryInsights(snap Snapshot, rangeStart, rangeEnd time.Time) []CategoryInsight {
	totals := make(map[string]decimal.Decimal)
	txnsByCategory := make(map[string][]domain.Transaction)
	var order []string // first-seen order, the tie-break

	for _, txn := range snap.Transactions {
		if !txn.IsPosted || txn.TransactionType != domain.Debit || txn.CategoryID == "" {
			continue
		}
		if !inWindow(txn.TransactionDate, rangeStart, rangeEnd) {
			continue
		}
		if _, seen := totals[txn.CategoryID]; !seen {
			order = append(order, txn.CategoryID)
		}
		totals[txn.CategoryID] = totals[txn.CategoryID].Add(txn.Amount)
		txnsByCategory[txn.CategoryID] = append(txnsByCategory[txn.CategoryID], txn)
	}

	// Stable sort over first-seen order keeps equal totals in input order.
	ranked := make([]string, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return totals[ranked[i]].GreaterThan(totals[ranked[j]])
	})
	if len(ranked) > topCategoryCount {
		ranked = ranked[:topCategoryCount]
	}

	shownTotal := decimal.Zero
	for _, id := range ranked {
		shownTotal = shownTotal.Add(totals[id])
	}

	insights := make([]CategoryInsight, 0, len(ranked))
	for rank, id := range ranked {
		insight := CategoryInsight{
			CategoryID: id,
			Name:       id,
			Total:      totals[id],
		}
		if cat, ok := snap.CategoryByID(id); ok {
			insight.Name = cat.Name
			insight.Color = cat.Color
		}
		if insight.Color == "" {
			insight.Color = fallbackPalette[rank%len(fallbackPalette)]
		}
		if shownTotal.IsPositive() {
			insight.Percentage, _ = totals[id].Div(shownTotal).Mul(decimal.NewFromInt(100)).Float64()
		}

		txns := txnsByCategory[id]
		sort.SliceStable(txns, func(i, j int) bool {
			return txns[i].Amount.GreaterThan(txns[j].Amount)
		})
		if len(txns) > topTransactionsPerCat {
			txns = txns[:topTransactionsPerCat]
		}
		insight.TopTransactions = txns

		insights = append(insights, insight)
	}
	return insights
}

package service

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmynk/billease/internal/storage"
)

// ExportPattern is the route ExportHandler expects to be mounted on.
const ExportPattern = "GET /export/{file}"

// ExportHandler serves the final split of a bill as CSV at
// /export/{billID}.csv, with a name,amount row per participant.
func ExportHandler(store storage.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		billID, ok := strings.CutSuffix(r.PathValue("file"), ".csv")
		if !ok || billID == "" {
			http.NotFound(w, r)
			return
		}

		bill, err := store.GetBill(r.Context(), billID)
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			slog.Error("Export failed", "bill_id", billID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if bill.Result == nil {
			http.Error(w, "bill has not been calculated", http.StatusConflict)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="bill_split_summary.csv"`)

		cw := csv.NewWriter(w)
		_ = cw.Write([]string{"name", "amount"})
		for _, split := range bill.Result.Splits {
			_ = cw.Write([]string{split.Participant, split.Amount.StringFixed(2)})
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			slog.Error("Export write failed", "bill_id", billID, "error", err)
		}
	})
}

package http

import (
	"fmt"
	"io"
	"net/http"

	"splittab/internal/core"
	"splittab/internal/csvcodec"
	"splittab/internal/log"
)

const maxImportBytes = 4 << 20

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	display := s.displayCurrency(r)
	cat := s.catalog(r)
	snap := s.led.Snapshot()

	var date core.Month
	for _, e := range snap.Expenses {
		if !e.Date.IsZero() {
			date = e.Date
			break
		}
	}

	filename := csvcodec.Filename(date, cat)
	text := csvcodec.Marshal(snap, display, cat)

	s.logger.InfoContext(r.Context(), "Ledger exported",
		log.FieldOperation, log.OpExport,
		log.FieldFilename, filename,
		log.FieldCount, len(snap.Expenses),
		log.FieldCurrency, string(display))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

// handleImport replaces the whole ledger with the uploaded CSV. Malformed
// rows are skipped; a readable file always imports.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		BadRequestError("Invalid upload").Write(w)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Missing file").Write(w)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		BadRequestError("Could not read file").Write(w)
		return
	}

	snap := csvcodec.Unmarshal(string(data))
	s.led.Replace(snap)

	s.logger.InfoContext(r.Context(), "Ledger imported",
		log.FieldOperation, log.OpImport,
		log.FieldCount, len(snap.Expenses),
		log.FieldRevision, s.led.Revision())

	rb := NewResponse().
		TriggerLedgerChanged().
		TriggerSuccessNotification(fmt.Sprintf("Imported %d expenses", len(snap.Expenses)))
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

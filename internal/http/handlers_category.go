package http

import (
	"net/http"

	"splittab/internal/core"
	"splittab/internal/ledger"
	"splittab/internal/log"
)

func (s *Server) handleUpsertCategory(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrFail(w, r) {
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	icon := sanitizeInput(r.Form.Get("icon"))
	if icon == "" {
		icon = core.DefaultIcon
	}

	key, err := s.led.UpsertCategory(name, icon)
	if err != nil {
		UnprocessableEntityError("Category name cannot be empty").Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Category upserted",
		log.FieldOperation, log.OpAdd,
		log.FieldCategoryKey, key,
		log.FieldRevision, s.led.Revision())

	rb := NewResponse().TriggerFormReset().TriggerLedgerChanged()
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) {
	key, ok := categoryKey(r)
	if !ok {
		NotFoundError("Unknown category").Write(w)
		return
	}
	if !parseFormOrFail(w, r) {
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	icon := sanitizeInput(r.Form.Get("icon"))

	if err := s.led.EditCategory(key, name, icon); err != nil {
		NotFoundError("Unknown category").Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Category edited",
		log.FieldOperation, log.OpEdit,
		log.FieldCategoryKey, key,
		log.FieldRevision, s.led.Revision())

	rb := NewResponse().TriggerLedgerChanged()
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	key, ok := categoryKey(r)
	if !ok {
		NotFoundError("Unknown category").Write(w)
		return
	}
	if _, found := s.led.Category(key); !found {
		NotFoundError("Unknown category").Write(w)
		return
	}

	mode := ledger.ParseDeleteMode(r.URL.Query().Get("mode"))
	s.led.DeleteCategory(key, mode)

	s.logger.InfoContext(r.Context(), "Category deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldCategoryKey, key,
		log.FieldDeleteMode, string(mode),
		log.FieldRevision, s.led.Revision())

	rb := NewResponse().TriggerLedgerChanged()
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

func (s *Server) handleToggleCategory(w http.ResponseWriter, r *http.Request) {
	key, ok := categoryKey(r)
	if !ok {
		NotFoundError("Unknown category").Write(w)
		return
	}
	// Orphaned keys still have a section in the list, so select-all on
	// them must keep working.
	if _, found := s.led.Category(key); !found && !s.led.HasExpensesIn(key) {
		NotFoundError("Unknown category").Write(w)
		return
	}

	s.led.ToggleSelectAllInCategory(key)
	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}

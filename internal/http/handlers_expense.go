package http

import (
	"errors"
	"net/http"

	"splittab/internal/core"
	"splittab/internal/ledger"
	"splittab/internal/log"
)

func (s *Server) handleCreateExpenses(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrFail(w, r) {
		return
	}

	rawAmount := sanitizeInput(r.Form.Get("amount"))
	rawDescription := sanitizeInput(r.Form.Get("description"))
	currency := s.formCurrency(r)
	category := sanitizeInput(r.Form.Get("category"))
	date := formMonth(r)

	created, err := s.led.AddExpenses(rawAmount, rawDescription, currency, category, date)
	if err != nil {
		if errors.Is(err, core.ErrCountMismatch) {
			UnprocessableEntityError(err.Error()).Write(w)
			return
		}
		s.logger.ErrorContext(r.Context(), "Failed to add expenses",
			log.FieldError, err, log.FieldOperation, log.OpAdd)
		InternalServerError("Error saving expense").Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Expenses added",
		log.FieldOperation, log.OpAdd,
		log.FieldCount, len(created),
		log.FieldCurrency, string(currency),
		log.FieldCategoryKey, category,
		log.FieldRevision, s.led.Revision())

	rb := NewResponse().TriggerFormReset()
	if len(created) > 0 {
		rb.TriggerSuccessNotification("Expense recorded")
	}
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(r)
	if !ok {
		NotFoundError("Unknown expense").Write(w)
		return
	}
	if !parseFormOrFail(w, r) {
		return
	}

	edit := ledger.ExpenseEdit{
		Description: sanitizeInput(r.Form.Get("description")),
		RawAmount:   sanitizeInput(r.Form.Get("amount")),
		Currency:    s.formCurrency(r),
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        formMonth(r),
	}
	if err := s.led.EditExpense(id, edit); err != nil {
		NotFoundError("Unknown expense").Write(w)
		return
	}

	s.logger.InfoContext(r.Context(), "Expense edited",
		log.FieldOperation, log.OpEdit,
		log.FieldExpenseID, id,
		log.FieldRevision, s.led.Revision())

	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(r)
	if !ok {
		NotFoundError("Unknown expense").Write(w)
		return
	}
	if _, found := s.led.Expense(id); !found {
		NotFoundError("Unknown expense").Write(w)
		return
	}

	s.led.DeleteExpense(id)
	s.logger.InfoContext(r.Context(), "Expense deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, id,
		log.FieldRevision, s.led.Revision())

	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}

func (s *Server) handleToggleExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(r)
	if !ok {
		NotFoundError("Unknown expense").Write(w)
		return
	}
	if _, found := s.led.Expense(id); !found {
		NotFoundError("Unknown expense").Write(w)
		return
	}

	s.led.ToggleSelect(id)
	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}

// handleEditCursor toggles the inline edit cursor for one expense.
func (s *Server) handleEditCursor(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(r)
	if !ok {
		NotFoundError("Unknown expense").Write(w)
		return
	}
	if _, found := s.led.Expense(id); !found {
		NotFoundError("Unknown expense").Write(w)
		return
	}

	if s.led.Editing() == id {
		s.led.SetEditing(0)
	} else {
		s.led.SetEditing(id)
	}
	s.writeExpenseList(w, r, s.displayCurrency(r), s.catalog(r))
}

func (s *Server) handleBatchEdit(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrFail(w, r) {
		return
	}

	description := sanitizeInput(r.Form.Get("description"))
	category := sanitizeInput(r.Form.Get("category"))
	affected := s.led.SelectedCount()

	s.led.ApplyBatchEdit(description, category)

	s.logger.InfoContext(r.Context(), "Batch edit applied",
		log.FieldOperation, log.OpBatchEdit,
		log.FieldCount, affected,
		log.FieldCategoryKey, category,
		log.FieldRevision, s.led.Revision())

	rb := NewResponse()
	if affected > 0 && (description != "" || category != "") {
		rb.TriggerSuccessNotification("Batch edit applied")
	}
	s.writeListWith(w, r, s.displayCurrency(r), s.catalog(r), rb)
}

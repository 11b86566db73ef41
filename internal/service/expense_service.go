package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"alkhaled/internal/model"
	"alkhaled/internal/store"
	ws "alkhaled/internal/websocket"
)

// --- DTOs ---

type ExpenseRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Date        string          `json:"date" binding:"required"` // YYYY-MM-DD
}

// --- Interface ---

type ExpenseService interface {
	ListExpenses() []model.Expense
	CreateExpense(req ExpenseRequest) (model.Expense, error)
	UpdateExpense(id int64, req ExpenseRequest) (model.Expense, error)
	DeleteExpense(id int64) error
}

type expenseService struct {
	ctrl *store.Controller
	hub  *ws.Hub
}

func NewExpenseService(ctrl *store.Controller, hub *ws.Hub) ExpenseService {
	return &expenseService{ctrl: ctrl, hub: hub}
}

// --- Implementation ---

func (s *expenseService) ListExpenses() []model.Expense {
	var out []model.Expense
	s.ctrl.View(func(doc *model.Document) {
		out = make([]model.Expense, len(doc.Expenses))
		copy(out, doc.Expenses)
	})
	return out
}

func (s *expenseService) CreateExpense(req ExpenseRequest) (model.Expense, error) {
	var expense model.Expense
	err := s.ctrl.Update(func(doc *model.Document) error {
		expense = model.Expense{
			ID:          model.NewID(),
			Description: req.Description,
			Amount:      req.Amount,
			Category:    req.Category,
			Date:        req.Date,
		}
		doc.Expenses = append([]model.Expense{expense}, doc.Expenses...)
		pushToast(doc, s.hub, "تم حفظ المصروف بنجاح", model.ToastSuccess)
		return nil
	})
	return expense, err
}

func (s *expenseService) UpdateExpense(id int64, req ExpenseRequest) (model.Expense, error) {
	var expense model.Expense
	err := s.ctrl.Update(func(doc *model.Document) error {
		for i := range doc.Expenses {
			if doc.Expenses[i].ID == id {
				doc.Expenses[i] = model.Expense{
					ID:          id,
					Description: req.Description,
					Amount:      req.Amount,
					Category:    req.Category,
					Date:        req.Date,
				}
				expense = doc.Expenses[i]
				pushToast(doc, s.hub, "تم حفظ المصروف بنجاح", model.ToastSuccess)
				return nil
			}
		}
		return fmt.Errorf("expense %d: %w", id, ErrNotFound)
	})
	return expense, err
}

func (s *expenseService) DeleteExpense(id int64) error {
	return s.ctrl.Update(func(doc *model.Document) error {
		kept := doc.Expenses[:0]
		for _, exp := range doc.Expenses {
			if exp.ID != id {
				kept = append(kept, exp)
			}
		}
		doc.Expenses = kept
		pushToast(doc, s.hub, "تم حذف المصروف بنجاح", model.ToastSuccess)
		return nil
	})
}

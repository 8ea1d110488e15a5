package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ops_tracker/internal/apperrors"
	"github.com/SscSPs/ops_tracker/internal/core/domain"
	"github.com/SscSPs/ops_tracker/internal/core/services"
	"github.com/SscSPs/ops_tracker/internal/dto"
	"github.com/SscSPs/ops_tracker/internal/repositories/memory"
	"github.com/SscSPs/ops_tracker/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

type ContextControllerTestSuite struct {
	suite.Suite
	ctx         context.Context
	store       *memory.EntityStore
	persistence *MockPersistence
	classifier  *MockClassifier
	controller  *services.ContextController
}

func (s *ContextControllerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewEntityStore()
	s.persistence = new(MockPersistence)
	s.persistence.acceptAllWrites()
	s.classifier = new(MockClassifier)

	rates := accounting.MustDefaultRateTable()
	ledger := services.NewLedgerService(s.store, rates, services.WithLedgerIDGenerator(sequentialIDs("txn")))
	s.controller = services.NewContextController(s.store, ledger, rates,
		services.WithPersistence(s.persistence),
		services.WithClassifier(s.classifier),
		services.WithClock(steppingClock(baseTime)),
		services.WithIDGenerator(sequentialIDs("id")),
	)

	_, err := s.controller.Bootstrap(s.ctx, domain.User{UserID: "owner", Name: "Jean Directeur"})
	require.NoError(s.T(), err)
}

func TestContextControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ContextControllerTestSuite))
}

func (s *ContextControllerTestSuite) addManager(name string) string {
	m, err := s.controller.AddManager(s.ctx, dto.AddManagerRequest{Name: name})
	require.NoError(s.T(), err)
	return m.UserID
}

func (s *ContextControllerTestSuite) actAs(role domain.UserRole, subjectID string) {
	_, err := s.controller.SwitchRole(s.ctx, role)
	require.NoError(s.T(), err)
	if subjectID != "" {
		_, err = s.controller.SelectSubject(s.ctx, subjectID)
		require.NoError(s.T(), err)
	}
}

func (s *ContextControllerTestSuite) credit(amount, currency string) {
	_, err := s.controller.RecordBudgetCredit(s.ctx, dto.CreateTransactionRequest{Amount: amount, CurrencyCode: currency, Reason: "budget"})
	require.NoError(s.T(), err)
}

func (s *ContextControllerTestSuite) TestBootstrap_KeepsExistingOwner() {
	owner, err := s.controller.Bootstrap(s.ctx, domain.User{UserID: "other", Name: "Someone Else"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "owner", owner.UserID)
	assert.Len(s.T(), s.controller.ListUsers(s.ctx), 1)
}

func (s *ContextControllerTestSuite) TestAddManager_FirstIsAutoSelected() {
	m1 := s.addManager("Marc Responsable")
	assert.Equal(s.T(), m1, s.controller.State(s.ctx).SelectedSubjectID)

	s.addManager("Awa Responsable")
	assert.Equal(s.T(), m1, s.controller.State(s.ctx).SelectedSubjectID)
	assert.Len(s.T(), s.controller.Managers(s.ctx), 2)
}

func (s *ContextControllerTestSuite) TestAddManager_ForbiddenInManagerRole() {
	s.addManager("Marc Responsable")
	s.actAs(domain.RoleManager, "")

	_, err := s.controller.AddManager(s.ctx, dto.AddManagerRequest{Name: "Intruder"})
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
}

func (s *ContextControllerTestSuite) TestSwitchRole_ResetsView() {
	_, err := s.controller.SetActiveView(s.ctx, domain.ViewFinances)
	require.NoError(s.T(), err)

	state, err := s.controller.SwitchRole(s.ctx, domain.RoleManager)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.RoleManager, state.ActiveRole)
	assert.Equal(s.T(), domain.DefaultView, state.ActiveView)

	_, err = s.controller.SwitchRole(s.ctx, domain.UserRole("ADMIN"))
	assert.ErrorIs(s.T(), err, apperrors.ErrValidation)
}

func (s *ContextControllerTestSuite) TestSelectSubject_RequiresManager() {
	_, err := s.controller.SelectSubject(s.ctx, "nobody")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)

	_, err = s.controller.SelectSubject(s.ctx, "owner")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ContextControllerTestSuite) TestSetDisplayCurrency() {
	state, err := s.controller.SetDisplayCurrency(s.ctx, " usd ")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.USD, state.DisplayCurrency)

	_, err = s.controller.SetDisplayCurrency(s.ctx, "GBP")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnsupportedCurrency)
	assert.Equal(s.T(), domain.USD, s.controller.State(s.ctx).DisplayCurrency)
}

func (s *ContextControllerTestSuite) TestVisibility_OwnerSwitchingSubjects() {
	m1 := s.addManager("Marc")
	m2 := s.addManager("Awa")

	ownerEvent, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Site visit", EventDate: baseTime.Add(48 * time.Hour)})
	require.NoError(s.T(), err)
	ownerDoc, err := s.controller.AddDocument(s.ctx, dto.CreateDocumentRequest{Name: "contract.pdf", Category: domain.DocumentContract, SizeBytes: 2516582})
	require.NoError(s.T(), err)

	s.actAs(domain.RoleOwner, m1)
	s.credit("500", "EUR")
	s.actAs(domain.RoleManager, m1)
	r1, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Monday", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)

	s.actAs(domain.RoleOwner, m2)
	s.credit("100", "USD")
	s.actAs(domain.RoleManager, m2)
	r2, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Week 10", Kind: domain.RecapWeekly})
	require.NoError(s.T(), err)

	s.actAs(domain.RoleOwner, m1)
	data := s.controller.FilteredData(s.ctx)
	require.Len(s.T(), data.Recaps, 1)
	assert.Equal(s.T(), r1.RecapID, data.Recaps[0].RecapID)
	require.Len(s.T(), data.Transactions, 1)
	assert.Equal(s.T(), m1, data.Transactions[0].AuthorID)
	require.Len(s.T(), data.Events, 1)
	assert.Equal(s.T(), ownerEvent.EventID, data.Events[0].EventID)
	require.Len(s.T(), data.Documents, 1)
	assert.Equal(s.T(), ownerDoc.DocumentID, data.Documents[0].DocumentID)
	assert.Equal(s.T(), "2.40 MB", data.Documents[0].Size)

	s.actAs(domain.RoleOwner, m2)
	data = s.controller.FilteredData(s.ctx)
	require.Len(s.T(), data.Recaps, 1)
	assert.Equal(s.T(), r2.RecapID, data.Recaps[0].RecapID)
	require.Len(s.T(), data.Transactions, 1)
	assert.Equal(s.T(), m2, data.Transactions[0].AuthorID)
	assert.Len(s.T(), data.Events, 1)
	assert.Len(s.T(), data.Documents, 1)
}

func (s *ContextControllerTestSuite) TestVisibility_NoSubjectIsEmpty() {
	_, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Solo", EventDate: baseTime})
	require.NoError(s.T(), err)

	data := s.controller.FilteredData(s.ctx)
	assert.Empty(s.T(), data.Recaps)
	assert.Empty(s.T(), data.Events)
	assert.Empty(s.T(), data.Documents)
	assert.Empty(s.T(), data.Transactions)

	_, err = s.controller.RecordBudgetCredit(s.ctx, dto.CreateTransactionRequest{Amount: "10", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ContextControllerTestSuite) TestAddComment_UnknownRecapLeavesRecapsUnchanged() {
	m1 := s.addManager("Marc")
	s.actAs(domain.RoleManager, m1)
	recap, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Monday", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)
	_, err = s.controller.AddComment(s.ctx, recap.RecapID, dto.CreateCommentRequest{Content: "first"})
	require.NoError(s.T(), err)

	_, err = s.controller.AddComment(s.ctx, "missing", dto.CreateCommentRequest{Content: "lost"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)

	recaps := s.controller.FilteredData(s.ctx).Recaps
	require.Len(s.T(), recaps, 1)
	require.Len(s.T(), recaps[0].Comments, 1)
	assert.Equal(s.T(), "first", recaps[0].Comments[0].Content)
}

func (s *ContextControllerTestSuite) TestAddComment_AppendsInOrderWithActorAsAuthor() {
	m1 := s.addManager("Marc")
	s.actAs(domain.RoleManager, m1)
	recap, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Monday", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)

	s.actAs(domain.RoleOwner, "")
	_, err = s.controller.AddComment(s.ctx, recap.RecapID, dto.CreateCommentRequest{Content: "Good work"})
	require.NoError(s.T(), err)
	s.actAs(domain.RoleManager, "")
	updated, err := s.controller.AddComment(s.ctx, recap.RecapID, dto.CreateCommentRequest{Content: "Thanks"})
	require.NoError(s.T(), err)

	require.Len(s.T(), updated.Comments, 2)
	assert.Equal(s.T(), "owner", updated.Comments[0].AuthorID)
	assert.Equal(s.T(), m1, updated.Comments[1].AuthorID)
	s.persistence.AssertCalled(s.T(), "InsertComment", mock.Anything, recap.RecapID, mock.Anything)
}

func (s *ContextControllerTestSuite) TestAddComment_InvisibleRecapIsNotFound() {
	m1 := s.addManager("Marc")
	m2 := s.addManager("Awa")
	s.actAs(domain.RoleManager, m1)
	recap, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Monday", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)

	s.actAs(domain.RoleManager, m2)
	_, err = s.controller.AddComment(s.ctx, recap.RecapID, dto.CreateCommentRequest{Content: "peek"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ContextControllerTestSuite) TestRecordBudgetCredit_ForbiddenInManagerRole() {
	m1 := s.addManager("Marc")
	s.actAs(domain.RoleManager, m1)

	_, err := s.controller.RecordBudgetCredit(s.ctx, dto.CreateTransactionRequest{Amount: "100", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)
	assert.Empty(s.T(), s.store.ListTransactions())
}

func (s *ContextControllerTestSuite) TestRecordBudgetCredit_AuthoredBySelectedManager() {
	m1 := s.addManager("Marc")
	txn, err := s.controller.RecordBudgetCredit(s.ctx, dto.CreateTransactionRequest{Amount: "250.5", CurrencyCode: "usd", Reason: "Q1"})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), m1, txn.AuthorID)
	assert.Equal(s.T(), domain.BudgetCredit, txn.Kind)
	assert.Equal(s.T(), domain.USD, txn.CurrencyCode)
	s.persistence.AssertCalled(s.T(), "InsertTransaction", mock.Anything, mock.Anything)
}

func (s *ContextControllerTestSuite) TestRecordExpense_InsufficientFunds() {
	m1 := s.addManager("Marc")
	s.credit("1000", "EUR")
	s.actAs(domain.RoleManager, m1)

	_, err := s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "1000.01", CurrencyCode: "EUR", Reason: "too much"})
	require.ErrorIs(s.T(), err, apperrors.ErrInsufficientFunds)
	var ife *apperrors.InsufficientFundsError
	require.True(s.T(), errors.As(err, &ife))
	assert.True(s.T(), ife.Attempted.Equal(decimal.RequireFromString("1000.01")))
	assert.True(s.T(), ife.Available.Equal(decimal.NewFromInt(1000)))
	assert.Equal(s.T(), "EUR", ife.Currency)

	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "1000.00", CurrencyCode: "EUR", Reason: "exact"})
	require.NoError(s.T(), err)

	summary, err := s.controller.LedgerSummary(s.ctx, "")
	require.NoError(s.T(), err)
	assert.True(s.T(), summary.Balance.IsZero(), "balance %s", summary.Balance)
	assert.True(s.T(), summary.UtilizationPercent.Equal(decimal.NewFromInt(100)))
}

func (s *ContextControllerTestSuite) TestRecordExpense_ScopedToSubject() {
	m1 := s.addManager("Marc")
	m2 := s.addManager("Awa")
	s.credit("1000", "EUR")

	s.actAs(domain.RoleManager, m2)
	_, err := s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "1", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrInsufficientFunds)

	s.actAs(domain.RoleOwner, m1)
	txn, err := s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "20", CurrencyCode: "USD"})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), m1, txn.AuthorID)
}

func (s *ContextControllerTestSuite) TestRecordExpense_ValidationBeforeMutation() {
	s.addManager("Marc")
	s.credit("100", "EUR")

	_, err := s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "-5", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidAmount)
	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "abc", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidAmount)
	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "5", CurrencyCode: "GBP"})
	assert.ErrorIs(s.T(), err, apperrors.ErrUnsupportedCurrency)
	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "0.00001", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidAmount)
	_, err = s.controller.RecordBudgetCredit(s.ctx, dto.CreateTransactionRequest{Amount: "100.123456", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrInvalidAmount)

	assert.Len(s.T(), s.store.ListTransactions(), 1)
	s.persistence.AssertNumberOfCalls(s.T(), "InsertTransaction", 1)
}

func (s *ContextControllerTestSuite) TestSyncFailure_KeepsLocalState() {
	m1 := s.addManager("Marc")
	s.actAs(domain.RoleManager, m1)

	failing := new(MockPersistence)
	failing.On("InsertRecap", mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	rates := accounting.MustDefaultRateTable()
	controller := services.NewContextController(s.store, services.NewLedgerService(s.store, rates), rates,
		services.WithPersistence(failing))
	_, err := controller.Bootstrap(s.ctx, domain.User{Name: "ignored"})
	require.NoError(s.T(), err)
	_, err = controller.SwitchRole(s.ctx, domain.RoleManager)
	require.NoError(s.T(), err)

	recap, err := controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Offline", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)

	recaps := controller.FilteredData(s.ctx).Recaps
	require.Len(s.T(), recaps, 1)
	assert.Equal(s.T(), recap.RecapID, recaps[0].RecapID)
	failing.AssertExpectations(s.T())
}

func (s *ContextControllerTestSuite) TestDeleteEvent_Policy() {
	m1 := s.addManager("Marc")
	m2 := s.addManager("Awa")

	ownerEvent, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Board", EventDate: baseTime})
	require.NoError(s.T(), err)
	s.actAs(domain.RoleManager, m1)
	m1Event, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Supplier", EventDate: baseTime})
	require.NoError(s.T(), err)
	m1Other, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Delivery", EventDate: baseTime})
	require.NoError(s.T(), err)

	err = s.controller.DeleteEvent(s.ctx, ownerEvent.EventID)
	assert.ErrorIs(s.T(), err, apperrors.ErrForbidden)

	s.actAs(domain.RoleManager, m2)
	err = s.controller.DeleteEvent(s.ctx, m1Event.EventID)
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)

	s.actAs(domain.RoleManager, m1)
	require.NoError(s.T(), s.controller.DeleteEvent(s.ctx, m1Event.EventID))

	s.actAs(domain.RoleOwner, m1)
	require.NoError(s.T(), s.controller.DeleteEvent(s.ctx, m1Other.EventID))
	require.NoError(s.T(), s.controller.DeleteEvent(s.ctx, ownerEvent.EventID))

	err = s.controller.DeleteEvent(s.ctx, "missing")
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	assert.Empty(s.T(), s.store.ListEvents())
	s.persistence.AssertNumberOfCalls(s.T(), "DeleteEvent", 3)
}

func (s *ContextControllerTestSuite) TestWritesWithoutManager_NotFoundInManagerRole() {
	s.actAs(domain.RoleManager, "")

	_, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Orphan", Kind: domain.RecapDaily})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "1", CurrencyCode: "EUR"})
	assert.ErrorIs(s.T(), err, apperrors.ErrNotFound)
}

func (s *ContextControllerTestSuite) TestProjections() {
	m1 := s.addManager("Marc")
	s.credit("300", "EUR")
	s.actAs(domain.RoleManager, m1)

	_, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Older", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)
	latest, err := s.controller.CreateRecap(s.ctx, dto.CreateRecapRequest{Title: "Newer", Kind: domain.RecapDaily})
	require.NoError(s.T(), err)

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	late, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Late", EventDate: day.Add(15 * time.Hour)})
	require.NoError(s.T(), err)
	early, err := s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Early", EventDate: day.Add(9 * time.Hour)})
	require.NoError(s.T(), err)
	_, err = s.controller.CreateEvent(s.ctx, dto.CreateEventRequest{Title: "Past", EventDate: baseTime.Add(-24 * time.Hour)})
	require.NoError(s.T(), err)

	_, err = s.controller.AddDocument(s.ctx, dto.CreateDocumentRequest{Name: "Invoice-March.pdf", Category: domain.DocumentInvoice, SizeBytes: 1024})
	require.NoError(s.T(), err)
	_, err = s.controller.AddDocument(s.ctx, dto.CreateDocumentRequest{Name: "quote.pdf", Category: domain.DocumentQuote})
	require.NoError(s.T(), err)

	_, err = s.controller.RecordExpense(s.ctx, dto.CreateTransactionRequest{Amount: "75", CurrencyCode: "EUR"})
	require.NoError(s.T(), err)

	onDay := s.controller.EventsOn(s.ctx, day.Add(23*time.Hour))
	require.Len(s.T(), onDay, 2)
	assert.Equal(s.T(), early.EventID, onDay[0].EventID)
	assert.Equal(s.T(), late.EventID, onDay[1].EventID)

	upcoming := s.controller.UpcomingEvents(s.ctx, baseTime)
	assert.Len(s.T(), upcoming, 2)

	docs := s.controller.SearchDocuments(s.ctx, "invoice")
	require.Len(s.T(), docs, 1)
	assert.Equal(s.T(), "Invoice-March.pdf", docs[0].Name)
	assert.Len(s.T(), s.controller.SearchDocuments(s.ctx, ""), 2)

	dash, err := s.controller.Dashboard(s.ctx, baseTime)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), dash.LatestRecap)
	assert.Equal(s.T(), latest.RecapID, dash.LatestRecap.RecapID)
	require.NotNil(s.T(), dash.NextEvent)
	assert.Equal(s.T(), early.EventID, dash.NextEvent.EventID)
	assert.Equal(s.T(), 2, dash.RecapCount)
	assert.Equal(s.T(), 3, dash.EventCount)
	assert.Equal(s.T(), 2, dash.DocumentCount)
	assert.Equal(s.T(), 2, dash.TransactionCount)
	assert.True(s.T(), dash.Summary.Balance.Equal(decimal.NewFromInt(225)))

	data := s.controller.FilteredData(s.ctx)
	assert.Equal(s.T(), "Newer", data.Recaps[0].Title)
	assert.Equal(s.T(), domain.Expense, data.Transactions[0].Kind)
}

func (s *ContextControllerTestSuite) TestSeries_UsesOverrideCurrency() {
	s.addManager("Marc")
	s.credit("100", "EUR")

	seq, code, err := s.controller.Series(s.ctx, "usd")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), domain.USD, code)
	var points []domain.SeriesPoint
	for p := range seq {
		points = append(points, p)
	}
	require.Len(s.T(), points, 1)
	assert.True(s.T(), points[0].Amount.Equal(decimal.RequireFromString("109")))

	_, _, err = s.controller.Series(s.ctx, "GBP")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnsupportedCurrency)
}

func (s *ContextControllerTestSuite) TestApplyUtterance() {
	m1 := s.addManager("Marc")
	s.credit("50", "EUR")
	s.actAs(domain.RoleManager, m1)

	intents := []domain.Intent{
		domain.CreateRecapIntent{Title: "Voice report", Description: "Visited the site", RecapKind: domain.RecapDaily},
		domain.CreateExpenseIntent{Amount: decimal.NewFromInt(80), CurrencyCode: domain.EUR, Reason: "Fuel"},
		domain.CreateExpenseIntent{Amount: decimal.NewFromInt(20), CurrencyCode: domain.EUR, Reason: "Lunch"},
	}
	s.classifier.On("Classify", mock.Anything, "visited the site, fuel 80, lunch 20", mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == m1
	})).Return(intents, nil)

	outcomes, err := s.controller.ApplyUtterance(s.ctx, "visited the site, fuel 80, lunch 20")
	require.NoError(s.T(), err)
	require.Len(s.T(), outcomes, 3)

	require.NotNil(s.T(), outcomes[0].Recap)
	assert.Equal(s.T(), m1, outcomes[0].Recap.AuthorID)
	assert.Empty(s.T(), outcomes[0].Error)

	assert.Nil(s.T(), outcomes[1].Transaction)
	assert.Contains(s.T(), outcomes[1].Error, "insufficient funds")

	require.NotNil(s.T(), outcomes[2].Transaction)
	assert.Equal(s.T(), "Lunch", outcomes[2].Transaction.Reason)
	s.classifier.AssertExpectations(s.T())
}

func (s *ContextControllerTestSuite) TestApplyUtterance_ReportsUnsupportedIntents() {
	m1 := s.addManager("Marc")
	s.actAs(domain.RoleManager, m1)

	intents := []domain.Intent{
		domain.CreateRecapIntent{Title: "Voice report", Description: "Site visit", RecapKind: domain.RecapDaily},
		domain.UnsupportedIntent{Category: "DELETE_ALL", Reason: `unrecognized category "DELETE_ALL"`},
	}
	s.classifier.On("Classify", mock.Anything, "site visit and wipe everything", mock.Anything).Return(intents, nil)

	outcomes, err := s.controller.ApplyUtterance(s.ctx, "site visit and wipe everything")
	require.NoError(s.T(), err)
	require.Len(s.T(), outcomes, 2)

	require.NotNil(s.T(), outcomes[0].Recap)
	assert.Empty(s.T(), outcomes[0].Error)

	assert.Equal(s.T(), domain.IntentKind("DELETE_ALL"), outcomes[1].Kind)
	assert.Contains(s.T(), outcomes[1].Error, apperrors.ErrUnsupportedAction.Error())
	assert.Contains(s.T(), outcomes[1].Error, "DELETE_ALL")
	assert.Nil(s.T(), outcomes[1].Recap)
	assert.Nil(s.T(), outcomes[1].Event)
	assert.Nil(s.T(), outcomes[1].Transaction)

	assert.Len(s.T(), s.store.ListRecaps(), 1)
}

func (s *ContextControllerTestSuite) TestApplyUtterance_ClassifierError() {
	s.addManager("Marc")
	s.classifier.On("Classify", mock.Anything, "???", mock.Anything).Return(nil, apperrors.ErrUnsupportedAction)

	_, err := s.controller.ApplyUtterance(s.ctx, "???")
	assert.ErrorIs(s.T(), err, apperrors.ErrUnsupportedAction)
}

func TestApplyUtterance_WithoutClassifier(t *testing.T) {
	store := memory.NewEntityStore()
	rates := accounting.MustDefaultRateTable()
	controller := services.NewContextController(store, services.NewLedgerService(store, rates), rates)

	_, err := controller.ApplyUtterance(context.Background(), "anything")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedAction)
}

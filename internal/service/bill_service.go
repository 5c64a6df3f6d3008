package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/billease/internal/calculator"
	"github.com/mmynk/billease/internal/extract"
	"github.com/mmynk/billease/internal/models"
	"github.com/mmynk/billease/internal/obs"
	"github.com/mmynk/billease/internal/storage"
	"github.com/mmynk/billease/internal/workflow"
)

// BillService implements the Connect BillService.
type BillService struct {
	store     storage.Store
	extractor *extract.Extractor
	metrics   *obs.Metrics

	// mu serializes read-modify-write cycles on bills.
	mu sync.Mutex
}

// NewBillService creates a BillService. extractor may be nil, in which case
// ExtractItems fails with CodeUnimplemented; metrics may be nil.
func NewBillService(store storage.Store, extractor *extract.Extractor, metrics *obs.Metrics) *BillService {
	return &BillService{store: store, extractor: extractor, metrics: metrics}
}

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	var code connect.Code
	switch {
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrNoItems),
		errors.Is(err, workflow.ErrNoParticipants):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, workflow.ErrInvalidItem),
		errors.Is(err, workflow.ErrItemIndex),
		errors.Is(err, workflow.ErrEmptyName),
		errors.Is(err, workflow.ErrDuplicateParticipant),
		errors.Is(err, workflow.ErrUnknownParticipant),
		errors.Is(err, workflow.ErrInvalidManualSplit),
		errors.Is(err, workflow.ErrInvalidDiscount),
		errors.Is(err, workflow.ErrInvalidMiscCharge),
		errors.Is(err, calculator.ErrNoParticipants),
		errors.Is(err, calculator.ErrDiscountOutOfRange),
		errors.Is(err, calculator.ErrUnknownTaxType),
		errors.Is(err, extract.ErrEmptyImage),
		errors.Is(err, extract.ErrImageTooLarge):
		code = connect.CodeInvalidArgument
	case errors.Is(err, extract.ErrMissingAPIKey):
		code = connect.CodeUnimplemented
	case errors.Is(err, extract.ErrInvalidOutput):
		code = connect.CodeUnavailable
	default:
		code = connect.CodeInternal
	}
	return connect.NewError(code, err)
}

// mutate loads a bill, applies op through a workflow session and saves the
// result. Nothing is saved when op fails.
func (s *BillService) mutate(ctx context.Context, billID string, op func(*workflow.Session) error) (*models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, toConnectError(err)
	}
	sess := workflow.Resume(bill)
	if err := op(sess); err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.UpdateBill(ctx, sess.Bill()); err != nil {
		slog.Error("UpdateBill failed", "bill_id", billID, "error", err)
		return nil, toConnectError(err)
	}
	return sess.Bill(), nil
}

func billResponse(bill *models.Bill, warnings []string) *connect.Response[BillResponse] {
	return connect.NewResponse(&BillResponse{Bill: toBill(bill), Warnings: warnings})
}

// CreateBill starts a new bill. Items given up front skip the upload step.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error) {
	bill := &models.Bill{Title: req.Msg.Title, State: models.StateUploading}
	if len(req.Msg.Items) > 0 {
		if err := workflow.Resume(bill).LoadItems(fromBillItems(req.Msg.Items)); err != nil {
			return nil, toConnectError(err)
		}
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Bill created", "bill_id", bill.ID, "items", len(bill.Items))
	return billResponse(bill, nil), nil
}

// GetBill retrieves a bill by ID from storage.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		slog.Error("GetBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	return billResponse(bill, nil), nil
}

// ListBills returns every bill, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		slog.Error("ListBills failed", "error", err)
		return nil, toConnectError(err)
	}

	summaries := make([]BillSummary, len(bills))
	for i, b := range bills {
		summaries[i] = BillSummary{
			ID:           b.ID,
			Title:        b.Title,
			State:        b.State,
			Participants: b.Participants,
			CreatedAt:    b.CreatedAt,
		}
	}
	return connect.NewResponse(&ListBillsResponse{Bills: summaries}), nil
}

// DeleteBill removes a bill.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[DeleteBillResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&DeleteBillResponse{}), nil
}

// ExtractItems reads the items off a bill photo and loads them for review.
func (s *BillService) ExtractItems(ctx context.Context, req *connect.Request[ExtractItemsRequest]) (*connect.Response[BillResponse], error) {
	if s.extractor == nil {
		return nil, connect.NewError(connect.CodeUnimplemented, errors.New("bill extraction is not configured"))
	}

	bill, err := s.store.GetBill(ctx, req.Msg.BillID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if bill.State != models.StateUploading {
		return nil, toConnectError(fmt.Errorf("%w: cannot extract items while %s", workflow.ErrInvalidTransition, bill.State))
	}

	mimeType := req.Msg.MimeType
	if mimeType == "" && len(req.Msg.Image) > 0 {
		mimeType = http.DetectContentType(req.Msg.Image)
	}
	res, err := s.extractor.Extract(ctx, req.Msg.Image, mimeType)
	if err != nil {
		if errors.Is(err, extract.ErrEmptyImage) || errors.Is(err, extract.ErrImageTooLarge) ||
			errors.Is(err, extract.ErrInvalidOutput) || errors.Is(err, extract.ErrMissingAPIKey) {
			return nil, toConnectError(err)
		}
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}

	updated, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		return sess.LoadItems(fromCalculatorItems(res.Items))
	})
	if err != nil {
		return nil, err
	}
	return billResponse(updated, res.Warnings), nil
}

// ReplaceItems sets the item list. On a bill still waiting for its photo this
// loads manually entered items; while reviewing it replaces the list.
func (s *BillService) ReplaceItems(ctx context.Context, req *connect.Request[ReplaceItemsRequest]) (*connect.Response[BillResponse], error) {
	items := fromBillItems(req.Msg.Items)
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		if sess.State() == models.StateUploading {
			return sess.LoadItems(items)
		}
		return sess.ReplaceItems(items)
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// ConfirmItems finishes the item review.
func (s *BillService) ConfirmItems(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, (*workflow.Session).ConfirmItems)
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// SetParticipants replaces the participant list.
func (s *BillService) SetParticipants(ctx context.Context, req *connect.Request[SetParticipantsRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		return sess.SetParticipants(req.Msg.Participants)
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// ConfirmParticipants moves on to assigning items.
func (s *BillService) ConfirmParticipants(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, (*workflow.Session).ConfirmParticipants)
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// AssignItem sets who shares an item.
func (s *BillService) AssignItem(ctx context.Context, req *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		return sess.Assign(req.Msg.ItemIndex, req.Msg.Participants)
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// SetManualSplit sets custom amounts for an item. Amounts that do not add up
// to the item are saved and reported as warnings.
func (s *BillService) SetManualSplit(ctx context.Context, req *connect.Request[SetManualSplitRequest]) (*connect.Response[BillResponse], error) {
	var warnings []string
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		var err error
		warnings, err = sess.SetManualSplit(req.Msg.ItemIndex, req.Msg.Shares)
		return err
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, warnings), nil
}

// ClearManualSplit goes back to the equal split for an item.
func (s *BillService) ClearManualSplit(ctx context.Context, req *connect.Request[ClearManualSplitRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		return sess.ClearManualSplit(req.Msg.ItemIndex)
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// SetAdjustments sets the discount, misc charge and payer in one call.
func (s *BillService) SetAdjustments(ctx context.Context, req *connect.Request[SetAdjustmentsRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		if err := sess.SetDiscount(req.Msg.DiscountPercent); err != nil {
			return err
		}
		if err := sess.SetMiscCharge(req.Msg.MiscCharge); err != nil {
			return err
		}
		return sess.SetPayer(req.Msg.PayerID)
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// Calculate splits the bill and stores the result.
func (s *BillService) Calculate(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		_, err := sess.Calculate()
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCalculation(bill)

	var warnings []string
	if !bill.Result.Reconciled {
		slog.Warn("Split does not reconcile",
			"bill_id", bill.ID,
			"expected", bill.Result.ExpectedTotal,
			"actual", bill.Result.ActualTotal,
		)
		warnings = append(warnings, fmt.Sprintf("split total %s differs from expected %s",
			bill.Result.ActualTotal.StringFixed(2), bill.Result.ExpectedTotal.StringFixed(2)))
	}
	slog.Info("Bill calculated", "bill_id", bill.ID, "participants", len(bill.Participants), "total", bill.Result.ActualTotal)
	return billResponse(bill, warnings), nil
}

// Back returns the bill to the previous step.
func (s *BillService) Back(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, (*workflow.Session).Back)
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

// Reset clears the bill and starts over.
func (s *BillService) Reset(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return billResponse(bill, nil), nil
}

package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billease/internal/calculator"
)

// CalculateSplits runs the split engine on the given inputs without storing
// anything.
func (s *BillService) CalculateSplits(ctx context.Context, req *connect.Request[CalculateSplitsRequest]) (*connect.Response[SplitsResponse], error) {
	slog.Debug("CalculateSplits request received",
		"items", len(req.Msg.Items),
		"participants", req.Msg.Participants,
		"manual_splits", len(req.Msg.ManualSplits),
	)

	splits, err := calculator.CalculateSplits(req.Msg.Items, req.Msg.Participants, req.Msg.Assignments, calculator.Options{
		ManualSplits:    req.Msg.ManualSplits,
		DiscountPercent: req.Msg.DiscountPercent,
		MiscCharge:      req.Msg.MiscCharge,
	})
	if err != nil {
		slog.Error("CalculateSplits failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SplitsResponse{Splits: splits, Total: splits.Total()}), nil
}

// ValidateSplits compares splits to an expected total. Without a tolerance
// the default of one cent applies.
func (s *BillService) ValidateSplits(ctx context.Context, req *connect.Request[ValidateSplitsRequest]) (*connect.Response[ValidateSplitsResponse], error) {
	tolerance := calculator.DefaultTolerance
	if req.Msg.Tolerance.Valid {
		tolerance = req.Msg.Tolerance.Decimal
	}
	rec := calculator.ValidateSplits(req.Msg.Splits, req.Msg.ExpectedTotal, tolerance)
	return connect.NewResponse(&rec), nil
}

// AdjustSplits moves a rounding gap onto the largest split.
func (s *BillService) AdjustSplits(ctx context.Context, req *connect.Request[AdjustSplitsRequest]) (*connect.Response[SplitsResponse], error) {
	adjusted, err := calculator.AdjustSplitsForRounding(req.Msg.Splits, req.Msg.TargetTotal)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SplitsResponse{Splits: adjusted, Total: adjusted.Total()}), nil
}

// ApplyTax adds a tax or charge on top of existing splits.
func (s *BillService) ApplyTax(ctx context.Context, req *connect.Request[ApplyTaxRequest]) (*connect.Response[SplitsResponse], error) {
	taxType := req.Msg.TaxType
	if taxType == "" {
		taxType = calculator.TaxProportional
	}
	taxed, err := calculator.CalculateWithTax(req.Msg.Splits, req.Msg.TaxAmount, taxType)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SplitsResponse{Splits: taxed, Total: taxed.Total()}), nil
}

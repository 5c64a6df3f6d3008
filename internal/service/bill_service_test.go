package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billease/internal/calculator"
	"github.com/mmynk/billease/internal/extract"
	"github.com/mmynk/billease/internal/middleware"
	"github.com/mmynk/billease/internal/models"
	"github.com/mmynk/billease/internal/obs"
	"github.com/mmynk/billease/internal/storage/sqlite"
)

// fakeModel answers extraction requests with a fixed payload.
type fakeModel struct {
	raw string
	err error
}

func (f *fakeModel) ExtractItems(context.Context, []byte, string) (string, error) {
	return f.raw, f.err
}

type testServer struct {
	client  *BillServiceClient
	url     string
	model   *fakeModel
	metrics *obs.Metrics
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	model := &fakeModel{}
	metrics := obs.NewMetrics("test", prometheus.NewRegistry())
	svc := NewBillService(store, extract.NewExtractor(model, 1024, metrics), metrics)

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(metrics),
	)
	path, handler := NewBillServiceHandler(svc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	mux.Handle(ExportPattern, ExportHandler(store))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testServer{
		client:  NewBillServiceClient(http.DefaultClient, server.URL),
		url:     server.URL,
		model:   model,
		metrics: metrics,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func splitAmounts(splits []models.PersonSplit) map[string]string {
	out := make(map[string]string, len(splits))
	for _, s := range splits {
		out[s.Participant] = s.Amount.StringFixed(2)
	}
	return out
}

func expectCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}

// assigningBill creates a bill with the given items and participants and
// moves it to the assigning step.
func assigningBill(t *testing.T, ts *testServer, items []BillItem, people ...string) string {
	t.Helper()
	ctx := context.Background()

	created, err := ts.client.CreateBill(ctx, connect.NewRequest(&CreateBillRequest{Title: "Dinner", Items: items}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	id := created.Msg.Bill.ID

	steps := []func() error{
		func() error {
			_, err := ts.client.ConfirmItems(ctx, connect.NewRequest(&BillRequest{BillID: id}))
			return err
		},
		func() error {
			_, err := ts.client.SetParticipants(ctx, connect.NewRequest(&SetParticipantsRequest{BillID: id, Participants: people}))
			return err
		},
		func() error {
			_, err := ts.client.ConfirmParticipants(ctx, connect.NewRequest(&BillRequest{BillID: id}))
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}
	return id
}

func TestCreateBill(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.client.CreateBill(context.Background(), connect.NewRequest(&CreateBillRequest{Title: "Lunch"}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	bill := resp.Msg.Bill
	if bill.ID == "" {
		t.Error("expected bill ID")
	}
	if bill.State != models.StateUploading {
		t.Errorf("expected state uploading, got %s", bill.State)
	}
	if bill.Title != "Lunch" {
		t.Errorf("expected title Lunch, got %q", bill.Title)
	}

	got, err := ts.client.GetBill(context.Background(), connect.NewRequest(&BillRequest{BillID: bill.ID}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if got.Msg.Bill.ID != bill.ID {
		t.Errorf("expected bill %s, got %s", bill.ID, got.Msg.Bill.ID)
	}
}

func TestCreateBill_WithItemsSkipsUpload(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.client.CreateBill(context.Background(), connect.NewRequest(&CreateBillRequest{
		Items: []BillItem{{Description: "Dosa", Amount: dec("60")}},
	}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	if resp.Msg.Bill.State != models.StateReviewingItems {
		t.Errorf("expected reviewing_items, got %s", resp.Msg.Bill.State)
	}
	if len(resp.Msg.Bill.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(resp.Msg.Bill.Items))
	}

	_, err = ts.client.CreateBill(context.Background(), connect.NewRequest(&CreateBillRequest{
		Items: []BillItem{{Description: "", Amount: dec("60")}},
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

func TestGetBill_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	_, err := ts.client.GetBill(context.Background(), connect.NewRequest(&BillRequest{BillID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = ts.client.ConfirmItems(context.Background(), connect.NewRequest(&BillRequest{BillID: "missing"}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestFullWorkflow(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	id := assigningBill(t, ts, []BillItem{
		{Description: "Masala Dosa", Amount: dec("120")},
		{Description: "Filter Coffee", Amount: dec("40")},
		{Description: "Cake", Amount: dec("100")},
	}, "Asha", "Ben", "Chen")

	if _, err := ts.client.AssignItem(ctx, connect.NewRequest(&AssignItemRequest{
		BillID: id, ItemIndex: 1, Participants: []string{"Ben"},
	})); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}

	manual, err := ts.client.SetManualSplit(ctx, connect.NewRequest(&SetManualSplitRequest{
		BillID:    id,
		ItemIndex: 2,
		Shares: []models.ManualShare{
			{Participant: "Asha", Amount: dec("30")},
			{Participant: "Ben", Amount: dec("20")},
		},
	}))
	if err != nil {
		t.Fatalf("SetManualSplit failed: %v", err)
	}
	if len(manual.Msg.Warnings) != 1 {
		t.Errorf("expected a warning for manual amounts not matching the item, got %v", manual.Msg.Warnings)
	}

	if _, err := ts.client.SetAdjustments(ctx, connect.NewRequest(&SetAdjustmentsRequest{
		BillID:          id,
		DiscountPercent: dec("10"),
		MiscCharge:      dec("30"),
		PayerID:         "Asha",
	})); err != nil {
		t.Fatalf("SetAdjustments failed: %v", err)
	}

	resp, err := ts.client.Calculate(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	bill := resp.Msg.Bill
	if bill.State != models.StateResults {
		t.Fatalf("expected results state, got %s", bill.State)
	}

	// Dosa 108 / 3 = 36 each, coffee 36 to Ben, cake 90 split 54/36,
	// misc 10 each.
	want := map[string]string{"Asha": "100.00", "Ben": "118.00", "Chen": "46.00"}
	got := splitAmounts(bill.Result.Splits)
	for name, amount := range want {
		if got[name] != amount {
			t.Errorf("%s: expected %s, got %s", name, amount, got[name])
		}
	}
	if !bill.Result.ExpectedTotal.Equal(dec("264")) {
		t.Errorf("expected total 264, got %s", bill.Result.ExpectedTotal)
	}
	if !bill.Result.Reconciled {
		t.Error("expected result to reconcile")
	}
	if len(bill.Result.Transfers) != 2 {
		t.Fatalf("expected 2 transfers, got %d", len(bill.Result.Transfers))
	}
	if tr := bill.Result.Transfers[0]; tr.From != "Ben" || tr.To != "Asha" || !tr.Amount.Equal(dec("118")) {
		t.Errorf("unexpected first transfer %+v", tr)
	}

	// The result survives a reload.
	reloaded, err := ts.client.GetBill(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if reloaded.Msg.Bill.Result == nil || len(reloaded.Msg.Bill.Result.Splits) != 3 {
		t.Fatalf("expected stored result, got %+v", reloaded.Msg.Bill.Result)
	}
	if reloaded.Msg.Bill.Items[2].ManualSplit[0].Participant != "Asha" {
		t.Errorf("expected manual split to persist, got %+v", reloaded.Msg.Bill.Items[2].ManualSplit)
	}

	if v := testutil.ToFloat64(ts.metrics.CalculationsTotal.WithLabelValues("reconciled")); v != 1 {
		t.Errorf("expected 1 reconciled calculation, got %v", v)
	}
	if v := testutil.ToFloat64(ts.metrics.ManualSplitItems); v != 1 {
		t.Errorf("expected 1 manual split item, got %v", v)
	}
	if v := testutil.ToFloat64(ts.metrics.RPCTotal.WithLabelValues(CalculateProcedure, "ok")); v != 1 {
		t.Errorf("expected 1 Calculate call recorded, got %v", v)
	}
}

func TestCalculate_RoundingCorrection(t *testing.T) {
	ts := setupTestServer(t)

	id := assigningBill(t, ts, []BillItem{{Description: "Pizza", Amount: dec("100")}}, "A", "B", "C")

	resp, err := ts.client.Calculate(context.Background(), connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	result := resp.Msg.Bill.Result
	got := splitAmounts(result.Splits)
	if got["A"] != "33.34" || got["B"] != "33.33" || got["C"] != "33.33" {
		t.Errorf("unexpected splits %v", got)
	}
	if !result.RoundingAdjustment.Equal(dec("0.01")) {
		t.Errorf("expected adjustment 0.01, got %s", result.RoundingAdjustment)
	}
	if result.Splits[0].Participant != "A" || result.Splits[2].Participant != "C" {
		t.Errorf("expected participant order to be kept, got %+v", result.Splits)
	}
}

func TestConfirmParticipants_KeepsExplicitEmptyAssignment(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	id := assigningBill(t, ts, []BillItem{
		{Description: "Dosa", Amount: dec("60")},
		{Description: "Water", Amount: dec("40")},
	}, "A", "B")

	if _, err := ts.client.AssignItem(ctx, connect.NewRequest(&AssignItemRequest{BillID: id, ItemIndex: 1})); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	if _, err := ts.client.Back(ctx, connect.NewRequest(&BillRequest{BillID: id})); err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	confirmed, err := ts.client.ConfirmParticipants(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("ConfirmParticipants failed: %v", err)
	}
	if water := confirmed.Msg.Bill.Items[1]; len(water.Participants) != 0 || !water.Assigned {
		t.Errorf("expected water to stay unassigned, got %+v", water)
	}

	resp, err := ts.client.Calculate(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	got := splitAmounts(resp.Msg.Bill.Result.Splits)
	if got["A"] != "30.00" || got["B"] != "30.00" {
		t.Errorf("unexpected splits %v", got)
	}
	if !resp.Msg.Bill.Result.ExpectedTotal.Equal(dec("60")) {
		t.Errorf("expected total 60, got %s", resp.Msg.Bill.Result.ExpectedTotal)
	}
}

func TestWorkflowErrors(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateBill(ctx, connect.NewRequest(&CreateBillRequest{}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	id := created.Msg.Bill.ID

	_, err = ts.client.Calculate(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	_, err = ts.client.Back(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	if _, err := ts.client.ReplaceItems(ctx, connect.NewRequest(&ReplaceItemsRequest{BillID: id})); err != nil {
		t.Fatalf("ReplaceItems failed: %v", err)
	}
	_, err = ts.client.ConfirmItems(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	expectCode(t, err, connect.CodeFailedPrecondition)

	id = assigningBill(t, ts, []BillItem{{Description: "Tea", Amount: dec("20")}}, "A", "B")

	_, err = ts.client.AssignItem(ctx, connect.NewRequest(&AssignItemRequest{BillID: id, ItemIndex: 0, Participants: []string{"Zed"}}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = ts.client.AssignItem(ctx, connect.NewRequest(&AssignItemRequest{BillID: id, ItemIndex: 4, Participants: []string{"A"}}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = ts.client.SetAdjustments(ctx, connect.NewRequest(&SetAdjustmentsRequest{BillID: id, DiscountPercent: dec("150")}))
	expectCode(t, err, connect.CodeInvalidArgument)

	// A failed call leaves the stored bill untouched.
	_, err = ts.client.SetAdjustments(ctx, connect.NewRequest(&SetAdjustmentsRequest{BillID: id, DiscountPercent: dec("10"), MiscCharge: dec("-1")}))
	expectCode(t, err, connect.CodeInvalidArgument)
	got, err := ts.client.GetBill(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if !got.Msg.Bill.DiscountPercent.IsZero() {
		t.Errorf("expected discount to stay 0, got %s", got.Msg.Bill.DiscountPercent)
	}
}

func TestBackAndReset(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	id := assigningBill(t, ts, []BillItem{{Description: "Tea", Amount: dec("20")}}, "A", "B")
	if _, err := ts.client.Calculate(ctx, connect.NewRequest(&BillRequest{BillID: id})); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	back, err := ts.client.Back(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("Back failed: %v", err)
	}
	if back.Msg.Bill.State != models.StateAssigning || back.Msg.Bill.Result != nil {
		t.Errorf("expected assigning without result, got %s / %+v", back.Msg.Bill.State, back.Msg.Bill.Result)
	}

	reset, err := ts.client.Reset(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if reset.Msg.Bill.State != models.StateUploading || len(reset.Msg.Bill.Items) != 0 || len(reset.Msg.Bill.Participants) != 0 {
		t.Errorf("expected empty bill after reset, got %+v", reset.Msg.Bill)
	}
}

func TestExtractItems(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateBill(ctx, connect.NewRequest(&CreateBillRequest{}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	id := created.Msg.Bill.ID

	ts.model.raw = `{"items": [{"item": "Paneer Tikka", "amount": 180}, {"item": "Butter Naan", "amount": "40"}]}`
	resp, err := ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{
		BillID:   id,
		Image:    []byte("\xff\xd8\xff fake jpeg"),
		MimeType: "image/jpeg",
	}))
	if err != nil {
		t.Fatalf("ExtractItems failed: %v", err)
	}
	bill := resp.Msg.Bill
	if bill.State != models.StateReviewingItems {
		t.Errorf("expected reviewing_items, got %s", bill.State)
	}
	if len(bill.Items) != 2 || bill.Items[1].Description != "Butter Naan" || !bill.Items[1].Amount.Equal(dec("40")) {
		t.Errorf("unexpected items %+v", bill.Items)
	}

	// The bill has moved past upload.
	_, err = ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{BillID: id, Image: []byte("img")}))
	expectCode(t, err, connect.CodeFailedPrecondition)
}

func TestExtractItems_Errors(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	created, err := ts.client.CreateBill(ctx, connect.NewRequest(&CreateBillRequest{}))
	if err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	id := created.Msg.Bill.ID

	_, err = ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{BillID: id}))
	expectCode(t, err, connect.CodeInvalidArgument)

	_, err = ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{BillID: id, Image: make([]byte, 2048)}))
	expectCode(t, err, connect.CodeInvalidArgument)

	ts.model.raw = "I could not read this bill"
	_, err = ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{BillID: id, Image: []byte("img")}))
	expectCode(t, err, connect.CodeUnavailable)

	ts.model.err = errors.New("connection refused")
	_, err = ts.client.ExtractItems(ctx, connect.NewRequest(&ExtractItemsRequest{BillID: id, Image: []byte("img")}))
	expectCode(t, err, connect.CodeUnavailable)

	got, err := ts.client.GetBill(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	if err != nil {
		t.Fatalf("GetBill failed: %v", err)
	}
	if got.Msg.Bill.State != models.StateUploading {
		t.Errorf("expected bill to stay in uploading, got %s", got.Msg.Bill.State)
	}
}

func TestListAndDeleteBills(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second"} {
		if _, err := ts.client.CreateBill(ctx, connect.NewRequest(&CreateBillRequest{Title: title})); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	list, err := ts.client.ListBills(ctx, connect.NewRequest(&ListBillsRequest{}))
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(list.Msg.Bills) != 2 {
		t.Fatalf("expected 2 bills, got %d", len(list.Msg.Bills))
	}

	id := list.Msg.Bills[0].ID
	if _, err := ts.client.DeleteBill(ctx, connect.NewRequest(&BillRequest{BillID: id})); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}
	_, err = ts.client.GetBill(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	expectCode(t, err, connect.CodeNotFound)

	_, err = ts.client.DeleteBill(ctx, connect.NewRequest(&BillRequest{BillID: id}))
	expectCode(t, err, connect.CodeNotFound)
}

func TestExportCSV(t *testing.T) {
	ts := setupTestServer(t)

	id := assigningBill(t, ts, []BillItem{{Description: "Pizza", Amount: dec("100")}}, "A", "B", "C")

	resp, err := http.Get(ts.url + "/export/" + id + ".csv")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 before calculation, got %d", resp.StatusCode)
	}

	if _, err := ts.client.Calculate(context.Background(), connect.NewRequest(&BillRequest{BillID: id})); err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	resp, err = http.Get(ts.url + "/export/" + id + ".csv")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("expected text/csv, got %q", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	want := "name,amount\nA,33.34\nB,33.33\nC,33.33\n"
	if string(body) != want {
		t.Errorf("unexpected CSV:\n%s\nwant:\n%s", body, want)
	}

	resp, err = http.Get(ts.url + "/export/missing.csv")
	if err != nil {
		t.Fatalf("export request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for unknown bill, got %d", resp.StatusCode)
	}
}

func TestEngineProcedures(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	splits, err := ts.client.CalculateSplits(ctx, connect.NewRequest(&CalculateSplitsRequest{
		Items: []calculator.Item{
			{Name: "Dosa", Amount: dec("60")},
			{Name: "Idli", Amount: dec("30")},
		},
		Participants: []string{"A", "B"},
		Assignments:  calculator.Assignments{0: {"A", "B"}, 1: {"A", "B"}},
	}))
	if err != nil {
		t.Fatalf("CalculateSplits failed: %v", err)
	}
	if len(splits.Msg.Splits) != 2 || !splits.Msg.Splits[0].Amount.Equal(dec("45")) || !splits.Msg.Total.Equal(dec("90")) {
		t.Errorf("unexpected splits %+v", splits.Msg)
	}

	_, err = ts.client.CalculateSplits(ctx, connect.NewRequest(&CalculateSplitsRequest{
		Items:           []calculator.Item{{Name: "Dosa", Amount: dec("60")}},
		Participants:    []string{"A"},
		DiscountPercent: dec("120"),
	}))
	expectCode(t, err, connect.CodeInvalidArgument)

	rec, err := ts.client.ValidateSplits(ctx, connect.NewRequest(&ValidateSplitsRequest{
		Splits:        []calculator.Share{{Participant: "A", Amount: dec("33.33")}, {Participant: "B", Amount: dec("33.33")}},
		ExpectedTotal: dec("66.67"),
	}))
	if err != nil {
		t.Fatalf("ValidateSplits failed: %v", err)
	}
	if !rec.Msg.Valid || !rec.Msg.Difference.Equal(dec("0.01")) {
		t.Errorf("unexpected reconciliation %+v", rec.Msg)
	}

	adjusted, err := ts.client.AdjustSplits(ctx, connect.NewRequest(&AdjustSplitsRequest{
		Splits:      []calculator.Share{{Participant: "A", Amount: dec("33.33")}, {Participant: "B", Amount: dec("33.33")}},
		TargetTotal: dec("66.67"),
	}))
	if err != nil {
		t.Fatalf("AdjustSplits failed: %v", err)
	}
	if !adjusted.Msg.Splits[0].Amount.Equal(dec("33.34")) || !adjusted.Msg.Total.Equal(dec("66.67")) {
		t.Errorf("unexpected adjustment %+v", adjusted.Msg)
	}

	_, err = ts.client.AdjustSplits(ctx, connect.NewRequest(&AdjustSplitsRequest{TargetTotal: dec("10")}))
	expectCode(t, err, connect.CodeInvalidArgument)

	taxed, err := ts.client.ApplyTax(ctx, connect.NewRequest(&ApplyTaxRequest{
		Splits:    []calculator.Share{{Participant: "A", Amount: dec("60")}, {Participant: "B", Amount: dec("40")}},
		TaxAmount: dec("10"),
		TaxType:   calculator.TaxProportional,
	}))
	if err != nil {
		t.Fatalf("ApplyTax failed: %v", err)
	}
	if !taxed.Msg.Splits[0].Amount.Equal(dec("66")) || !taxed.Msg.Splits[1].Amount.Equal(dec("44")) {
		t.Errorf("unexpected taxed splits %+v", taxed.Msg.Splits)
	}

	_, err = ts.client.ApplyTax(ctx, connect.NewRequest(&ApplyTaxRequest{
		Splits:    []calculator.Share{{Participant: "A", Amount: dec("60")}},
		TaxAmount: dec("10"),
		TaxType:   "weird",
	}))
	expectCode(t, err, connect.CodeInvalidArgument)
}

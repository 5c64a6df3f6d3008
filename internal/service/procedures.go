package service

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// BillServiceName is the fully-qualified name of the bill service.
const BillServiceName = "billease.v1.BillService"

// Procedure paths, in the shape Connect expects.
const (
	CalculateSplitsProcedure     = "/billease.v1.BillService/CalculateSplits"
	ValidateSplitsProcedure      = "/billease.v1.BillService/ValidateSplits"
	AdjustSplitsProcedure        = "/billease.v1.BillService/AdjustSplits"
	ApplyTaxProcedure            = "/billease.v1.BillService/ApplyTax"
	CreateBillProcedure          = "/billease.v1.BillService/CreateBill"
	GetBillProcedure             = "/billease.v1.BillService/GetBill"
	ListBillsProcedure           = "/billease.v1.BillService/ListBills"
	DeleteBillProcedure          = "/billease.v1.BillService/DeleteBill"
	ExtractItemsProcedure        = "/billease.v1.BillService/ExtractItems"
	ReplaceItemsProcedure        = "/billease.v1.BillService/ReplaceItems"
	ConfirmItemsProcedure        = "/billease.v1.BillService/ConfirmItems"
	SetParticipantsProcedure     = "/billease.v1.BillService/SetParticipants"
	ConfirmParticipantsProcedure = "/billease.v1.BillService/ConfirmParticipants"
	AssignItemProcedure          = "/billease.v1.BillService/AssignItem"
	SetManualSplitProcedure      = "/billease.v1.BillService/SetManualSplit"
	ClearManualSplitProcedure    = "/billease.v1.BillService/ClearManualSplit"
	SetAdjustmentsProcedure      = "/billease.v1.BillService/SetAdjustments"
	CalculateProcedure           = "/billease.v1.BillService/Calculate"
	BackProcedure                = "/billease.v1.BillService/Back"
	ResetProcedure               = "/billease.v1.BillService/Reset"
	CreateGroupProcedure         = "/billease.v1.BillService/CreateGroup"
	GetGroupProcedure            = "/billease.v1.BillService/GetGroup"
	ListGroupsProcedure          = "/billease.v1.BillService/ListGroups"
	UseGroupProcedure            = "/billease.v1.BillService/UseGroup"
)

func route[Req, Res any](
	mux *http.ServeMux,
	procedure string,
	fn func(context.Context, *connect.Request[Req]) (*connect.Response[Res], error),
	opts []connect.HandlerOption,
) {
	mux.Handle(procedure, connect.NewUnaryHandler(procedure, fn, opts...))
}

// NewBillServiceHandler builds an HTTP handler serving every BillService
// procedure. It returns the path to mount the handler on.
func NewBillServiceHandler(svc *BillService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()

	route(mux, CalculateSplitsProcedure, svc.CalculateSplits, opts)
	route(mux, ValidateSplitsProcedure, svc.ValidateSplits, opts)
	route(mux, AdjustSplitsProcedure, svc.AdjustSplits, opts)
	route(mux, ApplyTaxProcedure, svc.ApplyTax, opts)

	route(mux, CreateBillProcedure, svc.CreateBill, opts)
	route(mux, GetBillProcedure, svc.GetBill, opts)
	route(mux, ListBillsProcedure, svc.ListBills, opts)
	route(mux, DeleteBillProcedure, svc.DeleteBill, opts)
	route(mux, ExtractItemsProcedure, svc.ExtractItems, opts)
	route(mux, ReplaceItemsProcedure, svc.ReplaceItems, opts)
	route(mux, ConfirmItemsProcedure, svc.ConfirmItems, opts)
	route(mux, SetParticipantsProcedure, svc.SetParticipants, opts)
	route(mux, ConfirmParticipantsProcedure, svc.ConfirmParticipants, opts)
	route(mux, AssignItemProcedure, svc.AssignItem, opts)
	route(mux, SetManualSplitProcedure, svc.SetManualSplit, opts)
	route(mux, ClearManualSplitProcedure, svc.ClearManualSplit, opts)
	route(mux, SetAdjustmentsProcedure, svc.SetAdjustments, opts)
	route(mux, CalculateProcedure, svc.Calculate, opts)
	route(mux, BackProcedure, svc.Back, opts)
	route(mux, ResetProcedure, svc.Reset, opts)

	route(mux, CreateGroupProcedure, svc.CreateGroup, opts)
	route(mux, GetGroupProcedure, svc.GetGroup, opts)
	route(mux, ListGroupsProcedure, svc.ListGroups, opts)
	route(mux, UseGroupProcedure, svc.UseGroup, opts)

	return "/" + BillServiceName + "/", mux
}

// BillServiceClient is a typed client for BillService.
type BillServiceClient struct {
	calculateSplits     *connect.Client[CalculateSplitsRequest, SplitsResponse]
	validateSplits      *connect.Client[ValidateSplitsRequest, ValidateSplitsResponse]
	adjustSplits        *connect.Client[AdjustSplitsRequest, SplitsResponse]
	applyTax            *connect.Client[ApplyTaxRequest, SplitsResponse]
	createBill          *connect.Client[CreateBillRequest, BillResponse]
	getBill             *connect.Client[BillRequest, BillResponse]
	listBills           *connect.Client[ListBillsRequest, ListBillsResponse]
	deleteBill          *connect.Client[BillRequest, DeleteBillResponse]
	extractItems        *connect.Client[ExtractItemsRequest, BillResponse]
	replaceItems        *connect.Client[ReplaceItemsRequest, BillResponse]
	confirmItems        *connect.Client[BillRequest, BillResponse]
	setParticipants     *connect.Client[SetParticipantsRequest, BillResponse]
	confirmParticipants *connect.Client[BillRequest, BillResponse]
	assignItem          *connect.Client[AssignItemRequest, BillResponse]
	setManualSplit      *connect.Client[SetManualSplitRequest, BillResponse]
	clearManualSplit    *connect.Client[ClearManualSplitRequest, BillResponse]
	setAdjustments      *connect.Client[SetAdjustmentsRequest, BillResponse]
	calculate           *connect.Client[BillRequest, BillResponse]
	back                *connect.Client[BillRequest, BillResponse]
	reset               *connect.Client[BillRequest, BillResponse]
	createGroup         *connect.Client[CreateGroupRequest, GroupResponse]
	getGroup            *connect.Client[GetGroupRequest, GroupResponse]
	listGroups          *connect.Client[ListGroupsRequest, ListGroupsResponse]
	useGroup            *connect.Client[UseGroupRequest, BillResponse]
}

// NewBillServiceClient creates a client for the service at baseURL.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BillServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	return &BillServiceClient{
		calculateSplits:     connect.NewClient[CalculateSplitsRequest, SplitsResponse](httpClient, baseURL+CalculateSplitsProcedure, opts...),
		validateSplits:      connect.NewClient[ValidateSplitsRequest, ValidateSplitsResponse](httpClient, baseURL+ValidateSplitsProcedure, opts...),
		adjustSplits:        connect.NewClient[AdjustSplitsRequest, SplitsResponse](httpClient, baseURL+AdjustSplitsProcedure, opts...),
		applyTax:            connect.NewClient[ApplyTaxRequest, SplitsResponse](httpClient, baseURL+ApplyTaxProcedure, opts...),
		createBill:          connect.NewClient[CreateBillRequest, BillResponse](httpClient, baseURL+CreateBillProcedure, opts...),
		getBill:             connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+GetBillProcedure, opts...),
		listBills:           connect.NewClient[ListBillsRequest, ListBillsResponse](httpClient, baseURL+ListBillsProcedure, opts...),
		deleteBill:          connect.NewClient[BillRequest, DeleteBillResponse](httpClient, baseURL+DeleteBillProcedure, opts...),
		extractItems:        connect.NewClient[ExtractItemsRequest, BillResponse](httpClient, baseURL+ExtractItemsProcedure, opts...),
		replaceItems:        connect.NewClient[ReplaceItemsRequest, BillResponse](httpClient, baseURL+ReplaceItemsProcedure, opts...),
		confirmItems:        connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+ConfirmItemsProcedure, opts...),
		setParticipants:     connect.NewClient[SetParticipantsRequest, BillResponse](httpClient, baseURL+SetParticipantsProcedure, opts...),
		confirmParticipants: connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+ConfirmParticipantsProcedure, opts...),
		assignItem:          connect.NewClient[AssignItemRequest, BillResponse](httpClient, baseURL+AssignItemProcedure, opts...),
		setManualSplit:      connect.NewClient[SetManualSplitRequest, BillResponse](httpClient, baseURL+SetManualSplitProcedure, opts...),
		clearManualSplit:    connect.NewClient[ClearManualSplitRequest, BillResponse](httpClient, baseURL+ClearManualSplitProcedure, opts...),
		setAdjustments:      connect.NewClient[SetAdjustmentsRequest, BillResponse](httpClient, baseURL+SetAdjustmentsProcedure, opts...),
		calculate:           connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+CalculateProcedure, opts...),
		back:                connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+BackProcedure, opts...),
		reset:               connect.NewClient[BillRequest, BillResponse](httpClient, baseURL+ResetProcedure, opts...),
		createGroup:         connect.NewClient[CreateGroupRequest, GroupResponse](httpClient, baseURL+CreateGroupProcedure, opts...),
		getGroup:            connect.NewClient[GetGroupRequest, GroupResponse](httpClient, baseURL+GetGroupProcedure, opts...),
		listGroups:          connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+ListGroupsProcedure, opts...),
		useGroup:            connect.NewClient[UseGroupRequest, BillResponse](httpClient, baseURL+UseGroupProcedure, opts...),
	}
}

func (c *BillServiceClient) CalculateSplits(ctx context.Context, req *connect.Request[CalculateSplitsRequest]) (*connect.Response[SplitsResponse], error) {
	return c.calculateSplits.CallUnary(ctx, req)
}

func (c *BillServiceClient) ValidateSplits(ctx context.Context, req *connect.Request[ValidateSplitsRequest]) (*connect.Response[ValidateSplitsResponse], error) {
	return c.validateSplits.CallUnary(ctx, req)
}

func (c *BillServiceClient) AdjustSplits(ctx context.Context, req *connect.Request[AdjustSplitsRequest]) (*connect.Response[SplitsResponse], error) {
	return c.adjustSplits.CallUnary(ctx, req)
}

func (c *BillServiceClient) ApplyTax(ctx context.Context, req *connect.Request[ApplyTaxRequest]) (*connect.Response[SplitsResponse], error) {
	return c.applyTax.CallUnary(ctx, req)
}

func (c *BillServiceClient) CreateBill(ctx context.Context, req *connect.Request[CreateBillRequest]) (*connect.Response[BillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetBill(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ListBills(ctx context.Context, req *connect.Request[ListBillsRequest]) (*connect.Response[ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}

func (c *BillServiceClient) DeleteBill(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *BillServiceClient) ExtractItems(ctx context.Context, req *connect.Request[ExtractItemsRequest]) (*connect.Response[BillResponse], error) {
	return c.extractItems.CallUnary(ctx, req)
}

func (c *BillServiceClient) ReplaceItems(ctx context.Context, req *connect.Request[ReplaceItemsRequest]) (*connect.Response[BillResponse], error) {
	return c.replaceItems.CallUnary(ctx, req)
}

func (c *BillServiceClient) ConfirmItems(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.confirmItems.CallUnary(ctx, req)
}

func (c *BillServiceClient) SetParticipants(ctx context.Context, req *connect.Request[SetParticipantsRequest]) (*connect.Response[BillResponse], error) {
	return c.setParticipants.CallUnary(ctx, req)
}

func (c *BillServiceClient) ConfirmParticipants(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.confirmParticipants.CallUnary(ctx, req)
}

func (c *BillServiceClient) AssignItem(ctx context.Context, req *connect.Request[AssignItemRequest]) (*connect.Response[BillResponse], error) {
	return c.assignItem.CallUnary(ctx, req)
}

func (c *BillServiceClient) SetManualSplit(ctx context.Context, req *connect.Request[SetManualSplitRequest]) (*connect.Response[BillResponse], error) {
	return c.setManualSplit.CallUnary(ctx, req)
}

func (c *BillServiceClient) ClearManualSplit(ctx context.Context, req *connect.Request[ClearManualSplitRequest]) (*connect.Response[BillResponse], error) {
	return c.clearManualSplit.CallUnary(ctx, req)
}

func (c *BillServiceClient) SetAdjustments(ctx context.Context, req *connect.Request[SetAdjustmentsRequest]) (*connect.Response[BillResponse], error) {
	return c.setAdjustments.CallUnary(ctx, req)
}

func (c *BillServiceClient) Calculate(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *BillServiceClient) Back(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.back.CallUnary(ctx, req)
}

func (c *BillServiceClient) Reset(ctx context.Context, req *connect.Request[BillRequest]) (*connect.Response[BillResponse], error) {
	return c.reset.CallUnary(ctx, req)
}

func (c *BillServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *BillServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *BillServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *BillServiceClient) UseGroup(ctx context.Context, req *connect.Request[UseGroupRequest]) (*connect.Response[BillResponse], error) {
	return c.useGroup.CallUnary(ctx, req)
}

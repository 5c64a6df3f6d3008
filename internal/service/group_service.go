package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/billease/internal/models"
	"github.com/mmynk/billease/internal/workflow"
)

// CreateGroup saves a participant list for reuse.
func (s *BillService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[GroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("group name is required"))
	}
	members := make([]string, 0, len(req.Msg.Members))
	for _, m := range req.Msg.Members {
		m = strings.TrimSpace(m)
		if m == "" {
			return nil, toConnectError(workflow.ErrEmptyName)
		}
		if slices.Contains(members, m) {
			return nil, toConnectError(workflow.ErrDuplicateParticipant)
		}
		members = append(members, m)
	}

	group := &models.Group{Name: name, Members: members}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&GroupResponse{Group: toGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *BillService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GroupResponse], error) {
	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GroupResponse{Group: toGroup(group)}), nil
}

// ListGroups retrieves all groups.
func (s *BillService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]Group, len(groups))
	for i, g := range groups {
		out[i] = *toGroup(g)
	}
	return connect.NewResponse(&ListGroupsResponse{Groups: out}), nil
}

// UseGroup loads a group's members as the bill's participants.
func (s *BillService) UseGroup(ctx context.Context, req *connect.Request[UseGroupRequest]) (*connect.Response[BillResponse], error) {
	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("UseGroup: failed to get group", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	bill, err := s.mutate(ctx, req.Msg.BillID, func(sess *workflow.Session) error {
		return sess.UseGroup(group)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded group into bill", "bill_id", bill.ID, "group_id", group.ID, "members", len(group.Members))
	return billResponse(bill, nil), nil
}

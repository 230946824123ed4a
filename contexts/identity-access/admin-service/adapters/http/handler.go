package httpadapter

import (
	"context"
	"log/slog"

	"civica/contexts/identity-access/admin-service/application"
	"civica/contexts/identity-access/admin-service/domain/entities"
	"civica/contexts/identity-access/admin-service/domain/services"
	httptransport "civica/contexts/identity-access/admin-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginAdminRequest) (httptransport.AdminResponse, error) {
	admin, err := h.Service.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return MapAdmin(admin), nil
}

func (h Handler) CreateAdminHandler(ctx context.Context, actor services.Actor, req httptransport.CreateAdminRequest) (httptransport.AdminResponse, error) {
	admin, err := h.Service.CreateAdmin(ctx, actor, application.CreateAdminCommand{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		Role:        entities.Role(req.Role),
		Permissions: req.Permissions,
	})
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return MapAdmin(admin), nil
}

func (h Handler) GetAdminHandler(ctx context.Context, actor services.Actor, adminID string) (httptransport.AdminResponse, error) {
	admin, err := h.Service.GetAdmin(ctx, actor, adminID)
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return MapAdmin(admin), nil
}

func (h Handler) ListAdminsHandler(ctx context.Context, actor services.Actor) (httptransport.AdminListResponse, error) {
	admins, err := h.Service.ListAdmins(ctx, actor)
	if err != nil {
		return httptransport.AdminListResponse{}, err
	}
	resp := httptransport.AdminListResponse{}
	for _, admin := range admins {
		resp.Items = append(resp.Items, MapAdmin(admin))
	}
	return resp, nil
}

func (h Handler) UpdateAdminHandler(ctx context.Context, actor services.Actor, adminID string, req httptransport.UpdateAdminRequest) (httptransport.AdminResponse, error) {
	cmd := application.UpdateAdminCommand{
		FullName:    req.FullName,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	}
	if req.Role != nil {
		role := entities.Role(*req.Role)
		cmd.Role = &role
	}
	admin, err := h.Service.UpdateAdmin(ctx, actor, adminID, cmd)
	if err != nil {
		return httptransport.AdminResponse{}, err
	}
	return MapAdmin(admin), nil
}

func (h Handler) DeleteAdminHandler(ctx context.Context, actor services.Actor, adminID string) error {
	return h.Service.DeleteAdmin(ctx, actor, adminID)
}

func (h Handler) AuditLogHandler(ctx context.Context, actor services.Actor, limit int) (httptransport.AuditLogResponse, error) {
	entries, err := h.Service.ListAuditLog(ctx, actor, limit)
	if err != nil {
		return httptransport.AuditLogResponse{}, err
	}
	resp := httptransport.AuditLogResponse{}
	for _, entry := range entries {
		resp.Items = append(resp.Items, httptransport.AuditEntryResponse{
			AdminID:    entry.AdminID,
			AdminEmail: entry.AdminEmail,
			Action:     entry.Action,
			TargetID:   entry.TargetID,
			OccurredAt: entry.OccurredAt,
		})
	}
	return resp, nil
}

// MapAdmin strips credentials from the entity for transport.
func MapAdmin(admin entities.Admin) httptransport.AdminResponse {
	return httptransport.AdminResponse{
		AdminID:     admin.AdminID,
		FullName:    admin.FullName,
		Email:       admin.Email,
		Role:        string(admin.Role),
		Permissions: admin.Permissions,
		IsActive:    admin.IsActive,
		LockedUntil: admin.LockedUntil,
		LastLoginAt: admin.LastLoginAt,
		CreatedAt:   admin.CreatedAt,
	}
}

package httpserver

import (
	"errors"
	"net/http"

	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
	admintransport "civica/contexts/identity-access/admin-service/transport/http"
	dashboarderrors "civica/contexts/internal-ops/dashboard-service/domain/errors"
)

func (s *Server) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageAdmins)
	if !ok {
		return
	}
	var req admintransport.CreateAdminRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.admins.Handler.CreateAdminHandler(r.Context(), actor, req)
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "admin_created", resp.AdminID)
	writeData(w, http.StatusCreated, resp)
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageAdmins)
	if !ok {
		return
	}
	resp, err := s.admins.Handler.ListAdminsHandler(r.Context(), actor)
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.authenticateAdmin(w, r)
	if !ok {
		return
	}
	resp, err := s.admins.Handler.GetAdminHandler(r.Context(), actor, r.PathValue("admin_id"))
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageAdmins)
	if !ok {
		return
	}
	adminID := r.PathValue("admin_id")
	var req admintransport.UpdateAdminRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.admins.Handler.UpdateAdminHandler(r.Context(), actor, adminID, req)
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "admin_updated", adminID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageAdmins)
	if !ok {
		return
	}
	adminID := r.PathValue("admin_id")
	if err := s.admins.Handler.DeleteAdminHandler(r.Context(), actor, adminID); err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "admin_deleted", adminID)
	writeMessage(w, http.StatusOK, "admin account deleted")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticateAdmin(w, r); !ok {
		return
	}
	resp, err := s.dashboard.Handler.DashboardHandler(r.Context())
	if err != nil {
		s.writeDashboardDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requirePermission(w, r, adminentities.PermViewReports); !ok {
		return
	}
	resp, err := s.dashboard.Handler.ReportHandler(r.Context(), r.PathValue("report_type"))
	if err != nil {
		s.writeDashboardDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermViewReports)
	if !ok {
		return
	}
	limit := parseIntQuery(r.URL.Query().Get("limit"))
	resp, err := s.admins.Handler.AuditLogHandler(r.Context(), actor, limit)
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) writeDashboardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboarderrors.ErrInvalidReportType):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.internalError(w, err)
	}
}

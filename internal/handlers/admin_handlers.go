package handlers

import (
	"net/http"

	"taskboard/internal/handlers/dto"
	"taskboard/internal/logger"
	"taskboard/internal/models/user"
	"taskboard/internal/service"

	"go.uber.org/zap"
)

type AdminHandler struct {
	AdminService AdminService
}

func NewAdminHandler(adminService AdminService) AdminHandler {
	return AdminHandler{AdminService: adminService}
}

func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	d, err := h.AdminService.Dashboard(r.Context(), id)
	if err != nil {
		handleError(w, r, err, "dashboard")
		return
	}
	responseOK(w, http.StatusOK, "", dto.FromDashboard(d))
}

func (h *AdminHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	filter, errs := taskFilter(r)
	if len(errs) > 0 {
		handleError(w, r, service.NewValidationError(errs...), "admin_list_tasks")
		return
	}

	list, err := h.AdminService.Tasks(r.Context(), id, filter)
	if err != nil {
		handleError(w, r, err, "admin_list_tasks")
		return
	}
	responseOK(w, http.StatusOK, "", dto.FromTaskPage(list))
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}

	q := newQueryParser(r)
	filter := user.ListFilter{
		Search: q.get("search"),
		Page:   q.integer("page"),
		Limit:  q.integer("limit"),
	}
	if len(q.errs) > 0 {
		handleError(w, r, service.NewValidationError(q.errs...), "list_users")
		return
	}

	list, err := h.AdminService.Users(r.Context(), id, filter)
	if err != nil {
		handleError(w, r, err, "list_users")
		return
	}
	responseOK(w, http.StatusOK, "", dto.FromUserList(list))
}

func (h *AdminHandler) UserDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	details, err := h.AdminService.UserDetails(r.Context(), id, userID)
	if err != nil {
		handleError(w, r, err, "user_details")
		return
	}
	responseOK(w, http.StatusOK, "", dto.FromUserDetails(details))
}

func (h *AdminHandler) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	u, err := h.AdminService.UpdateUserRole(r.Context(), id, userID, user.Role(req.Role))
	if err != nil {
		handleError(w, r, err, "update_role")
		return
	}

	logger.Info("HTTP_OUT: Роль изменена",
		zap.String("user_id", userID.String()),
		zap.String("role", req.Role))

	responseOK(w, http.StatusOK, "User role updated successfully", object{"user": u})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := caller(w, r)
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.AdminService.DeleteUser(r.Context(), id, userID); err != nil {
		handleError(w, r, err, "delete_user")
		return
	}
	responseOK(w, http.StatusOK, "User deleted successfully", nil)
}

package mock

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/viant/portal/schema"
)

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (p *PortalService) countResource() {
	atomic.AddInt32(&p.resourceCalls, 1)
}

func (p *PortalService) loginHandler(w http.ResponseWriter, r *http.Request) {
	var request schema.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	password, ok := p.Credentials[request.Identifier]
	if !ok || password != request.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	accounts := p.Accounts[request.Identifier]
	var user *schema.User
	switch {
	case request.SelectedUserID != "":
		for i := range accounts {
			if accounts[i].ID == request.SelectedUserID {
				user = &accounts[i]
			}
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Invalid account")
			return
		}
	case len(accounts) > 1:
		response := schema.MultiAccountResponse{MultiAccount: true}
		for _, account := range accounts {
			response.Accounts = append(response.Accounts, schema.Account{ID: account.ID, Name: account.Name, LoginID: account.LoginID, Role: account.Role})
		}
		writeJSON(w, http.StatusOK, response)
		return
	default:
		user = &accounts[0]
	}
	access, refresh, err := p.issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, schema.AuthResponse{
		Token:        access,
		RefreshToken: refresh,
		User:         schema.AuthUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role},
	})
}

func (p *PortalService) refreshHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&p.refreshCalls, 1)
	var request struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token required")
		return
	}
	if gate := p.RefreshGate; gate != nil {
		<-gate
	}
	p.mux.Lock()
	reject := p.rejectRefresh
	p.mux.Unlock()
	if reject {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	// refresh tokens rotate
	userID, ok := p.refreshTokens.Take(request.RefreshToken)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	access, refresh, err := p.issue(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": access, "refreshToken": refresh})
}

func (p *PortalService) logoutHandler(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&p.logoutCalls, 1)
	userID, _ := r.Context().Value(userIDKey).(string)
	owned := func(_ string, owner string) bool { return owner == userID }
	p.refreshTokens.DeleteFunc(owned)
	p.accessTokens.DeleteFunc(owned)
	writeJSON(w, http.StatusOK, schema.Message{Success: true})
}

func (p *PortalService) profileHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDKey).(string)
	p.mux.Lock()
	user := p.users[userID]
	appointments := 0
	for _, appointment := range p.appointments {
		if appointment.UserID != nil && *appointment.UserID == userID {
			appointments++
		}
	}
	p.mux.Unlock()
	writeJSON(w, http.StatusOK, schema.UserProfile{User: user, Count: schema.ProfileCount{Appointments: appointments}})
}

func (p *PortalService) appointmentsHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDKey).(string)
	p.mux.Lock()
	defer p.mux.Unlock()
	result := []schema.Appointment{}
	for _, appointment := range p.appointments {
		if appointment.UserID != nil && *appointment.UserID == userID {
			result = append(result, appointment)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (p *PortalService) bookAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(userIDKey).(string)
	var request schema.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Service == "" || request.Date == "" {
		writeError(w, http.StatusBadRequest, "Service and date are required")
		return
	}
	p.mux.Lock()
	defer p.mux.Unlock()
	user := p.users[userID]
	appointment := schema.Appointment{
		ID:        uuid.NewString(),
		UserID:    &userID,
		Service:   request.Service,
		Date:      request.Date,
		TimeSlot:  request.TimeSlot,
		Status:    schema.AppointmentPending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if user.Name != nil {
		appointment.Name = *user.Name
	}
	if user.Email != nil {
		appointment.Email = *user.Email
	}
	if request.Message != "" {
		appointment.Message = &request.Message
	}
	p.appointments = append(p.appointments, appointment)
	writeJSON(w, http.StatusCreated, appointment)
}

func (p *PortalService) toolHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	p.mux.Lock()
	tool, ok := p.tools[id]
	p.mux.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "Tool not found")
		return
	}
	writeJSON(w, http.StatusOK, tool)
}

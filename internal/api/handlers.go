package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rentshare/internal/models"
)

// actorID извлекает идентификатор действующего пользователя из заголовка.
func (s *HTTPServer) actorID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := strings.TrimSpace(r.Header.Get(s.cfg.UserIDHeader))
	if raw == "" {
		writeError(w, http.StatusBadRequest, s.cfg.UserIDHeader+" header is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+s.cfg.UserIDHeader+" header")
		return 0, false
	}
	return id, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id in path")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// Bookings

type bookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	var req bookingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	booking, err := s.bookings.Create(r.Context(), bookerID, req.ItemID, req.Start, req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "approved query parameter is required")
		return
	}

	booking, err := s.bookings.Approve(r.Context(), bookingID, ownerID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	bookingID, ok := pathID(w, r)
	if !ok {
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), bookingID, requesterID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	filter, err := models.ParseBookingFilter(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByBooker(r.Context(), bookerID, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	filter, err := models.ParseBookingFilter(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := s.bookings.ListByOwner(r.Context(), ownerID, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Items

type itemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"request_id"`
}

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Available == nil {
		writeError(w, http.StatusBadRequest, "name and available are required")
		return
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	}
	created, err := s.items.Create(r.Context(), ownerID, item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.ItemPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	item, err := s.items.Update(r.Context(), ownerID, itemID, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	item, err := s.items.GetByID(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	items, err := s.items.ListByOwner(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.items.Search(r.Context(), strings.TrimSpace(r.URL.Query().Get("text")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Comments

type commentRequest struct {
	Text string `json:"text"`
}

func (s *HTTPServer) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := s.actorID(w, r)
	if !ok {
		return
	}
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req commentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	comment, err := s.comments.Create(r.Context(), authorID, itemID, req.Text)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (s *HTTPServer) handleListComments(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	comments, err := s.comments.ListByItem(r.Context(), itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// Requests

type requestCreateRequest struct {
	Description string `json:"description"`
}

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	var req requestCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	request, err := s.requests.Create(r.Context(), requesterID, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actorID(w, r)
	if !ok {
		return
	}

	requests, err := s.requests.ListOwn(r.Context(), requesterID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.actorID(w, r); !ok {
		return
	}

	requests, err := s.requests.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.actorID(w, r); !ok {
		return
	}
	requestID, ok := pathID(w, r)
	if !ok {
		return
	}

	request, err := s.requests.GetByID(r.Context(), requestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}

// Users

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *HTTPServer) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "name and email are required")
		return
	}

	user, err := s.users.Create(r.Context(), &models.User{Name: req.Name, Email: req.Email})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := s.users.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var patch models.UserPatch
	if !decodeBody(w, r, &patch) {
		return
	}

	user, err := s.users.Update(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *HTTPServer) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.users.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Admin

func (s *HTTPServer) handleExportBookings(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeError(w, http.StatusNotFound, "export is not configured")
		return
	}

	start, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from is required, format YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to is required, format YYYY-MM-DD")
		return
	}
	// Захватываем весь день "to".
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	path, err := s.exporter.ExportBookings(r.Context(), start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

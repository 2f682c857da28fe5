package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/disersoft-code/traductor-pmv/internal/panel"
)

// maxMessageNumber bounds message numbers accepted in request bodies.
const maxMessageNumber = 512

type activateRequest struct {
	MessageNumber *int  `json:"messageNumber"`
	Activate      *bool `json:"activate"`
}

type scheduleAddRequest struct {
	Date          *uint32 `json:"date"`
	MessageNumber *int    `json:"messageNumber"`
}

type scheduleEditRequest struct {
	ID            string  `json:"id"`
	Date          *uint32 `json:"date"`
	MessageNumber *int    `json:"messageNumber"`
}

var errMissingField = errors.New("missing required field")

// Messages

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		s.requestLog(r).Error("Bad list query: %v", err)
		writeKind(w, panel.InvalidModel)
		return
	}
	page, err := s.gw.GetMessages(r.Context(), q.ip, q.page, q.size)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	msg, err := s.gw.GetMessage(r.Context(), chi.URLParam(r, "ip"), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (s *Server) handleWriteMessage(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	var body panel.MessageWrite
	if err := decodeBody(r, &body); err != nil {
		s.requestLog(r).Error("Write message: %v", err)
		writeKind(w, panel.WrongData)
		return
	}
	if body.Pages == nil && body.Multi == "" {
		s.requestLog(r).Error("Write message: no pages and no MULTI string")
		writeKind(w, panel.InvalidModel)
		return
	}

	err := s.gw.WriteMessage(r.Context(), ip, body)
	s.event("write_message", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleActivateMessage(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	var body activateRequest
	if err := decodeBody(r, &body); err != nil {
		s.requestLog(r).Error("Activate message: %v", err)
		writeKind(w, panel.WrongData)
		return
	}
	if body.MessageNumber == nil || body.Activate == nil ||
		*body.MessageNumber < 1 || *body.MessageNumber > maxMessageNumber {
		s.requestLog(r).Error("Activate message: %v", errMissingField)
		writeKind(w, panel.InvalidModel)
		return
	}

	err := s.gw.ActivateMessage(r.Context(), ip, *body.MessageNumber, *body.Activate)
	s.event("activate_message", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	id, err := pathInt(r, "id")
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	err = s.gw.DeleteMessage(r.Context(), ip, id)
	s.event("delete_message", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

// Fonts

func (s *Server) handleListFonts(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	page, err := s.gw.GetFonts(r.Context(), q.ip, q.page, q.size)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetFont(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	font, err := s.gw.GetFont(r.Context(), chi.URLParam(r, "ip"), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, font)
}

// Graphics

func (s *Server) handleListGraphics(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	page, err := s.gw.GetGraphics(r.Context(), q.ip, q.page, q.size)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetGraphic(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	g, err := s.gw.GetGraphic(r.Context(), chi.URLParam(r, "ip"), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleSetGraphic(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	var body panel.GraphicUpload
	if err := decodeBody(r, &body); err != nil {
		s.requestLog(r).Error("Set graphic: %v", err)
		writeKind(w, panel.WrongData)
		return
	}
	err := s.gw.SetGraphic(r.Context(), ip, body)
	s.event("set_graphic", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

// Schedules

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeKind(w, panel.InvalidModel)
		return
	}
	page, err := s.gw.GetSchedules(r.Context(), q.ip, q.page, q.size)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := s.gw.GetSchedule(r.Context(), chi.URLParam(r, "ip"), chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleAddSchedule(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	var body scheduleAddRequest
	if err := decodeBody(r, &body); err != nil {
		s.requestLog(r).Error("Add schedule: %v", err)
		writeKind(w, panel.WrongData)
		return
	}
	if body.Date == nil || body.MessageNumber == nil ||
		*body.MessageNumber < 1 || *body.MessageNumber > maxMessageNumber {
		s.requestLog(r).Error("Add schedule: %v", errMissingField)
		writeKind(w, panel.InvalidModel)
		return
	}

	err := s.gw.SetSchedule(r.Context(), ip, int64(*body.Date), *body.MessageNumber)
	s.event("add_schedule", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	var body scheduleEditRequest
	if err := decodeBody(r, &body); err != nil {
		s.requestLog(r).Error("Update schedule: %v", err)
		writeKind(w, panel.WrongData)
		return
	}
	if body.ID == "" || body.Date == nil || body.MessageNumber == nil ||
		*body.MessageNumber < 1 || *body.MessageNumber > maxMessageNumber {
		s.requestLog(r).Error("Update schedule: %v", errMissingField)
		writeKind(w, panel.InvalidModel)
		return
	}

	err := s.gw.UpdateSchedule(r.Context(), ip, body.ID, int64(*body.Date), *body.MessageNumber)
	s.event("update_schedule", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	err := s.gw.DeleteSchedule(r.Context(), ip, chi.URLParam(r, "id"))
	s.event("delete_schedule", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

// Status

func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.gw.GetStatus(r.Context(), chi.URLParam(r, "ip"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ip")
	err := s.gw.RestartPanel(r.Context(), ip)
	s.event("restart", ip, err)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w)
}

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/chotta-app/chotta/internal/models"
	"github.com/chotta-app/chotta/internal/service"
)

// roomResponse is the public view of a room; the passcode hash never
// leaves the server.
type roomResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	CreatedAt       int64    `json:"created_at"`
	ExpiresAt       int64    `json:"expires_at"`
	Expired         bool     `json:"expired"`
	DefaultCurrency string   `json:"default_currency"`
	ExtraCurrencies []string `json:"extra_currencies"`
	HasPasscode     bool     `json:"has_passcode"`
}

func toRoomResponse(room *models.Room) roomResponse {
	return roomResponse{
		ID:              room.ID,
		Name:            room.Name,
		CreatedAt:       room.CreatedAt,
		ExpiresAt:       room.ExpiresAt,
		Expired:         room.Expired(time.Now().Unix()),
		DefaultCurrency: room.Settings.DefaultCurrency,
		ExtraCurrencies: room.Settings.ExtraCurrencies,
		HasPasscode:     room.Settings.PasscodeHash != "",
	}
}

func (a *API) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string `json:"name"`
		DefaultCurrency string `json:"default_currency"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	room, err := a.rooms.Create(r.Context(), req.Name, req.DefaultCurrency)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomResponse(room))
}

func (a *API) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := a.rooms.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (a *API) handleUpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string   `json:"name"`
		DefaultCurrency *string   `json:"default_currency"`
		ExtraCurrencies *[]string `json:"extra_currencies"`
		NewPasscode     *string   `json:"new_passcode"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	room, err := a.rooms.Update(r.Context(), mux.Vars(r)["id"], r.Header.Get(passcodeHeader), service.RoomUpdate{
		Name:            req.Name,
		DefaultCurrency: req.DefaultCurrency,
		ExtraCurrencies: req.ExtraCurrencies,
		NewPasscode:     req.NewPasscode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (a *API) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := a.rooms.Delete(r.Context(), mux.Vars(r)["id"], r.Header.Get(passcodeHeader)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleExtendRoom(w http.ResponseWriter, r *http.Request) {
	room, err := a.rooms.Extend(r.Context(), mux.Vars(r)["id"], r.Header.Get(passcodeHeader))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

func (a *API) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	room, err := a.rooms.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	token, err := a.invites.Generate(room.ID, time.Unix(room.ExpiresAt, 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"token": token})
}

func (a *API) handleJoin(w http.ResponseWriter, r *http.Request) {
	roomID, err := a.invites.Validate(mux.Vars(r)["token"])
	if err != nil {
		writeError(w, err)
		return
	}

	room, err := a.rooms.Get(r.Context(), roomID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomResponse(room))
}

type participantResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (a *API) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := a.rooms.Participants(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, participantResponse{ID: p.ID, Name: p.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	p, err := a.rooms.AddParticipant(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, participantResponse{ID: p.ID, Name: p.Name})
}

func (a *API) handleRenameParticipant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	vars := mux.Vars(r)
	if err := a.rooms.RenameParticipant(r.Context(), vars["id"], vars["pid"], req.Name); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleRemoveParticipant(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := a.rooms.RemoveParticipant(r.Context(), vars["id"], vars["pid"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

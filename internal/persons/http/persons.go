package http

import (
	"net/http"

	"github.com/aussiebroadwan/persons/internal/persons/service"
	"github.com/aussiebroadwan/persons/pkg/httpx"
	"github.com/aussiebroadwan/persons/pkg/personsdk"
)

type PersonsHandler struct {
	PersonService *service.PersonService
}

// HandleCreate stores a person owned by the caller.
//
//	@Summary		Create person
//	@Description	All fields except idType and idPhoto are required. idType defaults to "Buletin de identitate".
//	@Tags			Persons
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		personsdk.PersonInput		true	"Person fields"
//	@Success		201		{object}	personsdk.PersonResponse	"Created person"
//	@Failure		400		{object}	personsdk.APIError			"Missing field, bad CNP, bad date or unknown document type"
//	@Failure		401		{object}	personsdk.APIError			"Missing or invalid token"
//	@Router			/api/persons [post].
func (h *PersonsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req personsdk.PersonInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.PersonService.Create(r.Context(), id, fromPersonInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, personsdk.PersonResponse{
		Message: "Person created successfully",
		Person:  toPerson(p),
	})
}

// HandleList returns the caller's persons.
//
//	@Summary		List own persons
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		personsdk.Person	"Persons owned by the caller, newest first"
//	@Failure		401	{object}	personsdk.APIError	"Missing or invalid token"
//	@Router			/api/persons [get].
func (h *PersonsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	persons, err := h.PersonService.List(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(persons, toPerson))
}

// HandleGet returns one person.
//
//	@Summary		Get person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string				true	"Person ID"
//	@Success		200	{object}	personsdk.Person	"The person"
//	@Failure		401	{object}	personsdk.APIError	"Missing or invalid token"
//	@Failure		403	{object}	personsdk.APIError	"Person belongs to another user"
//	@Failure		404	{object}	personsdk.APIError	"Person not found"
//	@Router			/api/persons/{id} [get].
func (h *PersonsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	p, err := h.PersonService.Get(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toPerson(p))
}

// HandleUpdate changes the fields present in the body.
//
//	@Summary		Update person
//	@Description	Only fields present in the body change. "idPhoto": null removes the photo.
//	@Tags			Persons
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Person ID"
//	@Param			request	body		personsdk.PersonInput		true	"Fields to change"
//	@Success		200		{object}	personsdk.PersonResponse	"Updated person"
//	@Failure		400		{object}	personsdk.APIError			"Invalid field"
//	@Failure		401		{object}	personsdk.APIError			"Missing or invalid token"
//	@Failure		403		{object}	personsdk.APIError			"Person belongs to another user"
//	@Failure		404		{object}	personsdk.APIError			"Person not found"
//	@Router			/api/persons/{id} [put].
func (h *PersonsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	var req personsdk.PersonInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	p, err := h.PersonService.Update(r.Context(), id, r.PathValue("id"), fromPersonInput(req))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, personsdk.PersonResponse{
		Message: "Person updated successfully",
		Person:  toPerson(p),
	})
}

// HandleDelete removes a person.
//
//	@Summary		Delete person
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string						true	"Person ID"
//	@Success		200	{object}	personsdk.MessageResponse	"Deleted"
//	@Failure		401	{object}	personsdk.APIError			"Missing or invalid token"
//	@Failure		403	{object}	personsdk.APIError			"Person belongs to another user"
//	@Failure		404	{object}	personsdk.APIError			"Person not found"
//	@Router			/api/persons/{id} [delete].
func (h *PersonsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	if err := h.PersonService.Delete(r.Context(), id, r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, personsdk.MessageResponse{Message: "Person deleted successfully"})
}

// HandleListAll returns every person with its owner.
//
//	@Summary		List all persons
//	@Description	Admin only.
//	@Tags			Persons
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		personsdk.PersonWithOwner	"Every person, newest first"
//	@Failure		401	{object}	personsdk.APIError			"Missing or invalid token"
//	@Failure		403	{object}	personsdk.APIError			"Caller is not an admin"
//	@Router			/api/persons/admin/all [get].
func (h *PersonsHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFrom(r.Context())

	persons, err := h.PersonService.ListAll(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mapSlice(persons, toPersonWithOwner))
}

package main

import (
	"net/http"

	"github.com/jlaasonen/precinct/internal/contexthelpers"
	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/workflow"
)

// login identifies the caller by national ID, registering the person on first
// contact. Members of the department are recognised by their roster entry.
func (app *application) login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NationalID  string `json:"national_id"`
		FullName    string `json:"full_name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := app.readJSON(w, r, &input); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	if input.NationalID == "" {
		app.workflowError(w, r, workflow.Invalid("national_id", "must not be empty"))
		return
	}
	if input.FullName == "" {
		app.workflowError(w, r, workflow.Invalid("full_name", "must not be empty"))
		return
	}

	personID, err := app.persons.Upsert(r.Context(), &models.Person{
		NationalID:  input.NationalID,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	// Renew the token to avoid session fixation.
	if err = app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Put(r.Context(), string(personIDSessionKey), personID)

	actor, err := app.members.ResolveActor(r.Context(), personID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, envelope{
		"person_id": actor.PersonID,
		"role":      actor.Role,
	})
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	if err := app.sessionManager.RenewToken(r.Context()); err != nil {
		app.serverError(w, r, err)
		return
	}
	app.sessionManager.Remove(r.Context(), string(personIDSessionKey))
	app.writeJSON(w, r, http.StatusOK, envelope{"status": "logged out"})
}

// currentSession returns the resolved actor and the CSRF token the client
// needs for subsequent unsafe requests.
func (app *application) currentSession(w http.ResponseWriter, r *http.Request) {
	actor, ok := contexthelpers.Actor(r.Context())
	if !ok {
		app.clientError(w, r, http.StatusUnauthorized)
		return
	}
	app.writeJSON(w, r, http.StatusOK, envelope{
		"person_id":  actor.PersonID,
		"member_id":  actor.MemberID,
		"role":       actor.Role,
		"csrf_token": contexthelpers.CSRFToken(r.Context()),
	})
}

// actorFromRequest returns the authenticated actor. The authentication
// middleware guarantees presence on session routes.
func (app *application) actorFromRequest(r *http.Request) models.Actor {
	actor, _ := contexthelpers.Actor(r.Context())
	return actor
}

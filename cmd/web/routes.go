package main

import (
	"net/http"

	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/healthy", app.healthy)

	// Public endpoints: citizens interact with these without a session.
	public := alice.New(app.sessionManager.LoadAndSave)
	mux.Handle("POST /api/login", public.ThenFunc(app.login))
	mux.Handle("POST /api/tips", public.ThenFunc(app.submitTip))
	mux.Handle("GET /api/rewards/{code}", public.ThenFunc(app.verifyReward))
	mux.Handle("GET /api/most-wanted", public.ThenFunc(app.mostWanted))
	// The payment gateway calls back here after a bail payment.
	mux.Handle("POST /api/bail/{bailID}/payment/callback", public.ThenFunc(app.bailPaymentCallback))

	// Everything else requires an authenticated session.
	session := alice.New(app.sessionManager.LoadAndSave, noSurf, app.authenticate, app.requireAuthentication)
	mux.Handle("GET /api/session", session.ThenFunc(app.currentSession))
	mux.Handle("POST /api/logout", session.ThenFunc(app.logout))

	mux.Handle("POST /api/cases", session.ThenFunc(app.submitCase))
	mux.Handle("GET /api/cases/{caseID}", session.ThenFunc(app.getCase))
	mux.Handle("GET /api/cases/{caseID}/summary", session.ThenFunc(app.caseSummary))
	mux.Handle("POST /api/cases/{caseID}/complainants", session.ThenFunc(app.joinComplaint))
	mux.Handle("PUT /api/cases/{caseID}/draft", session.ThenFunc(app.updateDraft))
	mux.Handle("POST /api/cases/{caseID}/resubmit", session.ThenFunc(app.resubmitCase))
	mux.Handle("POST /api/cases/{caseID}/reviews", session.ThenFunc(app.reviewCase))

	mux.Handle("POST /api/cases/{caseID}/suspects", session.ThenFunc(app.addSuspect))
	mux.Handle("POST /api/suspects/{suspectID}/status", session.ThenFunc(app.changeSuspectStatus))

	mux.Handle("POST /api/tips/{tipID}/officer-review", session.ThenFunc(app.officerReviewTip))
	mux.Handle("POST /api/tips/{tipID}/detective-review", session.ThenFunc(app.detectiveReviewTip))

	mux.Handle("POST /api/cases/{caseID}/submissions", session.ThenFunc(app.submitSuspectList))
	mux.Handle("POST /api/submissions/{submissionID}/review", session.ThenFunc(app.reviewSuspectList))

	mux.Handle("POST /api/suspects/{suspectID}/interrogations", session.ThenFunc(app.createInterrogation))
	mux.Handle("POST /api/interrogations/{interrogationID}/ratings", session.ThenFunc(app.submitRating))
	mux.Handle("POST /api/interrogations/{interrogationID}/decision", session.ThenFunc(app.captainDecision))
	mux.Handle("POST /api/captain-decisions/{decisionID}/chief-review", session.ThenFunc(app.chiefDecision))

	mux.Handle("POST /api/cases/{caseID}/trials", session.ThenFunc(app.createTrial))
	mux.Handle("POST /api/trials/{trialID}/verdict", session.ThenFunc(app.deliverVerdict))

	mux.Handle("POST /api/suspects/{suspectID}/bail", session.ThenFunc(app.requestBail))
	mux.Handle("POST /api/bail/{bailID}/decision", session.ThenFunc(app.decideBail))
	mux.Handle("POST /api/bail/{bailID}/payment", session.ThenFunc(app.initiateBailPayment))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}

package http

import (
	"net/http"

	"health-wheel/internal/delivery/http/handler"
	"health-wheel/internal/delivery/http/middleware"
	"health-wheel/pkg/response"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Router struct {
	router           *mux.Router
	log              *logrus.Logger
	authHandler      *handler.AuthHandler
	patientHandler   *handler.PatientHandler
	criterionHandler *handler.CriterionHandler
	questionHandler  *handler.QuestionHandler
	ratingHandler    *handler.RatingHandler
	draftHandler     *handler.DraftHandler
	linkHandler      *handler.PatientLinkHandler
	authMiddleware   *middleware.AuthMiddleware
	corsMiddleware   *middleware.CORSMiddleware
}

func NewRouter(
	log *logrus.Logger,
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	criterionHandler *handler.CriterionHandler,
	questionHandler *handler.QuestionHandler,
	ratingHandler *handler.RatingHandler,
	draftHandler *handler.DraftHandler,
	linkHandler *handler.PatientLinkHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:           mux.NewRouter(),
		log:              log,
		authHandler:      authHandler,
		patientHandler:   patientHandler,
		criterionHandler: criterionHandler,
		questionHandler:  questionHandler,
		ratingHandler:    ratingHandler,
		draftHandler:     draftHandler,
		linkHandler:      linkHandler,
		authMiddleware:   authMiddleware,
		corsMiddleware:   corsMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", r.authHandler.SignUp).Methods(http.MethodPost)
	auth.HandleFunc("/signin", r.authHandler.SignIn).Methods(http.MethodPost)

	// Session routes (protected)
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/auth/signout", r.authHandler.SignOut).Methods(http.MethodPost)
	protected.HandleFunc("/auth/session", r.authHandler.GetSession).Methods(http.MethodGet)
	protected.HandleFunc("/patients/me", r.patientHandler.UpdateProfile).Methods(http.MethodPatch)

	// Criteria catalogue and question generation
	protected.HandleFunc("/domains", r.criterionHandler.GetDomains).Methods(http.MethodGet)
	protected.HandleFunc("/criteria", r.criterionHandler.GetCriteria).Methods(http.MethodGet)
	protected.HandleFunc("/questions", r.questionHandler.GenerateQuestion).Methods(http.MethodPost)
	protected.HandleFunc("/questions/domain", r.questionHandler.GenerateForDomain).Methods(http.MethodPost)

	// Survey draft
	protected.HandleFunc("/survey/draft", r.draftHandler.GetDraft).Methods(http.MethodGet)
	protected.HandleFunc("/survey/draft", r.draftHandler.DiscardDraft).Methods(http.MethodDelete)
	protected.HandleFunc("/survey/draft/{criterion}", r.draftHandler.SetResponse).Methods(http.MethodPut)
	protected.HandleFunc("/survey/draft/{criterion}", r.draftHandler.RemoveResponse).Methods(http.MethodDelete)

	// Patient-scoped ratings (admins may pass ?patient_id=)
	ratings := api.PathPrefix("/ratings").Subrouter()
	ratings.Use(r.authMiddleware.Authenticate)
	ratings.Use(middleware.ResolvePatient)
	ratings.HandleFunc("", r.ratingHandler.Submit).Methods(http.MethodPost)
	ratings.HandleFunc("/stars", r.ratingHandler.GetStars).Methods(http.MethodGet)
	ratings.HandleFunc("/history", r.ratingHandler.GetHistory).Methods(http.MethodGet)
	ratings.HandleFunc("/current", r.ratingHandler.GetCurrent).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Patient management (admin)
	admin.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPatch)
	admin.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/patients/{id}/links/{field}", r.linkHandler.GetLinks).Methods(http.MethodGet)
	admin.HandleFunc("/patients/{id}/links/{field}", r.linkHandler.AddLinks).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id}/links/{field}", r.linkHandler.RemoveLinks).Methods(http.MethodDelete)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.router.Use(middleware.RequestLogger(r.log))

	// CORS and security headers wrap the router so preflight requests
	// reach them even when no route matches OPTIONS.
	return middleware.SecureHeaders(r.corsMiddleware.Handle(r.router))
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

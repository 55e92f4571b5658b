package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/pinggolf/btp-planning-core/internal/auth"
	"github.com/pinggolf/btp-planning-core/internal/config"
	"github.com/pinggolf/btp-planning-core/internal/devis/adapters"
	devispostgres "github.com/pinggolf/btp-planning-core/internal/devis/postgres"
	devisservices "github.com/pinggolf/btp-planning-core/internal/devis/services"
	devisusecase "github.com/pinggolf/btp-planning-core/internal/devis/usecase"
	pccache "github.com/pinggolf/btp-planning-core/internal/planningcharge/cache"
	pcpostgres "github.com/pinggolf/btp-planning-core/internal/planningcharge/postgres"
	pcusecase "github.com/pinggolf/btp-planning-core/internal/planningcharge/usecase"
	"github.com/pinggolf/btp-planning-core/internal/queue"
	"github.com/pinggolf/btp-planning-core/internal/services"
)

// Server wires the devis and planning-charge use cases to HTTP routes.
type Server struct {
	config       *config.Config
	router       *mux.Router
	sessionStore sessions.Store
	authManager  *auth.Manager
	natsManager  *queue.Manager
	rateLimiter  *services.RateLimiterService

	devisUC         *devisusecase.DevisUseCase
	lotUC           *devisusecase.LotUseCase
	ligneUC         *devisusecase.LigneUseCase
	workflowUC      *devisusecase.WorkflowUseCase
	calculUC        *devisusecase.CalculTotauxUseCase
	articleUC       *devisusecase.ArticleUseCase
	fraisChantierUC *devisusecase.FraisChantierUseCase
	journalUC       *devisusecase.JournalUseCase
	dashboardUC     *devisusecase.DashboardUseCase
	searchUC        *devisusecase.SearchUseCase
	presentationUC  *devisusecase.PresentationUseCase
	attestationUC   *devisusecase.AttestationTVAUseCase
	signatureUC     *devisusecase.SignatureUseCase
	relanceUC       *devisusecase.RelanceUseCase
	comparaisonUC   *devisusecase.ComparaisonUseCase
	versioningUC    *devisusecase.VersioningUseCase
	conversionUC    *devisusecase.ConversionUseCase
	dpgfImportUC    *devisusecase.DPGFImportUseCase

	createBesoinUC      *pcusecase.CreateBesoinUseCase
	getBesoinsUC        *pcusecase.GetBesoinsByChantierUseCase
	getPlanningChargeUC *pcusecase.GetPlanningChargeUseCase
}

// NewServer builds every repository, service and use case over database
// and wires them to the router.
func NewServer(cfg *config.Config, database *sql.DB, natsManager *queue.Manager) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   cfg.AppEnv == "production",
		SameSite: http.SameSiteLaxMode,
	}
	authManager := auth.NewManager(sessionStore)

	store := devispostgres.NewStore(database)
	devisRepo := devispostgres.NewDevisRepository(store)
	lotRepo := devispostgres.NewLotRepository(store)
	ligneRepo := devispostgres.NewLigneRepository(store)
	debourseRepo := devispostgres.NewDebourseDetailRepository(store)
	articleRepo := devispostgres.NewArticleRepository(store)
	journalRepo := devispostgres.NewJournalRepository(store)
	attestationRepo := devispostgres.NewAttestationTVARepository(store)
	signatureRepo := devispostgres.NewSignatureRepository(store)
	relanceRepo := devispostgres.NewRelanceRepository(store)
	fraisChantierRepo := devispostgres.NewFraisChantierRepository(store)
	comparatifRepo := devispostgres.NewComparatifRepository(store)

	numerotation := devisservices.NewNumerotationService()
	margeSvc := devisservices.NewMargeService()
	debourseSvc := devisservices.NewDebourseService()
	guards := devisservices.NewWorkflowGuards()
	rateLimiter := services.NewRateLimiterService(cfg.ThrottleRequestsPerSecond, cfg.ThrottleBurst)

	eventPublisher := queue.NewDevisEventPublisher(natsManager)
	chantierPort := adapters.NewChantierCreationAdapter(database)
	notifTransport := adapters.NewLogNotificationTransport()
	dpgfDecoder := adapters.NewCSVDPGFDecoder()

	pcBesoinRepo := pcpostgres.NewBesoinChargeRepository(database)
	pcChantierProvider := pcpostgres.NewChantierProvider(database)
	pcAffectationProvider := pcpostgres.NewAffectationProvider(database)
	pcCache := pccache.NewPlanningCache()

	s := &Server{
		config:       cfg,
		router:       mux.NewRouter(),
		sessionStore: sessionStore,
		authManager:  authManager,
		natsManager:  natsManager,
		rateLimiter:  rateLimiter,

		devisUC:         devisusecase.NewDevisUseCase(devisRepo, journalRepo, numerotation),
		lotUC:           devisusecase.NewLotUseCase(devisRepo, lotRepo, journalRepo, numerotation),
		ligneUC:         devisusecase.NewLigneUseCase(devisRepo, lotRepo, ligneRepo, journalRepo, numerotation),
		workflowUC:      devisusecase.NewWorkflowUseCase(devisRepo, journalRepo, guards),
		calculUC:        devisusecase.NewCalculTotauxUseCase(devisRepo, lotRepo, ligneRepo, debourseRepo, journalRepo, margeSvc, debourseSvc),
		articleUC:       devisusecase.NewArticleUseCase(articleRepo),
		fraisChantierUC: devisusecase.NewFraisChantierUseCase(fraisChantierRepo),
		journalUC:       devisusecase.NewJournalUseCase(journalRepo),
		dashboardUC:     devisusecase.NewDashboardUseCase(devisRepo),
		searchUC:        devisusecase.NewSearchUseCase(devisRepo),
		presentationUC:  devisusecase.NewPresentationUseCase(),
		attestationUC:   devisusecase.NewAttestationTVAUseCase(devisRepo, attestationRepo, journalRepo),
		signatureUC:     devisusecase.NewSignatureUseCase(devisRepo, signatureRepo, journalRepo),
		relanceUC:       devisusecase.NewRelanceUseCase(devisRepo, relanceRepo, journalRepo, notifTransport),
		comparaisonUC:   devisusecase.NewComparaisonUseCase(devisRepo, lotRepo, ligneRepo, debourseRepo, comparatifRepo, debourseSvc),
		versioningUC:    devisusecase.NewVersioningUseCase(devisRepo, lotRepo, ligneRepo, debourseRepo, journalRepo),
		conversionUC:    devisusecase.NewConversionUseCase(devisRepo, lotRepo, ligneRepo, debourseRepo, signatureRepo, journalRepo, chantierPort, eventPublisher),
		dpgfImportUC:    devisusecase.NewDPGFImportUseCase(devisRepo, lotRepo, ligneRepo, journalRepo, dpgfDecoder),

		createBesoinUC:      pcusecase.NewCreateBesoinUseCase(pcBesoinRepo, pcCache),
		getBesoinsUC:        pcusecase.NewGetBesoinsByChantierUseCase(pcBesoinRepo),
		getPlanningChargeUC: pcusecase.NewGetPlanningChargeUseCase(pcBesoinRepo, pcChantierProvider, pcAffectationProvider, pcCache),
	}

	s.setupRoutes()
	return s
}

// Router returns the configured HTTP router wrapped with CORS.
func (s *Server) Router() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{s.config.CORSAllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: s.config.CORSAllowCredentials,
		MaxAge:           300,
	})
	return c.Handler(s.router)
}

// setupRoutes configures every API route.
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	authRouter := api.PathPrefix("/auth").Subrouter()
	authRouter.HandleFunc("/login", s.handleLogin).Methods("POST")
	authRouter.HandleFunc("/logout", s.handleLogout).Methods("POST")
	authRouter.HandleFunc("/status", s.handleAuthStatus).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(s.authMiddleware)

	admin := api.PathPrefix("").Subrouter()
	admin.Use(s.authMiddleware, s.adminMiddleware)

	protected.HandleFunc("/devis", s.handleCreerDevis).Methods("POST")
	protected.HandleFunc("/devis", s.handleListerDevis).Methods("GET")
	protected.HandleFunc("/devis/search", s.handleRechercherDevis).Methods("GET")
	protected.HandleFunc("/devis/dashboard", s.handleDashboard).Methods("GET")
	protected.HandleFunc("/devis/{id:[0-9]+}", s.handleConsulterDevis).Methods("GET")
	protected.HandleFunc("/devis/{id:[0-9]+}", s.handleMettreAJourMetadonneesDevis).Methods("PUT")
	admin.HandleFunc("/devis/{id:[0-9]+}", s.handleSupprimerDevis).Methods("DELETE")
	protected.HandleFunc("/devis/{id:[0-9]+}/transition", s.handleTransitionnerDevis).Methods("POST")
	protected.HandleFunc("/devis/{id:[0-9]+}/recalculer", s.handleRecalculerTotaux).Methods("POST")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/lots", s.handleCreerLot).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/lots", s.handleListerLots).Methods("GET")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/lots/{lotId:[0-9]+}", s.handleSupprimerLot).Methods("DELETE")

	protected.HandleFunc("/lots/{lotId:[0-9]+}/lignes", s.handleCreerLigne).Methods("POST")
	protected.HandleFunc("/lots/{lotId:[0-9]+}/lignes", s.handleListerLignes).Methods("GET")
	protected.HandleFunc("/lignes/{ligneId:[0-9]+}", s.handleModifierQuantiteLigne).Methods("PUT")
	protected.HandleFunc("/lignes/{ligneId:[0-9]+}", s.handleSupprimerLigne).Methods("DELETE")

	protected.HandleFunc("/articles", s.handleCreerArticle).Methods("POST")
	protected.HandleFunc("/articles", s.handleRechercherArticles).Methods("GET")
	admin.HandleFunc("/articles/{id:[0-9]+}/prix", s.handleMettreAJourPrixArticle).Methods("PUT")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/frais-chantier", s.handleCreerFraisChantier).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/frais-chantier", s.handleListerFraisChantier).Methods("GET")
	protected.HandleFunc("/frais-chantier/{id:[0-9]+}", s.handleSupprimerFraisChantier).Methods("DELETE")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/journal", s.handleListerJournal).Methods("GET")

	protected.HandleFunc("/presentation/template", s.handlePresentationTemplate).Methods("GET")
	protected.HandleFunc("/presentation/personnaliser", s.handlePresentationPersonnaliser).Methods("POST")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/attestation-tva", s.handleEmettreAttestationTVA).Methods("POST")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/signature", s.handleCreerSignature).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/signature", s.handleRevoquerSignature).Methods("DELETE")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/signature/verifier", s.handleVerifierSignature).Methods("GET")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/relances", s.handlePlanifierRelances).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/relances", s.handleAnnulerRelances).Methods("DELETE")
	protected.HandleFunc("/relances/executer", s.handleExecuterRelances).Methods("POST")

	protected.HandleFunc("/devis/{sourceId:[0-9]+}/comparer/{cibleId:[0-9]+}", s.handleComparerDevis).Methods("GET")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/revisions", s.handleCreerRevision).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/variantes", s.handleCreerVariante).Methods("POST")

	protected.HandleFunc("/devis/{devisId:[0-9]+}/convertir", s.handleConvertirDevis).Methods("POST")
	protected.HandleFunc("/devis/{devisId:[0-9]+}/dpgf-import", s.handleImporterDPGF).Methods("POST")

	protected.HandleFunc("/planning-charge/besoins", s.handleCreerBesoinCharge).Methods("POST")
	protected.HandleFunc("/planning-charge/chantiers/{chantierId:[0-9]+}/besoins", s.handleListerBesoinsChantier).Methods("GET")
	protected.HandleFunc("/planning-charge", s.handleGetPlanningCharge).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RunRelanceBatch sends every due reminder. Exposed for the NATS-triggered
// batch runner in cmd/server, in addition to the manual POST route.
func (s *Server) RunRelanceBatch(ctx context.Context) (sent int, failed int, err error) {
	return s.relanceUC.ExecuterLot(ctx, time.Now().UTC())
}

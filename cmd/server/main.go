package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"hosteria/internal/api"
	"hosteria/internal/auth"
	"hosteria/internal/repository"
	"hosteria/internal/service"
	"hosteria/internal/utils"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	stateRepo := repository.NewStateRepository(db)
	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	jobRepo := repository.NewJobRepository(db)

	if err := stateRepo.EnsureDefaultStates(); err != nil {
		log.Fatalf("Failed to seed reservation states: %v", err)
	}
	if err := userRepo.EnsureDefaultRoles(); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	sender := service.NewSenderService()
	reservationSvc := service.NewReservationService(reservationRepo, roomRepo, guestRepo, stateRepo, sender)
	dashboardSvc := service.NewDashboardService(dashboardRepo, reservationRepo, roomRepo, saleCriterion())
	authSvc := service.NewAuthService(userRepo, sender)
	auditSvc := service.NewAuditService(auditRepo)
	jobSvc := service.NewJobService(jobRepo)

	if err := authSvc.EnsureAdminUser(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	reservationHandler := api.NewReservationHandler(reservationSvc)
	roomHandler := api.NewRoomHandler(roomRepo)
	guestHandler := api.NewGuestHandler(guestRepo)
	catalogHandler := api.NewCatalogHandler(roomRepo, stateRepo)
	userHandler := api.NewUserHandler(userRepo)
	authHandler := api.NewAuthHandler(authSvc)
	dashboardHandler := api.NewDashboardHandler(dashboardSvc)
	auditHandler := api.NewAuditHandler(auditSvc)

	go auditSvc.StartConsumer()

	r := mux.NewRouter()
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(api.AuditMiddleware(auditSvc))

	// Public auth endpoints; login goes through the Redis rate limiter.
	rdb := auth.NewRedisClient()
	if rdb == nil {
		log.Println("Redis not reachable, login rate limiting disabled")
	}
	loginLimiter := auth.LoginRateLimit(rdb, 10, time.Minute)
	apiRouter.Handle("/auth/login", loginLimiter(http.HandlerFunc(authHandler.Login))).Methods("POST")
	apiRouter.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")
	apiRouter.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	apiRouter.HandleFunc("/auth/verify", authHandler.Verify).Methods("GET")

	protect := func(resource, action, actionName string, h http.HandlerFunc) http.Handler {
		return auth.JWTMiddleware(
			auth.Authorize(userRepo, resource, action)(
				auth.WithAction(actionName)(h),
			),
		)
	}

	// Reservations
	apiRouter.Handle("/reservas", protect(auth.ResourceReserva, auth.ActionRead, "listar reservas", reservationHandler.ListReservations)).Methods("GET")
	apiRouter.Handle("/reservas/calendario", protect(auth.ResourceReserva, auth.ActionRead, "calendario de reservas", reservationHandler.Calendar)).Methods("GET")
	apiRouter.Handle("/reservas", protect(auth.ResourceReserva, auth.ActionCreate, "crear reserva", reservationHandler.CreateReservation)).Methods("POST")
	apiRouter.Handle("/reservas/{id:[0-9]+}", protect(auth.ResourceReserva, auth.ActionRead, "ver reserva", reservationHandler.GetReservation)).Methods("GET")
	apiRouter.Handle("/reservas/{id:[0-9]+}", protect(auth.ResourceReserva, auth.ActionUpdate, "modificar reserva", reservationHandler.UpdateReservation)).Methods("PUT")
	apiRouter.Handle("/reservas/{id:[0-9]+}", protect(auth.ResourceReserva, auth.ActionDelete, "eliminar reserva", reservationHandler.DeleteReservation)).Methods("DELETE")

	// Rooms
	apiRouter.Handle("/habitaciones", protect(auth.ResourceHabitacion, auth.ActionRead, "listar habitaciones", roomHandler.ListRooms)).Methods("GET")
	apiRouter.Handle("/habitaciones/disponibles", protect(auth.ResourceHabitacion, auth.ActionRead, "habitaciones disponibles", reservationHandler.AvailableRooms)).Methods("GET")
	apiRouter.Handle("/habitaciones", protect(auth.ResourceHabitacion, auth.ActionCreate, "crear habitación", roomHandler.CreateRoom)).Methods("POST")
	apiRouter.Handle("/habitaciones/{id:[0-9]+}", protect(auth.ResourceHabitacion, auth.ActionUpdate, "modificar habitación", roomHandler.UpdateRoom)).Methods("PUT")
	apiRouter.Handle("/habitaciones/{id:[0-9]+}", protect(auth.ResourceHabitacion, auth.ActionDelete, "eliminar habitación", roomHandler.DeleteRoom)).Methods("DELETE")

	// Guests
	apiRouter.Handle("/huespedes", protect(auth.ResourceHuesped, auth.ActionRead, "listar huéspedes", guestHandler.ListGuests)).Methods("GET")
	apiRouter.Handle("/huespedes", protect(auth.ResourceHuesped, auth.ActionCreate, "crear huésped", guestHandler.CreateGuest)).Methods("POST")
	apiRouter.Handle("/huespedes/{id:[0-9]+}", protect(auth.ResourceHuesped, auth.ActionRead, "ver huésped", guestHandler.GetGuest)).Methods("GET")
	apiRouter.Handle("/huespedes/{id:[0-9]+}", protect(auth.ResourceHuesped, auth.ActionUpdate, "modificar huésped", guestHandler.UpdateGuest)).Methods("PUT")
	apiRouter.Handle("/huespedes/{id:[0-9]+}", protect(auth.ResourceHuesped, auth.ActionDelete, "eliminar huésped", guestHandler.DeleteGuest)).Methods("DELETE")

	// Catalogs
	apiRouter.Handle("/tipos-habitacion", protect(auth.ResourceTipoHabitacion, auth.ActionRead, "listar tipos de habitación", catalogHandler.ListRoomTypes)).Methods("GET")
	apiRouter.Handle("/tipos-habitacion", protect(auth.ResourceTipoHabitacion, auth.ActionCreate, "crear tipo de habitación", catalogHandler.CreateRoomType)).Methods("POST")
	apiRouter.Handle("/tipos-habitacion/{id:[0-9]+}", protect(auth.ResourceTipoHabitacion, auth.ActionUpdate, "modificar tipo de habitación", catalogHandler.UpdateRoomType)).Methods("PUT")
	apiRouter.Handle("/estados-habitacion", protect(auth.ResourceEstadoHabitacion, auth.ActionRead, "listar estados de habitación", catalogHandler.ListRoomStates)).Methods("GET")
	apiRouter.Handle("/estados-habitacion", protect(auth.ResourceEstadoHabitacion, auth.ActionCreate, "crear estado de habitación", catalogHandler.CreateRoomState)).Methods("POST")
	apiRouter.Handle("/estados-reserva", protect(auth.ResourceEstadoReserva, auth.ActionRead, "listar estados de reserva", catalogHandler.ListReservationStates)).Methods("GET")

	// Users and roles
	apiRouter.Handle("/auth/register", protect(auth.ResourceUsuario, auth.ActionCreate, "registrar usuario", authHandler.Register)).Methods("POST")
	apiRouter.Handle("/usuarios", protect(auth.ResourceUsuario, auth.ActionRead, "listar usuarios", userHandler.ListUsers)).Methods("GET")
	apiRouter.Handle("/usuarios/me", auth.JWTMiddleware(auth.WithAction("usuario actual")(http.HandlerFunc(userHandler.CurrentUser)))).Methods("GET")
	apiRouter.Handle("/usuarios/{id:[0-9]+}", protect(auth.ResourceUsuario, auth.ActionRead, "ver usuario", userHandler.GetUser)).Methods("GET")
	apiRouter.Handle("/usuarios/{id:[0-9]+}", protect(auth.ResourceUsuario, auth.ActionDelete, "eliminar usuario", userHandler.DeleteUser)).Methods("DELETE")
	apiRouter.Handle("/tipos-usuario", protect(auth.ResourceUsuario, auth.ActionRead, "listar tipos de usuario", userHandler.ListRoles)).Methods("GET")
	apiRouter.Handle("/tipos-usuario/{id:[0-9]+}", protect(auth.ResourceUsuario, auth.ActionRead, "ver tipo de usuario", userHandler.GetRole)).Methods("GET")
	apiRouter.Handle("/tipos-usuario/{id:[0-9]+}/permisos", protect(auth.ResourceUsuario, auth.ActionUpdate, "modificar permisos", userHandler.UpdateRolePermissions)).Methods("PUT")

	// Dashboard and audit trail
	apiRouter.Handle("/dashboards/summary", protect(auth.ResourceDashboard, auth.ActionRead, "dashboard", dashboardHandler.Summary)).Methods("GET")
	apiRouter.Handle("/auditorias", protect(auth.ResourceAuditoria, auth.ActionRead, "listar auditorías", auditHandler.ListAudits)).Methods("GET")

	c := cron.New()
	c.AddFunc("30 4 * * *", func() {
		if err := jobSvc.AutoCheckout(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@hourly", func() {
		if err := jobSvc.PurgeStalePending(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{envOr("CORS_ORIGIN", "*")}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	)

	port := envOr("PORT", "8080")
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// saleCriterion resolves what counts as a sale on the dashboard from VENTA_BY
// and SALE_STATE_IDS, once, at startup.
func saleCriterion() service.SaleCriterion {
	criterion := service.SaleCriterion{By: service.VentaByPagado, StateIDs: map[int]bool{}}
	if by := os.Getenv("VENTA_BY"); by == service.VentaByEstado {
		criterion.By = service.VentaByEstado
	}
	for _, id := range utils.ParseIDList(os.Getenv("SALE_STATE_IDS")) {
		criterion.StateIDs[id] = true
	}
	return criterion
}

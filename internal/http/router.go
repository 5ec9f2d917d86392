package http

import (
	"payfam-backend/internal/handlers"
	"payfam-backend/internal/middleware"
	"payfam-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	memberHandler *handlers.MemberHandler,
	paymentHandler *handlers.PaymentHandler,
	reportHandler *handlers.ReportHandler,
	messageHandler *handlers.MessageHandler,
	dashboardHandler *handlers.DashboardHandler,
	razorpayHandler *handlers.RazorpayHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Gateway webhooks carry their own signature, not a bearer token
	r.HandleFunc("/webhooks/razorpay", razorpayHandler.Webhook).Methods("POST")

	// Authenticated account info
	meAPI := r.PathPrefix("/auth/me").Subrouter()
	meAPI.Use(authMiddleware.Authenticate)
	meAPI.HandleFunc("", authHandler.Me).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}/active", userHandler.SetActive).Methods("PATCH")

	// Protected API routes - Members
	// Reads allow member accounts (row-filtered in the handlers), writes are staff only
	membersRead := r.PathPrefix("/api/members").Subrouter()
	membersRead.Use(authMiddleware.Authenticate)
	membersRead.HandleFunc("/{id:[0-9]+}", memberHandler.GetMember).Methods("GET")
	membersRead.HandleFunc("/{id:[0-9]+}/totals", memberHandler.GetTotals).Methods("GET")
	membersRead.HandleFunc("/{id:[0-9]+}/dues", paymentHandler.ListMemberDues).Methods("GET")
	membersRead.HandleFunc("/{id:[0-9]+}/transactions", paymentHandler.ListMemberTransactions).Methods("GET")
	membersRead.HandleFunc("/{id:[0-9]+}/messages", messageHandler.ListMemberMessages).Methods("GET")

	membersAPI := r.PathPrefix("/api/members").Subrouter()
	membersAPI.Use(authMiddleware.RequireStaff)
	membersAPI.HandleFunc("", memberHandler.ListMembers).Methods("GET")
	membersAPI.HandleFunc("", memberHandler.CreateMember).Methods("POST")
	membersAPI.HandleFunc("/search", memberHandler.SearchByPhone).Methods("GET")
	membersAPI.HandleFunc("/{id:[0-9]+}", memberHandler.UpdateMember).Methods("PUT")
	membersAPI.HandleFunc("/{id:[0-9]+}", memberHandler.DeleteMember).Methods("DELETE")
	membersAPI.HandleFunc("/{id:[0-9]+}/reminder", messageHandler.SendReminder).Methods("POST")

	// Protected API routes - Dues and payments
	duesRead := r.PathPrefix("/api/dues").Subrouter()
	duesRead.Use(authMiddleware.Authenticate)
	duesRead.HandleFunc("/{id:[0-9]+}", paymentHandler.GetDue).Methods("GET")
	duesRead.HandleFunc("/{id:[0-9]+}/transactions", paymentHandler.ListDueTransactions).Methods("GET")

	duesAPI := r.PathPrefix("/api/dues").Subrouter()
	duesAPI.Use(authMiddleware.RequireStaff)
	duesAPI.HandleFunc("", paymentHandler.ListPeriodDues).Methods("GET")
	duesAPI.HandleFunc("/summary", paymentHandler.GetPeriodSummary).Methods("GET")

	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.Use(authMiddleware.RequireStaff)
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")

	// Protected API routes - Online payments
	onlineAPI := r.PathPrefix("/api/online-payments").Subrouter()
	onlineAPI.Use(authMiddleware.Authenticate)
	onlineAPI.HandleFunc("/status", razorpayHandler.GetStatus).Methods("GET")
	onlineAPI.HandleFunc("/order", razorpayHandler.CreateOrder).Methods("POST")
	onlineAPI.HandleFunc("/verify", razorpayHandler.VerifyPayment).Methods("POST")

	// Protected API routes - Reports (staff only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(authMiddleware.RequireStaff)
	reportsAPI.HandleFunc("/monthly", reportHandler.GetMonthlyReport).Methods("GET")
	reportsAPI.HandleFunc("/monthly/export", reportHandler.ExportMonthlyReport).Methods("GET")

	// Protected API routes - Dashboard (staff only)
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.RequireStaff)
	dashboardAPI.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")
	dashboardAPI.HandleFunc("/live", dashboardHandler.LiveStats)

	// Health check endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}

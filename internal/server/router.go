package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mfp/backend/internal/auth"
	"github.com/mfp/backend/internal/billing"
	"github.com/mfp/backend/internal/config"
	"github.com/mfp/backend/internal/gate"
	"github.com/mfp/backend/internal/handlers"
	"github.com/mfp/backend/internal/httpx"
	"github.com/mfp/backend/internal/models"
)

// New constructs the root http.Handler with all routes and middlewares
// applied.
func New(dbConn *gorm.DB, cfg config.Config, log *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	g := newGate()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := dbConn.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	ah := handlers.NewAuthHandler(dbConn, cfg.JWTSecret)
	mux.HandleFunc("POST /auth/register", ah.Register)
	mux.HandleFunc("POST /auth/login", ah.Login)
	mux.Handle("GET /auth/me", auth.RequireAuth(http.HandlerFunc(ah.Me)))

	// Each endpoint maps to exactly one permission; the gate is the only
	// place role checks happen.
	authed := func(perm gate.Permission, next http.HandlerFunc) http.Handler {
		return auth.RequireAuth(requirePermission(g, perm, next))
	}

	ph := handlers.NewProductHandler(dbConn)
	mux.Handle("GET /products", authed("product:list", ph.List))
	mux.Handle("POST /products", authed("product:create", ph.Create))
	mux.Handle("DELETE /products/{id}", authed("product:delete", ph.Delete))

	ch := handlers.NewCustomerHandler(dbConn)
	mux.Handle("GET /customers", authed("customer:list", ch.List))
	mux.Handle("POST /customers", authed("customer:create", ch.Create))
	mux.Handle("DELETE /customers/{id}", authed("customer:delete", ch.Delete))

	uh := handlers.NewUserHandler(dbConn)
	mux.Handle("GET /users", authed("user:list", uh.List))
	mux.Handle("GET /users/{id}", authed("user:view", uh.Get))

	ih := handlers.NewInvoiceHandler(billing.NewService(dbConn))
	mux.Handle("POST /invoices", authed("invoice:create", ih.Create))
	mux.Handle("GET /invoices/{id}", authed("invoice:view", ih.Get))
	mux.Handle("GET /invoices/{id}/pdf", authed("invoice:view", ih.PDF))

	handler := auth.Middleware(cfg.JWTSecret, userLoader(dbConn))(mux)
	handler = withCORS(cfg.CORSOrigins, handler)
	handler = withRecover(log, handler)
	return withLogging(log, handler)
}

// newGate builds the role profiles. Customer-role scoping to own records is
// enforced inside the handlers; the gate only answers "may this role touch
// this resource at all".
func newGate() *gate.Gate {
	g := gate.NewGate()
	g.Register(string(models.RoleAdmin), gate.NewStaticProfile("admin", gate.PermissionSuperAdmin))
	g.Register(string(models.RoleRepresentative), gate.NewStaticProfile("representative",
		"product:*", "customer:*", "invoice:*",
	))
	g.Register(string(models.RoleViewer), gate.NewStaticProfile("viewer",
		"product:list", "product:view",
		"customer:list", "customer:view",
		"invoice:list", "invoice:view",
	))
	g.Register(string(models.RoleCustomer), gate.NewStaticProfile("customer",
		"product:list", "customer:list", "invoice:view",
	))
	return g
}

func requirePermission(g *gate.Gate, perm gate.Permission, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok {
			httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		if err := g.Authorize(string(user.Role), perm); err != nil {
			httpx.JSONError(w, http.StatusForbidden, "forbidden", "your role does not permit this operation")
			return
		}
		next(w, r)
	})
}

// userLoader resolves token subjects against the users table so revoked or
// deleted accounts lose access immediately.
func userLoader(dbConn *gorm.DB) auth.UserLoader {
	return func(ctx context.Context, username string) (*models.User, error) {
		var user models.User
		err := dbConn.WithContext(ctx).Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
}

package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/denialp88/tickets/internal/auth"
	"github.com/denialp88/tickets/internal/config"
	apperrors "github.com/denialp88/tickets/internal/errors"
	"github.com/denialp88/tickets/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.Guard,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	txnHandler *handler.TransactionHandler,
	expenseHandler *handler.ExpenseHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}), rejectBlacklisted(tokenStore))

	// Password reset is the only operation allowed while first_login is set.
	secured.POST("/auth/reset-password", authHandler.ResetPassword)

	active := secured.Group("", requirePasswordSet())

	// Event listing is role-projected inside the handler.
	active.GET("/events", eventHandler.ListEvents, requireOperation(guard, auth.OpListEvents))
	active.GET("/events/:id", eventHandler.GetEvent, requireOperation(guard, auth.OpViewEventDetail))
	active.POST("/events", eventHandler.CreateEvent, requireOperation(guard, auth.OpManageEvents))
	active.PUT("/events/:id", eventHandler.UpdateEvent, requireOperation(guard, auth.OpManageEvents))
	active.DELETE("/events/:id", eventHandler.DeleteEvent, requireOperation(guard, auth.OpManageEvents))

	active.GET("/users", userHandler.ListUsers, requireOperation(guard, auth.OpManageUsers))
	active.POST("/users", userHandler.CreateUser, requireOperation(guard, auth.OpManageUsers))
	active.DELETE("/users/:id", userHandler.DeleteUser, requireOperation(guard, auth.OpManageUsers))

	active.POST("/transactions", txnHandler.CreateTransaction, requireOperation(guard, auth.OpCreateTransaction))
	active.GET("/transactions", txnHandler.ListTransactions, requireOperation(guard, auth.OpListTransactions))
	active.GET("/transactions/:id/proof", txnHandler.GetTransactionProof, requireOperation(guard, auth.OpListTransactions))
	active.DELETE("/transactions/:id", txnHandler.DeleteTransaction, requireOperation(guard, auth.OpDeleteTransaction))

	active.GET("/dashboard/stats", reportHandler.DashboardStats, requireOperation(guard, auth.OpViewReports))
	active.GET("/reports/profit-loss", reportHandler.ProfitLossReport, requireOperation(guard, auth.OpViewReports))
	active.GET("/admin/commission-report", reportHandler.CommissionReport, requireOperation(guard, auth.OpViewReports))
	active.POST("/admin/mark-commission-paid/:eventId", txnHandler.MarkEventCommissionsPaid, requireOperation(guard, auth.OpMarkCommissionPaid))
	active.POST("/admin/update-commission-status/:transactionId", txnHandler.UpdateCommissionStatus, requireOperation(guard, auth.OpMarkCommissionPaid))

	active.GET("/booker/earnings", reportHandler.BookerEarnings, requireOperation(guard, auth.OpViewEarnings))

	active.GET("/expenses", expenseHandler.ListExpenses, requireOperation(guard, auth.OpManageExpenses))
	active.POST("/expenses", expenseHandler.CreateExpense, requireOperation(guard, auth.OpManageExpenses))
	active.DELETE("/expenses/:id", expenseHandler.DeleteExpense, requireOperation(guard, auth.OpManageExpenses))
}

// claimsFromContext pulls the parsed claims the JWT middleware stored.
func claimsFromContext(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}

// requireOperation consults the authorization guard for every request so role
// checks live in exactly one place.
func requireOperation(guard *auth.Guard, op auth.Operation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if decision := guard.Decide(claims.Role, op); !decision.Allowed {
				httpErr := apperrors.MapErrorToHTTP(decision.Err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// rejectBlacklisted turns away access tokens revoked by logout. The check
// fails open when redis is down; expiry still bounds the token's lifetime.
func rejectBlacklisted(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.ID != "" {
				if revoked, _ := tokenStore.IsAccessTokenBlacklisted(c.Request().Context(), claims.ID); revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
				}
			}
			return next(c)
		}
	}
}

// requirePasswordSet blocks every operation until a first-login user has
// reset their credential.
func requirePasswordSet() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := claimsFromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.FirstLogin {
				httpErr := apperrors.MapErrorToHTTP(apperrors.ErrPasswordResetRequired)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

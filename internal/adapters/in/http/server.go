package http

import (
	"log/slog"
	"net/http"
	"time"

	"steelorders/internal/core/application/usecases/commands"
	"steelorders/internal/core/application/usecases/queries"
	"steelorders/internal/core/domain/model/kernel"
	"steelorders/internal/core/domain/model/user"
	"steelorders/internal/pkg/errs"
	"steelorders/internal/pkg/token"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateOrder    commands.CreateOrderCommandHandler
	UpdateOrder    commands.UpdateOrderCommandHandler
	DeleteOrder    commands.DeleteOrderCommandHandler
	FinalizeOrder  commands.FinalizeOrderCommandHandler
	CompleteOrder  commands.CompleteOrderCommandHandler
	UpdateProfile  commands.UpdateProfileCommandHandler
	ChangePassword commands.ChangePasswordCommandHandler
	ChangeUserRole commands.ChangeUserRoleCommandHandler

	// Query handlers
	Authenticate    queries.AuthenticateQueryHandler
	GetActor        queries.GetActorQueryHandler
	ListOrders      queries.ListOrdersQueryHandler
	GetOrder        queries.GetOrderQueryHandler
	GetProfile      queries.GetProfileQueryHandler
	ListUsers       queries.ListUsersQueryHandler
	GetAdminStats   queries.GetAdminStatsQueryHandler
	GetRecentOrders queries.GetRecentOrdersQueryHandler
	GetOrderHistory queries.GetOrderHistoryQueryHandler
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	tokens   *token.Manager
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, tokens *token.Manager, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		tokens:   tokens,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API under /api/v1. validate may be nil, in which
// case requests are not checked against the API description.
func (s *Server) RegisterRoutes(e *echo.Echo, validate echo.MiddlewareFunc) {
	if validate == nil {
		validate = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	api := e.Group("/api/v1")
	api.POST("/auth/login", s.Login, validate)

	secured := api.Group("", Authenticate(s.tokens, s.handlers.GetActor, s.logger), validate)

	secured.GET("/orders", s.ListOrders)
	secured.POST("/orders", s.CreateOrder)
	secured.GET("/orders/:id", s.GetOrder)
	secured.PATCH("/orders/:id", s.UpdateOrder)
	secured.DELETE("/orders/:id", s.DeleteOrder)
	secured.PATCH("/orders/:id/finalize", s.FinalizeOrder)
	secured.PATCH("/orders/:id/complete", s.CompleteOrder)

	secured.GET("/profile", s.GetProfile)
	secured.PATCH("/profile", s.UpdateProfile)
	secured.PATCH("/profile/password", s.ChangePassword)

	secured.GET("/admin/users", s.ListUsers)
	secured.PATCH("/admin/users/:id/role", s.ChangeUserRole)
	secured.GET("/admin/stats", s.GetAdminStats)
	secured.GET("/admin/orders/recent", s.GetRecentOrders)
	secured.GET("/admin/orders/history", s.GetOrderHistory)
}

// HandleError is the echo error handler: errors that escape a handler, such
// as unknown routes, are rendered in the same {code, message} shape.
func (s *Server) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if writeErr := writeError(c, s.logger, err); writeErr != nil {
		s.logger.Error("failed to write error response", "error", writeErr)
	}
}

// Login handles POST /api/v1/auth/login - exchanges credentials for a bearer token.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewAuthenticateQuery(req.Email, req.Password)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	account, err := s.handlers.Authenticate.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	signed, expiresAt, err := s.tokens.Issue(account.ID, time.Now())
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      newUserResponse(account),
	})
}

// ListOrders handles GET /api/v1/orders - the orders visible to the actor, newest first.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var page, limit *int
	var view *string
	if err := runtime.BindQueryParameter("form", true, false, "page", c.QueryParams(), &page); err != nil {
		return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("page", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.QueryParams(), &limit); err != nil {
		return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("limit", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "view", c.QueryParams(), &view); err != nil {
		return writeError(c, s.logger, errs.NewValueIsInvalidErrorWithCause("view", err))
	}

	parsedView, err := queries.ParseView(valueOrZero(view))
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewListOrdersQuery(actor, valueOrZero(page), valueOrZero(limit), parsedView)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	result, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, OrderListResponse{
		Orders: newOrderResponses(result.Orders),
		Pagination: PaginationResponse{
			Page:  result.Pagination.Page,
			Limit: result.Pagination.Limit,
			Total: result.Pagination.Total,
			Pages: result.Pagination.Pages,
		},
	})
}

// CreateOrder handles POST /api/v1/orders - creates a draft order.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req NewOrderRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	details, err := req.toDetails()
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewCreateOrderCommand(actor, details)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	created, err := s.handlers.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusCreated, newOrderResponseFromDomain(created))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	id, err := idParam(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewGetOrderQuery(actor, id)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	found, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newOrderResponse(found))
}

// UpdateOrder handles PATCH /api/v1/orders/{id} - edits a draft.
func (s *Server) UpdateOrder(c echo.Context) error {
	target, err := s.orderCommand(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req OrderPatchRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	patch, err := req.toPatch()
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateOrderCommand(target, patch)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	updated, err := s.handlers.UpdateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newOrderResponseFromDomain(updated))
}

// DeleteOrder handles DELETE /api/v1/orders/{id} - removes a draft.
func (s *Server) DeleteOrder(c echo.Context) error {
	cmd, err := s.orderCommand(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	if err := s.handlers.DeleteOrder.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Order deleted successfully"})
}

// FinalizeOrder handles PATCH /api/v1/orders/{id}/finalize.
func (s *Server) FinalizeOrder(c echo.Context) error {
	cmd, err := s.orderCommand(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	finalized, err := s.handlers.FinalizeOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newOrderResponseFromDomain(finalized))
}

// CompleteOrder handles PATCH /api/v1/orders/{id}/complete - records the dispatch.
func (s *Server) CompleteOrder(c echo.Context) error {
	target, err := s.orderCommand(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req CompletionRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}
	if req.DispatchQuantity == nil {
		return writeError(c, s.logger, errs.NewValueIsRequiredError("dispatchQuantity"))
	}

	cmd, err := commands.NewCompleteOrderCommand(target, *req.DispatchQuantity, req.CompletionNotes)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	completed, err := s.handlers.CompleteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newOrderResponseFromDomain(completed))
}

// GetProfile handles GET /api/v1/profile.
func (s *Server) GetProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	query, err := queries.NewGetProfileQuery(actor)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	profile, err := s.handlers.GetProfile.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newUserResponse(profile))
}

// UpdateProfile handles PATCH /api/v1/profile.
func (s *Server) UpdateProfile(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewUpdateProfileCommand(actor, req.toProfile())
	if err != nil {
		return writeError(c, s.logger, err)
	}

	updated, err := s.handlers.UpdateProfile.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newUserResponse(queries.NewUserReadModel(updated)))
}

// ChangePassword handles PATCH /api/v1/profile/password.
func (s *Server) ChangePassword(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req PasswordChangeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewChangePasswordCommand(actor, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	if err := s.handlers.ChangePassword.Handle(c.Request().Context(), cmd); err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Password updated successfully"})
}

// ListUsers handles GET /api/v1/admin/users.
func (s *Server) ListUsers(c echo.Context) error {
	query, err := s.adminQuery(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	users, err := s.handlers.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	response := make([]UserResponse, len(users))
	for i, u := range users {
		response[i] = newUserResponse(u)
	}
	return c.JSON(http.StatusOK, response)
}

// ChangeUserRole handles PATCH /api/v1/admin/users/{id}/role.
func (s *Server) ChangeUserRole(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}
	id, err := idParam(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	var req RoleChangeRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, s.logger, err)
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	cmd, err := commands.NewChangeUserRoleCommand(actor, id, role)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	updated, err := s.handlers.ChangeUserRole.Handle(c.Request().Context(), cmd)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newUserResponse(queries.NewUserReadModel(updated)))
}

// GetAdminStats handles GET /api/v1/admin/stats.
func (s *Server) GetAdminStats(c echo.Context) error {
	query, err := s.adminQuery(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	stats, err := s.handlers.GetAdminStats.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, StatsResponse{
		TotalUsers:      stats.TotalUsers,
		TotalOrders:     stats.TotalOrders,
		DraftOrders:     stats.DraftOrders,
		FinalizedOrders: stats.FinalizedOrders,
		CompletedOrders: stats.CompletedOrders,
	})
}

// GetRecentOrders handles GET /api/v1/admin/orders/recent.
func (s *Server) GetRecentOrders(c echo.Context) error {
	query, err := s.adminQuery(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	orders, err := s.handlers.GetRecentOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	return c.JSON(http.StatusOK, newOrderResponses(orders))
}

// GetOrderHistory handles GET /api/v1/admin/orders/history.
func (s *Server) GetOrderHistory(c echo.Context) error {
	query, err := s.adminQuery(c)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	points, err := s.handlers.GetOrderHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, s.logger, err)
	}

	response := make([]HistoryPointResponse, len(points))
	for i, p := range points {
		response[i] = HistoryPointResponse{
			ID:          p.ID.String(),
			OrderNumber: p.OrderNumber,
			Status:      p.Status.String(),
			CreatedAt:   p.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, response)
}

func (s *Server) orderCommand(c echo.Context) (commands.OrderCommand, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return commands.OrderCommand{}, err
	}
	id, err := idParam(c)
	if err != nil {
		return commands.OrderCommand{}, err
	}
	return commands.NewOrderCommand(actor, id)
}

func (s *Server) adminQuery(c echo.Context) (queries.AdminQuery, error) {
	actor, err := actorFrom(c)
	if err != nil {
		return queries.AdminQuery{}, err
	}
	return queries.NewAdminQuery(actor)
}

func idParam(c echo.Context) (kernel.UUID, error) {
	var raw string
	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, c.Param("id"), &raw); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}

func valueOrZero[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

package sandbox

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimsight/claims-portal/claims-portal-core/internal/api"
)

// Handler serves the collaborator endpoints the dashboard core consumes
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a sandbox handler
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers the sandbox claim routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	claims := router.Group("/claims")
	{
		claims.POST("", h.createClaim)
		claims.GET("", h.listClaims)
		claims.POST("/sample", h.seedSamples)
		claims.GET("/:id", h.getClaim)
		claims.GET("/:id/assessment", h.getAssessment)
		claims.POST("/:id/analysis", h.startAnalysis)
		claims.POST("/:id/decision", h.submitDecision)
	}
}

// NewRouter builds the full sandbox router, health check included
func NewRouter(store *Store, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	apiGroup := router.Group("/api/v1")
	{
		NewHandler(store, logger).RegisterRoutes(apiGroup)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	return router
}

func (h *Handler) createClaim(c *gin.Context) {
	var intake api.ClaimIntake
	if err := c.ShouldBindJSON(&intake); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid claim payload"})
		return
	}

	claim := h.store.CreateClaim(intake)
	h.logger.Info("Sandbox claim created", zap.String("claim_id", claim.ID.String()))
	c.JSON(http.StatusCreated, claim)
}

func (h *Handler) listClaims(c *gin.Context) {
	claims := h.store.ListClaims(c.Query("status"))
	c.JSON(http.StatusOK, claims)
}

func (h *Handler) seedSamples(c *gin.Context) {
	var req struct {
		Count int `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}
	if req.Count > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count is capped at 50"})
		return
	}

	created := h.store.Seed(req.Count)
	h.logger.Info("Sample claims seeded", zap.Int("count", created))
	c.JSON(http.StatusCreated, api.SeedResult{CreatedCount: created})
}

func (h *Handler) getClaim(c *gin.Context) {
	claimID, ok := h.claimID(c)
	if !ok {
		return
	}

	claim, err := h.store.GetClaim(claimID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *Handler) getAssessment(c *gin.Context) {
	claimID, ok := h.claimID(c)
	if !ok {
		return
	}

	assessment, err := h.store.GetAssessment(claimID)
	if errors.Is(err, ErrNoAssessment) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no assessment for claim yet"})
		return
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (h *Handler) startAnalysis(c *gin.Context) {
	claimID, ok := h.claimID(c)
	if !ok {
		return
	}

	assessment, err := h.store.StartAnalysis(claimID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}
	h.logger.Info("Analysis started", zap.String("claim_id", claimID.String()))
	c.JSON(http.StatusAccepted, assessment)
}

func (h *Handler) submitDecision(c *gin.Context) {
	claimID, ok := h.claimID(c)
	if !ok {
		return
	}

	var decision api.Decision
	if err := c.ShouldBindJSON(&decision); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid decision payload"})
		return
	}

	claim, err := h.store.Decide(claimID, decision)
	if errors.Is(err, ErrClaimNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "claim not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, claim)
}

func (h *Handler) claimID(c *gin.Context) (uuid.UUID, bool) {
	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid claim id"})
		return uuid.Nil, false
	}
	return claimID, true
}

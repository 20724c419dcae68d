package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; the API surface is small enough
// that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/api/auth/register", h.Register)
	r.Handle("/api/auth/login", h.Login)
	r.Handle("/api/auth/logout", h.Logout)
	r.Handle("/api/auth/me", h.Me)
	r.Handle("/api/auth/tokens", h.Tokens)
}

func (r *Router) RegisterPropertyRoutes(h *PropertyHandler) {
	r.Handle("/api/properties", h.Collection)
	r.Handle("/api/properties/search", h.Search)
	r.Handle("/api/properties/export", h.Export)
	r.Handle("/api/properties/", h.ByID)
}

func (r *Router) RegisterTenantRoutes(h *TenantHandler) {
	r.Handle("/api/tenants", h.Collection)
	r.Handle("/api/tenants/by-phone", h.ByPhone)
	r.Handle("/api/tenants/", h.ByID)
}

func (r *Router) RegisterLeadRoutes(h *LeadHandler) {
	r.Handle("/api/leads", h.Collection)
	r.Handle("/api/leads/virtual", h.Virtual)
	r.Handle("/api/leads/", h.ByID)
}

func (r *Router) RegisterUploadRoutes(h *UploadHandler) {
	r.Handle("/api/uploads/dataset", h.Dataset)
}

func (r *Router) RegisterVoiceAgentRoutes(h *VoiceAgentHandler) {
	r.Handle("/api/voice/agents", h.Agents)
	r.Handle("/api/voice/agents/", h.AgentByID)
	r.Handle("/api/voice/phone-numbers", h.PhoneNumbers)
	r.Handle("/api/voice/web-call", h.WebCall)
}

func (r *Router) RegisterCallRoutes(h *CallHandler) {
	r.Handle("/api/calls", h.Collection)
	r.Handle("/api/calls/outbound", h.Outbound)
	r.Handle("/api/calls/sync", h.Sync)
	r.Handle("/api/calls/", h.ByID)
}

func (r *Router) RegisterSearchRoutes(h *SearchHandler) {
	r.Handle("/api/search/listings", h.Listings)
}

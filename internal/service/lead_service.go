package service

import (
	"context"
	"fmt"

	"github.com/didigamnithin/Homemates2.0-Backend/internal/domain"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/match"
	"github.com/didigamnithin/Homemates2.0-Backend/internal/repository"
	"go.uber.org/zap"
)

// LeadService surfaces leads two ways: materialized records from the lead
// store, and virtual leads synthesized by treating every tenant as an
// implicit lead against the available property pool.
type LeadService struct {
	leads      repository.LeadsRepo
	tenants    repository.TenantsRepo
	properties repository.PropertiesRepo
	logger     *zap.Logger
}

func NewLeadService(leads repository.LeadsRepo, tenants repository.TenantsRepo, properties repository.PropertiesRepo, logger *zap.Logger) *LeadService {
	return &LeadService{
		leads:      leads,
		tenants:    tenants,
		properties: properties,
		logger:     logger,
	}
}

// VirtualLeads scores every tenant against the available properties.
func (s *LeadService) VirtualLeads(ctx context.Context) ([]domain.VirtualLead, error) {
	tenants, err := s.tenants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	pool, err := s.availableProperties(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.VirtualLead, 0, len(tenants))
	for _, t := range tenants {
		scored := match.ScoreTenant(t, pool)
		out = append(out, domain.VirtualLead{
			TenantID:     t.TenantID,
			TenantName:   t.Name,
			Phone:        t.Phone,
			MatchScore:   scored.Score,
			MatchCount:   scored.Matching,
			BestProperty: scored.BestMatch,
		})
	}
	return out, nil
}

// RecordCallLead materializes a lead from a finished call. The caller's
// number resolves to a tenant when one exists; an unknown number still
// produces a lead with no tenant join.
func (s *LeadService) RecordCallLead(ctx context.Context, call domain.CallLog) (*domain.Lead, error) {
	lead := domain.Lead{
		Channel:      domain.LeadChannelVoice,
		Status:       domain.LeadStatusNew,
		CallID:       call.CallID,
		Transcript:   call.Transcript,
		RecordingURL: call.RecordingURL,
		MatchScore:   0.3,
	}

	fromPhone := call.FromPhone
	if call.Direction == "outbound" {
		fromPhone = call.ToPhone
	}
	tenant, err := s.tenants.FindByPhone(ctx, fromPhone)
	if err == nil {
		lead.TenantID = tenant.TenantID
		pool, perr := s.availableProperties(ctx)
		if perr != nil {
			return nil, perr
		}
		scored := match.ScoreTenant(*tenant, pool)
		lead.MatchScore = scored.Score
		if scored.BestMatch != nil {
			lead.PropertyID = scored.BestMatch.PropertyID
		}
	} else {
		s.logger.Info("Call lead has no matching tenant", zap.String("phone", fromPhone))
	}

	created, err := s.leads.Create(ctx, lead)
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	return created, nil
}

func (s *LeadService) availableProperties(ctx context.Context) ([]domain.Property, error) {
	props, err := s.properties.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	pool := props[:0:0]
	for _, p := range props {
		if p.Status == domain.PropertyStatusAvailable {
			pool = append(pool, p)
		}
	}
	return pool, nil
}
